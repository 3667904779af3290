package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"problem-solver-be/internal/constant"
	"problem-solver-be/pkg/idgen"
	"problem-solver-be/pkg/notice"
	"problem-solver-be/pkg/randsrc"
	"problem-solver-be/pkg/simulation"
	"problem-solver-be/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	clock    *simulation.ManualClock
	recorder *notice.Recorder
	session  *Session
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		clock:    simulation.NewManualClock(epoch),
		recorder: &notice.Recorder{},
	}
	base := []Option{
		WithClock(f.clock),
		WithNotifier(f.recorder),
		WithIDGenerator(idgen.NewSequenceGenerator("msg")),
		WithResponder(NewCannedResponder(randsrc.NewSequencePicker(1))),
	}
	f.session = NewSession("c-1", append(base, opts...)...)
	return f
}

func (f *fixture) finish(t *testing.T, task *simulation.Task) error {
	t.Helper()
	f.clock.Advance(DefaultLatency)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return task.Wait(ctx)
}

func TestNewSessionStartsWithGreeting(t *testing.T) {
	f := newFixture()
	snap := f.session.Snapshot()

	require.Len(t, snap.Messages, 1)
	greeting := snap.Messages[0]
	assert.Equal(t, constant.ChatMessageRoleAssistant, greeting.Role)
	assert.Equal(t, constant.ChatGreeting, greeting.Content)
	assert.Equal(t, []string{"Wikipedia", "Wolfram Alpha", "10+ научных источников"}, greeting.Sources)
	assert.True(t, snap.QuickQuestionsVisible)
	assert.False(t, snap.Pending)
}

func TestSendAppendsUserThenAssistant(t *testing.T) {
	f := newFixture()
	f.session.SetInput("Как работает черная дыра?")

	task, err := f.session.Send(context.Background())
	require.NoError(t, err)

	snap := f.session.Snapshot()
	require.Len(t, snap.Messages, 2, "user message is recorded before the reply")
	assert.Equal(t, constant.ChatMessageRoleUser, snap.Messages[1].Role)
	assert.Equal(t, "Как работает черная дыра?", snap.Messages[1].Content)
	assert.Empty(t, snap.Input)
	assert.True(t, snap.Pending)
	assert.False(t, snap.QuickQuestionsVisible)

	require.NoError(t, f.finish(t, task))

	snap = f.session.Snapshot()
	require.Len(t, snap.Messages, 3)
	reply := snap.Messages[2]
	assert.Equal(t, constant.ChatMessageRoleAssistant, reply.Role)
	assert.Equal(t, constant.ChatCannedReplies[1].Content, reply.Content)
	assert.NotEmpty(t, reply.Sources)
	assert.Equal(t, epoch.Add(DefaultLatency), reply.CreatedAt)
	assert.False(t, snap.Pending)

	last, ok := f.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notice.KindReplyReady, last.Kind)
	assert.Equal(t, "Ответ готов!", last.Title)
	assert.Equal(t, "Проверено: Britannica, History.com, Academic databases", last.Description)
}

func TestSendRejectsBlankInput(t *testing.T) {
	for _, in := range []string{"", "  ", "\n"} {
		f := newFixture()
		f.session.SetInput(in)

		task, err := f.session.Send(context.Background())
		assert.Nil(t, task)
		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.True(t, validation.IsValidation(err))

		snap := f.session.Snapshot()
		assert.Len(t, snap.Messages, 1)
		assert.False(t, snap.Pending)
		assert.Equal(t, in, snap.Input)
	}
}

func TestSendWhilePendingAddsNothing(t *testing.T) {
	f := newFixture()
	f.session.SetInput("first")
	task, err := f.session.Send(context.Background())
	require.NoError(t, err)

	f.session.SetInput("second")
	again, err := f.session.Send(context.Background())
	assert.Nil(t, again)
	assert.ErrorIs(t, err, ErrPending)
	assert.Len(t, f.session.Messages(), 2)
	assert.Equal(t, "second", f.session.Input(), "draft survives the rejected send")

	require.NoError(t, f.finish(t, task))
	assert.Len(t, f.session.Messages(), 3)
}

func TestRepliesFollowPicker(t *testing.T) {
	f := newFixture(WithResponder(NewCannedResponder(randsrc.NewSequencePicker(2, 0, 1))))

	for i, want := range []int{2, 0, 1} {
		f.session.SetInput("question")
		task, err := f.session.Send(context.Background())
		require.NoError(t, err)
		require.NoError(t, f.finish(t, task))

		msgs := f.session.Messages()
		assert.Equal(t, constant.ChatCannedReplies[want].Content, msgs[len(msgs)-1].Content, "reply %d", i)
	}
	assert.Len(t, f.session.Messages(), 7)
}

func TestUseQuickQuestion(t *testing.T) {
	f := newFixture()
	qs := QuickQuestions()
	require.Len(t, qs, 6)

	require.NoError(t, f.session.UseQuickQuestion(3))
	assert.Equal(t, "Рецепт идеального борща", f.session.Input())
	assert.Len(t, f.session.Messages(), 1, "quick questions never send")

	var verr *validation.Error
	require.ErrorAs(t, f.session.UseQuickQuestion(6), &verr)
	assert.Equal(t, "index", verr.Field)
	require.ErrorAs(t, f.session.UseQuickQuestion(-1), &verr)
}

func TestCancelKeepsUserMessage(t *testing.T) {
	f := newFixture()
	f.session.SetInput("hello")
	task, err := f.session.Send(context.Background())
	require.NoError(t, err)

	assert.True(t, f.session.Cancel())
	assert.ErrorIs(t, f.finish(t, task), simulation.ErrCancelled)

	msgs := f.session.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, msgs[1].Role)
	assert.False(t, f.session.Pending())
}

func TestResponderFailure(t *testing.T) {
	boom := errors.New("responder offline")
	f := newFixture(WithResponder(ResponderFunc(func(context.Context, string) (Reply, error) {
		return Reply{}, boom
	})))
	f.session.SetInput("hello")

	task, err := f.session.Send(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, f.finish(t, task), boom)

	assert.Len(t, f.session.Messages(), 2)
	assert.False(t, f.session.Pending())

	last, ok := f.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notice.KindReplyFailed, last.Kind)
	assert.Equal(t, notice.VariantDestructive, last.Variant)
}

func TestCannedRepliesAreIsolated(t *testing.T) {
	r := NewCannedResponder(randsrc.NewSequencePicker(0))
	reply, err := r.Respond(context.Background(), "x")
	require.NoError(t, err)

	reply.Sources[0] = "tampered"
	again, err := r.Respond(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Wikipedia", again.Sources[0])

	for _, rep := range CannedReplies() {
		assert.NotEmpty(t, rep.Sources)
	}
}

func TestNewResponder(t *testing.T) {
	r, err := NewResponder(ResponderCanned, randsrc.NewSequencePicker(0))
	require.NoError(t, err)
	reply, err := r.Respond(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wikipedia", "Nature Journal", "Scientific American"}, reply.Sources)

	_, err = NewResponder("gpt", nil)
	assert.Error(t, err)
}

func TestSendTextKeepsDraftOnRejection(t *testing.T) {
	f := newFixture()
	f.session.SetInput("draft")
	blank := " \t"

	_, err := f.session.SendText(context.Background(), &blank)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, "draft", f.session.Input())
	assert.Len(t, f.session.Messages(), 1)

	text := "Что такое фотосинтез?"
	task, err := f.session.SendText(context.Background(), &text)
	require.NoError(t, err)
	assert.Empty(t, f.session.Input())
	assert.Equal(t, text, f.session.Messages()[1].Content)

	require.NoError(t, f.finish(t, task))
	assert.Len(t, f.session.Messages(), 3)
}
