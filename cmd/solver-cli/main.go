package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"problem-solver-be/internal/config"
	"problem-solver-be/internal/constant"
	"problem-solver-be/internal/pkg/logger"
	"problem-solver-be/pkg/chat"
	"problem-solver-be/pkg/idgen"
	"problem-solver-be/pkg/notice"
	"problem-solver-be/pkg/simulation"
	"problem-solver-be/pkg/solver"

	"github.com/fatih/color"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	errColor    = color.New(color.FgRed)
	stepColor   = color.New(color.FgYellow)
	sourceColor = color.New(color.FgMagenta)
)

const helpText = `commands:
  subjects              list subjects
  subject <value>       pick a subject
  solve <question>      solve a problem
  history               list solved problems (newest first)
  show <n>              make the n-th history entry current
  ask <text>            send a chat message
  quick                 list quick questions
  quick <n>             put the n-th quick question into the draft
  send                  send the current draft
  help                  show this help
  quit                  exit`

type cli struct {
	out    io.Writer
	solver *solver.Session
	chat   *chat.Session
}

func newCLI(out io.Writer, clock simulation.Clock, solveLatency, replyLatency time.Duration, responder chat.Responder) *cli {
	ids := idgen.NewSequenceGenerator("")
	c := &cli{out: out}

	notifier := notice.NotifierFunc(func(_ context.Context, n notice.Notice) {
		if n.Variant == notice.VariantDestructive {
			errColor.Fprintf(c.out, "✗ %s: %s\n", n.Title, n.Description)
			return
		}
		okColor.Fprintf(c.out, "✓ %s: %s\n", n.Title, n.Description)
	})

	c.solver = solver.NewSession("cli-solver",
		solver.WithClock(clock),
		solver.WithLatency(solveLatency),
		solver.WithIDGenerator(ids),
		solver.WithNotifier(notifier),
		solver.WithLogger(logger.NewNopLogger()),
	)
	c.chat = chat.NewSession("cli-chat",
		chat.WithClock(clock),
		chat.WithLatency(replyLatency),
		chat.WithIDGenerator(ids),
		chat.WithNotifier(notifier),
		chat.WithResponder(responder),
		chat.WithLogger(logger.NewNopLogger()),
	)
	return c
}

func (c *cli) run(ctx context.Context, in io.Reader) error {
	titleColor.Fprintln(c.out, "Problem solver. Type 'help' for commands.")
	c.printMessage(c.chat.Messages()[0].Content, c.chat.Messages()[0].Sources)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(c.out, helpText)
		case "subjects":
			for _, s := range solver.Subjects() {
				fmt.Fprintf(c.out, "  %-10s %s\n", s.Value, s.Label)
			}
		case "subject":
			if err := c.solver.SetSubject(arg); err != nil {
				errColor.Fprintln(c.out, err)
				continue
			}
			okColor.Fprintf(c.out, "subject: %s\n", c.solver.Snapshot().Subject.Label)
		case "solve":
			c.solve(ctx, arg)
		case "history":
			c.history()
		case "show":
			c.show(arg)
		case "ask":
			c.ask(ctx, arg)
		case "quick":
			c.quick(arg)
		case "send":
			c.send(ctx)
		default:
			errColor.Fprintf(c.out, "unknown command %q\n", cmd)
		}
	}
}

func (c *cli) solve(ctx context.Context, question string) {
	c.solver.SetQuestion(question)
	task, err := c.solver.Solve(ctx)
	if err != nil {
		return // the notifier already reported it
	}
	fmt.Fprintln(c.out, "…")
	if err := task.Wait(ctx); err != nil {
		errColor.Fprintln(c.out, err)
		return
	}
	c.printSolution(c.solver.Snapshot())
}

func (c *cli) printSolution(snap solver.Snapshot) {
	sol := snap.Current
	if sol == nil {
		return
	}
	titleColor.Fprintf(c.out, "[%s] %s\n", sol.Subject, sol.Question)
	okColor.Fprintf(c.out, "Ответ: %s\n", sol.Answer)
	for _, step := range sol.Steps {
		stepColor.Fprintf(c.out, "  %s\n", step)
	}
	if sol.Verification != "" {
		fmt.Fprintln(c.out, sol.Verification)
	}
}

func (c *cli) history() {
	snap := c.solver.Snapshot()
	if len(snap.History) == 0 {
		fmt.Fprintln(c.out, "no solutions yet")
		return
	}
	for i, sol := range snap.History {
		marker := " "
		if snap.Current != nil && sol.Id == snap.Current.Id {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s%d. [%s] %s → %s\n", marker, i+1, sol.Subject, sol.Question, sol.Answer)
	}
}

func (c *cli) show(arg string) {
	n, err := strconv.Atoi(arg)
	history := c.solver.Snapshot().History
	if err != nil || n < 1 || n > len(history) {
		errColor.Fprintf(c.out, "no history entry %q\n", arg)
		return
	}
	c.solver.SelectFromHistory(history[n-1].Id)
	c.printSolution(c.solver.Snapshot())
}

func (c *cli) ask(ctx context.Context, text string) {
	c.chat.SetInput(text)
	c.send(ctx)
}

func (c *cli) quick(arg string) {
	if arg == "" {
		for i, q := range chat.QuickQuestions() {
			fmt.Fprintf(c.out, "  %d. %s\n", i+1, q)
		}
		return
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		errColor.Fprintf(c.out, "not a number: %q\n", arg)
		return
	}
	if err := c.chat.UseQuickQuestion(n - 1); err != nil {
		errColor.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "draft: %s\n", c.chat.Input())
}

func (c *cli) send(ctx context.Context) {
	task, err := c.chat.Send(ctx)
	if err != nil {
		return
	}
	fmt.Fprintln(c.out, "…")
	if err := task.Wait(ctx); err != nil {
		errColor.Fprintln(c.out, err)
		return
	}
	msgs := c.chat.Messages()
	last := msgs[len(msgs)-1]
	if last.Role == constant.ChatMessageRoleAssistant {
		c.printMessage(last.Content, last.Sources)
	}
}

func (c *cli) printMessage(content string, sources []string) {
	fmt.Fprintln(c.out, content)
	if len(sources) > 0 {
		sourceColor.Fprintf(c.out, "Источники: %s\n", strings.Join(sources, ", "))
	}
}

func main() {
	cfg := config.Load()

	responder, err := chat.NewResponder(cfg.Simulation.Responder, nil)
	if err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c := newCLI(color.Output, simulation.RealClock{}, cfg.Simulation.SolveLatency, cfg.Simulation.ReplyLatency, responder)
	if err := c.run(context.Background(), os.Stdin); err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
