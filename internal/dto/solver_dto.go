package dto

import "time"

type SubjectResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type SolutionResponse struct {
	Id           string    `json:"id"`
	SubjectValue string    `json:"subject_value"`
	Subject      string    `json:"subject"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Steps        []string  `json:"steps"`
	Verification string    `json:"verification,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type SolverSessionResponse struct {
	Id           string              `json:"id"`
	Subject      SubjectResponse     `json:"subject"`
	Question     string              `json:"question"`
	Pending      bool                `json:"pending"`
	Current      *SolutionResponse   `json:"current"`
	Recent       []*SolutionResponse `json:"recent"`
	HistoryCount int                 `json:"history_count"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type SolverHistoryResponse struct {
	SessionId string              `json:"session_id"`
	Solutions []*SolutionResponse `json:"solutions"`
}

type SetSubjectRequest struct {
	Subject string `json:"subject" validate:"required"`
}

type SetQuestionRequest struct {
	Question string `json:"question"`
}

// SolveRequest optionally replaces subject and question before solving.
// With Wait the response is sent once the solution is ready.
type SolveRequest struct {
	Subject  *string `json:"subject,omitempty"`
	Question *string `json:"question,omitempty"`
	Wait     bool    `json:"wait"`
}

type SelectSolutionRequest struct {
	SolutionId string `json:"solution_id" validate:"required"`
}

type SelectSolutionResponse struct {
	Selected bool                   `json:"selected"`
	Session  *SolverSessionResponse `json:"session"`
}

type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
	Session   any  `json:"session"`
}
