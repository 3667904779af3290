package mapper

import (
	"problem-solver-be/internal/dto"
	"problem-solver-be/internal/entity"
	"problem-solver-be/pkg/solver"
)

type SolverMapper struct{}

func NewSolverMapper() *SolverMapper {
	return &SolverMapper{}
}

func (m *SolverMapper) SubjectToResponse(s solver.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{
		Value: s.Value,
		Label: s.Label,
		Icon:  s.Icon,
		Color: s.Color,
	}
}

func (m *SolverMapper) SubjectsToResponse(subjects []solver.Subject) []dto.SubjectResponse {
	result := make([]dto.SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		result = append(result, m.SubjectToResponse(s))
	}
	return result
}

func (m *SolverMapper) SolutionToResponse(s *entity.Solution) *dto.SolutionResponse {
	if s == nil {
		return nil
	}
	steps := make([]string, len(s.Steps))
	copy(steps, s.Steps)

	return &dto.SolutionResponse{
		Id:           s.Id,
		SubjectValue: s.SubjectValue,
		Subject:      s.Subject,
		Question:     s.Question,
		Answer:       s.Answer,
		Steps:        steps,
		Verification: s.Verification,
		Timestamp:    s.Timestamp,
	}
}

func (m *SolverMapper) SolutionsToResponse(solutions []*entity.Solution) []*dto.SolutionResponse {
	result := make([]*dto.SolutionResponse, 0, len(solutions))
	for _, s := range solutions {
		result = append(result, m.SolutionToResponse(s))
	}
	return result
}

func (m *SolverMapper) SnapshotToResponse(snap solver.Snapshot) *dto.SolverSessionResponse {
	return &dto.SolverSessionResponse{
		Id:           snap.ID,
		Subject:      m.SubjectToResponse(snap.Subject),
		Question:     snap.Question,
		Pending:      snap.Pending,
		Current:      m.SolutionToResponse(snap.Current),
		Recent:       m.SolutionsToResponse(snap.Recent()),
		HistoryCount: len(snap.History),
		UpdatedAt:    snap.UpdatedAt,
	}
}
