package dto

import "stat-practice/internal/domain"

func TopicToResponse(t *domain.Topic) TopicResponse {
	return TopicResponse{
		ID:                t.ID,
		Name:              t.Name,
		PreferredApproach: t.PreferredApproach,
	}
}

func PatternToResponse(p *domain.Pattern) PatternResponse {
	return PatternResponse{
		ID:                p.ID,
		TopicID:           p.TopicID,
		Pattern:           p.Pattern,
		PreferredApproach: p.PreferredApproach,
	}
}

func QuestionToResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:             q.ID,
		TopicID:        q.TopicID,
		PatternID:      q.PatternID,
		Difficulty:     string(q.Difficulty),
		QuestionText:   q.QuestionText,
		CorrectAnswer:  q.CorrectAnswer,
		HintStats:      q.HintStats,
		HintPython:     q.HintPython,
		SolutionStats:  q.SolutionStats,
		SolutionPython: q.SolutionPython,
		Solution:       q.Solution,
	}
}

func SummaryToResponse(s *domain.QuestionSummary) QuestionSummaryResponse {
	return QuestionSummaryResponse{
		ID:           s.ID,
		QuestionText: s.QuestionText,
	}
}
