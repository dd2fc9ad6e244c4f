package store

import (
	"fmt"

	"github.com/pavelanni/interviewer/internal/model"
)

// ExportAllInterviews builds export-ready results from every interview in
// the database, across all users.
func (s *Store) ExportAllInterviews() ([]model.InterviewResult, error) {
	rows, err := s.db.Query(`SELECT id FROM interviews ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var results []model.InterviewResult
	for _, id := range ids {
		iv, err := s.GetInterview(id)
		if err != nil {
			return nil, fmt.Errorf("get interview %d: %w", id, err)
		}
		user, err := s.GetUserByID(iv.UserID)
		if err != nil {
			return nil, fmt.Errorf("get user %d: %w", iv.UserID, err)
		}

		questions, err := s.ListQuestionsForInterview(id)
		if err != nil {
			return nil, fmt.Errorf("list questions for interview %d: %w", id, err)
		}
		responses, err := s.ListResponsesForInterview(id)
		if err != nil {
			return nil, fmt.Errorf("list responses for interview %d: %w", id, err)
		}
		byQuestion := make(map[int64]model.Response, len(responses))
		for _, r := range responses {
			byQuestion[r.QuestionID] = r
		}

		var exported []model.ExportQuestion
		for _, q := range questions {
			eq := model.ExportQuestion{
				Text:           q.QuestionText,
				Type:           q.QuestionType,
				ExpectedAnswer: q.ExpectedAnswer,
				TimeLimit:      q.TimeLimit,
			}
			if r, ok := byQuestion[q.ID]; ok {
				eq.Answer = r.Answer
				eq.TimeSpent = r.TimeSpent
				eq.Score = r.Score
				if r.Feedback != nil {
					eq.Feedback = *r.Feedback
				}
			}
			exported = append(exported, eq)
		}

		result := model.InterviewResult{
			ID:           iv.ID,
			Title:        iv.Title,
			JobRole:      iv.JobRole,
			Company:      iv.Company,
			Difficulty:   iv.Difficulty,
			Status:       iv.Status,
			StartedAt:    iv.StartedAt,
			CompletedAt:  iv.CompletedAt,
			Questions:    exported,
			OverallScore: iv.Score,
		}
		if iv.Feedback != nil {
			result.OverallFeedback = *iv.Feedback
		}
		if user != nil {
			result.Username = user.Username
			result.DisplayName = user.DisplayName
		}
		results = append(results, result)
	}

	return results, nil
}
