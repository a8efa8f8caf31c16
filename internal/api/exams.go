package api

import (
	"context"
	"net/http"

	"github.com/mockmate/mockmate-cli/internal/model"
)

// CreateExam asks the backend to generate a new exam of the given type.
func (c *Client) CreateExam(ctx context.Context, examType string) (model.Exam, error) {
	body := map[string]string{"exam_type": examType}
	var out struct {
		Exam model.Exam `json:"exam"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/exams/", body, &out); err != nil {
		return model.Exam{}, err
	}
	return out.Exam, nil
}

// StartExam opens a user-exam attempt and returns it with live questions.
func (c *Client) StartExam(ctx context.Context, examID string) (model.UserExam, error) {
	body := map[string]string{"exam_id": examID}
	var out struct {
		UserExam model.UserExam `json:"user_exam"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/exams/start", body, &out); err != nil {
		return model.UserExam{}, err
	}
	return out.UserExam, nil
}

// SubmitAnswer records one answer. Resubmitting a question overwrites the
// previous answer.
func (c *Client) SubmitAnswer(ctx context.Context, userExamID, questionID, answerText string) error {
	body := map[string]string{
		"user_exam_id": userExamID,
		"question_id":  questionID,
		"answer_text":  answerText,
	}
	return c.do(ctx, http.MethodPost, "/api/exams/submit-answer", body, nil)
}

// CompleteExam closes an attempt. An attempt can complete once.
func (c *Client) CompleteExam(ctx context.Context, userExamID string) error {
	body := map[string]string{"user_exam_id": userExamID}
	return c.do(ctx, http.MethodPost, "/api/exams/complete", body, nil)
}

// Results fetches the marked-exam aggregate for the signed-in user.
func (c *Client) Results(ctx context.Context) (model.ResultsSummary, error) {
	var out model.ResultsSummary
	if err := c.do(ctx, http.MethodGet, "/api/results/marks", nil, &out); err != nil {
		return model.ResultsSummary{}, err
	}
	return out, nil
}
