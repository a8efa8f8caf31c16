// Package model defines domain entities mirrored from the MockMate backend.
// The client holds no authoritative state: every value here is a transient
// copy of a backend record, except the session cookies.
package model

import "time"

// Tokens collects the backend-issued access/refresh token pair.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User is a platform account. Directory fields (counts, is_following) are
// populated only by list/search/profile responses.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	FollowersCount int    `json:"followers_count,omitempty"`
	FollowingCount int    `json:"following_count,omitempty"`
	IsFollowing    bool   `json:"is_following,omitempty"`
}

// Exam is a generated exam definition.
type Exam struct {
	ID        string     `json:"id"`
	ExamType  string     `json:"exam_type"`
	TakenAt   *time.Time `json:"taken_at,omitempty"`
	Questions []Question `json:"questions,omitempty"`
}

// UserExam is one attempt at an exam.
type UserExam struct {
	ID          string     `json:"id"`
	ExamID      string     `json:"exam_id"`
	UserID      string     `json:"user_id"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Exam        *Exam      `json:"exam,omitempty"`
}

// Question is a single exam question with its submitted answer, if any.
type Question struct {
	ID           string `json:"question_id"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text,omitempty"`
}

// QuestionMark is the per-question portion of a marked exam.
type QuestionMark struct {
	Mark    float64 `json:"mark"`
	MaxMark float64 `json:"max_mark"`
}

// ExamResult is a read-only marked exam aggregate.
type ExamResult struct {
	ExamID    string         `json:"exam_id"`
	ExamType  string         `json:"exam_type"`
	TotalMark float64        `json:"total_mark"`
	MaxMark   float64        `json:"max_mark"`
	Questions []QuestionMark `json:"questions,omitempty"`
}

// ResultsSummary aggregates all of a user's marked exams.
type ResultsSummary struct {
	TotalExams     int          `json:"total_exams"`
	ExamsWithMarks int          `json:"exams_with_marks"`
	TotalMark      float64      `json:"total_mark"`
	AverageMark    float64      `json:"average_mark"`
	Exams          []ExamResult `json:"exams"`
}

// ChatMessage is a polled direct message. Ordering follows the backend sort.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}
