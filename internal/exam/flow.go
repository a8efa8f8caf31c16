// Package exam drives one exam attempt through its sequential phases:
// Creating -> Starting -> InProgress -> Completing -> Done. Each transition
// is one backend call; a failed call stays in (or returns to) the previous
// phase so the caller can retry manually. Nothing retries automatically.
package exam

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mockmate/mockmate-cli/internal/errs"
	"github.com/mockmate/mockmate-cli/internal/model"
)

// ErrEmptyAnswer rejects an empty or whitespace-only answer before any
// request is issued.
var ErrEmptyAnswer = errors.New("answer must not be empty")

// Backend is the slice of the API client the flow needs.
type Backend interface {
	CreateExam(ctx context.Context, examType string) (model.Exam, error)
	StartExam(ctx context.Context, examID string) (model.UserExam, error)
	SubmitAnswer(ctx context.Context, userExamID, questionID, answerText string) error
	CompleteExam(ctx context.Context, userExamID string) error
}

// Phase is the flow's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCreating
	PhaseStarting
	PhaseInProgress
	PhaseCompleting
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCreating:
		return "creating"
	case PhaseStarting:
		return "starting"
	case PhaseInProgress:
		return "in progress"
	case PhaseCompleting:
		return "completing"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Flow is one attempt. It is not safe for concurrent use; a view owns it.
type Flow struct {
	backend Backend
	phase   Phase
	exam    model.Exam
	attempt model.UserExam
}

// New returns a flow in the Idle phase.
func New(backend Backend) *Flow {
	return &Flow{backend: backend}
}

// Phase returns the current phase.
func (f *Flow) Phase() Phase { return f.phase }

// Attempt returns the live user-exam. Its ID is empty until Start succeeds.
func (f *Flow) Attempt() model.UserExam { return f.attempt }

// Create generates the exam. On failure the flow returns to Idle so Create
// can be retried.
func (f *Flow) Create(ctx context.Context, examType string) (model.Exam, error) {
	if f.phase != PhaseIdle {
		return model.Exam{}, fmt.Errorf("cannot create: attempt is %s", f.phase)
	}
	f.phase = PhaseCreating
	ex, err := f.backend.CreateExam(ctx, examType)
	if err != nil {
		f.phase = PhaseIdle
		return model.Exam{}, err
	}
	f.exam = ex
	f.phase = PhaseStarting
	return ex, nil
}

// Start opens the user-exam attempt. On failure the flow stays in Starting.
func (f *Flow) Start(ctx context.Context) (model.UserExam, error) {
	if f.phase != PhaseStarting {
		return model.UserExam{}, fmt.Errorf("cannot start: attempt is %s", f.phase)
	}
	att, err := f.backend.StartExam(ctx, f.exam.ID)
	if err != nil {
		return model.UserExam{}, err
	}
	f.attempt = att
	f.phase = PhaseInProgress
	return att, nil
}

// Answer submits one answer. Questions may be answered in any order and
// resubmitted; the backend keeps the last submission. An empty or
// whitespace-only answer is rejected locally without a request.
func (f *Flow) Answer(ctx context.Context, questionID, text string) error {
	if f.phase != PhaseInProgress {
		return fmt.Errorf("cannot answer: attempt is %s", f.phase)
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyAnswer
	}
	return f.backend.SubmitAnswer(ctx, f.attempt.ID, questionID, text)
}

// Complete closes the attempt. Without an active user-exam id it errors
// before issuing any request. On failure the flow returns to InProgress.
func (f *Flow) Complete(ctx context.Context) error {
	if f.attempt.ID == "" {
		return errs.ErrNoAttempt
	}
	if f.phase != PhaseInProgress {
		return fmt.Errorf("cannot complete: attempt is %s", f.phase)
	}
	f.phase = PhaseCompleting
	if err := f.backend.CompleteExam(ctx, f.attempt.ID); err != nil {
		f.phase = PhaseInProgress
		return err
	}
	f.phase = PhaseDone
	return nil
}
