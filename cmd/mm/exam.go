package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/mockmate/mockmate-cli/internal/exam"
)

// examView runs one interactive exam attempt: create, start, answer each
// question from stdin, complete, then land on the results view. Failures
// surface inline with a manual retry; nothing retries on its own.
func (a *app) examView(ctx context.Context, examType string, in io.Reader) error {
	flow := exam.New(a.api)

	a.view.Printf("creating %s exam...\n", examType)
	if _, err := flow.Create(ctx, examType); err != nil {
		a.view.Errorf("create exam: %v", err)
		a.view.TryAgain()
		return nil
	}

	att, err := flow.Start(ctx)
	if err != nil {
		a.view.Errorf("start exam: %v", err)
		a.view.TryAgain()
		return nil
	}
	if att.Exam == nil || len(att.Exam.Questions) == 0 {
		a.view.Errorf("the exam has no questions")
		return nil
	}

	questions := att.Exam.Questions
	a.view.Headingf("exam started: %d questions", len(questions))
	a.view.Printf("type your answer and press enter; /skip moves on, /done finishes\n")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; i < len(questions); {
		q := questions[i]
		a.view.Question(i+1, len(questions), q)
		a.view.Printf("> ")

		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		switch strings.TrimSpace(line) {
		case "/skip":
			i++
			continue
		case "/done":
			i = len(questions)
			continue
		}

		if err := flow.Answer(ctx, q.ID, line); err != nil {
			if errors.Is(err, exam.ErrEmptyAnswer) {
				a.view.Warnf("answer must not be empty")
			} else {
				a.view.Errorf("submit answer: %v", err)
				a.view.TryAgain()
			}
			continue // same question again
		}
		i++
	}

	if err := flow.Complete(ctx); err != nil {
		a.view.Errorf("complete exam: %v", err)
		a.view.TryAgain()
		return nil
	}
	a.view.Successf("exam completed")

	// The completed attempt lands on the results view.
	return a.dashboard(ctx)
}
