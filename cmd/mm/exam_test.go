package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

// examBackend fakes the four exam endpoints and records submissions.
type examBackend struct {
	submissions []map[string]string
	completed   int
}

func (b *examBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/exams/":
		jsonOK(w, `{"message":"ok","data":{"exam":{"id":"e1","exam_type":"writing"}}}`)
	case "/api/exams/start":
		jsonOK(w, `{"message":"ok","data":{"user_exam":{"id":"ue1","exam_id":"e1","exam":{"id":"e1","questions":[
			{"question_id":"q1","question_text":"Describe your hometown."},
			{"question_id":"q2","question_text":"Argue for or against homework."}]}}}}`)
	case "/api/exams/submit-answer":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.submissions = append(b.submissions, body)
		jsonOK(w, `{"message":"ok"}`)
	case "/api/exams/complete":
		b.completed++
		jsonOK(w, `{"message":"ok"}`)
	case "/api/results/marks":
		jsonOK(w, resultsBody)
	default:
		http.NotFound(w, r)
	}
}

func Test_examView_AnswersAndCompletes(t *testing.T) {
	backend := &examBackend{}
	a, buf := newTestApp(t, backend)
	signIn(t, a)

	// empty answer first: must warn locally and re-ask, then real answers
	in := strings.NewReader("   \nmy hometown essay\n/skip\n")
	if err := a.examView(context.Background(), "writing", in); err != nil {
		t.Fatalf("examView: %v", err)
	}

	if len(backend.submissions) != 1 {
		t.Fatalf("submissions=%v, want exactly one", backend.submissions)
	}
	got := backend.submissions[0]
	if got["user_exam_id"] != "ue1" || got["question_id"] != "q1" || got["answer_text"] != "my hometown essay" {
		t.Fatalf("unexpected submission: %v", got)
	}
	if backend.completed != 1 {
		t.Fatalf("completed=%d, want 1", backend.completed)
	}

	out := buf.String()
	if !strings.Contains(out, "answer must not be empty") {
		t.Fatalf("missing local validation message: %q", out)
	}
	if !strings.Contains(out, "exam completed") || !strings.Contains(out, "total exams:      3") {
		t.Fatalf("missing completion and results redirect: %q", out)
	}
}

func Test_examView_EOFStillCompletes(t *testing.T) {
	backend := &examBackend{}
	a, _ := newTestApp(t, backend)
	signIn(t, a)

	// input ends mid-exam; the attempt still completes once
	in := strings.NewReader("first answer\n")
	if err := a.examView(context.Background(), "writing", in); err != nil {
		t.Fatalf("examView: %v", err)
	}
	if backend.completed != 1 {
		t.Fatalf("completed=%d, want 1", backend.completed)
	}
}

func Test_examView_CreateFailureOffersRetry(t *testing.T) {
	a, buf := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"quota exceeded"}`))
	}))
	signIn(t, a)

	if err := a.examView(context.Background(), "writing", strings.NewReader("")); err != nil {
		t.Fatalf("examView must isolate the failure, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "quota exceeded") || !strings.Contains(out, "try again") {
		t.Fatalf("missing inline error with retry hint: %q", out)
	}
}
