package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mockmate/mockmate-cli/internal/errs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	fn := func() string { return token }
	return New(srv.URL, 5*time.Second, fn, nil)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestClient_BearerHeaderAttached(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, `{"message":"ok","data":{}}`)
	}, "tok-123")

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/api/users", nil, nil))
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, `{"message":"ok"}`)
	}, "")

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/api/login", nil, nil))
	require.Empty(t, gotAuth)
}

func TestClient_EnvelopeDataDecoded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"ok","data":{"value":41}}`)
	}, "")

	var out struct {
		Value int `json:"value"`
	}
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/x", nil, &out))
	require.Equal(t, 41, out.Value)
}

func TestClient_BackendMessageSurfacedVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"exam type is not supported"}`)
	}, "t")

	err := c.do(context.Background(), http.MethodPost, "/api/exams/", map[string]string{}, nil)
	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusBadRequest, se.Status)
	require.Equal(t, "exam type is not supported", err.Error())
}

func TestClient_MissingMessageFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{}`)
	}, "t")

	err := c.do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	require.Equal(t, fallbackMessage, err.Error())
}

func TestClient_UnauthorizedWrapsSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"token expired"}`)
	}, "stale")

	err := c.do(context.Background(), http.MethodGet, "/api/users", nil, nil)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.Contains(t, err.Error(), "token expired")
}

func TestClient_NotFoundWrapsSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"user not found"}`)
	}, "t")

	err := c.do(context.Background(), http.MethodGet, "/api/profile/u9", nil, nil)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestClient_NonJSONResponseExcerpt(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html><body>Bad Gateway</body></html>"))
	}, "t")

	err := c.do(context.Background(), http.MethodGet, "/x", nil, nil)
	var cte *ContentTypeError
	require.ErrorAs(t, err, &cte)
	require.Equal(t, http.StatusBadGateway, cte.Status)
	require.Contains(t, cte.Excerpt, "Bad Gateway")
}

func TestClient_NonJSONExcerptTruncated(t *testing.T) {
	long := strings.Repeat("x", 2000)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(long))
	}, "t")

	err := c.do(context.Background(), http.MethodGet, "/x", nil, nil)
	var cte *ContentTypeError
	require.ErrorAs(t, err, &cte)
	require.Len(t, cte.Excerpt, excerptLen+len("..."))
}

func TestClient_JSONContentTypeWithBrokenBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "{broken")
	}, "t")

	err := c.do(context.Background(), http.MethodGet, "/x", nil, nil)
	var cte *ContentTypeError
	require.ErrorAs(t, err, &cte)
	require.Contains(t, cte.Excerpt, "{broken")
}

func TestClient_MissingBaseURLIsConfigError(t *testing.T) {
	c := New("", 5*time.Second, nil, nil)
	err := c.do(context.Background(), http.MethodGet, "/api/users", nil, nil)
	require.ErrorIs(t, err, errs.ErrNoBackendURL)
}

func TestLogin_ParsesTokensAndUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"message":"ok","data":{
			"user":{"id":"u1","username":"alice","email":"a@x.com"},
			"accessToken":"t1","refreshToken":"t2"}}`)
	}, "")

	res, err := c.Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "alice", res.User.Username)
	require.Equal(t, "t1", res.AccessToken)
	require.Equal(t, "t2", res.RefreshToken)
}

func TestResults_ParsesSummary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/results/marks", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"message":"ok","data":{
			"total_exams":3,"exams_with_marks":2,"total_mark":42,"average_mark":14.0,
			"exams":[{"exam_id":"e1","exam_type":"writing","total_mark":20,"max_mark":25,
				"questions":[{"mark":10,"max_mark":12.5}]}]}}`)
	}, "t")

	s, err := c.Results(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, s.TotalExams)
	require.Equal(t, 2, s.ExamsWithMarks)
	require.Equal(t, 42.0, s.TotalMark)
	require.Equal(t, 14.0, s.AverageMark)
	require.Len(t, s.Exams, 1)
	require.Equal(t, 12.5, s.Exams[0].Questions[0].MaxMark)
}

func TestClient_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	}, "t")
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.do(ctx, http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled) || strings.Contains(err.Error(), "context canceled"))
}
