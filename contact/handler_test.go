package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestHandler_Accepts(t *testing.T) {
	mailer := &recordingMailer{}
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	h := Handler(mailer, nil, WithClock(func() time.Time { return now }))

	sub := validSubmission()
	sub.Name = "  " + sub.Name + "  "
	rec := postJSON(t, h, encode(t, sub))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	resp := decodeBody[Response](t, rec)
	assert.True(t, resp.Success)
	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err, "id should be a uuid")

	require.Len(t, mailer.sent, 1)
	want := Message{ID: resp.ID, ReceivedAt: now, Submission: validSubmission()}
	if diff := cmp.Diff(want, mailer.sent[0]); diff != "" {
		t.Fatalf("sent message mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_UniqueIDs(t *testing.T) {
	h := Handler(&recordingMailer{}, nil)
	body := encode(t, validSubmission())
	a := decodeBody[Response](t, postJSON(t, h, body))
	b := decodeBody[Response](t, postJSON(t, h, body))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := Handler(&recordingMailer{}, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contact", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.Equal(t, "method not allowed", decodeBody[ErrorResponse](t, rec).Error)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", "name=ava", "invalid request body"},
		{"truncated", `{"name": "Ava"`, "invalid request body"},
		{"too large", `{"message": "` + strings.Repeat("x", MaxBodyBytes) + `"}`, "request body too large"},
		{"invalid fields", `{"name": "Ava", "email": "nope", "message": "hello there, friend"}`, "Email must be a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &recordingMailer{}
			rec := postJSON(t, Handler(mailer, nil), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeBody[ErrorResponse](t, rec).Error)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestHandler_ValidationFieldsInBody(t *testing.T) {
	rec := postJSON(t, Handler(&recordingMailer{}, nil), `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[ErrorResponse](t, rec)
	require.Len(t, resp.Fields, 3)
	assert.Equal(t, "name", resp.Fields[0].Field)
}

func TestHandler_RelayFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	mailer := &recordingMailer{err: errors.New("relay status 503")}
	h := Handler(mailer, zap.New(core), WithIDs(func() string { return "fixed-id" }))

	rec := postJSON(t, h, encode(t, validSubmission()))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to send message. Please try again later.", decodeBody[ErrorResponse](t, rec).Error)

	entries := logs.FilterMessage("send contact message").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "fixed-id", entries[0].ContextMap()["id"])
}
