package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxBodyBytes caps the size of a submission request.
const MaxBodyBytes = 64 << 10

// SendFailedMessage is returned to the browser when delivery fails.
const SendFailedMessage = "Failed to send message. Please try again later."

// Response is the success body of the contact endpoint.
type Response struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// ErrorResponse is the failure body of the contact endpoint.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// HandlerOption configures Handler.
type HandlerOption func(*handler)

// WithClock overrides the time source used for ReceivedAt.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *handler) { h.now = now }
}

// WithIDs overrides the submission id generator.
func WithIDs(next func() string) HandlerOption {
	return func(h *handler) { h.newID = next }
}

type handler struct {
	mailer Mailer
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Handler returns the POST endpoint for contact submissions.
func Handler(mailer Mailer, logger *zap.Logger, opts ...HandlerOption) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{
		mailer: mailer,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
		return
	}

	var sub Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&sub); err != nil {
		msg := "invalid request body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "request body too large"
		}
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}

	sub = sub.Normalize()
	if err := sub.Validate(); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Fields: ve.Fields})
			return
		}
		h.logger.Error("validate submission", zap.Error(err))
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid submission"})
		return
	}

	msg := Message{ID: h.newID(), ReceivedAt: h.now(), Submission: sub}
	if err := h.mailer.Send(r.Context(), msg); err != nil {
		h.logger.Error("send contact message", zap.String("id", msg.ID), zap.Error(err))
		WriteJSON(w, http.StatusBadGateway, ErrorResponse{Error: SendFailedMessage})
		return
	}
	h.logger.Info("contact message accepted", zap.String("id", msg.ID))
	WriteJSON(w, http.StatusOK, Response{Success: true, ID: msg.ID})
}

// WriteJSON writes v as a JSON response with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
