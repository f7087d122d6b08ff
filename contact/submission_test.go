package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() Submission {
	return Submission{
		Name:          "Ava Martin",
		Email:         "ava@example.com",
		Phone:         "+1 555 0100",
		Service:       "Brow Lamination",
		Message:       "I'd love to book a lamination next week.",
		PreferredDate: "2026-11-02",
	}
}

func TestSubmission_Normalize(t *testing.T) {
	s := Submission{Name: "  Ava ", Email: " ava@example.com\n", Message: "\thello there friend "}
	got := s.Normalize()
	assert.Equal(t, "Ava", got.Name)
	assert.Equal(t, "ava@example.com", got.Email)
	assert.Equal(t, "hello there friend", got.Message)
}

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		field  string
		msg    string
	}{
		{"missing name", func(s *Submission) { s.Name = "" }, "name", "Name is required"},
		{"long name", func(s *Submission) { s.Name = strings.Repeat("a", 101) }, "name", "Name must be at most 100 characters"},
		{"missing email", func(s *Submission) { s.Email = "" }, "email", "Email is required"},
		{"bad email", func(s *Submission) { s.Email = "not-an-email" }, "email", "Email must be a valid email address"},
		{"long phone", func(s *Submission) { s.Phone = strings.Repeat("1", 33) }, "phone", "Phone must be at most 32 characters"},
		{"short message", func(s *Submission) { s.Message = "hi" }, "message", "Message must be at least 10 characters"},
		{"missing message", func(s *Submission) { s.Message = "" }, "message", "Message is required"},
		{"bad date", func(s *Submission) { s.PreferredDate = "next tuesday" }, "preferredDate", "Preferred date must be a date like 2025-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)
			err := s.Validate()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
			assert.Equal(t, tt.msg, ve.Fields[0].Message)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestSubmission_ValidateOptionalFields(t *testing.T) {
	s := Submission{Name: "Ava", Email: "ava@example.com", Message: "Just a question about pricing."}
	assert.NoError(t, s.Validate())
	assert.NoError(t, validSubmission().Validate())
}

func TestValidationError_JoinsFields(t *testing.T) {
	err := Submission{}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
	assert.Equal(t, "Name is required; Email is required; Message is required", err.Error())
}
