// Package contact handles the salon's contact form: validation, the HTTP
// endpoint, mail relay delivery and a client for posting submissions.
package contact

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Submission is the contact form payload.
type Submission struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Service       string `json:"service,omitempty" validate:"omitempty,max=100"`
	Message       string `json:"message" validate:"required,min=10,max=5000"`
	PreferredDate string `json:"preferredDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Service = strings.TrimSpace(s.Service)
	s.Message = strings.TrimSpace(s.Message)
	s.PreferredDate = strings.TrimSpace(s.PreferredDate)
	return s
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func validate() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		validatorInst.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			return name
		})
	})
	return validatorInst
}

// Validate checks a normalized submission. It returns a *ValidationError
// describing every invalid field, or nil.
func (s Submission) Validate() error {
	err := validate().Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validate submission: %w", err)
	}
	ve := &ValidationError{Fields: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return ve
}

var fieldLabels = map[string]string{
	"name":          "Name",
	"email":         "Email",
	"phone":         "Phone",
	"service":       "Service",
	"message":       "Message",
	"preferredDate": "Preferred date",
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "datetime":
		return label + " must be a date like 2025-06-01"
	}
	return label + " is invalid"
}
