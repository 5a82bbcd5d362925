// Package contact validates contact-form messages and submits them through a
// simulated backend.
package contact

import (
	"context"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Field limits.
const (
	MaxNameLength    = 120
	MaxSubjectLength = 200
	MaxMessageLength = 5000
)

// GenericFailure is the only failure text shown to visitors.
const GenericFailure = "Sorry, your message could not be sent. Please try again later."

// DefaultDelay is how long the simulated submission takes.
const DefaultDelay = 800 * time.Millisecond

// Message is a contact-form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Receipt acknowledges a submission.
type Receipt struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FieldError names the first invalid field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() (msg string) {
	msg = e.Field + ": " + e.Reason
	return msg
}

// Normalize trims surrounding whitespace from every field.
func (m Message) Normalize() (n Message) {
	n = Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Subject: strings.TrimSpace(m.Subject),
		Message: strings.TrimSpace(m.Message),
	}
	return n
}

// Validate checks the message after Normalize. It returns a *FieldError.
func (m Message) Validate() (err error) {
	n := m.Normalize()

	switch {
	case n.Name == "":
		err = &FieldError{Field: "name", Reason: "is required"}
	case len(n.Name) > MaxNameLength:
		err = &FieldError{Field: "name", Reason: "is too long"}
	case n.Email == "":
		err = &FieldError{Field: "email", Reason: "is required"}
	case !validEmail(n.Email):
		err = &FieldError{Field: "email", Reason: "is not a valid address"}
	case len(n.Subject) > MaxSubjectLength:
		err = &FieldError{Field: "subject", Reason: "is too long"}
	case n.Message == "":
		err = &FieldError{Field: "message", Reason: "is required"}
	case len(n.Message) > MaxMessageLength:
		err = &FieldError{Field: "message", Reason: "is too long"}
	}

	return err
}

func validEmail(address string) (valid bool) {
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return valid
	}
	// Reject display-name forms like "Alex <alex@example.com>".
	valid = parsed.Address == address && strings.Contains(address[strings.LastIndex(address, "@")+1:], ".")
	return valid
}

// Submitter delivers contact messages.
type Submitter interface {
	Submit(ctx context.Context, msg Message) (receipt Receipt, err error)
}

// SimulatedSubmitter pretends to send messages. It waits Delay, then always
// succeeds, and remembers what it received.
type SimulatedSubmitter struct {
	Delay time.Duration
	Now   func() time.Time

	mu       sync.Mutex
	received []Submission
}

// Submission is a received message with its receipt.
type Submission struct {
	Receipt Receipt `json:"receipt"`
	Message Message `json:"message"`
}

// NewSimulatedSubmitter returns a submitter with the given delay.
func NewSimulatedSubmitter(delay time.Duration) (s *SimulatedSubmitter) {
	s = &SimulatedSubmitter{Delay: delay, Now: time.Now}
	return s
}

// Submit validates msg, waits for the delay or ctx, and records the message.
func (s *SimulatedSubmitter) Submit(ctx context.Context, msg Message) (receipt Receipt, err error) {
	err = msg.Validate()
	if err != nil {
		return receipt, err
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "contact submission cancelled")
			return receipt, err
		case <-timer.C:
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	receipt = Receipt{ID: uuid.NewString(), SubmittedAt: now().UTC()}

	s.mu.Lock()
	s.received = append(s.received, Submission{Receipt: receipt, Message: msg.Normalize()})
	s.mu.Unlock()

	return receipt, err
}

// Count returns the number of messages received.
func (s *SimulatedSubmitter) Count() (n int) {
	s.mu.Lock()
	n = len(s.received)
	s.mu.Unlock()
	return n
}

// Received returns a copy of the received messages, oldest first.
func (s *SimulatedSubmitter) Received() (submissions []Submission) {
	s.mu.Lock()
	submissions = append([]Submission(nil), s.received...)
	s.mu.Unlock()
	return submissions
}
