package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the phases of a description run
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrSourceUnreadable      = errors.New("source table unreadable")
	ErrNoChangesFound        = errors.New("no valid interface/description entries found")
	ErrSessionUnavailable    = errors.New("session unavailable")
	ErrCommandFailure        = errors.New("command failed")
	ErrPersistFailure        = errors.New("failed to persist results")
	ErrConfigSaveUnsupported = errors.New("configuration save unsupported")
	ErrRunInProgress         = errors.New("a run is already in progress")
)

// FailureKind classifies why a change request failed.
type FailureKind string

const (
	FailureRejected  FailureKind = "rejected"
	FailureTransport FailureKind = "transport"
	FailureTimeout   FailureKind = "timeout"
)

// CommandFailure is the structured descriptor recorded for a failed change.
type CommandFailure struct {
	Kind    FailureKind
	Command string
	Detail  string
}

func (e *CommandFailure) Error() string {
	return e.String()
}

func (e *CommandFailure) String() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	if e.Command != "" {
		msg += " (command: " + e.Command + ")"
	}
	return msg
}

func (e *CommandFailure) Unwrap() error {
	return ErrCommandFailure
}

// NewCommandFailure creates a command failure with a single-line detail
func NewCommandFailure(kind FailureKind, command, detail string) *CommandFailure {
	return &CommandFailure{
		Kind:    kind,
		Command: command,
		Detail:  singleLine(detail),
	}
}

// AsCommandFailure converts any error into a CommandFailure. Errors that are
// not already descriptors are classified as transport failures.
func AsCommandFailure(err error) *CommandFailure {
	var cf *CommandFailure
	if errors.As(err, &cf) {
		return cf
	}
	kind := FailureTransport
	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		kind = FailureTimeout
	}
	return NewCommandFailure(kind, "", err.Error())
}

// PhaseError names the run phase that aborted
type PhaseError struct {
	Phase RunState
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// AttemptError is one failed negotiation attempt
type AttemptError struct {
	Strategy Strategy
	Err      error
}

// NegotiationError reports that every strategy failed to open a session
type NegotiationError struct {
	Attempts []AttemptError
}

func (e *NegotiationError) Error() string {
	if len(e.Attempts) == 0 {
		return "session unavailable: no protocol configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	return "session unavailable: " + strings.Join(parts, "; ")
}

func (e *NegotiationError) Unwrap() error {
	return ErrSessionUnavailable
}

// Last returns the error of the final attempt.
func (e *NegotiationError) Last() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

func singleLine(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
