package entities

import (
	"fmt"
	"strings"
	"time"
)

// StatusSuccessText is the literal written to the status column on success.
const StatusSuccessText = "Success"

// Status is the verdict for one change request.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// ChangeOutcome records what happened to a single ChangeRequest.
type ChangeOutcome struct {
	Row         int
	Interface   string
	Description string
	Status      Status
	Failure     *CommandFailure
}

// Succeeded reports whether the change was applied.
func (o ChangeOutcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

// StatusText is the value written back into the status column.
func (o ChangeOutcome) StatusText() string {
	if o.Succeeded() {
		return StatusSuccessText
	}
	if o.Failure == nil {
		return "Failure"
	}
	return "Failure: " + o.Failure.String()
}

// BatchResult aggregates the outcomes of one batch run.
type BatchResult struct {
	Attempted int
	Total     int
	Protocol  Protocol
	Transport string
	Outcomes  []ChangeOutcome
}

// Counts returns the number of succeeded and failed outcomes.
func (r BatchResult) Counts() (succeeded, failed int) {
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Progress is emitted after every processed change request.
type Progress struct {
	Attempted int
	Total     int
	Outcome   ChangeOutcome
	Line      string
}

// Counter renders the running counter, e.g. "2/5 interfaces updated".
func (p Progress) Counter() string {
	return fmt.Sprintf("%d/%d interfaces updated", p.Attempted, p.Total)
}

// VerifyResult reports whether a device reads back the applied description.
type VerifyResult struct {
	Interface string
	Expected  string
	Actual    string
	Found     bool
}

// Matches reports whether the interface was found and carries the expected text.
func (v VerifyResult) Matches() bool {
	return v.Found && v.Actual == v.Expected
}

// Summary is the terminal report of one run.
type Summary struct {
	RunID        string
	Target       string
	State        RunState
	Protocol     Protocol
	Transport    string
	Attempted    int
	Total        int
	Succeeded    int
	Failed       int
	ConfigSaved  bool
	Outcomes     []ChangeOutcome
	Verification []VerifyResult
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Message renders the completion line shown to the operator.
func (s Summary) Message() string {
	switch s.State {
	case StateNoChangesFound:
		return sentence(ErrNoChangesFound)
	case StateDone:
		return fmt.Sprintf("Processed %d/%d interfaces via %s (%s)", s.Attempted, s.Total, transportLabel(s.Transport), s.Protocol)
	default:
		return fmt.Sprintf("Run ended in state %s after %d/%d interfaces", s.State, s.Attempted, s.Total)
	}
}

func transportLabel(transport string) string {
	switch transport {
	case TransportSSH:
		return "SSH"
	case TransportTelnet:
		return "Telnet"
	case "":
		return "unknown transport"
	}
	return transport
}

// sentence renders an error text as a capitalized sentence.
func sentence(err error) string {
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
