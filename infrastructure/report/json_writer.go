// Package report stores run summaries as JSON documents.
package report

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

type outcomeRecord struct {
	Row         int    `json:"row"`
	Interface   string `json:"interface"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Failure     string `json:"failure,omitempty"`
}

type verifyRecord struct {
	Interface string `json:"interface"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
	Found     bool   `json:"found"`
	Matches   bool   `json:"matches"`
}

type document struct {
	RunID        string          `json:"run_id"`
	Target       string          `json:"target"`
	State        string          `json:"state"`
	Message      string          `json:"message"`
	Protocol     string          `json:"protocol,omitempty"`
	Transport    string          `json:"transport,omitempty"`
	Attempted    int             `json:"attempted"`
	Total        int             `json:"total"`
	Succeeded    int             `json:"succeeded"`
	Failed       int             `json:"failed"`
	ConfigSaved  bool            `json:"config_saved"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at"`
	Outcomes     []outcomeRecord `json:"outcomes"`
	Verification []verifyRecord  `json:"verification,omitempty"`
}

// JSONWriter writes one summary per run to a file
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a writer targeting path; an existing file is replaced.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Path returns the report location
func (w *JSONWriter) Path() string {
	return w.path
}

// WriteReport encodes the summary and writes it to the report path
func (w *JSONWriter) WriteReport(summary entities.Summary) error {
	data, err := Marshal(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", w.path, err)
	}
	return nil
}

// Marshal renders the summary as indented JSON
func Marshal(summary entities.Summary) ([]byte, error) {
	doc := document{
		RunID:       summary.RunID,
		Target:      summary.Target,
		State:       summary.State.String(),
		Message:     summary.Message(),
		Transport:   summary.Transport,
		Attempted:   summary.Attempted,
		Total:       summary.Total,
		Succeeded:   summary.Succeeded,
		Failed:      summary.Failed,
		ConfigSaved: summary.ConfigSaved,
		StartedAt:   summary.StartedAt,
		FinishedAt:  summary.FinishedAt,
		Outcomes:    make([]outcomeRecord, 0, len(summary.Outcomes)),
	}
	if summary.Protocol != entities.ProtocolUnknown {
		doc.Protocol = summary.Protocol.String()
	}
	for _, o := range summary.Outcomes {
		rec := outcomeRecord{
			Row:         o.Row,
			Interface:   o.Interface,
			Description: o.Description,
			Status:      o.Status.String(),
		}
		if o.Failure != nil {
			rec.Failure = o.Failure.String()
		}
		doc.Outcomes = append(doc.Outcomes, rec)
	}
	for _, v := range summary.Verification {
		doc.Verification = append(doc.Verification, verifyRecord{
			Interface: v.Interface,
			Expected:  v.Expected,
			Actual:    v.Actual,
			Found:     v.Found,
			Matches:   v.Matches(),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}
