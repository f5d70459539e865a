package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

func sampleSummary() entities.Summary {
	started := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	return entities.Summary{
		RunID:     "run-1",
		Target:    "10.0.0.1",
		State:     entities.StateDone,
		Protocol:  entities.ProtocolFallback,
		Transport: entities.TransportTelnet,
		Attempted: 2,
		Total:     2,
		Succeeded: 1,
		Failed:    1,
		Outcomes: []entities.ChangeOutcome{
			{Row: 2, Interface: "Gi0/1", Description: "desc1", Status: entities.StatusSuccess},
			{Row: 3, Interface: "Gi0/2", Description: "desc2", Status: entities.StatusFailure,
				Failure: entities.NewCommandFailure(entities.FailureRejected, "interface Gi0/2", "% Invalid input")},
		},
		Verification: []entities.VerifyResult{
			{Interface: "Gi0/1", Expected: "desc1", Actual: "desc1", Found: true},
		},
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	}
}

func TestJSONWriter_WriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w := NewJSONWriter(path)
	if err := w.WriteReport(sampleSummary()); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	if doc.RunID != "run-1" || doc.State != "Done" || doc.Protocol != "Fallback" {
		t.Errorf("unexpected header: %+v", doc)
	}
	if doc.Message != "Processed 2/2 interfaces via Telnet (Fallback)" {
		t.Errorf("Message = %q", doc.Message)
	}
	if len(doc.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(doc.Outcomes))
	}
	if doc.Outcomes[0].Status != "success" || doc.Outcomes[0].Failure != "" {
		t.Errorf("outcome 0 = %+v", doc.Outcomes[0])
	}
	if doc.Outcomes[1].Failure != "rejected: % Invalid input (command: interface Gi0/2)" {
		t.Errorf("outcome 1 failure = %q", doc.Outcomes[1].Failure)
	}
	if len(doc.Verification) != 1 || !doc.Verification[0].Matches {
		t.Errorf("verification = %+v", doc.Verification)
	}
}

func TestMarshal_UnknownProtocolOmitted(t *testing.T) {
	data, err := Marshal(entities.Summary{RunID: "run-2", State: entities.StateSessionUnavailable})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["protocol"]; ok {
		t.Error("protocol should be omitted before negotiation succeeds")
	}
	if outcomes, ok := raw["outcomes"].([]any); !ok || len(outcomes) != 0 {
		t.Errorf("outcomes = %v, want empty list", raw["outcomes"])
	}
}

func TestJSONWriter_UnwritablePath(t *testing.T) {
	w := NewJSONWriter(filepath.Join(t.TempDir(), "missing", "report.json"))
	if err := w.WriteReport(sampleSummary()); err == nil {
		t.Error("expected error for a missing directory")
	}
}
