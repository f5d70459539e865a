package ports

import "github.com/carlosrabelo/portlabel/domain/entities"

// ProgressSink receives structured events from a running batch.
type ProgressSink interface {
	StateChanged(state entities.RunState)
	Progress(p entities.Progress)
}

// Verifier reads applied descriptions back from the device.
type Verifier interface {
	Verify(target entities.SwitchConfig, outcomes []entities.ChangeOutcome) ([]entities.VerifyResult, error)
}

// ReportWriter stores the terminal summary of a run.
type ReportWriter interface {
	WriteReport(summary entities.Summary) error
}
