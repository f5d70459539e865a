package services

import (
	"fmt"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
)

// Applier pushes change requests through a session one at a time.
type Applier struct {
	config entities.SwitchConfig
}

// NewApplier creates an applier for the given switch
func NewApplier(config entities.SwitchConfig) *Applier {
	return &Applier{config: config}
}

// Apply processes the requests strictly in order. A failing request is
// recorded and the batch moves on to the next one.
func (a *Applier) Apply(session ports.Session, requests []entities.ChangeRequest, sink ports.ProgressSink) entities.BatchResult {
	result := entities.BatchResult{
		Total:     len(requests),
		Protocol:  session.Protocol(),
		Transport: session.Transport(),
		Outcomes:  make([]entities.ChangeOutcome, 0, len(requests)),
	}
	log := logging.WithDevice(a.config.Target)

	for _, req := range requests {
		outcome := entities.ChangeOutcome{
			Row:         req.Row,
			Interface:   req.Interface,
			Description: req.Description,
			Status:      entities.StatusSuccess,
		}

		commands := session.DescriptionCommands(req.Interface, req.Description)
		if a.config.IsDebugEnabled() {
			log.Debugf("Row %d: applying %q", req.Row, commands)
		}
		if err := session.Apply(commands); err != nil {
			outcome.Status = entities.StatusFailure
			outcome.Failure = entities.AsCommandFailure(err)
		}

		result.Outcomes = append(result.Outcomes, outcome)
		result.Attempted++

		line := outcomeLine(outcome)
		if outcome.Succeeded() {
			log.Debug(line)
		} else {
			log.Warn(line)
		}
		if sink != nil {
			sink.Progress(entities.Progress{
				Attempted: result.Attempted,
				Total:     result.Total,
				Outcome:   outcome,
				Line:      line,
			})
		}
	}
	return result
}

func outcomeLine(o entities.ChangeOutcome) string {
	if o.Succeeded() {
		return fmt.Sprintf("Updated %s -> %s", o.Interface, o.Description)
	}
	return fmt.Sprintf("Failed %s: %s", o.Interface, o.Failure)
}
