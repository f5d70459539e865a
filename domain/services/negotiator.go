package services

import (
	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
)

// Negotiator opens a session by trying each strategy once, in order.
type Negotiator struct {
	opener     ports.SessionOpener
	strategies []entities.Strategy
}

// NewNegotiator creates a negotiator. An empty strategy list means SSH then Telnet.
func NewNegotiator(opener ports.SessionOpener, strategies []entities.Strategy) *Negotiator {
	if len(strategies) == 0 {
		strategies = entities.DefaultStrategies()
	}
	return &Negotiator{
		opener:     opener,
		strategies: strategies,
	}
}

// Negotiate returns the first session that opens. When every strategy fails
// the error is a *entities.NegotiationError wrapping ErrSessionUnavailable.
func (n *Negotiator) Negotiate(cfg entities.SwitchConfig) (ports.Session, error) {
	log := logging.WithDevice(cfg.Target)
	attempts := make([]entities.AttemptError, 0, len(n.strategies))
	for _, strategy := range n.strategies {
		log.Debugf("Opening session via %s", strategy)
		session, err := n.opener.Open(cfg, strategy)
		if err != nil {
			log.Warnf("%s session failed: %v", strategy, err)
			attempts = append(attempts, entities.AttemptError{Strategy: strategy, Err: err})
			continue
		}
		log.Infof("Session opened via %s", strategy)
		return session, nil
	}
	return nil, &entities.NegotiationError{Attempts: attempts}
}
