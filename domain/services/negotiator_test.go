package services

import (
	"errors"
	"testing"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

func testSwitch() entities.SwitchConfig {
	return entities.SwitchConfig{
		Target:   "192.168.1.1",
		Username: "admin",
		Password: "password",
	}
}

func TestNegotiator_PrimarySucceeds(t *testing.T) {
	opener := &mockOpener{}
	negotiator := NewNegotiator(opener, nil)

	session, err := negotiator.Negotiate(testSwitch())
	if err != nil {
		t.Fatalf("Negotiate() error = %v", err)
	}
	if session.Protocol() != entities.ProtocolPrimary {
		t.Errorf("Protocol() = %v, want Primary", session.Protocol())
	}
	if len(opener.calls) != 1 {
		t.Errorf("expected a single open attempt, got %d", len(opener.calls))
	}
}

func TestNegotiator_FallsBackWithSameCredentials(t *testing.T) {
	opener := &mockOpener{errs: map[string]error{entities.TransportSSH: errAuth}}
	negotiator := NewNegotiator(opener, nil)

	session, err := negotiator.Negotiate(testSwitch())
	if err != nil {
		t.Fatalf("Negotiate() error = %v", err)
	}
	if session.Protocol() != entities.ProtocolFallback {
		t.Errorf("Protocol() = %v, want Fallback", session.Protocol())
	}
	if session.Transport() != entities.TransportTelnet {
		t.Errorf("Transport() = %q, want telnet", session.Transport())
	}

	if len(opener.calls) != 2 {
		t.Fatalf("expected 2 open attempts, got %d", len(opener.calls))
	}
	first, second := opener.calls[0], opener.calls[1]
	if first.strategy.Transport != entities.TransportSSH || second.strategy.Transport != entities.TransportTelnet {
		t.Errorf("unexpected attempt order: %v then %v", first.strategy, second.strategy)
	}
	if first.cfg.Username != second.cfg.Username || first.cfg.Password != second.cfg.Password {
		t.Error("fallback must reuse the primary credentials")
	}
}

func TestNegotiator_AllFail(t *testing.T) {
	last := errors.New("dial tcp 192.168.1.1:23: connection refused")
	opener := &mockOpener{errs: map[string]error{
		entities.TransportSSH:    errAuth,
		entities.TransportTelnet: last,
	}}
	negotiator := NewNegotiator(opener, nil)

	session, err := negotiator.Negotiate(testSwitch())
	if session != nil {
		t.Error("expected no session")
	}
	if !errors.Is(err, entities.ErrSessionUnavailable) {
		t.Fatalf("expected ErrSessionUnavailable, got %v", err)
	}
	var negErr *entities.NegotiationError
	if !errors.As(err, &negErr) {
		t.Fatalf("expected *NegotiationError, got %T", err)
	}
	if negErr.Last() != last {
		t.Errorf("Last() = %v, want %v", negErr.Last(), last)
	}
	if len(opener.calls) != 2 {
		t.Errorf("each protocol must be tried exactly once, got %d attempts", len(opener.calls))
	}
}

func TestNegotiator_CustomOrder(t *testing.T) {
	strategies, err := entities.StrategiesFor([]string{"telnet"})
	if err != nil {
		t.Fatalf("StrategiesFor() error = %v", err)
	}
	opener := &mockOpener{}
	negotiator := NewNegotiator(opener, strategies)

	session, err := negotiator.Negotiate(testSwitch())
	if err != nil {
		t.Fatalf("Negotiate() error = %v", err)
	}
	if session.Transport() != entities.TransportTelnet || session.Protocol() != entities.ProtocolPrimary {
		t.Errorf("unexpected session tags %s/%v", session.Transport(), session.Protocol())
	}
	if len(opener.calls) != 1 {
		t.Errorf("made %d attempts, want one", len(opener.calls))
	}
}
