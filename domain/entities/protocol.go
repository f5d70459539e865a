package entities

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout bounds a single connect or command round-trip.
const DefaultTimeout = 30 * time.Second

// Transport names understood by the transport layer.
const (
	TransportSSH    = "ssh"
	TransportTelnet = "telnet"
)

// Protocol tags a session with the negotiation slot that opened it.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolPrimary
	ProtocolFallback
)

func (p Protocol) String() string {
	switch p {
	case ProtocolPrimary:
		return "Primary"
	case ProtocolFallback:
		return "Fallback"
	default:
		return "Unknown"
	}
}

// Strategy is one (protocol, transport) pair tried by the negotiator.
type Strategy struct {
	Protocol  Protocol
	Transport string
}

func (s Strategy) String() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(s.Transport), s.Protocol)
}

// DefaultStrategies returns SSH as primary and Telnet as fallback.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Protocol: ProtocolPrimary, Transport: TransportSSH},
		{Protocol: ProtocolFallback, Transport: TransportTelnet},
	}
}

// StrategiesFor builds the ordered strategy list from transport names. The
// first entry is the primary protocol, every later entry a fallback.
func StrategiesFor(transports []string) ([]Strategy, error) {
	if len(transports) == 0 {
		return DefaultStrategies(), nil
	}
	seen := make(map[string]bool, len(transports))
	strategies := make([]Strategy, 0, len(transports))
	for i, raw := range transports {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name != TransportSSH && name != TransportTelnet {
			return nil, fmt.Errorf("protocol %q is invalid, must be 'ssh' or 'telnet'", raw)
		}
		if seen[name] {
			return nil, fmt.Errorf("protocol %q listed more than once", raw)
		}
		seen[name] = true
		protocol := ProtocolFallback
		if i == 0 {
			protocol = ProtocolPrimary
		}
		strategies = append(strategies, Strategy{Protocol: protocol, Transport: name})
	}
	return strategies, nil
}
