// Package snmp reads interface descriptions back from a switch over SNMP.
package snmp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
)

// IF-MIB columns used for the read-back.
const (
	OIDIfDescr = ".1.3.6.1.2.1.2.2.1.2"
	OIDIfName  = ".1.3.6.1.2.1.31.1.1.1.1"
	OIDIfAlias = ".1.3.6.1.2.1.31.1.1.1.18"
)

// Settings configure the SNMP agent connection
type Settings struct {
	Community string
	Port      int
	Version   string // "1" or "2c"
	Timeout   time.Duration
}

// walker is the subset of gosnmp used by the verifier
type walker interface {
	WalkAll(rootOid string) ([]gosnmp.SnmpPDU, error)
	Close() error
}

type dialFunc func(target string, s Settings) (walker, error)

// Verifier compares applied descriptions with the device ifAlias table
type Verifier struct {
	settings Settings
	dial     dialFunc
}

// NewVerifier creates a verifier using gosnmp
func NewVerifier(s Settings) *Verifier {
	return &Verifier{settings: s, dial: dialAgent}
}

type agent struct {
	*gosnmp.GoSNMP
}

func (a agent) WalkAll(rootOid string) ([]gosnmp.SnmpPDU, error) {
	if a.Version == gosnmp.Version1 {
		return a.GoSNMP.WalkAll(rootOid)
	}
	return a.GoSNMP.BulkWalkAll(rootOid)
}

func (a agent) Close() error {
	if a.Conn == nil {
		return nil
	}
	return a.Conn.Close()
}

func dialAgent(target string, s Settings) (walker, error) {
	version := gosnmp.Version2c
	if s.Version == "1" {
		version = gosnmp.Version1
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	port := s.Port
	if port == 0 {
		port = 161
	}
	client := &gosnmp.GoSNMP{
		Target:    target,
		Port:      uint16(port),
		Community: s.Community,
		Version:   version,
		Timeout:   timeout,
		Retries:   1,
	}
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s via SNMP: %w", target, err)
	}
	return agent{client}, nil
}

// Verify reads ifAlias for every successfully applied interface
func (v *Verifier) Verify(target entities.SwitchConfig, outcomes []entities.ChangeOutcome) ([]entities.VerifyResult, error) {
	log := logging.WithDevice(target.Target)

	client, err := v.dial(target.Target, v.settings)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	names := make(map[int][]string)
	for _, oid := range []string{OIDIfName, OIDIfDescr} {
		pdus, err := client.WalkAll(oid)
		if err != nil {
			// ifName is missing on some older agents
			log.Warnf("SNMP walk of %s failed: %v", oid, err)
			continue
		}
		for idx, value := range indexStrings(pdus) {
			names[idx] = append(names[idx], value)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no interfaces reported by SNMP agent on %s", target.Target)
	}

	aliasPDUs, err := client.WalkAll(OIDIfAlias)
	if err != nil {
		return nil, fmt.Errorf("failed to walk ifAlias on %s: %w", target.Target, err)
	}
	aliases := indexStrings(aliasPDUs)

	var results []entities.VerifyResult
	for _, o := range outcomes {
		if !o.Succeeded() {
			continue
		}
		result := entities.VerifyResult{Interface: o.Interface, Expected: o.Description}
		if idx, ok := findIfIndex(names, o.Interface); ok {
			result.Actual, result.Found = aliases[idx], true
		}
		if !result.Matches() {
			log.Warnf("Verification mismatch on %s: expected %q, device reports %q", o.Interface, result.Expected, result.Actual)
		}
		results = append(results, result)
	}
	return results, nil
}

// indexStrings maps the trailing ifIndex of each OctetString PDU to its value.
func indexStrings(pdus []gosnmp.SnmpPDU) map[int]string {
	out := make(map[int]string, len(pdus))
	for _, pdu := range pdus {
		if pdu.Type != gosnmp.OctetString {
			continue
		}
		raw, ok := pdu.Value.([]byte)
		if !ok {
			continue
		}
		idx, err := lastIndex(pdu.Name)
		if err != nil {
			continue
		}
		out[idx] = string(raw)
	}
	return out
}

func lastIndex(oid string) (int, error) {
	dot := strings.LastIndex(oid, ".")
	return strconv.Atoi(oid[dot+1:])
}

// findIfIndex returns the ifIndex whose ifName or ifDescr matches iface. An
// exact match wins over an abbreviation match.
func findIfIndex(names map[int][]string, iface string) (int, bool) {
	best, found := 0, false
	for idx, candidates := range names {
		for _, name := range candidates {
			switch {
			case strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(iface)):
				return idx, true
			case !found && SameInterface(name, iface):
				best, found = idx, true
			}
		}
	}
	return best, found
}

// SameInterface reports whether two interface names refer to the same port,
// accepting vendor abbreviations such as Gi0/1 for GigabitEthernet0/1.
func SameInterface(a, b string) bool {
	typeA, numA := splitName(a)
	typeB, numB := splitName(b)
	if numA == "" || numA != numB || typeA == "" || typeB == "" {
		return false
	}
	return strings.HasPrefix(typeA, typeB) || strings.HasPrefix(typeB, typeA)
}

// splitName lowercases the name, drops blanks and hyphens, and splits the
// leading interface type from the port number.
func splitName(name string) (kind, number string) {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == ' ' || r == '\t' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
