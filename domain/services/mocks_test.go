package services

import (
	"errors"
	"fmt"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
)

type mockSession struct {
	protocol   entities.Protocol
	transport  string
	applied    [][]string
	applyErrs  map[string]error
	persistErr error
	persisted  bool
	closed     int
}

func (m *mockSession) Protocol() entities.Protocol { return m.protocol }

func (m *mockSession) Transport() string { return m.transport }

func (m *mockSession) DescriptionCommands(iface, description string) []string {
	return []string{"interface " + iface, "description " + description}
}

func (m *mockSession) Apply(commands []string) error {
	m.applied = append(m.applied, commands)
	if m.applyErrs != nil {
		if err, ok := m.applyErrs[commands[0]]; ok {
			return err
		}
	}
	return nil
}

func (m *mockSession) PersistConfig() error {
	m.persisted = true
	return m.persistErr
}

func (m *mockSession) Close() { m.closed++ }

type openCall struct {
	cfg      entities.SwitchConfig
	strategy entities.Strategy
}

type mockOpener struct {
	calls    []openCall
	errs     map[string]error
	sessions map[string]*mockSession
}

func (m *mockOpener) Open(cfg entities.SwitchConfig, strategy entities.Strategy) (ports.Session, error) {
	m.calls = append(m.calls, openCall{cfg: cfg, strategy: strategy})
	if err, ok := m.errs[strategy.Transport]; ok {
		return nil, err
	}
	if s, ok := m.sessions[strategy.Transport]; ok {
		s.protocol = strategy.Protocol
		s.transport = strategy.Transport
		return s, nil
	}
	return &mockSession{protocol: strategy.Protocol, transport: strategy.Transport}, nil
}

type memTable struct {
	path    string
	rows    []entities.TableRow
	rowsErr error
	cells   map[string]string
	setErr  error
	saveErr error
	saved   int
}

func (m *memTable) Path() string {
	if m.path == "" {
		return "mem.xlsx"
	}
	return m.path
}

func (m *memTable) Rows() ([]entities.TableRow, error) {
	return m.rows, m.rowsErr
}

func (m *memTable) SetCell(row, column int, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.cells == nil {
		m.cells = make(map[string]string)
	}
	m.cells[fmt.Sprintf("%d:%d", row, column)] = value
	return nil
}

func (m *memTable) Cell(row, column int) string {
	return m.cells[fmt.Sprintf("%d:%d", row, column)]
}

func (m *memTable) Save() error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved++
	return nil
}

func (m *memTable) Close() error { return nil }

type recordingSink struct {
	states   []entities.RunState
	progress []entities.Progress
}

func (r *recordingSink) StateChanged(state entities.RunState) {
	r.states = append(r.states, state)
}

func (r *recordingSink) Progress(p entities.Progress) {
	r.progress = append(r.progress, p)
}

var errRejected = entities.NewCommandFailure(entities.FailureRejected, "interface Gi0/2", "% Invalid input detected at '^' marker.")

var errAuth = errors.New("ssh: handshake failed: ssh: unable to authenticate")
