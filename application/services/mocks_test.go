package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
)

type mockSession struct {
	protocol   entities.Protocol
	transport  string
	applyErrs  map[string]error
	persistErr error
	applied    int
	closed     int
}

func (m *mockSession) Protocol() entities.Protocol { return m.protocol }

func (m *mockSession) Transport() string { return m.transport }

func (m *mockSession) DescriptionCommands(iface, description string) []string {
	return []string{"interface " + iface, "description " + description}
}

func (m *mockSession) Apply(commands []string) error {
	m.applied++
	if err, ok := m.applyErrs[commands[0]]; ok {
		return err
	}
	return nil
}

func (m *mockSession) PersistConfig() error { return m.persistErr }

func (m *mockSession) Close() { m.closed++ }

type mockOpener struct {
	mu      sync.Mutex
	calls   int
	errs    map[string]error
	session *mockSession
	entered chan struct{}
	release chan struct{}
}

func (m *mockOpener) Open(cfg entities.SwitchConfig, strategy entities.Strategy) (ports.Session, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.entered != nil {
		m.entered <- struct{}{}
		<-m.release
	}
	if err, ok := m.errs[strategy.Transport]; ok {
		return nil, err
	}
	if m.session == nil {
		m.session = &mockSession{}
	}
	m.session.protocol = strategy.Protocol
	m.session.transport = strategy.Transport
	return m.session, nil
}

func (m *mockOpener) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type memTable struct {
	rows    []entities.TableRow
	cells   map[string]string
	saveErr error
	saved   int
	closed  int
}

func (m *memTable) Path() string { return "ports.xlsx" }

func (m *memTable) Rows() ([]entities.TableRow, error) { return m.rows, nil }

func (m *memTable) SetCell(row, column int, value string) error {
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

func (m *memTable) Close() error {
	m.closed++
	return nil
}

type mockTableOpener struct {
	table   *memTable
	openErr error
	opened  int
}

func (m *mockTableOpener) Open(path string) (ports.ChangeTable, error) {
	m.opened++
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.table, nil
}

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

type mockVerifier struct {
	called  bool
	results []entities.VerifyResult
	err     error
}

func (m *mockVerifier) Verify(target entities.SwitchConfig, outcomes []entities.ChangeOutcome) ([]entities.VerifyResult, error) {
	m.called = true
	return m.results, m.err
}

type mockReportWriter struct {
	summaries []entities.Summary
	err       error
}

func (m *mockReportWriter) WriteReport(summary entities.Summary) error {
	m.summaries = append(m.summaries, summary)
	return m.err
}

var errRefused = errors.New("connection refused")

func sampleRows() []entities.TableRow {
	return []entities.TableRow{
		{Index: 1, Cells: []string{"Description", "Interface", "Status"}},
		{Index: 2, Cells: []string{"desc1", "Gi0/1"}},
		{Index: 3, Cells: []string{"desc2", "Gi0/2"}},
		{Index: 4, Cells: []string{"desc3", "Gi0/3"}},
	}
}

func validRequest(sink ports.ProgressSink) RunRequest {
	return RunRequest{
		Switch: entities.SwitchConfig{
			Target:   "10.0.0.1",
			Username: "admin",
			Password: "secret",
		},
		SourcePath: "ports.xlsx",
		Sink:       sink,
	}
}
