package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
	"github.com/carlosrabelo/portlabel/domain/services"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
)

// RunRequest carries everything one description run needs
type RunRequest struct {
	Switch     entities.SwitchConfig
	SourcePath string
	Layout     entities.TableLayout
	Verify     bool
	Sink       ports.ProgressSink
}

// Validate checks the request before any side effect happens
func (r RunRequest) Validate() error {
	_, err := r.strategies()
	return err
}

// strategies validates the request and returns the negotiation order it asks for
func (r RunRequest) strategies() ([]entities.Strategy, error) {
	var missing []string
	if strings.TrimSpace(r.Switch.Target) == "" {
		missing = append(missing, "target")
	}
	if strings.TrimSpace(r.Switch.Username) == "" {
		missing = append(missing, "username")
	}
	if r.Switch.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(r.SourcePath) == "" {
		missing = append(missing, "source path")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", entities.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if err := r.layout().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidInput, err)
	}
	strategies, err := entities.StrategiesFor(r.Switch.Protocols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidInput, err)
	}
	return strategies, nil
}

func (r RunRequest) layout() entities.TableLayout {
	if r.Layout == (entities.TableLayout{}) {
		return entities.DefaultTableLayout()
	}
	return r.Layout
}

// Option configures optional collaborators of the service
type Option func(*DescriptionApplicationService)

// WithVerifier enables read-back of applied descriptions when a request asks for it
func WithVerifier(v ports.Verifier) Option {
	return func(s *DescriptionApplicationService) {
		s.verifier = v
	}
}

// WithReportWriter stores the summary of every run that got past validation
func WithReportWriter(w ports.ReportWriter) Option {
	return func(s *DescriptionApplicationService) {
		s.reports = w
	}
}

// DescriptionApplicationService drives one description run from table to device and back
type DescriptionApplicationService struct {
	tables   ports.TableOpener
	opener   ports.SessionOpener
	verifier ports.Verifier
	reports  ports.ReportWriter
	running  atomic.Bool
	now      func() time.Time
}

// NewDescriptionApplicationService creates a new instance of the description application service
func NewDescriptionApplicationService(tables ports.TableOpener, opener ports.SessionOpener, opts ...Option) *DescriptionApplicationService {
	s := &DescriptionApplicationService{
		tables: tables,
		opener: opener,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the state machine
//
//	Idle -> Loading -> (NoChangesFound | Negotiating) -> (SessionUnavailable | Applying) -> Persisting -> Done
//
// and returns the terminal summary. Aborts are reported as *entities.PhaseError.
// Invalid requests and concurrent calls return a nil summary.
func (s *DescriptionApplicationService) Run(req RunRequest) (*entities.Summary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, entities.ErrRunInProgress
	}
	defer s.running.Store(false)

	strategies, err := req.strategies()
	if err != nil {
		return nil, &entities.PhaseError{Phase: entities.StateIdle, Err: err}
	}

	r := &run{
		service:    s,
		req:        req,
		layout:     req.layout(),
		strategies: strategies,
		sink:       req.Sink,
		summary:    &entities.Summary{
			RunID:     uuid.NewString(),
			Target:    req.Switch.Target,
			State:     entities.StateIdle,
			StartedAt: s.now(),
		},
	}
	if r.sink == nil {
		r.sink = NopSink{}
	}
	r.log = logging.WithRun(r.summary.RunID, req.Switch.Target)

	err = r.execute()
	r.summary.FinishedAt = s.now()
	if err != nil {
		r.log.Errorf("Run aborted: %v", err)
	} else {
		r.log.Info(r.summary.Message())
	}
	if s.reports != nil {
		if rerr := s.reports.WriteReport(*r.summary); rerr != nil {
			r.log.Warnf("Failed to write run report: %v", rerr)
		}
	}
	return r.summary, err
}

// Running reports whether a run is currently executing
func (s *DescriptionApplicationService) Running() bool {
	return s.running.Load()
}

type run struct {
	service    *DescriptionApplicationService
	req        RunRequest
	layout     entities.TableLayout
	strategies []entities.Strategy
	sink       ports.ProgressSink
	summary    *entities.Summary
	log        *logrus.Entry
}

func (r *run) enter(state entities.RunState) {
	r.log.Debugf("State %s -> %s", r.summary.State, state)
	r.summary.State = state
	r.sink.StateChanged(state)
}

func (r *run) abort(phase, terminal entities.RunState, err error) error {
	r.enter(terminal)
	return &entities.PhaseError{Phase: phase, Err: err}
}

func (r *run) execute() error {
	cfg := r.req.Switch

	r.enter(entities.StateLoading)
	table, err := r.service.tables.Open(r.req.SourcePath)
	if err != nil {
		if !errors.Is(err, entities.ErrSourceUnreadable) {
			err = fmt.Errorf("%w: %s: %v", entities.ErrSourceUnreadable, r.req.SourcePath, err)
		}
		return r.abort(entities.StateLoading, entities.StateFailed, err)
	}
	defer func() {
		if cerr := table.Close(); cerr != nil {
			r.log.Debugf("Closing %s: %v", table.Path(), cerr)
		}
	}()

	changes, err := services.LoadChanges(table, r.layout)
	if err != nil {
		return r.abort(entities.StateLoading, entities.StateFailed, err)
	}
	r.summary.Total = len(changes)
	if len(changes) == 0 {
		r.enter(entities.StateNoChangesFound)
		return nil
	}

	r.enter(entities.StateNegotiating)
	session, err := services.NewNegotiator(r.service.opener, r.strategies).Negotiate(cfg)
	if err != nil {
		return r.abort(entities.StateNegotiating, entities.StateSessionUnavailable, err)
	}
	var closeOnce sync.Once
	release := func() { closeOnce.Do(session.Close) }
	defer release()

	r.summary.Protocol = session.Protocol()
	r.summary.Transport = session.Transport()

	r.enter(entities.StateApplying)
	result := services.NewApplier(cfg).Apply(session, changes, r.sink)
	r.summary.Attempted = result.Attempted
	r.summary.Outcomes = result.Outcomes
	r.summary.Succeeded, r.summary.Failed = result.Counts()

	r.enter(entities.StatePersisting)
	writer := services.NewResultWriter(cfg)
	r.summary.ConfigSaved = writer.SaveDeviceConfig(session)
	release()

	if err := writer.Write(table, result, r.layout.StatusColumn); err != nil {
		return r.abort(entities.StatePersisting, entities.StateFailed, err)
	}

	if r.req.Verify && r.service.verifier != nil {
		verification, err := r.service.verifier.Verify(cfg, result.Outcomes)
		if err != nil {
			r.log.Warnf("Verification skipped: %v", err)
		}
		r.summary.Verification = verification
	}

	r.enter(entities.StateDone)
	return nil
}
