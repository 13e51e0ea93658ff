package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
	"github.com/msto63/mRW/internal/euler/store"
	"github.com/msto63/mRW/pkg/core/config"
	"github.com/msto63/mRW/pkg/core/logging"
)

// Outcome is the result of one calculation request. A declined outcome
// carries the error code and no result.
type Outcome struct {
	ID         string            `json:"id" yaml:"id"`
	Calculator string            `json:"calculator" yaml:"calculator"`
	Title      string            `json:"title" yaml:"title"`
	Inputs     map[string]string `json:"inputs" yaml:"inputs"`
	Result     interface{}       `json:"result,omitempty" yaml:"result,omitempty"`
	Status     store.Status      `json:"status" yaml:"status"`
	ErrorCode  string            `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Timestamp  time.Time         `json:"timestamp" yaml:"timestamp"`
	Duration   time.Duration     `json:"-" yaml:"-"`
}

// Declined reports whether the calculation was rejected
func (o *Outcome) Declined() bool {
	return o.Status == store.StatusDeclined
}

// Config holds configuration for the Euler service
type Config struct {
	Calculators config.CalculatorsConfig
	Registry    *Registry        // nil selects Builtin(Calculators)
	Journal     store.Journal    // nil disables the history
	Location    *time.Location   // location of date inputs, defaults to time.Local
	Now         func() time.Time // clock, defaults to time.Now
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Calculators: config.Default().Calculators,
		Location:    time.Local,
		Now:         time.Now,
	}
}

// Service runs calculators and journals their outcomes
type Service struct {
	registry *Registry
	journal  store.Journal
	loc      *time.Location
	now      func() time.Time
	logger   *logging.Logger
}

// NewService creates a new Euler calculator service
func NewService(cfg Config) (*Service, error) {
	logger := logging.New("euler")

	if cfg.Registry == nil {
		cfg.Registry = Builtin(cfg.Calculators)
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	svc := &Service{
		registry: cfg.Registry,
		journal:  cfg.Journal,
		loc:      cfg.Location,
		now:      cfg.Now,
		logger:   logger,
	}

	logger.Debug("Calculator service initialized",
		"calculators", len(cfg.Registry.Names()),
		"history", cfg.Journal != nil,
	)

	return svc, nil
}

// Registry returns the calculator registry
func (s *Service) Registry() *Registry {
	return s.registry
}

// Calculators returns all calculators ordered by category and name
func (s *Service) Calculators() []*Calculator {
	return s.registry.List()
}

// Describe returns the calculator registered under name
func (s *Service) Describe(name string) (*Calculator, error) {
	return s.registry.Lookup(name)
}

// Calculate validates fields against the calculator's field specs and runs
// it. An unknown name returns a NOT_FOUND error and no outcome. A rejected
// input returns the declined outcome together with the error.
func (s *Service) Calculate(ctx context.Context, name string, fields map[string]string) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	calc, err := s.registry.Lookup(name)
	if err != nil {
		s.logger.Warn("Unknown calculator", "calculator", name)
		return nil, err
	}

	start := time.Now()
	now := s.now().In(s.loc)
	form := NewForm(fields, s.loc).withDefaults(calc.Fields)

	out := &Outcome{
		ID:         uuid.NewString(),
		Calculator: calc.Name,
		Title:      calc.Title,
		Inputs:     form.Values(),
		Timestamp:  now,
	}

	var result interface{}
	err = form.check(calc)
	if err == nil {
		result, err = calc.Run(form, now)
	}
	out.Duration = time.Since(start)

	if err != nil {
		out.Status = store.StatusDeclined
		out.ErrorCode = mrwerror.GetCode(err).String()
		s.logger.Info("Calculation declined",
			"calculator", calc.Name,
			"code", out.ErrorCode,
			"error", err,
		)
	} else {
		out.Status = store.StatusOK
		out.Result = result
		s.logger.Info("Calculation completed",
			"calculator", calc.Name,
			"duration", out.Duration,
		)
	}

	s.record(ctx, out)
	return out, err
}

// record writes the outcome to the journal. Journal failures are logged and
// never fail the calculation.
func (s *Service) record(ctx context.Context, out *Outcome) {
	if s.journal == nil {
		return
	}

	entry := &store.Entry{
		ID:         out.ID,
		Timestamp:  out.Timestamp,
		Calculator: out.Calculator,
		Inputs:     out.Inputs,
		Status:     out.Status,
		ErrorCode:  out.ErrorCode,
	}
	if out.Result != nil {
		data, err := json.Marshal(out.Result)
		if err != nil {
			s.logger.Error("Failed to marshal result", "calculator", out.Calculator, "error", err)
		} else {
			entry.Result = data
		}
	}

	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to journal calculation", "calculator", out.Calculator, "error", err)
	}
}

// HasHistory reports whether a journal is configured
func (s *Service) HasHistory() bool {
	return s.journal != nil
}

// History returns journaled calculations. Without a journal it is empty.
func (s *Service) History(ctx context.Context, filter store.Filter) ([]*store.Entry, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.Query(ctx, filter)
}

// HistoryEntry returns one journaled calculation
func (s *Service) HistoryEntry(ctx context.Context, id string) (*store.Entry, error) {
	if s.journal == nil {
		return nil, mrwerror.New("history is disabled").WithCode(mrwerror.CodeNotFound)
	}
	return s.journal.Get(ctx, id)
}

// HistoryStats returns journal statistics
func (s *Service) HistoryStats(ctx context.Context) (*store.Stats, error) {
	if s.journal == nil {
		return &store.Stats{ByCalculator: map[string]int64{}, ByStatus: map[string]int64{}}, nil
	}
	return s.journal.Stats(ctx)
}

// Prune removes journaled calculations older than retention
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if s.journal == nil || retention <= 0 {
		return 0, nil
	}
	removed, err := s.journal.Prune(ctx, retention)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("Pruned calculation history", "removed", removed, "retention", retention)
	}
	return removed, nil
}

// Ping checks the journal
func (s *Service) Ping(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Ping(ctx)
}

// Close releases the journal
func (s *Service) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}
