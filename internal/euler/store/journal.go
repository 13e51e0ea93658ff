package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
	"github.com/msto63/mRW/foundation/core/errors"
)

// Status is the outcome of a journaled calculation
type Status string

const (
	StatusOK       Status = "ok"
	StatusDeclined Status = "declined"
)

// Entry is one journaled calculation
type Entry struct {
	ID         string            `json:"id" yaml:"id"`
	Timestamp  time.Time         `json:"timestamp" yaml:"timestamp"`
	Calculator string            `json:"calculator" yaml:"calculator"`
	Inputs     map[string]string `json:"inputs" yaml:"inputs"`
	Result     json.RawMessage   `json:"result,omitempty" yaml:"-"`
	Status     Status            `json:"status" yaml:"status"`
	ErrorCode  string            `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// Filter defines criteria for querying the journal
type Filter struct {
	Calculator string
	Status     Status
	Start      time.Time
	End        time.Time
	Limit      int
	Offset     int
}

// Stats summarises the journal contents
type Stats struct {
	Total        int64            `json:"total" yaml:"total"`
	ByCalculator map[string]int64 `json:"by_calculator" yaml:"by_calculator"`
	ByStatus     map[string]int64 `json:"by_status" yaml:"by_status"`
}

// Journal defines the interface for calculation persistence
type Journal interface {
	Record(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	Stats(ctx context.Context) (*Stats, error)

	// Maintenance
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Vacuum(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Config holds configuration for the SQLite journal
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/history.db",
	}
}

// SQLiteJournal implements Journal using SQLite
type SQLiteJournal struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteJournal opens (and creates if needed) the journal database
func NewSQLiteJournal(cfg Config) (*SQLiteJournal, error) {
	if cfg.Path == "" {
		cfg = DefaultConfig()
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.OperationFailed(errors.ModuleStore, "Open", mrwerror.CodeDatabaseError,
			fmt.Errorf("failed to create directory: %w", err))
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, errors.OperationFailed(errors.ModuleStore, "Open", mrwerror.CodeDatabaseError, err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, errors.OperationFailed(errors.ModuleStore, "Open", mrwerror.CodeDatabaseError,
			fmt.Errorf("failed to initialize schema: %w", err))
	}

	return j, nil
}

// initSchema creates the journal table. Timestamps are stored as Unix
// milliseconds so range filters compare numerically.
func (j *SQLiteJournal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		calculator TEXT NOT NULL,
		inputs TEXT NOT NULL,
		result TEXT,
		status TEXT NOT NULL,
		error_code TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_timestamp ON calculations(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_calculations_calculator ON calculations(calculator);
	CREATE INDEX IF NOT EXISTS idx_calculations_status ON calculations(status);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Record stores a calculation. Missing IDs and timestamps are filled in.
func (j *SQLiteJournal) Record(ctx context.Context, entry *Entry) error {
	if entry.Calculator == "" {
		return errors.InvalidInput(errors.ModuleStore, "Record", entry.Calculator, "calculator name")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	prepare(entry)

	inputsJSON, err := json.Marshal(entry.Inputs)
	if err != nil {
		return errors.OperationFailed(errors.ModuleStore, "Record", mrwerror.CodeInternal, err)
	}

	var result sql.NullString
	if len(entry.Result) > 0 {
		result = sql.NullString{String: string(entry.Result), Valid: true}
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO calculations (id, timestamp, calculator, inputs, result, status, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp.UnixMilli(), entry.Calculator, string(inputsJSON), result,
		string(entry.Status), entry.ErrorCode)
	if err != nil {
		return errors.OperationFailed(errors.ModuleStore, "Record", mrwerror.CodeDatabaseError,
			fmt.Errorf("failed to insert calculation: %w", err))
	}

	return nil
}

// Query retrieves entries newest first
func (j *SQLiteJournal) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	query := `SELECT id, timestamp, calculator, inputs, result, status, error_code FROM calculations WHERE 1=1`
	var args []interface{}

	if filter.Calculator != "" {
		query += " AND calculator = ?"
		args = append(args, filter.Calculator)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if !filter.Start.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Start.UnixMilli())
	}
	if !filter.End.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.End.UnixMilli())
	}

	query += " ORDER BY timestamp DESC, id"

	// SQLite only accepts OFFSET after a LIMIT
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.OperationFailed(errors.ModuleStore, "Query", mrwerror.CodeDatabaseError,
			fmt.Errorf("failed to query calculations: %w", err))
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.OperationFailed(errors.ModuleStore, "Query", mrwerror.CodeDatabaseError, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.OperationFailed(errors.ModuleStore, "Query", mrwerror.CodeDatabaseError, err)
	}

	return entries, nil
}

// Get returns a single entry by ID
func (j *SQLiteJournal) Get(ctx context.Context, id string) (*Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	row := j.db.QueryRowContext(ctx, `
		SELECT id, timestamp, calculator, inputs, result, status, error_code
		FROM calculations WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(errors.ModuleStore, "Get", id)
	}
	if err != nil {
		return nil, errors.OperationFailed(errors.ModuleStore, "Get", mrwerror.CodeDatabaseError, err)
	}
	return entry, nil
}

// Stats returns counts per calculator and per status
func (j *SQLiteJournal) Stats(ctx context.Context) (*Stats, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	stats := &Stats{
		ByCalculator: make(map[string]int64),
		ByStatus:     make(map[string]int64),
	}

	rows, err := j.db.QueryContext(ctx, `SELECT calculator, status, COUNT(*) FROM calculations GROUP BY calculator, status`)
	if err != nil {
		return nil, errors.OperationFailed(errors.ModuleStore, "Stats", mrwerror.CodeDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var calculator, status string
		var count int64
		if err := rows.Scan(&calculator, &status, &count); err != nil {
			return nil, errors.OperationFailed(errors.ModuleStore, "Stats", mrwerror.CodeDatabaseError, err)
		}
		stats.Total += count
		stats.ByCalculator[calculator] += count
		stats.ByStatus[status] += count
	}

	return stats, rows.Err()
}

// Prune removes entries older than the specified duration
func (j *SQLiteJournal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	result, err := j.db.ExecContext(ctx, `DELETE FROM calculations WHERE timestamp < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, errors.OperationFailed(errors.ModuleStore, "Prune", mrwerror.CodeDatabaseError,
			fmt.Errorf("failed to prune calculations: %w", err))
	}

	return result.RowsAffected()
}

// Vacuum optimizes the database
func (j *SQLiteJournal) Vacuum(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.ExecContext(ctx, `VACUUM`)
	return err
}

// Ping checks that the database is reachable
func (j *SQLiteJournal) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}

// Close closes the database connection
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (*Entry, error) {
	var (
		entry     Entry
		millis    int64
		inputs    string
		result    sql.NullString
		status    string
		errorCode sql.NullString
	)

	if err := s.Scan(&entry.ID, &millis, &entry.Calculator, &inputs, &result, &status, &errorCode); err != nil {
		return nil, err
	}

	entry.Timestamp = time.UnixMilli(millis).UTC()
	entry.Status = Status(status)
	if errorCode.Valid {
		entry.ErrorCode = errorCode.String
	}
	if result.Valid && result.String != "" {
		entry.Result = json.RawMessage(result.String)
	}
	if err := json.Unmarshal([]byte(inputs), &entry.Inputs); err != nil {
		return nil, fmt.Errorf("failed to decode inputs of %s: %w", entry.ID, err)
	}

	return &entry, nil
}

func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC().Truncate(time.Millisecond)
	if entry.Status == "" {
		entry.Status = StatusOK
	}
	if entry.Inputs == nil {
		entry.Inputs = map[string]string{}
	}
}

// MemoryJournal is an in-memory implementation for testing and for runs
// with the history disabled.
type MemoryJournal struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryJournal creates a new in-memory journal
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

// Record stores a copy of the entry
func (m *MemoryJournal) Record(ctx context.Context, entry *Entry) error {
	if entry.Calculator == "" {
		return errors.InvalidInput(errors.ModuleStore, "Record", entry.Calculator, "calculator name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prepare(entry)
	stored := *entry
	m.entries = append(m.entries, &stored)
	return nil
}

// Query retrieves entries newest first
func (m *MemoryJournal) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*Entry
	for _, e := range m.entries {
		if filter.Calculator != "" && e.Calculator != filter.Calculator {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if !filter.Start.IsZero() && e.Timestamp.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && e.Timestamp.After(filter.End) {
			continue
		}
		copied := *e
		matched = append(matched, &copied)
	}

	sort.SliceStable(matched, func(a, b int) bool {
		if matched[a].Timestamp.Equal(matched[b].Timestamp) {
			return matched[a].ID < matched[b].ID
		}
		return matched[a].Timestamp.After(matched[b].Timestamp)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// Get returns a single entry by ID
func (m *MemoryJournal) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, errors.NotFound(errors.ModuleStore, "Get", id)
}

// Stats returns counts per calculator and per status
func (m *MemoryJournal) Stats(ctx context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Stats{
		Total:        int64(len(m.entries)),
		ByCalculator: make(map[string]int64),
		ByStatus:     make(map[string]int64),
	}
	for _, e := range m.entries {
		stats.ByCalculator[e.Calculator]++
		stats.ByStatus[string(e.Status)]++
	}
	return stats, nil
}

// Prune removes entries older than the specified duration
func (m *MemoryJournal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := m.entries[:0]
	var removed int64
	for _, e := range m.entries {
		if e.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return removed, nil
}

// Vacuum is a no-op
func (m *MemoryJournal) Vacuum(ctx context.Context) error { return nil }

// Ping always succeeds
func (m *MemoryJournal) Ping(ctx context.Context) error { return nil }

// Close is a no-op
func (m *MemoryJournal) Close() error { return nil }

var (
	_ Journal = (*SQLiteJournal)(nil)
	_ Journal = (*MemoryJournal)(nil)
)
