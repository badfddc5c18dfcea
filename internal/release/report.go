package release

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Status represents the current status of a release run
type Status string

const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
	StatusDryRun   Status = "dry-run"
)

// StepStatus represents the current status of a single step
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepRunning  StepStatus = "running"
	StepComplete StepStatus = "complete"
	StepFailed   StepStatus = "failed"
	StepSkipped  StepStatus = "skipped"
)

// Event represents something that happened during a run
type Event struct {
	ID        string    `yaml:"id"`
	Timestamp time.Time `yaml:"timestamp"`
	StepID    string    `yaml:"step,omitempty"`
	Type      string    `yaml:"type"`
	Message   string    `yaml:"message"`
}

// StepRecord is the report entry of one step
type StepRecord struct {
	ID      string     `yaml:"id"`
	Name    string     `yaml:"name"`
	Dir     string     `yaml:"dir,omitempty"`
	Command string     `yaml:"command"`
	Status  StepStatus `yaml:"status"`
}

// Report records one release run. It is safe for concurrent use.
type Report struct {
	sync.RWMutex `yaml:"-"`

	ID          string        `yaml:"id"`
	Package     string        `yaml:"package"`
	FromVersion string        `yaml:"fromVersion"`
	ToVersion   string        `yaml:"toVersion"`
	DryRun      bool          `yaml:"dryRun"`
	Status      Status        `yaml:"status"`
	StartTime   time.Time     `yaml:"startTime"`
	EndTime     time.Time     `yaml:"endTime,omitempty"`
	Error       string        `yaml:"error,omitempty"`
	Steps       []*StepRecord `yaml:"steps"`
	History     []Event       `yaml:"history"`
}

func newReport(pkg, from, to string, dryRun bool, now time.Time) *Report {
	return &Report{
		ID:          uuid.New().String(),
		Package:     pkg,
		FromVersion: from,
		ToVersion:   to,
		DryRun:      dryRun,
		Status:      StatusPending,
		StartTime:   now,
		Steps:       make([]*StepRecord, 0),
		History:     make([]Event, 0),
	}
}

func (r *Report) addStep(s Step) *StepRecord {
	r.Lock()
	defer r.Unlock()

	rec := &StepRecord{
		ID:      uuid.New().String(),
		Name:    s.Name,
		Dir:     s.Dir(),
		Command: s.String(),
		Status:  StepPending,
	}
	r.Steps = append(r.Steps, rec)
	return rec
}

// AddEvent adds an event to the history
func (r *Report) AddEvent(stepID, eventType, message string, at time.Time) {
	r.Lock()
	defer r.Unlock()

	r.History = append(r.History, Event{
		ID:        uuid.New().String(),
		Timestamp: at,
		StepID:    stepID,
		Type:      eventType,
		Message:   message,
	})
}

func (r *Report) setStepStatus(rec *StepRecord, status StepStatus) {
	r.Lock()
	defer r.Unlock()
	rec.Status = status
}

func (r *Report) setStatus(status Status) {
	r.Lock()
	defer r.Unlock()
	r.Status = status
}

func (r *Report) finish(status Status, err error, at time.Time) {
	r.Lock()
	defer r.Unlock()

	r.Status = status
	r.EndTime = at
	if err != nil {
		r.Error = err.Error()
	}
}

// Save writes the report as YAML
func (r *Report) Save(path string) error {
	r.RLock()
	data, err := yaml.Marshal(r)
	r.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal release report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write release report: %w", err)
	}
	return nil
}

// LoadReport reads a report written by Save
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read release report: %w", err)
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse release report: %w", err)
	}
	return &r, nil
}
