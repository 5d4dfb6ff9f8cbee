package adapters

import (
	"context"
	"sync/atomic"
	"time"
)

// StubAdapter is a configurable in-memory adapter for tests and dry runs.
// It records the number of simultaneously outstanding Execute calls so
// tests can assert concurrency bounds.
type StubAdapter struct {
	ToolName  string
	Output    string
	Err       error
	Delay     time.Duration
	Available bool

	// Respond, when set, overrides Output/Err per call.
	Respond func(prompt string) (string, error)

	calls     atomic.Int64
	inFlight  atomic.Int64
	highWater atomic.Int64
}

// NewStubAdapter creates an available stub that echoes output for every prompt.
func NewStubAdapter(name, output string) *StubAdapter {
	return &StubAdapter{ToolName: name, Output: output, Available: true}
}

func (s *StubAdapter) Name() string      { return s.ToolName }
func (s *StubAdapter) IsAvailable() bool { return s.Available }

func (s *StubAdapter) Execute(ctx context.Context, prompt string, config map[string]any) (string, error) {
	s.calls.Add(1)
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	// Track the high-water mark of concurrent calls.
	for {
		prev := s.highWater.Load()
		if current <= prev || s.highWater.CompareAndSwap(prev, current) {
			break
		}
	}

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if s.Respond != nil {
		return s.Respond(prompt)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Output, nil
}

// Calls returns the total number of Execute invocations.
func (s *StubAdapter) Calls() int64 { return s.calls.Load() }

// MaxConcurrent returns the highest number of Execute calls that were
// outstanding at the same time.
func (s *StubAdapter) MaxConcurrent() int64 { return s.highWater.Load() }
