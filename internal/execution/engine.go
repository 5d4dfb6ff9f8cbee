// Package execution runs cases against tool adapters: single executions
// raced against a timeout, and batches under a bounded concurrency limit
// with partial-failure semantics.
package execution

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nice-copacabana/meteor-shower/internal/adapters"
	"github.com/nice-copacabana/meteor-shower/internal/models"
)

const (
	// DefaultTimeout bounds a single adapter call.
	DefaultTimeout = 300 * time.Second

	// DefaultMaxConcurrency bounds the number of in-flight tasks in a batch.
	DefaultMaxConcurrency = 3
)

// CaseGetter resolves case ids. The case library layer is external; the
// engine only needs lookup.
type CaseGetter interface {
	GetCase(id string) (*models.Case, error)
}

// Request describes one execution of a case against a tool.
type Request struct {
	CaseID string
	Tool   string
	Model  string
	// Config is passed through to the adapter untouched.
	Config map[string]any
	// Timeout overrides the engine default when positive.
	Timeout time.Duration
}

// BatchFailure records one failed (case, tool) task in a batch.
type BatchFailure struct {
	CaseID string `json:"case_id"`
	Tool   string `json:"tool"`
	Err    string `json:"error"`
}

// BatchResult collects the outcome of a batch run. Failures never abort the
// batch; they are reported alongside the successes.
type BatchResult struct {
	Executions []*models.Execution `json:"executions"`
	Failures   []BatchFailure      `json:"failures,omitempty"`
}

// BatchOptions tunes a batch run.
type BatchOptions struct {
	Config map[string]any
	// MaxConcurrency overrides the engine default when positive.
	MaxConcurrency int
	// Timeout applies per task, not to the whole batch.
	Timeout time.Duration
}

// Engine executes cases against registered adapters. The case store and
// adapter registry are injected so multiple engines can coexist and be
// tested in isolation.
type Engine struct {
	cases    CaseGetter
	registry *adapters.Registry
	logger   *slog.Logger

	defaultTimeout time.Duration
	maxConcurrency int

	mu       sync.Mutex
	inFlight map[string]*models.Execution
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaultTimeout sets the per-execution timeout used when a request
// does not carry its own.
func WithDefaultTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.defaultTimeout = d
		}
	}
}

// WithMaxConcurrency sets the default batch concurrency bound.
func WithMaxConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxConcurrency = n
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an execution engine.
func NewEngine(cases CaseGetter, registry *adapters.Registry, opts ...Option) *Engine {
	e := &Engine{
		cases:          cases,
		registry:       registry,
		logger:         slog.Default(),
		defaultTimeout: DefaultTimeout,
		maxConcurrency: DefaultMaxConcurrency,
		inFlight:       make(map[string]*models.Execution),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// RegisterAdapter installs an adapter in the engine's registry.
func (e *Engine) RegisterAdapter(adapter adapters.ToolAdapter) {
	e.registry.Register(adapter)
}

// AvailableTools returns the registered tools that currently report
// themselves available.
func (e *Engine) AvailableTools() []string {
	var available []string
	for _, tool := range e.registry.Tools() {
		if e.IsToolAvailable(tool) {
			available = append(available, tool)
		}
	}
	return available
}

// IsToolAvailable reports whether a tool is registered and available.
func (e *Engine) IsToolAvailable(tool string) bool {
	adapter, err := e.registry.Get(tool)
	return err == nil && adapter.IsAvailable()
}

// ExecuteCase runs one case against one tool. On success the returned
// execution is completed but unscored (all sub-scores zero); scoring is the
// evaluator's job. On timeout or adapter failure the returned execution
// carries the terminal status alongside the error.
func (e *Engine) ExecuteCase(ctx context.Context, req Request) (*models.Execution, error) {
	c, err := e.cases.GetCase(req.CaseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrCaseNotFound, req.CaseID)
	}

	adapter, err := e.registry.Get(req.Tool)
	if err != nil {
		return nil, err
	}
	if !adapter.IsAvailable() {
		return nil, fmt.Errorf("%w: %q", ErrAdapterUnavailable, req.Tool)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}

	exec := &models.Execution{
		ID:        uuid.NewString(),
		CaseID:    c.ID,
		Tool:      req.Tool,
		Model:     req.Model,
		StartedAt: time.Now(),
		Status:    models.StatusPending,
	}

	e.track(exec)
	exec.Status = models.StatusRunning

	prompt := BuildPrompt(c)
	e.logger.Debug("executing case",
		"execution_id", exec.ID,
		"case_id", c.ID,
		"tool", req.Tool,
		"timeout", timeout,
	)

	type adapterResult struct {
		output string
		err    error
	}

	// The adapter call runs in its own goroutine and races the timer. A
	// timer win only stops the wait; the call keeps running until the
	// adapter returns. Known limitation of the ToolAdapter contract.
	resultCh := make(chan adapterResult, 1)
	go func() {
		output, execErr := adapter.Execute(ctx, prompt, req.Config)
		resultCh <- adapterResult{output: output, err: execErr}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		return e.finish(exec, res.output, res.err)

	case <-timer.C:
		e.untrack(exec.ID)
		exec.Status = models.StatusTimeout
		exec.DurationMs = time.Since(exec.StartedAt).Milliseconds()
		e.logger.Warn("execution timed out", "execution_id", exec.ID, "tool", exec.Tool, "timeout", timeout)
		return exec, fmt.Errorf("%w after %s (tool %q, case %q)", ErrTimeout, timeout, req.Tool, req.CaseID)

	case <-ctx.Done():
		e.untrack(exec.ID)
		exec.Status = models.StatusCancelled
		exec.DurationMs = time.Since(exec.StartedAt).Milliseconds()
		return exec, ctx.Err()
	}
}

// finish applies the adapter outcome to a tracked execution. If the
// execution was stopped while the call was in flight, the cancellation
// wins and the adapter outcome is discarded.
func (e *Engine) finish(exec *models.Execution, output string, execErr error) (*models.Execution, error) {
	if !e.untrack(exec.ID) {
		// StopExecution already marked it cancelled.
		return exec, fmt.Errorf("%w: %s", ErrExecutionCancelled, exec.ID)
	}

	exec.DurationMs = time.Since(exec.StartedAt).Milliseconds()

	if execErr != nil {
		exec.Status = models.StatusFailed
		return exec, &AdapterExecutionError{Tool: exec.Tool, Err: execErr}
	}

	exec.Status = models.StatusCompleted
	exec.Output = output
	return exec, nil
}

// BatchExecute expands the cross-product of case ids and tools into
// independent tasks and runs them with at most the configured number in
// flight. Individual failures are collected, never propagated; the batch
// always runs to completion.
func (e *Engine) BatchExecute(ctx context.Context, caseIDs, tools []string, opts *BatchOptions) *BatchResult {
	if opts == nil {
		opts = &BatchOptions{}
	}
	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = e.maxConcurrency
	}

	type task struct {
		caseID string
		tool   string
	}
	tasks := make([]task, 0, len(caseIDs)*len(tools))
	for _, caseID := range caseIDs {
		for _, tool := range tools {
			tasks = append(tasks, task{caseID: caseID, tool: tool})
		}
	}

	e.logger.Debug("starting batch", "tasks", len(tasks), "max_concurrency", limit)

	result := &BatchResult{}
	var mu sync.Mutex

	g := &errgroup.Group{}
	g.SetLimit(limit)

	for _, t := range tasks {
		g.Go(func() error {
			exec, err := e.ExecuteCase(ctx, Request{
				CaseID:  t.caseID,
				Tool:    t.tool,
				Config:  opts.Config,
				Timeout: opts.Timeout,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, BatchFailure{
					CaseID: t.caseID,
					Tool:   t.tool,
					Err:    err.Error(),
				})
				e.logger.Warn("batch task failed", "case_id", t.caseID, "tool", t.tool, "error", err)
				return nil
			}
			result.Executions = append(result.Executions, exec)
			return nil
		})
	}

	// Workers never return errors; Wait only orders the shutdown.
	_ = g.Wait()

	e.logger.Debug("batch finished",
		"succeeded", len(result.Executions),
		"failed", len(result.Failures),
	)
	return result
}

// StopExecution cancels a tracked in-flight execution. This is bookkeeping
// only: an adapter call already dispatched is not aborted.
func (e *Engine) StopExecution(executionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	exec, ok := e.inFlight[executionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrExecutionNotTracked, executionID)
	}

	exec.Status = models.StatusCancelled
	exec.DurationMs = time.Since(exec.StartedAt).Milliseconds()
	delete(e.inFlight, executionID)
	return nil
}

// InFlight returns the ids of currently tracked executions.
func (e *Engine) InFlight() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, len(e.inFlight))
	for id := range e.inFlight {
		ids = append(ids, id)
	}
	return ids
}

func (e *Engine) track(exec *models.Execution) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight[exec.ID] = exec
}

// untrack removes an execution from the in-flight registry, reporting
// whether it was still tracked.
func (e *Engine) untrack(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.inFlight[id]
	delete(e.inFlight, id)
	return ok
}
