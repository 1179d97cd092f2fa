package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"

	"github.com/siyan12/csvtranslator/internal/csvio"
	"github.com/siyan12/csvtranslator/internal/memory"
	"github.com/siyan12/csvtranslator/internal/translate"
)

// ErrValidation wraps request validation failures, reported before any I/O
// is attempted.
var ErrValidation = errors.New("invalid job request")

// Request describes one translation job. It is immutable once started.
type Request struct {
	InputPath   string
	OutputPath  string
	SourceLang  string   // language code of the source column, e.g. "en"
	TargetLangs []string // target language codes, in output column order
	Credential  string   // provider API key; validated non-empty before I/O

	// PreserveExisting only fills empty target cells instead of
	// overwriting, the original tool's default mode.
	PreserveExisting bool

	// Workers bounds parallel translation calls. Zero or one runs the
	// safe sequential baseline.
	Workers int
}

func (r *Request) validate() error {
	if r.InputPath == "" {
		return fmt.Errorf("%w: input path is empty", ErrValidation)
	}
	if r.OutputPath == "" {
		return fmt.Errorf("%w: output path is empty", ErrValidation)
	}
	if strings.TrimSpace(r.SourceLang) == "" {
		return fmt.Errorf("%w: source language is empty", ErrValidation)
	}
	if len(r.TargetLangs) == 0 {
		return fmt.Errorf("%w: no target languages requested", ErrValidation)
	}
	seen := make(map[string]struct{}, len(r.TargetLangs))
	for _, lang := range r.TargetLangs {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("%w: empty target language", ErrValidation)
		}
		if _, dup := seen[lang]; dup {
			return fmt.Errorf("%w: duplicate target language %q", ErrValidation, lang)
		}
		seen[lang] = struct{}{}
	}
	if r.Credential == "" {
		return fmt.Errorf("%w: credential is empty", ErrValidation)
	}
	return nil
}

// Status is the lifecycle state of a job.
type Status int32

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Handle tracks a started job. Subscribers read lifecycle events from
// Events; Wait blocks until the terminal state.
type Handle struct {
	events chan Event
	cancel context.CancelFunc
	done   chan struct{}
	status atomic.Int32

	summary *Summary
	err     error
}

// Events returns the event stream. The channel is closed after the
// terminal event.
func (h *Handle) Events() <-chan Event { return h.events }

// Cancel requests cooperative cancellation. The orchestrator honors it
// between cells; an in-flight network call is allowed to finish first.
func (h *Handle) Cancel() { h.cancel() }

// Status returns the job's current lifecycle state.
func (h *Handle) Status() Status { return Status(h.status.Load()) }

// Wait blocks until the job reaches a terminal state and returns the
// summary (nil unless completed) and the job-fatal error, if any.
func (h *Handle) Wait() (*Summary, error) {
	<-h.done
	return h.summary, h.err
}

// Runner starts translation jobs against a translation client and an
// optional translation memory.
type Runner struct {
	translator translate.Translator
	store      memory.Store // nil disables the translation memory
}

// NewRunner creates a job runner. store may be nil.
func NewRunner(translator translate.Translator, store memory.Store) *Runner {
	return &Runner{translator: translator, store: store}
}

// Start validates the request and launches the job. Validation failures
// are returned synchronously, before any file or network I/O.
func (r *Runner) Start(ctx context.Context, req Request) (*Handle, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	jctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		events: make(chan Event, 64),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	h.status.Store(int32(StatusRunning))
	go r.run(jctx, h, req)
	return h, nil
}

// Run executes the job synchronously and returns its outcome. Used by the
// CLI and the folder runner.
func (r *Runner) Run(ctx context.Context, req Request) (*Summary, error) {
	h, err := r.Start(ctx, req)
	if err != nil {
		return nil, err
	}
	for ev := range h.Events() {
		if ev.Kind == EventLog {
			fmt.Println(ev.Message)
		}
	}
	return h.Wait()
}

type targetColumn struct {
	lang string
	col  string
}

// state is the mutable job state shared between translation units. All
// table and summary access goes through mu; it is never held across a
// network call.
type state struct {
	mu      sync.Mutex
	table   *csvio.Table
	srcCol  string
	targets []targetColumn
	sum     *Summary
	dead    map[string]bool // target langs rejected by the provider
	authErr error
}

func (r *Runner) run(ctx context.Context, h *Handle, req Request) {
	defer close(h.done)

	fail := func(err error) {
		h.err = err
		h.status.Store(int32(StatusFailed))
		h.emitTerminal(Event{Kind: EventFailed, Err: err})
	}
	cancelled := func() {
		h.err = context.Canceled
		h.status.Store(int32(StatusCancelled))
		h.emitTerminal(Event{Kind: EventCancelled})
	}

	table, err := csvio.Read(req.InputPath)
	if err != nil {
		fail(err)
		return
	}
	srcCol, err := csvio.SourceColumn(table, req.SourceLang)
	if err != nil {
		fail(err)
		return
	}
	targets := make([]targetColumn, 0, len(req.TargetLangs))
	for _, lang := range req.TargetLangs {
		targets = append(targets, targetColumn{lang: lang, col: csvio.TargetColumn(table, lang)})
	}

	st := &state{
		table:   table,
		srcCol:  srcCol,
		targets: targets,
		sum:     NewSummary(),
		dead:    make(map[string]bool),
	}
	st.sum.Rows = len(table.Rows)
	st.sum.Files = 1

	h.emit(Event{Kind: EventProgress, Done: 0, Total: len(table.Rows)})

	if req.Workers > 1 {
		r.runParallel(ctx, h, req, st)
	} else {
		r.runSequential(ctx, h, req, st)
	}

	if st.authErr != nil {
		fail(st.authErr)
		return
	}
	if ctx.Err() != nil {
		cancelled()
		return
	}

	// Write to a temp file and move it into place so a failed or
	// cancelled job never leaves partial output at the destination.
	tmp := req.OutputPath + ".tmp"
	if err := csvio.Write(tmp, table); err != nil {
		os.Remove(tmp)
		fail(err)
		return
	}
	if ctx.Err() != nil {
		os.Remove(tmp)
		cancelled()
		return
	}
	if err := os.Rename(tmp, req.OutputPath); err != nil {
		os.Remove(tmp)
		fail(fmt.Errorf("failed to move output into place: %w", err))
		return
	}

	h.summary = st.sum
	h.status.Store(int32(StatusCompleted))
	h.emitTerminal(Event{Kind: EventCompleted, Summary: st.sum})
}

func (r *Runner) runSequential(ctx context.Context, h *Handle, req Request, st *state) {
	total := len(st.table.Rows)
	for i, row := range st.table.Rows {
		for _, t := range st.targets {
			if ctx.Err() != nil {
				return
			}
			if err := r.translateCell(ctx, h, req, st, row, t); err != nil {
				return
			}
		}
		h.emit(Event{Kind: EventProgress, Done: i + 1, Total: total})
	}
}

func (r *Runner) runParallel(ctx context.Context, h *Handle, req Request, st *state) {
	totalRows := len(st.table.Rows)
	perRow := len(st.targets)

	// Rows are reported done only when all their cells finished, so
	// progress is monotonic regardless of completion order.
	remaining := make([]int32, totalRows)
	for i := range remaining {
		remaining[i] = int32(perRow)
	}
	var rowsDone atomic.Int32

	pool := pond.NewPool(req.Workers)
	group := pool.NewGroup()
	for i := range st.table.Rows {
		rowIdx := i
		row := st.table.Rows[i]
		for _, t := range st.targets {
			target := t
			group.SubmitErr(func() error {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if err := r.translateCell(ctx, h, req, st, row, target); err != nil {
					// First auth failure cancels all queued work.
					h.cancel()
					return err
				}
				if atomic.AddInt32(&remaining[rowIdx], -1) == 0 {
					h.emit(Event{Kind: EventProgress, Done: int(rowsDone.Add(1)), Total: totalRows})
				}
				return nil
			})
		}
	}
	_ = group.Wait()
	pool.StopAndWait()
}

// translateCell processes one (row, target language) cell. It returns a
// non-nil error only for job-fatal conditions; cell-level failures are
// recorded in the summary and absorbed.
func (r *Runner) translateCell(ctx context.Context, h *Handle, req Request, st *state, row csvio.Row, t targetColumn) error {
	st.mu.Lock()
	source := row[st.srcCol]
	key := row[csvio.KeyColumn]
	current := row[t.col]

	if translate.SkippableSource(source) {
		if req.PreserveExisting && current != "" {
			st.sum.SkippedExisting++
		} else {
			row[t.col] = ""
			st.sum.SkippedEmpty++
		}
		st.mu.Unlock()
		return nil
	}
	if req.PreserveExisting && strings.TrimSpace(current) != "" {
		st.sum.SkippedExisting++
		st.mu.Unlock()
		return nil
	}
	if st.dead[t.lang] {
		st.sum.recordFailure(key, t.lang, translate.KindUnsupportedLanguage,
			"target language rejected by provider")
		st.mu.Unlock()
		return nil
	}
	st.mu.Unlock()

	tokenized, mapping := translate.TokenizePlaceholders(source)

	if r.store != nil {
		if cached, ok := r.store.Get(tokenized, t.lang); ok {
			st.mu.Lock()
			r.fill(st, row, t, key, translate.DetokenizePlaceholders(cached, mapping))
			st.sum.CacheHits++
			st.mu.Unlock()
			return nil
		}
	}

	translated, err := r.translator.Translate(ctx, tokenized, req.SourceLang, t.lang)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if translate.IsAuth(err) {
			st.mu.Lock()
			st.authErr = err
			st.mu.Unlock()
			return err
		}
		kind, ok := translate.KindOf(err)
		if !ok {
			kind = translate.KindTransientNetwork
		}
		st.mu.Lock()
		if kind == translate.KindUnsupportedLanguage {
			st.dead[t.lang] = true
		}
		st.sum.recordFailure(key, t.lang, kind, err.Error())
		st.mu.Unlock()
		h.emit(Event{Kind: EventLog, Message: fmt.Sprintf("FAILED %s -> %s: %v", key, t.lang, err)})
		return nil
	}

	if r.store != nil {
		if err := r.store.Put(tokenized, t.lang, translated); err != nil {
			h.emit(Event{Kind: EventLog, Message: fmt.Sprintf("memory write failed: %v", err)})
		}
	}

	st.mu.Lock()
	r.fill(st, row, t, key, translate.DetokenizePlaceholders(translated, mapping))
	st.mu.Unlock()
	h.emit(Event{Kind: EventLog, Message: fmt.Sprintf("translated %s -> %s", key, t.lang)})
	return nil
}

// fill writes a translated value into the cell. Blank provider results
// leave the cell untouched, the way the original tool behaves. Caller
// holds st.mu.
func (r *Runner) fill(st *state, row csvio.Row, t targetColumn, key, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	row[t.col] = value
	st.sum.TranslatedCells++
}
