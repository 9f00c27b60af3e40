package session

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tessen42/stetho/internal/research"
	"github.com/tessen42/stetho/internal/retry"
	"github.com/tessen42/stetho/internal/state"
)

// Ready gate policies. ReadyOnInitialCheck follows the service contract's
// intent: readiness tracks the initial-status call alone, and the other
// initialization fetches populate opportunistically. ReadyOnAll holds the
// session in Initializing until the whole fan-out has settled.
const (
	ReadyOnInitialCheck = "initial-check"
	ReadyOnAll          = "all"
)

const (
	defaultHeartbeatEvery = 4 * time.Minute
	defaultPollEvery      = 60 * time.Second
)

// Options configures a Session. Zero fields fall back to defaults; Fetcher
// and Store are required.
type Options struct {
	Fetcher research.Fetcher
	Store   *state.Store

	// Logger receives lifecycle transitions and background failures.
	// Nil discards them.
	Logger *log.Logger

	// Notify is invoked after state changes so the UI can re-snapshot.
	// It must be safe to call from any goroutine.
	Notify func()

	// Retry is the budget applied to every user-initiated fetch.
	Retry retry.Config

	// ReadyOn selects the readiness gate policy.
	ReadyOn string

	HeartbeatEvery time.Duration
	PollEvery      time.Duration
}

// Session owns the request-orchestration core: it serializes user-initiated
// operations into the single busy/error state, coordinates cancellation
// scopes, runs the initialization fan-out, and arms the background
// schedulers once the session is ready.
type Session struct {
	fetcher  research.Fetcher
	store    *state.Store
	logger   *log.Logger
	notify   func()
	retryCfg retry.Config

	readyOn        string
	heartbeatEvery time.Duration
	pollEvery      time.Duration

	scopes *Scopes
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	readyOnce sync.Once
	termOnce  sync.Once
}

// New builds a Session from opts. Call Start to begin the lifecycle.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	notify := opts.Notify
	if notify == nil {
		notify = func() {}
	}
	retryCfg := opts.Retry
	if retryCfg.Attempts < 1 {
		retryCfg.Attempts = retry.DefaultConfig().Attempts
	}
	readyOn := opts.ReadyOn
	if readyOn == "" {
		readyOn = ReadyOnInitialCheck
	}
	heartbeatEvery := opts.HeartbeatEvery
	if heartbeatEvery <= 0 {
		heartbeatEvery = defaultHeartbeatEvery
	}
	pollEvery := opts.PollEvery
	if pollEvery <= 0 {
		pollEvery = defaultPollEvery
	}
	return &Session{
		fetcher:        opts.Fetcher,
		store:          opts.Store,
		logger:         logger,
		notify:         notify,
		retryCfg:       retryCfg,
		readyOn:        readyOn,
		heartbeatEvery: heartbeatEvery,
		pollEvery:      pollEvery,
	}
}

// Start enters the Initializing phase and launches the initialization
// fan-out. The session lives until parent is cancelled or Terminate is
// called.
func (s *Session) Start(parent context.Context) {
	s.ctx, s.cancel = context.WithCancel(parent)
	s.scopes = NewScopes(s.ctx)
	s.store.SetPhase(state.PhaseInitializing)
	s.logger.Info("session starting", "ready_on", s.readyOn)
	s.Run("initialize", s.initialize)
}

// Terminate ends the session: the current operation scope and both
// background schedulers are cancelled, in-flight goroutines are waited
// out, and the phase becomes Terminated. Safe to call more than once.
func (s *Session) Terminate() {
	s.termOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.wg.Wait()
		s.store.SetPhase(state.PhaseTerminated)
		s.logger.Info("session terminated")
	})
}

// Run executes op as one user-initiated operation: busy rises and the
// prior error clears, a fresh cancellation scope supersedes the old one,
// and busy falls only once everything op started has settled. A superseded
// operation never touches the store again; its outcome is discarded
// through the scope identity check.
func (s *Session) Run(label string, op func(sc *Scope) error) {
	if s.ctx == nil || s.ctx.Err() != nil {
		return
	}
	sc := s.scopes.Begin()
	s.store.BeginOperation()
	s.notify()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := op(sc)
		if err != nil && research.Retryable(err) {
			s.logger.Warn("operation failed", "op", label, "error", err)
		}
		if sc.Commit(func() { s.store.FinishOperation(err) }) {
			s.notify()
		}
	}()
}

// Refresh refetches everything the dashboard shows except the
// initial-status payload, as one operation.
func (s *Session) Refresh() {
	s.Run("refresh", func(sc *Scope) error {
		var g errgroup.Group
		g.Go(func() error { return fetchInto(s, sc, s.fetcher.FetchLatest, s.store.SetLatest) })
		g.Go(func() error { return fetchInto(s, sc, s.fetcher.FetchDates, s.store.SetDates) })
		g.Go(func() error { return fetchInto(s, sc, s.fetcher.FetchStats, s.store.SetStats) })
		g.Go(func() error { return fetchInto(s, sc, s.fetcher.FetchSchedulerStatus, s.store.SetScheduler) })
		return g.Wait()
	})
}

// SelectDate makes date the history selection and fetches its bundle.
func (s *Session) SelectDate(date string) {
	s.Run("select date", func(sc *Scope) error {
		if sc.Commit(func() { s.store.SelectDate(date) }) {
			s.notify()
		}
		return fetchInto(s, sc, func(ctx context.Context) (*research.AnalysisBundle, error) {
			return s.fetcher.FetchAnalysis(ctx, date)
		}, s.store.SetAnalysis)
	})
}

// SubmitQuery sends an ad-hoc research question.
func (s *Session) SubmitQuery(text string) {
	s.Run("submit query", func(sc *Scope) error {
		return fetchInto(s, sc, func(ctx context.Context) (*research.QueryResult, error) {
			return s.fetcher.SubmitQuery(ctx, text)
		}, s.store.SetQueryResult)
	})
}

// TriggerUpdate asks the service to regenerate all analyses. The ack
// surfaces as a notice, not as data: the regeneration itself happens
// server-side after this operation completes.
func (s *Session) TriggerUpdate() {
	s.Run("trigger update", func(sc *Scope) error {
		return fetchInto(s, sc, s.fetcher.TriggerUpdate, func(ack *research.UpdateAck) {
			msg := ack.Message
			if ack.Details != "" {
				msg += ": " + ack.Details
			}
			s.store.SetNotice(msg)
		})
	})
}

// DismissError clears the visible error banner without retrying anything.
func (s *Session) DismissError() {
	s.store.ClearError()
	s.notify()
}

// DismissNotice clears the informational banner.
func (s *Session) DismissNotice() {
	s.store.SetNotice("")
	s.notify()
}

// initialize is the Initializing fan-out: five concurrent fetches under
// one operation. The initial-status member flips the session to Ready on
// success (under the default gate); whatever else fails, the session still
// reaches Ready once the whole fan-out has settled, so the UI is never
// stuck behind a non-critical fetch.
func (s *Session) initialize(sc *Scope) error {
	var g errgroup.Group

	g.Go(func() error {
		err := fetchInto(s, sc, s.fetcher.FetchInitialCheck, s.store.SetInitialCheck)
		if err == nil && s.readyOn == ReadyOnInitialCheck {
			s.markReady()
		}
		return err
	})
	g.Go(func() error { return fetchInto(s, sc, s.fetcher.FetchLatest, s.store.SetLatest) })
	g.Go(func() error { return fetchInto(s, sc, s.fetcher.FetchDates, s.store.SetDates) })
	g.Go(func() error { return fetchInto(s, sc, s.fetcher.FetchStats, s.store.SetStats) })
	g.Go(func() error { return fetchInto(s, sc, s.fetcher.FetchSchedulerStatus, s.store.SetScheduler) })

	err := g.Wait()
	s.markReady()
	return err
}

// markReady transitions to Ready exactly once and arms the background
// schedulers. A session that was terminated during initialization stays
// terminated.
func (s *Session) markReady() {
	s.readyOnce.Do(func() {
		if s.ctx.Err() != nil {
			return
		}
		s.store.SetPhase(state.PhaseReady)
		s.logger.Info("session ready")
		s.armSchedulers()
		s.notify()
	})
}

// fetchInto runs fetch under the session's retry budget and the scope's
// context, then commits the result through the scope identity check. The
// returned error is the fetch outcome either way; a refused commit means
// the scope was superseded, and the stale value is dropped on the floor.
func fetchInto[T any](s *Session, sc *Scope, fetch func(context.Context) (T, error), commit func(T)) error {
	value, err := retry.Do(sc.Context(), s.retryCfg, fetch)
	if err != nil {
		return err
	}
	if sc.Commit(func() { commit(value) }) {
		s.notify()
	}
	return nil
}
