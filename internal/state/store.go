package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/tessen42/stetho/internal/research"
)

// Phase is the session lifecycle state shown in the header.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseReady
	PhaseTerminated
)

// String returns the phase label used by the UI.
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseReady:
		return "ready"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Snapshot represents the latest data available to the UI. Every dataset is
// optional: a nil pointer or empty slice means the corresponding fetch has
// not succeeded yet this session.
type Snapshot struct {
	Phase Phase

	// Busy and Err form the single operation state feeding the spinner and
	// the dismissible error banner. Notice carries transient non-error
	// feedback such as an update-trigger ack.
	Busy   bool
	Err    error
	Notice string

	InitialCheck *research.InitialCheck
	Latest       *research.AnalysisBundle
	Dates        []string
	SelectedDate string
	Selected     *research.AnalysisBundle
	Stats        *research.StatsSummary
	Scheduler    *research.SchedulerStatus
	LastQuery    *research.QueryResult

	LastUpdated time.Time
}

// Store coordinates concurrent updates to the snapshot. The zero value is
// ready to use and reports PhaseInitializing.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	byDate   map[string]research.AnalysisBundle
}

// Snapshot returns a copy of the current state that shares no memory
// with the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.InitialCheck = cloneCheck(s.snapshot.InitialCheck)
	snap.Latest = cloneBundle(s.snapshot.Latest)
	snap.Dates = cloneDates(s.snapshot.Dates)
	snap.Selected = cloneBundle(s.snapshot.Selected)
	snap.Stats = cloneStats(s.snapshot.Stats)
	snap.Scheduler = cloneScheduler(s.snapshot.Scheduler)
	snap.LastQuery = cloneQuery(s.snapshot.LastQuery)
	if s.snapshot.Err != nil {
		snap.Err = fmt.Errorf("%w", s.snapshot.Err)
	}
	return snap
}

// SetPhase records a lifecycle transition.
func (s *Store) SetPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Phase = p
}

// BeginOperation marks the start of a user-initiated operation: the busy
// flag rises and any prior error or notice is cleared in the same write.
func (s *Store) BeginOperation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Busy = true
	s.snapshot.Err = nil
	s.snapshot.Notice = ""
}

// FinishOperation marks the end of a user-initiated operation. Busy drops
// unconditionally; the error field is set only for non-cancellation
// failures, since a cancelled operation was superseded rather than failed.
func (s *Store) FinishOperation(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Busy = false
	if err != nil && !research.IsCancelled(err) {
		s.snapshot.Err = err
	}
}

// ClearError dismisses the visible error without any retry.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Err = nil
}

// SetNotice records transient non-error feedback (cleared by the next
// operation).
func (s *Store) SetNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Notice = msg
}

// SetInitialCheck replaces the startup status payload.
func (s *Store) SetInitialCheck(check *research.InitialCheck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.InitialCheck = cloneCheck(check)
	s.snapshot.LastUpdated = time.Now()
}

// SetLatest replaces the most recent analysis bundle.
func (s *Store) SetLatest(bundle *research.AnalysisBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Latest = cloneBundle(bundle)
	s.snapshot.LastUpdated = time.Now()
}

// SetDates replaces the date index wholesale.
func (s *Store) SetDates(dates []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Dates = cloneDates(dates)
	s.snapshot.LastUpdated = time.Now()
}

// SelectDate marks date as the history selection. A bundle fetched for
// that date earlier in the session shows immediately while the fresh fetch
// is in flight; otherwise the selection pane empties until it lands.
func (s *Store) SelectDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SelectedDate = date
	if cached, ok := s.byDate[date]; ok {
		dup := cached
		s.snapshot.Selected = &dup
	} else {
		s.snapshot.Selected = nil
	}
}

// SetAnalysis records a fetched per-date bundle and makes it the current
// history selection.
func (s *Store) SetAnalysis(bundle *research.AnalysisBundle) {
	if bundle == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byDate == nil {
		s.byDate = make(map[string]research.AnalysisBundle)
	}
	s.byDate[bundle.Date] = *bundle
	s.snapshot.SelectedDate = bundle.Date
	s.snapshot.Selected = cloneBundle(bundle)
	s.snapshot.LastUpdated = time.Now()
}

// SetStats replaces the corpus statistics.
func (s *Store) SetStats(stats *research.StatsSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Stats = cloneStats(stats)
	s.snapshot.LastUpdated = time.Now()
}

// SetScheduler replaces the scheduler status.
func (s *Store) SetScheduler(status *research.SchedulerStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Scheduler = cloneScheduler(status)
	s.snapshot.LastUpdated = time.Now()
}

// SetQueryResult replaces the last query answer.
func (s *Store) SetQueryResult(result *research.QueryResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastQuery = cloneQuery(result)
	s.snapshot.LastUpdated = time.Now()
}

func cloneCheck(c *research.InitialCheck) *research.InitialCheck {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}

func cloneBundle(b *research.AnalysisBundle) *research.AnalysisBundle {
	if b == nil {
		return nil
	}
	dup := *b
	return &dup
}

func cloneDates(dates []string) []string {
	if len(dates) == 0 {
		return nil
	}
	dup := make([]string, len(dates))
	copy(dup, dates)
	return dup
}

func cloneStats(st *research.StatsSummary) *research.StatsSummary {
	if st == nil {
		return nil
	}
	dup := *st
	if len(st.AnalysisTypes) > 0 {
		dup.AnalysisTypes = make([]string, len(st.AnalysisTypes))
		copy(dup.AnalysisTypes, st.AnalysisTypes)
	}
	if len(st.TypeCounts) > 0 {
		dup.TypeCounts = make(map[string]int, len(st.TypeCounts))
		for k, v := range st.TypeCounts {
			dup.TypeCounts[k] = v
		}
	}
	return &dup
}

func cloneScheduler(st *research.SchedulerStatus) *research.SchedulerStatus {
	if st == nil {
		return nil
	}
	dup := *st
	if len(st.Jobs) > 0 {
		dup.Jobs = make([]research.Job, len(st.Jobs))
		copy(dup.Jobs, st.Jobs)
	}
	return &dup
}

func cloneQuery(q *research.QueryResult) *research.QueryResult {
	if q == nil {
		return nil
	}
	dup := *q
	return &dup
}
