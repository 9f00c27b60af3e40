package state

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/tessen42/stetho/internal/research"
)

func TestStore_ZeroValueStartsInitializing(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.Phase != PhaseInitializing {
		t.Fatalf("Phase = %v, want initializing", snap.Phase)
	}
	if snap.Busy || snap.Err != nil || snap.Latest != nil || snap.Dates != nil {
		t.Fatalf("zero snapshot = %#v, want empty", snap)
	}
}

func TestStore_OperationLifecycle(t *testing.T) {
	var s Store

	s.FinishOperation(errors.New("old failure"))
	s.SetNotice("old notice")

	s.BeginOperation()
	snap := s.Snapshot()
	if !snap.Busy {
		t.Fatalf("Busy = false after BeginOperation")
	}
	if snap.Err != nil || snap.Notice != "" {
		t.Fatalf("BeginOperation should clear error and notice, got %#v", snap)
	}

	s.FinishOperation(nil)
	snap = s.Snapshot()
	if snap.Busy || snap.Err != nil {
		t.Fatalf("snapshot after clean finish = %#v, want idle", snap)
	}

	s.BeginOperation()
	origErr := errors.New("boom")
	s.FinishOperation(origErr)
	snap = s.Snapshot()
	if snap.Busy {
		t.Fatalf("Busy = true after FinishOperation")
	}
	if snap.Err == nil || snap.Err.Error() != "boom" {
		t.Fatalf("Err = %v, want boom", snap.Err)
	}
	if reflect.ValueOf(snap.Err).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}

	s.ClearError()
	if snap := s.Snapshot(); snap.Err != nil {
		t.Fatalf("Err = %v after ClearError, want nil", snap.Err)
	}
}

func TestStore_CancellationNeverBecomesVisibleError(t *testing.T) {
	var s Store

	s.BeginOperation()
	s.FinishOperation(context.Canceled)
	snap := s.Snapshot()
	if snap.Busy || snap.Err != nil {
		t.Fatalf("snapshot = %#v, want idle with no error after cancellation", snap)
	}

	s.BeginOperation()
	s.FinishOperation(fmt.Errorf("execute request: %w", context.Canceled))
	if snap := s.Snapshot(); snap.Err != nil {
		t.Fatalf("Err = %v, want nil for wrapped cancellation", snap.Err)
	}
}

func TestStore_DatasetsReplacedWholesale(t *testing.T) {
	var s Store

	before := time.Now()
	s.SetDates([]string{"2025-06-01", "2025-05-31"})
	s.SetDates([]string{"2025-06-02"})

	snap := s.Snapshot()
	if len(snap.Dates) != 1 || snap.Dates[0] != "2025-06-02" {
		t.Fatalf("Dates = %v, want wholesale replacement", snap.Dates)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Dates[0] = "mutated"
	if snap2 := s.Snapshot(); snap2.Dates[0] != "2025-06-02" {
		t.Fatalf("Snapshot should clone dates; got %q", snap2.Dates[0])
	}

	s.SetScheduler(&research.SchedulerStatus{Status: "running", Jobs: []research.Job{{ID: "daily_update"}}})
	snap = s.Snapshot()
	snap.Scheduler.Jobs[0].ID = "mutated"
	if snap2 := s.Snapshot(); snap2.Scheduler.Jobs[0].ID != "daily_update" {
		t.Fatalf("Snapshot should clone scheduler jobs; got %q", snap2.Scheduler.Jobs[0].ID)
	}

	s.SetStats(&research.StatsSummary{TypeCounts: map[string]int{"clinical": 3}})
	snap = s.Snapshot()
	snap.Stats.TypeCounts["clinical"] = 99
	if snap2 := s.Snapshot(); snap2.Stats.TypeCounts["clinical"] != 3 {
		t.Fatalf("Snapshot should clone stats counts; got %d", snap2.Stats.TypeCounts["clinical"])
	}
}

func TestStore_SelectDateUsesSessionCache(t *testing.T) {
	var s Store

	s.SetAnalysis(&research.AnalysisBundle{Date: "2025-05-31", Clinical: "trials"})
	snap := s.Snapshot()
	if snap.SelectedDate != "2025-05-31" || snap.Selected == nil || snap.Selected.Clinical != "trials" {
		t.Fatalf("snapshot after SetAnalysis = %#v, want selection", snap)
	}

	s.SelectDate("2025-06-01")
	snap = s.Snapshot()
	if snap.SelectedDate != "2025-06-01" || snap.Selected != nil {
		t.Fatalf("snapshot for unfetched date = %#v, want empty selection", snap)
	}

	s.SelectDate("2025-05-31")
	snap = s.Snapshot()
	if snap.Selected == nil || snap.Selected.Clinical != "trials" {
		t.Fatalf("snapshot for cached date = %#v, want cached bundle", snap)
	}
}

func TestPhaseString(t *testing.T) {
	cases := []struct {
		phase Phase
		want  string
	}{
		{PhaseInitializing, "initializing"},
		{PhaseReady, "ready"},
		{PhaseTerminated, "terminated"},
		{Phase(42), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.phase.String(); got != tc.want {
			t.Fatalf("Phase(%d).String() = %q, want %q", tc.phase, got, tc.want)
		}
	}
}
