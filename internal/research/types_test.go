package research

import (
	"testing"
	"time"
)

func TestParseTimeLayouts(t *testing.T) {
	if parseTime("2025-12-13T10:11:12Z").IsZero() {
		t.Fatalf("parseTime should parse RFC3339")
	}
	if parseTime("2025-12-13T10:11:12.123456").IsZero() {
		t.Fatalf("parseTime should parse zone-less isoformat")
	}
	got := parseTime("2025-12-13 10:11:12")
	if got.IsZero() {
		t.Fatalf("parseTime should parse schedule timestamp")
	}
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 13 {
		t.Fatalf("parseTime = %v, want 2025-12-13", got)
	}
	if !parseTime("").IsZero() {
		t.Fatalf("parseTime on empty should be zero")
	}
	if !parseTime("next tuesday").IsZero() {
		t.Fatalf("parseTime on garbage should be zero")
	}
}

func TestAnalysisBundleSections(t *testing.T) {
	full := AnalysisBundle{Date: "2025-06-01", RecentTrends: "a", Clinical: "b", Research: "c"}
	sections := full.Sections()
	if len(sections) != 3 {
		t.Fatalf("sections len = %d, want 3", len(sections))
	}
	if sections[0].Title != "Recent Trends" || sections[1].Title != "Clinical Trials" || sections[2].Title != "Research Papers" {
		t.Fatalf("section order = %#v", sections)
	}

	partial := AnalysisBundle{Date: "2025-06-01", Clinical: "b"}
	sections = partial.Sections()
	if len(sections) != 1 || sections[0].Title != "Clinical Trials" {
		t.Fatalf("sections = %#v, want clinical only", sections)
	}
	if partial.IsEmpty() {
		t.Fatalf("IsEmpty = true for bundle with content")
	}
	if !(AnalysisBundle{Date: "2025-06-01"}).IsEmpty() {
		t.Fatalf("IsEmpty = false for bundle without content")
	}
}

func TestSchedulerStatusRunning(t *testing.T) {
	if !(SchedulerStatus{Status: "running"}).Running() {
		t.Fatalf("Running = false for running status")
	}
	if (SchedulerStatus{Status: "stopped"}).Running() {
		t.Fatalf("Running = true for stopped status")
	}
	if (SchedulerStatus{}).Running() {
		t.Fatalf("Running = true for empty status")
	}
}

func TestJobParsedNextRun(t *testing.T) {
	if !(Job{}).ParsedNextRun().IsZero() {
		t.Fatalf("ParsedNextRun on empty should be zero")
	}
	job := Job{NextRun: "2025-06-02T00:00:00"}
	if got := job.ParsedNextRun(); got.Hour() != 0 || got.Day() != 2 {
		t.Fatalf("ParsedNextRun = %v, want midnight june 2", got)
	}
}

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{Status: 500, Detail: "boom"}
	if err.Error() != "service returned status 500: boom" {
		t.Fatalf("Error = %q", err.Error())
	}
	err = &ServiceError{Status: 404}
	if err.Error() != "service returned status 404" {
		t.Fatalf("Error = %q", err.Error())
	}
}
