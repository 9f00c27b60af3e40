package research

import "time"

const serviceTimestampLayout = "2006-01-02 15:04:05"

// AnalysisBundle mirrors the payload returned by /analyses/latest and
// /analyses/{date}. The three sections are markdown produced by the
// service's daily generation run; a section the service has not generated
// yet decodes as an empty string.
type AnalysisBundle struct {
	Date         string `json:"date"`
	RecentTrends string `json:"recent_trends"`
	Clinical     string `json:"clinical"`
	Research     string `json:"research"`
}

// Section is one titled markdown block of an AnalysisBundle.
type Section struct {
	Title string
	Body  string
}

// Sections returns the bundle's non-empty sections in display order.
func (b AnalysisBundle) Sections() []Section {
	all := []Section{
		{Title: "Recent Trends", Body: b.RecentTrends},
		{Title: "Clinical Trials", Body: b.Clinical},
		{Title: "Research Papers", Body: b.Research},
	}
	sections := make([]Section, 0, len(all))
	for _, s := range all {
		if s.Body != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

// IsEmpty reports whether the bundle carries no generated content at all.
func (b AnalysisBundle) IsEmpty() bool {
	return b.RecentTrends == "" && b.Clinical == "" && b.Research == ""
}

// InitialCheck mirrors /scheduler/initial-check: whether today's analyses
// exist and when the next scheduled generation runs.
type InitialCheck struct {
	Message          string `json:"message"`
	NextUpdate       string `json:"next_update"`
	HoursUntilNext   int    `json:"hours_until_next"`
	MinutesUntilNext int    `json:"minutes_until_next"`
	NeedsUpdate      bool   `json:"needs_update"`
	CurrentTime      string `json:"current_time"`
	NextUpdateTime   string `json:"next_update_time"`
}

// ParsedNextUpdate returns the next scheduled update as time.Time when possible.
func (c InitialCheck) ParsedNextUpdate() time.Time {
	return parseTime(c.NextUpdate)
}

// SchedulerStatus mirrors /scheduler/status.
type SchedulerStatus struct {
	Status string `json:"status"`
	Jobs   []Job  `json:"jobs"`
}

// Running reports whether the service's scheduler reported itself running.
func (s SchedulerStatus) Running() bool {
	return s.Status == "running"
}

// Job describes one scheduled job within a status snapshot. NextRun is the
// service's timestamp string and may be empty when no run is scheduled.
type Job struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	NextRun string `json:"next_run"`
	Pending bool   `json:"pending"`
}

// ParsedNextRun returns the job's next run time, or the zero time when the
// service reported none.
func (j Job) ParsedNextRun() time.Time {
	return parseTime(j.NextRun)
}

// StatsSummary mirrors /analyses/stats/summary.
type StatsSummary struct {
	TotalAnalyses int            `json:"total_analyses"`
	UniqueDates   int            `json:"unique_dates"`
	AnalysisTypes []string       `json:"analysis_types"`
	TypeCounts    map[string]int `json:"type_counts"`
	LatestDate    string         `json:"latest_date"`
	Status        string         `json:"status"`
}

// queryRequest is the body for POST /query.
type queryRequest struct {
	Text string `json:"text"`
}

// QueryResult mirrors POST /query responses.
type QueryResult struct {
	Query     string `json:"query"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// ParsedTimestamp returns the answer's timestamp as time.Time when possible.
func (q QueryResult) ParsedTimestamp() time.Time {
	return parseTime(q.Timestamp)
}

// UpdateAck mirrors POST /update-analyses responses. The regeneration is
// queued server-side, so Success only means the request was accepted.
type UpdateAck struct {
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
	Details   string `json:"details"`
}

// parseTime handles the timestamp shapes the service emits: RFC 3339 with
// or without fractional seconds, zone-less ISO 8601 from Python's
// isoformat(), and the scheduler's "2006-01-02 15:04:05" strings. The
// zone-less forms are taken as local time. Unparseable values return the
// zero time.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", serviceTimestampLayout} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
