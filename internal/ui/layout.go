package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutHistoryListWidth is the width of the date list column in the
	// history view.
	LayoutHistoryListWidth = 16
)

// Rendering limits.
const (
	// MarkdownWrapLimit caps the word-wrap width for rendered analysis
	// markdown regardless of terminal size.
	MarkdownWrapLimit = 110

	// BannerErrorLimit is the maximum length of an error shown in the
	// banner before truncation.
	BannerErrorLimit = 120
)

// Timing constants.
const (
	// UITickInterval drives clock and countdown redraws.
	UITickInterval = time.Second
)

// chromeRows counts the fixed rows above the content area: header bar,
// command bar, and the banner line (blank when nothing to report, so the
// content never reflows).
const chromeRows = 3
