package checker

import "time"

const (
	// ShortTemplateLength is the handle length that is suspicious only alongside other signals.
	ShortTemplateLength = 8
	// PatternTemplateLength is the handle length checked against the letter-digit pattern.
	PatternTemplateLength = 13
)

// Config holds the immutable thresholds used by the extractors, the cohort
// detector and the classifier.
type Config struct {
	// NewAccountAge flags accounts younger than this.
	NewAccountAge time.Duration
	// RecentJoinAge flags members who joined more recently than this.
	RecentJoinAge time.Duration
	// CohortThreshold is the exclusive lower bound on exact-pair cohort size.
	CohortThreshold int
	// WindowInterval is the creation and join proximity used by sliding-window grouping.
	WindowInterval time.Duration
	// WindowMinSize is the exclusive lower bound on sliding-window cohort size.
	WindowMinSize int
	// IgnoreBots skips bot accounts entirely.
	IgnoreBots bool
}

// DefaultConfig returns the default detection thresholds.
func DefaultConfig() Config {
	return Config{
		NewAccountAge:   7 * 24 * time.Hour,
		RecentJoinAge:   30 * 24 * time.Hour,
		CohortThreshold: 5,
		WindowInterval:  24 * time.Hour,
		WindowMinSize:   3,
		IgnoreBots:      true,
	}
}
