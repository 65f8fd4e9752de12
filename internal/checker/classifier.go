package checker

import (
	"sort"
	"time"

	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"go.uber.org/zap"
)

// ScanOptions selects how a roster is classified.
type ScanOptions struct {
	// Grouping selects the duplicate-cohort mode.
	Grouping enum.Grouping
	// Bulk orders flagged members by cohort so that waves are reviewed together.
	Bulk bool
}

// ScanResult holds the outcome of classifying one roster.
type ScanResult struct {
	Flagged   []*member.Flagged
	Cohorts   *Cohorts
	Total     int
	Skipped   int
	Bots      int
	ScannedAt time.Time
	Options   ScanOptions
}

// Classifier combines per-member signals and cohort membership into flagged members.
type Classifier struct {
	cfg       Config
	blocklist *Blocklist
	detector  *CohortDetector
	logger    *zap.Logger
}

// NewClassifier creates a classifier. A nil blocklist disables the avatar check.
func NewClassifier(cfg Config, blocklist *Blocklist, logger *zap.Logger) *Classifier {
	return &Classifier{
		cfg:       cfg,
		blocklist: blocklist,
		detector:  NewCohortDetector(cfg, logger),
		logger:    logger.Named("classifier"),
	}
}

// Config returns the thresholds used by the classifier.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Classify evaluates every member of the roster against the reference instant.
// A member is flagged when any signal fires. Flagged members keep roster order
// unless bulk mode is requested.
func (c *Classifier) Classify(roster []*member.Record, now time.Time, opts ScanOptions) *ScanResult {
	result := &ScanResult{
		Total:     len(roster),
		ScannedAt: now,
		Options:   opts,
	}

	eligible := make([]*member.Record, 0, len(roster))
	for _, record := range roster {
		switch {
		case !record.Usable():
			result.Skipped++
		case record.Bot && c.cfg.IgnoreBots:
			result.Bots++
		default:
			eligible = append(eligible, record)
		}
	}

	result.Cohorts = c.detector.Detect(eligible, opts.Grouping)

	seen := make(map[uint64]struct{}, len(eligible))
	for _, record := range eligible {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}

		reasons, cohortKey := c.Evaluate(record, now, result.Cohorts)
		if len(reasons) == 0 {
			continue
		}

		flagged, err := member.NewFlagged(record, reasons, cohortKey)
		if err != nil {
			continue
		}
		result.Flagged = append(result.Flagged, flagged)
	}

	if opts.Bulk {
		SortForBulk(result.Flagged, result.Cohorts)
	}

	if result.Skipped > 0 {
		c.logger.Warn("Skipped unusable member records", zap.Int("skipped", result.Skipped))
	}

	c.logger.Info("Classified roster",
		zap.Int("total", result.Total),
		zap.Int("flagged", len(result.Flagged)),
		zap.Int("cohorts", result.Cohorts.Len()),
		zap.String("grouping", opts.Grouping.String()))

	return result
}

// Evaluate returns the reasons that fire for a single member and the key of
// the cohort it belongs to, if any.
func (c *Classifier) Evaluate(record *member.Record, now time.Time, cohorts *Cohorts) (member.Reasons, string) {
	var reasons member.Reasons

	extractSignals(record, now, c.cfg, c.blocklist, &reasons)

	var cohortKey string
	if cohort, ok := cohorts.Lookup(record.ID); ok {
		cohortKey = cohort.Key
		reasons.Add(enum.SignalTypeDuplicateCohort, cohorts.Reason(cohort.Key))
	}

	return reasons, cohortKey
}

// SortForBulk orders flagged members by cohort rank so members of the same
// cohort are adjacent. Members without a cohort go last. The sort is stable.
func SortForBulk(flagged []*member.Flagged, cohorts *Cohorts) {
	rank := func(f *member.Flagged) int {
		if f.CohortKey == "" {
			return int(^uint(0) >> 1)
		}
		if r := cohorts.Rank(f.CohortKey); r >= 0 {
			return r
		}
		return int(^uint(0)>>1) - 1
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		return rank(flagged[i]) < rank(flagged[j])
	})
}
