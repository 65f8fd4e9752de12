package checker

import (
	"fmt"
	"sort"
	"time"

	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

// Cohorts is the result of duplicate-cohort detection over one roster.
// Every member appears in at most one cohort.
type Cohorts struct {
	kind     enum.Grouping
	list     []*member.Cohort
	reasons  map[string]string
	rank     map[string]int
	byMember map[uint64]*member.Cohort
}

func newCohorts(kind enum.Grouping) *Cohorts {
	return &Cohorts{
		kind:     kind,
		reasons:  make(map[string]string),
		rank:     make(map[string]int),
		byMember: make(map[uint64]*member.Cohort),
	}
}

// add registers a cohort and its reason message. Members already assigned keep their first cohort.
func (c *Cohorts) add(cohort *member.Cohort, reason string) {
	c.list = append(c.list, cohort)
	c.reasons[cohort.Key] = reason

	for _, record := range cohort.Members {
		if _, ok := c.byMember[record.ID]; !ok {
			c.byMember[record.ID] = cohort
		}
	}
}

// finalize fixes the cohort order and records each cohort's rank.
func (c *Cohorts) finalize(less func(a, b *member.Cohort) bool) {
	sort.SliceStable(c.list, func(i, j int) bool {
		return less(c.list[i], c.list[j])
	})

	for i, cohort := range c.list {
		c.rank[cohort.Key] = i
	}
}

// Kind returns the grouping mode that produced these cohorts.
func (c *Cohorts) Kind() enum.Grouping {
	if c == nil {
		return enum.GroupingNone
	}
	return c.kind
}

// Lookup returns the cohort a member belongs to.
func (c *Cohorts) Lookup(memberID uint64) (*member.Cohort, bool) {
	if c == nil {
		return nil, false
	}

	cohort, ok := c.byMember[memberID]
	return cohort, ok
}

// Reason returns the reason message reported for members of the cohort.
func (c *Cohorts) Reason(key string) string {
	if c == nil {
		return ""
	}
	return c.reasons[key]
}

// Rank returns the position of the cohort in List, or -1 when unknown.
func (c *Cohorts) Rank(key string) int {
	if c == nil {
		return -1
	}

	rank, ok := c.rank[key]
	if !ok {
		return -1
	}

	return rank
}

// List returns all cohorts in reporting order.
func (c *Cohorts) List() []*member.Cohort {
	if c == nil {
		return nil
	}
	return c.list
}

// Len returns the number of cohorts.
func (c *Cohorts) Len() int {
	if c == nil {
		return 0
	}
	return len(c.list)
}

// Members returns the number of members assigned to any cohort.
func (c *Cohorts) Members() int {
	if c == nil {
		return 0
	}
	return len(c.byMember)
}

// CohortDetector groups members whose creation and join instants are suspiciously close.
type CohortDetector struct {
	cfg    Config
	logger *zap.Logger
}

// NewCohortDetector creates a detector using the given thresholds.
func NewCohortDetector(cfg Config, logger *zap.Logger) *CohortDetector {
	return &CohortDetector{
		cfg:    cfg,
		logger: logger.Named("cohort_detector"),
	}
}

// Detect groups the roster using the requested mode. GroupingNone yields no cohorts.
func (d *CohortDetector) Detect(roster []*member.Record, grouping enum.Grouping) *Cohorts {
	var cohorts *Cohorts

	switch grouping {
	case enum.GroupingExactPair:
		cohorts = d.exactPair(roster)
	case enum.GroupingSlidingWindow:
		cohorts = d.slidingWindow(roster)
	case enum.GroupingNone:
		return newCohorts(enum.GroupingNone)
	default:
		d.logger.Warn("Unknown grouping mode, skipping cohort detection",
			zap.String("grouping", grouping.String()))
		return newCohorts(enum.GroupingNone)
	}

	d.logger.Debug("Detected cohorts",
		zap.String("grouping", grouping.String()),
		zap.Int("cohorts", cohorts.Len()),
		zap.Int("members", cohorts.Members()))

	return cohorts
}

// exactPair buckets members by their UTC creation day and join day. Members
// who joined on the day they signed up are not bucketed.
func (d *CohortDetector) exactPair(roster []*member.Record) *Cohorts {
	cohorts := newCohorts(enum.GroupingExactPair)

	type bucket struct {
		created time.Time
		joined  time.Time
		members []*member.Record
	}
	buckets := make(map[string]*bucket)
	seen := make(map[uint64]struct{})

	for _, record := range roster {
		if !record.Usable() || !record.HasJoinTime() || record.CreatedAt.IsZero() {
			continue
		}
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}

		createdDay := truncateDay(record.CreatedAt)
		joinedDay := truncateDay(*record.JoinedAt)
		if createdDay.Equal(joinedDay) {
			continue
		}

		key := createdDay.Format(dayLayout) + "/" + joinedDay.Format(dayLayout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{created: createdDay, joined: joinedDay}
			buckets[key] = b
		}
		b.members = append(b.members, record)
	}

	for key, b := range buckets {
		if len(b.members) <= d.cfg.CohortThreshold {
			continue
		}

		cohort := &member.Cohort{
			Key:          key,
			Kind:         enum.GroupingExactPair,
			Members:      b.members,
			CreatedStart: b.created,
			JoinedStart:  b.joined,
		}
		cohorts.add(cohort, fmt.Sprintf("Created %s and joined %s in a cohort of %d accounts",
			b.created.Format(dayLayout), b.joined.Format(dayLayout), len(b.members)))
	}

	cohorts.finalize(func(a, b *member.Cohort) bool {
		return a.Key < b.Key
	})

	return cohorts
}

// slidingWindow finds waves of accounts created within one interval of each
// other that also joined within one interval of each other. Members whose own
// creation-to-join gap is shorter than the interval are ignored.
func (d *CohortDetector) slidingWindow(roster []*member.Record) *Cohorts {
	cohorts := newCohorts(enum.GroupingSlidingWindow)
	interval := d.cfg.WindowInterval

	if interval <= 0 {
		d.logger.Warn("Sliding window interval must be positive", zap.Duration("interval", interval))
		return cohorts
	}

	candidates := make([]*member.Record, 0, len(roster))
	seen := make(map[uint64]struct{})
	for _, record := range roster {
		if !record.Usable() || !record.HasJoinTime() || record.CreatedAt.IsZero() {
			continue
		}
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}

		if record.JoinedAt.Sub(record.CreatedAt) < interval {
			continue
		}
		candidates = append(candidates, record)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	for _, created := range splitWindows(candidates, interval, func(r *member.Record) time.Time {
		return r.CreatedAt
	}) {
		sort.SliceStable(created, func(i, j int) bool {
			return created[i].JoinedAt.Before(*created[j].JoinedAt)
		})

		for _, wave := range splitWindows(created, interval, func(r *member.Record) time.Time {
			return *r.JoinedAt
		}) {
			if len(wave) <= d.cfg.WindowMinSize {
				continue
			}

			createdStart := earliest(wave, func(r *member.Record) time.Time { return r.CreatedAt })
			joinedStart := *wave[0].JoinedAt
			cohort := &member.Cohort{
				Key: fmt.Sprintf("%s/%s",
					createdStart.UTC().Format(time.RFC3339), joinedStart.UTC().Format(time.RFC3339)),
				Kind:         enum.GroupingSlidingWindow,
				Members:      wave,
				CreatedStart: createdStart,
				JoinedStart:  joinedStart,
			}
			cohorts.add(cohort, fmt.Sprintf(
				"Created within %s of %s and joined within %s of %s in a wave of %d accounts",
				formatWindow(interval), createdStart.UTC().Format(time.RFC3339),
				formatWindow(interval), joinedStart.UTC().Format(time.RFC3339), len(wave)))
		}
	}

	cohorts.finalize(func(a, b *member.Cohort) bool {
		if a.Size() != b.Size() {
			return a.Size() > b.Size()
		}
		return a.CreatedStart.Before(b.CreatedStart)
	})

	return cohorts
}

// splitWindows partitions records sorted by instant into non-overlapping runs.
// Each run holds records strictly less than interval after the run's first record.
func splitWindows(records []*member.Record, interval time.Duration, instant func(*member.Record) time.Time) [][]*member.Record {
	var windows [][]*member.Record

	for start := 0; start < len(records); {
		anchor := instant(records[start])
		end := start + 1
		for end < len(records) && instant(records[end]).Sub(anchor) < interval {
			end++
		}

		window := make([]*member.Record, end-start)
		copy(window, records[start:end])
		windows = append(windows, window)

		start = end
	}

	return windows
}

func earliest(records []*member.Record, instant func(*member.Record) time.Time) time.Time {
	var result time.Time
	for i, record := range records {
		if t := instant(record); i == 0 || t.Before(result) {
			result = t
		}
	}
	return result
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
