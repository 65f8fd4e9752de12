package report

import (
	"strings"

	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/internal/review"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoFlagsMessage is reported when a scan flags nobody.
const NoFlagsMessage = "No suspicious members found."

// Summarizer renders scan and review outcomes as moderator-facing text.
type Summarizer struct {
	printer    *message.Printer
	titleCaser cases.Caser
}

// NewSummarizer creates a summarizer for the given language.
func NewSummarizer(tag language.Tag) *Summarizer {
	return &Summarizer{
		printer:    message.NewPrinter(tag),
		titleCaser: cases.Title(tag),
	}
}

// Summary describes one scan and, when a review ran, its outcome.
func (s *Summarizer) Summary(scan *checker.ScanResult, session *review.SessionResult, auditFiles []string) string {
	var b strings.Builder

	b.WriteString(s.printer.Sprintf("Scanned %d %s", scan.Total, plural(scan.Total, "member", "members")))
	if extras := s.scanExtras(scan); extras != "" {
		b.WriteString(" (" + extras + ")")
	}
	b.WriteString(".\n")

	if len(scan.Flagged) == 0 {
		b.WriteString(NoFlagsMessage)
		return b.String()
	}

	b.WriteString(s.printer.Sprintf("Flagged %d %s.\n", len(scan.Flagged), plural(len(scan.Flagged), "member", "members")))

	if grouping := scan.Options.Grouping; grouping != enum.GroupingNone {
		b.WriteString(s.printer.Sprintf("%s cohorts: %d covering %d %s.\n",
			s.GroupingLabel(grouping), scan.Cohorts.Len(), scan.Cohorts.Members(),
			plural(scan.Cohorts.Members(), "member", "members")))
	}

	if session != nil {
		b.WriteString(s.TallyLine(session.Tally()))
		b.WriteString("\n")
		if session.Aborted {
			b.WriteString("Review stopped after a decision timed out.\n")
		}
	}

	if len(auditFiles) > 0 {
		b.WriteString(s.printer.Sprintf("Audit trail written to %d %s.\n", len(auditFiles), plural(len(auditFiles), "file", "files")))
	}

	return strings.TrimRight(b.String(), "\n")
}

// TallyLine lists the non-zero review outcomes.
func (s *Summarizer) TallyLine(t review.Tally) string {
	parts := make([]string, 0, 6)
	add := func(n int, label string) {
		if n > 0 {
			parts = append(parts, s.printer.Sprintf("%d %s", n, label))
		}
	}

	add(t.Banned, "banned")
	add(t.Kicked, "kicked")
	add(t.Dismissed, "dismissed")
	add(t.TimedOut, "timed out")
	add(t.Failed, "failed")
	add(t.Skipped, "not presented")

	if len(parts) == 0 {
		return "Review: nothing decided."
	}

	return "Review: " + strings.Join(parts, ", ") + "."
}

// GroupingLabel returns a display label such as "Exact Pair".
func (s *Summarizer) GroupingLabel(grouping enum.Grouping) string {
	return s.titleCaser.String(strings.ReplaceAll(grouping.String(), "_", " "))
}

func (s *Summarizer) scanExtras(scan *checker.ScanResult) string {
	var extras []string
	if scan.Bots > 0 {
		extras = append(extras, s.printer.Sprintf("%d %s ignored", scan.Bots, plural(scan.Bots, "bot", "bots")))
	}
	if scan.Skipped > 0 {
		extras = append(extras, s.printer.Sprintf("%d unreadable %s skipped", scan.Skipped, plural(scan.Skipped, "record", "records")))
	}
	return strings.Join(extras, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
