// Package report renders a finished attempt as a plain-text report.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/session"
)

// TimeLayout formats timestamps in reports and result files.
const TimeLayout = "2006-01-02 15:04:05"

// Remark is the qualitative verdict for a percentage.
type Remark int

const (
	RemarkNeedsPractice Remark = iota
	RemarkAdequate
	RemarkExcellent
)

// RemarkFor buckets a weighted percentage: 80 and above is excellent, 60 and
// above adequate.
func RemarkFor(pct float64) Remark {
	switch {
	case pct >= 80:
		return RemarkExcellent
	case pct >= 60:
		return RemarkAdequate
	default:
		return RemarkNeedsPractice
	}
}

// MessageID returns the catalog key for the remark text.
func (r Remark) MessageID() string {
	switch r {
	case RemarkExcellent:
		return "RemarkExcellent"
	case RemarkAdequate:
		return "RemarkAdequate"
	default:
		return "RemarkNeedsPractice"
	}
}

// Trajectory joins tier initials with arrows, e.g. "M → M → H".
func Trajectory(tiers []bank.Difficulty) string {
	parts := make([]string, len(tiers))
	for i, d := range tiers {
		parts[i] = d.Initial()
	}
	return strings.Join(parts, " → ")
}

// Percent formats a percentage with one decimal place.
func Percent(pct float64) string {
	return fmt.Sprintf("%.1f", pct)
}

// TierName returns the localized name of a tier.
func TierName(tr *i18n.Translator, d bank.Difficulty) string {
	switch d {
	case bank.Easy:
		return tr.T("TierEasy")
	case bank.Medium:
		return tr.T("TierMedium")
	case bank.Hard:
		return tr.T("TierHard")
	}
	return string(d)
}

// Timestamp is the time a report describes: completion, else start.
func Timestamp(s *session.Summary) time.Time {
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt
	}
	return s.StartedAt
}

// Text renders the report for s.
func Text(s *session.Summary, tr *i18n.Translator) string {
	var b strings.Builder
	_ = Write(&b, s, tr)
	return b.String()
}

// Write renders the report for s into w. A nil Translator renders English.
func Write(w io.Writer, s *session.Summary, tr *i18n.Translator) error {
	if tr == nil {
		tr = i18n.English()
	}
	var b strings.Builder
	rule := func(n int, ch string) { b.WriteString(strings.Repeat(ch, n) + "\n") }
	section := func(title string) {
		b.WriteString("\n" + title + "\n")
		rule(30, "-")
	}

	b.WriteString(tr.T("ReportTitle") + "\n")
	rule(50, "=")

	section(tr.T("ReportBasicInfo"))
	b.WriteString(tr.Td("ReportParticipant", map[string]any{"Name": s.ParticipantName}) + "\n")
	b.WriteString(tr.Td("ReportSession", map[string]any{"ID": s.SessionID}) + "\n")
	b.WriteString(tr.Td("ReportTime", map[string]any{"Time": Timestamp(s).Format(TimeLayout)}) + "\n")
	b.WriteString(tr.Td("ReportTotal", map[string]any{"Count": s.Total()}) + "\n")
	if s.Exhausted {
		b.WriteString(tr.T("ReportExhausted") + "\n")
	}

	section(tr.T("ReportResults"))
	b.WriteString(tr.Td("ReportScore", map[string]any{"Score": s.Score, "Max": s.MaxScore}) + "\n")
	b.WriteString(tr.Td("ReportPercentage", map[string]any{"Percentage": Percent(s.Percentage)}) + "\n")
	b.WriteString(tr.Td("ReportCorrect", map[string]any{"Correct": s.CorrectCount, "Total": s.Total()}) + "\n")

	section(tr.T("ReportByTier"))
	for _, d := range bank.Tiers {
		ts := s.PerTier[d]
		b.WriteString(tr.Tpd("ReportTierLine", ts.Answered, map[string]any{
			"Tier":    TierName(tr, d),
			"Correct": ts.Correct,
			"Rate":    Percent(ts.Rate()),
		}) + "\n")
	}

	section(tr.T("ReportDetail"))
	for i, a := range s.Answers {
		status := tr.T("ReportStatusIncorrect")
		if a.IsCorrect {
			status = tr.T("ReportStatusCorrect")
		}
		b.WriteString(tr.Td("ReportQuestionLine", map[string]any{
			"Index":  fmt.Sprintf("%2d", i+1),
			"Tier":   TierName(tr, a.Difficulty),
			"Status": status,
		}) + "\n")
		b.WriteString("    " + tr.Td("ReportQuestionID", map[string]any{"ID": a.QuestionID}) + "\n")
		b.WriteString("    " + tr.Td("ReportChosen", map[string]any{"Text": a.ChosenText}) + "\n")
		b.WriteString("    " + tr.Td("ReportCorrectAnswer", map[string]any{"Text": a.CorrectText}) + "\n\n")
	}

	section(tr.T("ReportAnalysis"))
	b.WriteString(tr.T(RemarkFor(s.Percentage).MessageID()) + "\n")

	b.WriteString("\n" + tr.Td("ReportTrajectory", map[string]any{"Path": Trajectory(s.Trajectory())}) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
