package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/i18n"
	"github.com/gramtest/gramtest/internal/session"
)

func rec(id string, d bank.Difficulty, correct bool) session.AnswerRecord {
	chosen := "right " + id
	if !correct {
		chosen = "wrong " + id
	}
	return session.AnswerRecord{
		QuestionID:  id,
		ChosenText:  chosen,
		CorrectText: "right " + id,
		IsCorrect:   correct,
		Difficulty:  d,
	}
}

// sampleSummary: M✓ M✓ H✗ M✓ H✓, score 2+2+0+2+3=9 of 12 (75.0%).
func sampleSummary() *session.Summary {
	start := time.Date(2025, 12, 12, 14, 30, 0, 0, time.UTC)
	st := session.NewSessionState("Ada", "Ada_20251212_abcdef", session.DefaultLength, start)
	st.AnswerHistory = []session.AnswerRecord{
		rec("medium_1", bank.Medium, true),
		rec("medium_2", bank.Medium, true),
		rec("hard_1", bank.Hard, false),
		rec("medium_3", bank.Medium, true),
		rec("hard_2", bank.Hard, true),
	}
	st.FinishedAt = start.Add(5 * time.Minute)
	return session.BuildSummary(st)
}

func TestRemarkFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want Remark
	}{
		{100, RemarkExcellent},
		{80, RemarkExcellent},
		{79.9, RemarkAdequate},
		{60, RemarkAdequate},
		{59.9, RemarkNeedsPractice},
		{0, RemarkNeedsPractice},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RemarkFor(tt.pct), "pct %.1f", tt.pct)
	}
}

func TestTrajectory(t *testing.T) {
	got := Trajectory([]bank.Difficulty{bank.Medium, bank.Medium, bank.Hard, bank.Hard, bank.Medium})
	assert.Equal(t, "M → M → H → H → M", got)
	assert.Equal(t, "", Trajectory(nil))
}

func TestTextEnglish(t *testing.T) {
	out := Text(sampleSummary(), i18n.English())

	for _, want := range []string{
		"English Grammar Test Report",
		"Participant: Ada",
		"Session ID: Ada_20251212_abcdef",
		"Test time: 2025-12-12 14:35:00",
		"Questions: 5",
		"Score: 9/12",
		"Percentage: 75.0%",
		"Correct answers: 4/5",
		"Easy: 0 questions, 0 correct (0.0%)",
		"Medium: 3 questions, 3 correct (100.0%)",
		"Hard: 2 questions, 1 correct (50.0%)",
		"Q 3 [Hard] ✗ wrong",
		"Question ID: hard_1",
		"Your answer: wrong hard_1",
		"Correct answer: right hard_1",
		"Good work! Some topics need more practice.",
		"Difficulty trajectory: M → M → H → M → H",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "ran out")
}

func TestTextChinese(t *testing.T) {
	tr, err := i18n.New("zh", nil)
	require.NoError(t, err)

	out := Text(sampleSummary(), tr)
	assert.Contains(t, out, "英语语法能力测试报告")
	assert.Contains(t, out, "测试者: Ada")
	assert.Contains(t, out, "正确率: 75.0%")
	assert.Contains(t, out, "中等: 3题，答对3题 (100.0%)")
	assert.Contains(t, out, "表现良好！")
}

func TestTextExhausted(t *testing.T) {
	s := sampleSummary()
	s.Exhausted = true
	assert.Contains(t, Text(s, nil), "The question bank ran out")
}

func TestTextEmptyAttempt(t *testing.T) {
	st := session.NewSessionState("Bo", "Bo_1", session.DefaultLength, time.Now())
	out := Text(session.BuildSummary(st), nil)
	assert.Contains(t, out, "Score: 0/0")
	assert.Contains(t, out, "Percentage: 0.0%")
	assert.Contains(t, out, "More practice needed.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 30))
	assert.Equal(t, strings.Repeat("a", 30), Truncate(strings.Repeat("a", 30), 30))
	assert.Equal(t, strings.Repeat("a", 30)+"...", Truncate(strings.Repeat("a", 31), 30))
	assert.Equal(t, "语法...", Truncate("语法测试", 2))
}

func TestDetail(t *testing.T) {
	s := sampleSummary()
	s.Answers[0].ChosenText = strings.Repeat("x", 40)

	rows := Detail(s)
	require.Len(t, rows, 5)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, strings.Repeat("x", 30)+"...", rows[0].Chosen)
	assert.Equal(t, bank.Hard, rows[2].Difficulty)
	assert.False(t, rows[2].IsCorrect)
}

func TestDistribution(t *testing.T) {
	got := Distribution(sampleSummary())
	require.Len(t, got, 3)
	assert.Equal(t, TierShare{Difficulty: bank.Easy}, got[0])
	assert.Equal(t, 3, got[1].Count)
	assert.InDelta(t, 60.0, got[1].Share, 0.001)
	assert.InDelta(t, 40.0, got[2].Share, 0.001)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	s := sampleSummary()

	path, err := Save(dir, s, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_Ada_Ada_20251212_abcdef.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Text(s, nil), string(data))
}
