package results

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/session"
)

func sampleRow(id string) Row {
	return Row{
		SessionID:       id,
		ParticipantName: "Ada Lovelace",
		Timestamp:       time.Date(2025, 12, 12, 14, 30, 5, 0, time.Local),
		Score:           30,
		MaxScore:        42,
		Percentage:      71.4,
		CorrectCount:    14,
		TotalQuestions:  20,
		EasyCount:       4,
		MediumCount:     9,
		HardCount:       7,
	}
}

func assertRowsEqual(t *testing.T, want, got []Row) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp), "row %d timestamp", i)
		w, g := want[i], got[i]
		w.Timestamp, g.Timestamp = time.Time{}, time.Time{}
		assert.Equal(t, w, g, "row %d", i)
	}
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "results.csv")
	s := New(path)

	require.NoError(t, s.Append(sampleRow("a")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, bom), "file starts with BOM")

	lines := strings.Split(strings.TrimSpace(string(data[len(bom):])), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.Equal(t, "a,Ada Lovelace,2025-12-12 14:30:05,30/42,71.4%,14,20,4,9,7", lines[1])
}

func TestRoundTripKeepsPriorRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	s := New(path)

	first, second := sampleRow("first"), sampleRow("second")
	second.ParticipantName = `O"Brien, Pat`
	second.Percentage = 0

	require.NoError(t, s.Append(first))
	rows, err := s.ReadAll()
	require.NoError(t, err)
	assertRowsEqual(t, []Row{first}, rows)

	// A fresh Store on the same file appends after existing rows.
	require.NoError(t, New(path).Append(second))
	rows, err = s.ReadAll()
	require.NoError(t, err)
	assertRowsEqual(t, []Row{first, second}, rows)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(data, bom), "BOM written once")
}

func TestReadAllMissingFile(t *testing.T) {
	rows, err := New(filepath.Join(t.TempDir(), "none.csv")).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadAllMalformed(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"timestamp", "x,y,not a time,1/2,50.0%,1,2,0,2,0"},
		{"score without slash", "x,y,2025-12-12 14:30:05,12,50.0%,1,2,0,2,0"},
		{"score not numeric", "x,y,2025-12-12 14:30:05,a/2,50.0%,1,2,0,2,0"},
		{"percentage", "x,y,2025-12-12 14:30:05,1/2,half,1,2,0,2,0"},
		{"count", "x,y,2025-12-12 14:30:05,1/2,50.0%,one,2,0,2,0"},
		{"missing columns", "x,y,2025-12-12 14:30:05,1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.csv")
			content := strings.Join(Header, ",") + "\n" + tt.row + "\n"
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := New(path).ReadAll()
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReadAllHeaderOnlyAndEmpty(t *testing.T) {
	dir := t.TempDir()

	headerOnly := filepath.Join(dir, "header.csv")
	require.NoError(t, os.WriteFile(headerOnly, append(append([]byte{}, bom...), strings.Join(Header, ",")+"\n"...), 0o644))
	rows, err := New(headerOnly).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	rows, err = New(empty).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRowFromSummary(t *testing.T) {
	st := session.NewSessionState("Ada", "Ada_1", session.DefaultLength, time.Now())
	st.AnswerHistory = []session.AnswerRecord{
		{QuestionID: "medium_1", Difficulty: bank.Medium, IsCorrect: true},
		{QuestionID: "medium_2", Difficulty: bank.Medium, IsCorrect: false},
		{QuestionID: "easy_1", Difficulty: bank.Easy, IsCorrect: true},
	}
	at := time.Date(2025, 12, 12, 9, 0, 0, 123456789, time.Local)

	row := RowFromSummary(session.BuildSummary(st), at)
	assert.Equal(t, "Ada_1", row.SessionID)
	assert.Equal(t, 3, row.Score)
	assert.Equal(t, 5, row.MaxScore)
	assert.Equal(t, 60.0, row.Percentage)
	assert.Equal(t, 2, row.CorrectCount)
	assert.Equal(t, 3, row.TotalQuestions)
	assert.Equal(t, 1, row.EasyCount)
	assert.Equal(t, 2, row.MediumCount)
	assert.Equal(t, 0, row.HardCount)
	assert.Equal(t, 0, row.Timestamp.Nanosecond())
}
