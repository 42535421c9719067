package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultySteps(t *testing.T) {
	tests := []struct {
		in       Difficulty
		up, down Difficulty
		weight   int
		initial  string
	}{
		{Easy, Medium, Easy, 1, "E"},
		{Medium, Hard, Easy, 2, "M"},
		{Hard, Hard, Medium, 3, "H"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.up, tt.in.Up())
			assert.Equal(t, tt.down, tt.in.Down())
			assert.Equal(t, tt.weight, tt.in.Weight())
			assert.Equal(t, tt.initial, tt.in.Initial())
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("hard")
	assert.NoError(t, err)
	assert.Equal(t, Hard, d)

	_, err = ParseDifficulty("extreme")
	assert.Error(t, err)
}

func TestParseMarkerPolicy(t *testing.T) {
	p, err := ParseMarkerPolicy("")
	assert.NoError(t, err)
	assert.Equal(t, MarkerLenient, p)

	p, err = ParseMarkerPolicy(" Strict ")
	assert.NoError(t, err)
	assert.Equal(t, MarkerStrict, p)

	_, err = ParseMarkerPolicy("loose")
	assert.Error(t, err)
}

func TestRepositoryDropsDuplicateIDs(t *testing.T) {
	repo := NewRepository([]Question{
		{ID: "easy_1", Prompt: "first", Difficulty: Easy},
		{ID: "easy_1", Prompt: "second", Difficulty: Easy},
	})
	assert.Equal(t, 1, repo.Len())
	q, _ := repo.Question("easy_1")
	assert.Equal(t, "first", q.Prompt)
}
