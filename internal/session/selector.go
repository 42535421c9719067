package session

import (
	"math/rand/v2"
	"time"

	"github.com/gramtest/gramtest/internal/bank"
)

// Selector draws unused questions uniformly at random.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector with a deterministic source. A zero seed
// selects a time-based source.
func NewSelector(seed uint64) *Selector {
	if seed == 0 {
		return NewRandomSelector()
	}
	return &Selector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSelector creates a Selector seeded from the clock.
func NewRandomSelector() *Selector {
	now := uint64(time.Now().UnixNano())
	return &Selector{rng: rand.New(rand.NewPCG(now, now>>1))}
}

// Select picks an unused question of the target tier. When that tier has
// none left it falls back to any unused question and reports fallback=true.
// ErrBankExhausted is returned when nothing is left at all.
func (s *Selector) Select(repo *bank.Repository, target bank.Difficulty, used map[string]struct{}) (q bank.Question, fallback bool, err error) {
	if c := unused(repo.QuestionsOfDifficulty(target), used); len(c) > 0 {
		return c[s.rng.IntN(len(c))], false, nil
	}
	if c := unused(repo.AllQuestions(), used); len(c) > 0 {
		return c[s.rng.IntN(len(c))], true, nil
	}
	return bank.Question{}, false, ErrBankExhausted
}

func unused(qs []bank.Question, used map[string]struct{}) []bank.Question {
	out := make([]bank.Question, 0, len(qs))
	for _, q := range qs {
		if _, ok := used[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}
