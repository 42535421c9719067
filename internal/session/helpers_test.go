package session

import (
	"fmt"
	"time"

	"github.com/gramtest/gramtest/internal/bank"
)

// testRepo builds a bank with the given number of questions per tier. The
// correct option is always the first one.
func testRepo(easy, medium, hard int) *bank.Repository {
	var qs []bank.Question
	add := func(d bank.Difficulty, n int) {
		for i := 1; i <= n; i++ {
			id := bank.QuestionID(d, i)
			qs = append(qs, bank.Question{
				ID:     id,
				Prompt: "prompt " + id,
				Options: [bank.OptionCount]string{
					"right " + id, "wrong one", "wrong two", "wrong three",
				},
				Difficulty: d,
			})
		}
	}
	add(bank.Easy, easy)
	add(bank.Medium, medium)
	add(bank.Hard, hard)
	return bank.NewRepository(qs)
}

var fixedNow = time.Date(2025, 12, 12, 14, 30, 0, 0, time.UTC)

func testController(repo *bank.Repository, seed uint64) *Controller {
	return NewController(repo, "Ada", "Ada_20251212_abcdef", Options{
		Selector: NewSelector(seed),
		Now:      func() time.Time { return fixedNow },
	})
}

// answer fetches the next question and answers it.
func answer(c *Controller, correct bool) (bank.Question, AnswerRecord, error) {
	q, err := c.Next()
	if err != nil {
		return q, AnswerRecord{}, err
	}
	chosen := q.Options[1]
	if correct {
		chosen = q.CorrectText()
	}
	rec, err := c.Submit(chosen)
	if err != nil {
		return q, rec, fmt.Errorf("submit %s: %w", q.ID, err)
	}
	return q, rec, nil
}
