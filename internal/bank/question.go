package bank

import "fmt"

// OptionCount is the fixed number of choices every question carries.
const OptionCount = 4

// OptionLabels are the letter markers for each option slot.
var OptionLabels = [OptionCount]string{"A", "B", "C", "D"}

// Question is an immutable multiple-choice item.
type Question struct {
	// ID is "{difficulty}_{source row id}", unique across tiers.
	ID           string
	Prompt       string
	Options      [OptionCount]string
	CorrectIndex int
	Difficulty   Difficulty
}

// CorrectText returns the text of the correct option.
func (q Question) CorrectText() string {
	return q.Options[q.CorrectIndex]
}

// IsCorrect compares chosen against the correct option's displayed text.
// Two options with identical text are indistinguishable here.
func (q Question) IsCorrect(chosen string) bool {
	return chosen == q.CorrectText()
}

// QuestionID builds the tier-prefixed identifier for a source row.
func QuestionID(d Difficulty, rowID int) string {
	return fmt.Sprintf("%s_%d", d, rowID)
}
