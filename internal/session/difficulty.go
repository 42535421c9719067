package session

import "github.com/gramtest/gramtest/internal/bank"

// ProbeCount is the number of fixed medium questions that open an attempt.
const ProbeCount = 2

// NextDifficulty decides the tier for the question at index (1-based).
//
// Questions 1 and 2 are medium probes. Question 3 is hard when both probes
// were correct, medium when one was, and easy when neither was; any other
// probe count falls back to medium. From question 4 on, the tier moves one
// step from the current tier: up when the last answer was correct, down when
// it was not, saturating at both ends. The current tier is the one that was
// targeted, which differs from the answered question's tier after a fallback.
func NextDifficulty(index int, currentTier bank.Difficulty, correct bool, firstTwo []bool) bank.Difficulty {
	switch {
	case index <= ProbeCount:
		return bank.Medium
	case index == ProbeCount+1:
		if len(firstTwo) != ProbeCount {
			return bank.Medium
		}
		switch countTrue(firstTwo) {
		case 2:
			return bank.Hard
		case 1:
			return bank.Medium
		default:
			return bank.Easy
		}
	}

	if !currentTier.Valid() {
		currentTier = bank.Medium
	}
	if correct {
		return currentTier.Up()
	}
	return currentTier.Down()
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
