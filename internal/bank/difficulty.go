package bank

import "fmt"

// Difficulty is one of the three question tiers, ordered easy < medium < hard.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Tiers lists every difficulty in ascending order.
var Tiers = []Difficulty{Easy, Medium, Hard}

// Rank returns the 0-based position of d in Tiers, or -1 if d is unknown.
func (d Difficulty) Rank() int {
	switch d {
	case Easy:
		return 0
	case Medium:
		return 1
	case Hard:
		return 2
	}
	return -1
}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	return d.Rank() >= 0
}

// Weight is the number of points a correct answer on this tier is worth.
func (d Difficulty) Weight() int {
	return d.Rank() + 1
}

// Initial returns the upper-case first letter used in trajectory strings.
func (d Difficulty) Initial() string {
	switch d {
	case Easy:
		return "E"
	case Medium:
		return "M"
	case Hard:
		return "H"
	}
	return "?"
}

// Up moves one tier harder, saturating at Hard.
func (d Difficulty) Up() Difficulty {
	r := d.Rank() + 1
	if r >= len(Tiers) {
		r = len(Tiers) - 1
	}
	return Tiers[r]
}

// Down moves one tier easier, saturating at Easy.
func (d Difficulty) Down() Difficulty {
	r := d.Rank() - 1
	if r < 0 {
		r = 0
	}
	return Tiers[r]
}

func (d Difficulty) String() string {
	return string(d)
}

// ParseDifficulty converts a tier name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}
