package bank

import "slices"

// Repository is the read-only, in-memory question bank. It is never mutated
// after construction and is safe for concurrent readers.
type Repository struct {
	all    []Question
	byTier map[Difficulty][]Question
	byID   map[string]int
}

// NewRepository builds a repository from questions in load order. Later
// duplicates of an ID are dropped; Load reports them as skipped rows.
func NewRepository(questions []Question) *Repository {
	r := &Repository{
		all:    make([]Question, 0, len(questions)),
		byTier: make(map[Difficulty][]Question, len(Tiers)),
		byID:   make(map[string]int, len(questions)),
	}
	for _, q := range questions {
		if _, dup := r.byID[q.ID]; dup {
			continue
		}
		r.byID[q.ID] = len(r.all)
		r.all = append(r.all, q)
		r.byTier[q.Difficulty] = append(r.byTier[q.Difficulty], q)
	}
	return r
}

// QuestionsOfDifficulty returns a copy of the questions of tier d in load order.
func (r *Repository) QuestionsOfDifficulty(d Difficulty) []Question {
	return slices.Clone(r.byTier[d])
}

// AllQuestions returns a copy of every question in load order.
func (r *Repository) AllQuestions() []Question {
	return slices.Clone(r.all)
}

// Question looks up a question by ID.
func (r *Repository) Question(id string) (Question, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Question{}, false
	}
	return r.all[i], true
}

// Count returns the number of questions in tier d.
func (r *Repository) Count(d Difficulty) int {
	return len(r.byTier[d])
}

// Len returns the total number of questions.
func (r *Repository) Len() int {
	return len(r.all)
}
