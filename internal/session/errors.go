package session

import "errors"

var (
	// ErrBankExhausted means no unused question remains in any tier. The
	// attempt ends with whatever answers were collected.
	ErrBankExhausted = errors.New("question bank exhausted")

	// ErrNoPendingQuestion means Submit was called without a displayed question.
	ErrNoPendingQuestion = errors.New("no pending question")

	// ErrSessionFinished means the attempt has already ended.
	ErrSessionFinished = errors.New("session finished")
)
