package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gramtest/gramtest/internal/bank"
	"github.com/gramtest/gramtest/internal/session"
)

const timeLayout = time.RFC3339Nano

type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

const attemptColumns = `sequence, session_id, participant, started_at, finished_at,
	exhausted, score, max_score, percentage, correct_count, total`

func (r *attemptRepo) Save(ctx context.Context, a *Attempt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	seq, err := r.seq.next(ctx, tx)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO attempts (`+attemptColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, a.SessionID, a.Participant,
		a.StartedAt.UTC().Format(timeLayout), a.FinishedAt.UTC().Format(timeLayout),
		a.Exhausted, a.Score, a.MaxScore, a.Percentage, a.CorrectCount, a.Total,
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO answers
		(attempt_id, position, question_id, difficulty, chosen, correct_text, is_correct)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare answers: %w", err)
	}
	defer stmt.Close()

	for i, ans := range a.Answers {
		_, err := stmt.ExecContext(ctx, id, i+1, ans.QuestionID, string(ans.Difficulty),
			ans.ChosenText, ans.CorrectText, ans.IsCorrect)
		if err != nil {
			return fmt.Errorf("save answer %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	a.Sequence = seq
	return nil
}

func (r *attemptRepo) Get(ctx context.Context, sessionID string) (*Attempt, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, `+attemptColumns+` FROM attempts WHERE session_id = ?`, sessionID)

	var id int64
	a, err := scanAttempt(row, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id, difficulty, chosen, correct_text, is_correct
		FROM answers WHERE attempt_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ans  session.AnswerRecord
			diff string
		)
		if err := rows.Scan(&ans.QuestionID, &diff, &ans.ChosenText, &ans.CorrectText, &ans.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		ans.Difficulty = bank.Difficulty(diff)
		a.Answers = append(a.Answers, ans)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return a, nil
}

func (r *attemptRepo) Recent(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	var (
		where []string
		args  []any
	)
	if opts.Participant != "" {
		where = append(where, "participant = ?")
		args = append(args, opts.Participant)
	}

	q := `SELECT id, ` + attemptColumns + ` FROM attempts`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var id int64
		a, err := scanAttempt(rows, &id)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}

func (r *attemptRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM answers`, `DELETE FROM attempts`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("delete attempts: %w", err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(s scanner, id *int64) (*Attempt, error) {
	var (
		a                 Attempt
		started, finished string
	)
	err := s.Scan(id, &a.Sequence, &a.SessionID, &a.Participant, &started, &finished,
		&a.Exhausted, &a.Score, &a.MaxScore, &a.Percentage, &a.CorrectCount, &a.Total)
	if err != nil {
		return nil, err
	}
	if a.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if a.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &a, nil
}
