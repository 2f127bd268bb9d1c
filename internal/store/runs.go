package store

import (
	"database/sql"
	"fmt"
	"time"
)

// 生成记录状态
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusCancelled = "cancelled"
)

// Run 一次短语生成的运行记录（只记录计数，不保存短语）
type Run struct {
	ID          string     `json:"id"`
	WordList    string     `json:"wordList"`
	Theme       string     `json:"theme"`
	Target      int        `json:"target"`
	MaxWords    int        `json:"maxWords"`
	Attempts    int        `json:"attempts"`
	Phrases     int        `json:"phrases"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// RunTotals 运行记录汇总
type RunTotals struct {
	Runs     int `json:"runs"`
	Attempts int `json:"attempts"`
	Phrases  int `json:"phrases"`
}

// CreateRun 创建运行记录
func (s *Store) CreateRun(run Run) error {
	if run.Status == "" {
		run.Status = RunStatusRunning
	}
	_, err := s.db.Exec(`
		INSERT INTO generation_runs (id, word_list, theme, target, max_words, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.WordList, run.Theme, run.Target, run.MaxWords, run.Status, run.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun 写入运行结果
func (s *Store) CompleteRun(id string, attempts, phrases int, status string) error {
	res, err := s.db.Exec(`
		UPDATE generation_runs SET
			attempts = ?,
			phrases = ?,
			status = ?,
			completed_at = ?
		WHERE id = ?
	`, attempts, phrases, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// GetRun 查询单条运行记录
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, word_list, theme, target, max_words, attempts, phrases, status, started_at, completed_at
		FROM generation_runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", id)
		}
		return nil, err
	}
	return run, nil
}

// ListRecentRuns 最近的运行记录，按开始时间倒序
func (s *Store) ListRecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, word_list, theme, target, max_words, attempts, phrases, status, started_at, completed_at
		FROM generation_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Totals 汇总所有运行记录
func (s *Store) Totals() (RunTotals, error) {
	var t RunTotals
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(attempts), 0), COALESCE(SUM(phrases), 0) FROM generation_runs
	`).Scan(&t.Runs, &t.Attempts, &t.Phrases)
	if err != nil {
		return RunTotals{}, fmt.Errorf("failed to query run totals: %w", err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run       Run
		completed sql.NullTime
	)
	if err := row.Scan(
		&run.ID, &run.WordList, &run.Theme, &run.Target, &run.MaxWords,
		&run.Attempts, &run.Phrases, &run.Status, &run.StartedAt, &completed,
	); err != nil {
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		run.CompletedAt = &t
	}
	return &run, nil
}
