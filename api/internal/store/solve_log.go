package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

type SolveLogRepo struct{ DB *sql.DB }

func NewSolveLogRepo(db *sql.DB) *SolveLogRepo { return &SolveLogRepo{DB: db} }

// Insert пишет итог одного прогона конвейера.
// source — откуда пришла задача (bot, api), mode — loopless или llm.
func (r *SolveLogRepo) Insert(ctx context.Context, chatID int64, source, mode, problemID, category string, resp solve.Response, elapsed time.Duration) error {
	var answer sql.NullString
	if resp.Answer != nil {
		answer = sql.NullString{String: *resp.Answer, Valid: true}
	}
	const q = `
insert into solve_log(chat_id, source, mode, problem_id, category, route, ok, guard_code, answer, elapsed_us)
values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.DB.ExecContext(ctx, q,
		chatID, source, mode, problemID, category,
		string(resp.Route), resp.OK, string(resp.GuardCode), answer, elapsed.Microseconds(),
	)
	return err
}

// LogEntry — одна строка журнала, как её видит бот.
type LogEntry struct {
	CreatedAt time.Time
	Route     string
	OK        bool
	GuardCode string
	Answer    string
}

// RecentByChat — последние прогоны чата, свежие сверху.
func (r *SolveLogRepo) RecentByChat(ctx context.Context, chatID int64, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	const q = `
select created_at, route, ok, coalesce(guard_code,''), coalesce(answer,'')
from solve_log
where chat_id = $1
order by created_at desc
limit $2`
	rows, err := r.DB.QueryContext(ctx, q, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.CreatedAt, &e.Route, &e.OK, &e.GuardCode, &e.Answer); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Stats — сводка журнала за период.
type Stats struct {
	Total  int64
	Solved int64
	Halted int64
}

func (r *SolveLogRepo) StatsSince(ctx context.Context, since time.Time) (Stats, error) {
	const q = `
select count(*),
       count(*) filter (where ok),
       count(*) filter (where not ok)
from solve_log
where created_at >= $1`
	var s Stats
	if err := r.DB.QueryRowContext(ctx, q, since).Scan(&s.Total, &s.Solved, &s.Halted); err != nil {
		return Stats{}, err
	}
	return s, nil
}
