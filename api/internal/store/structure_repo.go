package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
)

var ErrNotFound = sql.ErrNoRows

type StructureRepo struct{ DB *sql.DB }

func NewStructureRepo(db *sql.DB) *StructureRepo { return &StructureRepo{DB: db} }

// StructureRow — то, что чаще всего нужно наверх.
type StructureRow struct {
	ID          int64
	CreatedAt   time.Time
	ChatID      int64
	ProblemID   string
	Category    string
	ProblemHash string
	Engine      string
	Model       string
	Structure   llm.ParsedStructure
	Valid       bool
	ValidReason string
	ParseMS     int64
}

// FindByHash достаёт самую свежую запись по ключу (problem_hash + engine + model).
// Если maxAge > 0 — проверяет "свежесть", иначе игнорирует возраст.
func (r *StructureRepo) FindByHash(ctx context.Context, problemHash, engine, model string, maxAge time.Duration) (*StructureRow, error) {
	const q = `
select id, created_at,
       coalesce(chat_id,0) as chat_id,
       coalesce(problem_id,'') as problem_id,
       coalesce(category,'') as category,
       problem_hash, engine, model,
       structure_json,
       valid, coalesce(valid_reason,'') as valid_reason,
       coalesce(parse_ms,0) as parse_ms
from parsed_structures
where problem_hash = $1 and engine = $2 and model = $3
order by created_at desc
limit 1`
	row := r.DB.QueryRowContext(ctx, q, problemHash, engine, model)

	var (
		id          int64
		ts          time.Time
		chatID      int64
		problemID   string
		category    string
		hash        string
		engName     string
		modelName   string
		js          []byte
		valid       bool
		validReason string
		parseMS     int64
	)
	if err := row.Scan(&id, &ts, &chatID, &problemID, &category, &hash, &engName, &modelName,
		&js, &valid, &validReason, &parseMS); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(ts) > maxAge {
		return nil, ErrNotFound
	}
	var ps llm.ParsedStructure
	if err := json.Unmarshal(js, &ps); err != nil {
		// если JSON поломан — считаем, что не найдено
		return nil, ErrNotFound
	}
	return &StructureRow{
		ID:          id,
		CreatedAt:   ts,
		ChatID:      chatID,
		ProblemID:   problemID,
		Category:    category,
		ProblemHash: hash,
		Engine:      engName,
		Model:       modelName,
		Structure:   ps,
		Valid:       valid,
		ValidReason: validReason,
		ParseMS:     parseMS,
	}, nil
}

// Upsert сохраняет разобранную структуру (валидную или отбракованную).
// Если запись по (problem_hash, engine, model) существует — обновит все поля.
func (r *StructureRepo) Upsert(
	ctx context.Context,
	chatID int64,
	problemID, category, problemHash, engine, model string,
	ps llm.ParsedStructure,
	valid bool,
	reason string,
	parseMS int64,
) error {
	js, _ := json.Marshal(ps)
	const q = `
insert into parsed_structures (
  chat_id, problem_id, category, problem_hash, engine, model,
  structure_json, strategy, valid, valid_reason, parse_ms
) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
on conflict (problem_hash, engine, model) do update
set chat_id = excluded.chat_id,
    problem_id = excluded.problem_id,
    category = excluded.category,
    structure_json = excluded.structure_json,
    strategy = excluded.strategy,
    valid = excluded.valid,
    valid_reason = excluded.valid_reason,
    parse_ms = excluded.parse_ms,
    created_at = now()`
	_, err := r.DB.ExecContext(ctx, q,
		chatID, problemID, category, problemHash, engine, model,
		js, ps.Strategy, valid, reason, parseMS,
	)
	return err
}

// PurgeOlderThan удаляет очень старые записи-кэши, чтобы не раздувать БД.
func (r *StructureRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from parsed_structures where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
