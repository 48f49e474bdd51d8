package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Схема создаётся самими бинарями при старте: отдельной миграционной
// обвязки у проекта нет, а create if not exists идемпотентен.
var schemaDDL = []string{
	`create table if not exists parsed_structures (
  id            bigserial primary key,
  created_at    timestamptz not null default now(),
  chat_id       bigint,
  problem_id    text,
  category      text,
  problem_hash  text not null,
  engine        text not null,
  model         text not null,
  structure_json jsonb not null,
  strategy      text,
  valid         boolean not null default false,
  valid_reason  text,
  parse_ms      bigint,
  unique (problem_hash, engine, model)
)`,
	`create index if not exists parsed_structures_created_at_idx
  on parsed_structures (created_at)`,
	`create table if not exists solve_log (
  id          bigserial primary key,
  created_at  timestamptz not null default now(),
  chat_id     bigint,
  source      text,
  mode        text,
  problem_id  text,
  category    text,
  route       text,
  ok          boolean not null,
  guard_code  text,
  answer      text,
  elapsed_us  bigint
)`,
	`create index if not exists solve_log_chat_created_idx
  on solve_log (chat_id, created_at desc)`,
}

// EnsureSchema накатывает таблицы кэша структур и журнала решений.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
