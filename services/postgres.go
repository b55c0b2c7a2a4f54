package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"cup-live-service/common"
	"cup-live-service/logger"
)

// querier 抽象 *sql.DB 与 *sql.Tx 的共同查询能力
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgresStores 基于 Postgres 的存储集合实现
type PostgresStores struct {
	db *sql.DB // 事务内为 nil
	q  querier
}

// NewPostgresStores 创建 PostgresStores
func NewPostgresStores(db *sql.DB) *PostgresStores {
	return &PostgresStores{db: db, q: db}
}

func (s *PostgresStores) Matches() MatchStore    { return &postgresMatchStore{q: s.q} }
func (s *PostgresStores) Events() EventStore     { return &postgresEventStore{q: s.q} }
func (s *PostgresStores) Players() PlayerStore   { return &postgresPlayerStore{q: s.q} }
func (s *PostgresStores) Teams() TeamStore       { return &postgresTeamStore{q: s.q} }
func (s *PostgresStores) Referees() RefereeStore { return &postgresRefereeStore{q: s.q} }

// InTx 在单个数据库事务内执行 fn。已在事务内时直接复用当前事务。
func (s *PostgresStores) InTx(ctx context.Context, fn func(Stores) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", common.ErrStoreUnavailable, err)
	}

	txStores := &PostgresStores{q: tx}
	if err := fn(txStores); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Errorf("[Store] Rollback failed: %v (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapPQError(err)
	}
	return nil
}

// mapPQError 将驱动层错误映射到应用错误分类
func mapPQError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", common.ErrConflict, pqErr.Constraint)
		case "23503", "23514": // foreign_key_violation, check_violation
			return fmt.Errorf("%w: %s", common.ErrValidation, pqErr.Constraint)
		case "22P02": // invalid_text_representation：格式非法的 ID 等同于不存在
			return common.ErrNotFound
		}
	}
	return err
}
