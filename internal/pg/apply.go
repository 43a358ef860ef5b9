package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// коды, при которых объект уже существует
const (
	codeDuplicateObject = "42710"
	codeDuplicateTable  = "42P07"
)

// ApplyDDL выполняет statements по порядку. Ожидается idempotent DDL;
// "уже существует" пропускаем, остальное — ошибка с номером statement'а.
func ApplyDDL(ctx context.Context, db *sql.DB, stmts []string, log *zap.Logger) (applied int, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	for i, stmt := range stmts {
		sqlText := strings.TrimSpace(stmt)
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			// pgx/stdlib возвращает *pgconn.PgError
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && (pgErr.Code == codeDuplicateObject || pgErr.Code == codeDuplicateTable) {
				log.Debug("DDL skipped (already exists)",
					zap.Int("statement", i),
					zap.String("object", pgErr.ConstraintName),
					zap.String("message", strings.TrimSpace(pgErr.Message)))
				continue
			}
			return applied, fmt.Errorf("DDL statement %d failed: %w", i, err)
		}
		applied++
	}
	log.Info("DDL applied", zap.Int("statements", len(stmts)), zap.Int("executed", applied))
	return applied, nil
}
