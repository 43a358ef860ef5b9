package pg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

func TestApplyDDL_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("schemagen"),
		postgres.WithUsername("schemagen"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, connStr)
	require.NoError(t, err)
	defer db.Close()

	stmts, err := GenerateDDL(salesDocument(t))
	require.NoError(t, err)

	applied, err := ApplyDDL(ctx, db, stmts, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(stmts), applied)

	// повторный прогон: всё уже есть, ошибок нет
	_, err = ApplyDDL(ctx, db, stmts, zap.NewNop())
	require.NoError(t, err)

	var tables int
	err = db.QueryRowContext(ctx,
		`select count(*) from information_schema.tables where table_schema = 'public' and table_name in ('users','customers','orders')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 3, tables)

	var labels int
	err = db.QueryRowContext(ctx,
		`select count(*) from pg_enum e join pg_type t on t.oid = e.enumtypid where t.typname = 'enum_active'`).Scan(&labels)
	require.NoError(t, err)
	assert.Equal(t, 2, labels)

	_, err = db.ExecContext(ctx, `insert into "customers"("id","active") values ('c1','No')`)
	require.NoError(t, err)
}
