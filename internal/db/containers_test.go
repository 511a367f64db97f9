//go:build integration

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// statements splits a fixture script into single statements.
func statements(t *testing.T, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	var out []string
	for _, stmt := range strings.Split(string(data), ";\n") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func TestPostgresExtraction(t *testing.T) {
	if testing.Short() {
		t.Skip("requires Docker")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("shop"),
		postgres.WithUsername("umlgen"),
		postgres.WithPassword("umlgen"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	for _, stmt := range statements(t, "postgres.sql") {
		_, err := conn.Exec(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, conn.Close(ctx))

	s, err := Extract(ctx, url, Options{Logger: zap.NewNop()})
	require.NoError(t, err)
	verifyShop(t, s)

	orders, _ := s.Table("orders")
	status, _ := orders.Column("status")
	assert.Equal(t, "order_status", status.Type)
	assert.Equal(t, []string{"pending", "paid", "shipped"}, status.EnumValues)

	users, _ := s.Table("users")
	id, _ := users.Column("id")
	assert.True(t, id.AutoIncrement)
}

func TestMySQLExtraction(t *testing.T) {
	if testing.Short() {
		t.Skip("requires Docker")
	}
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8.4",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "umlgen",
				"MYSQL_DATABASE":      "shop",
			},
			WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "3306")
	require.NoError(t, err)
	dsn := fmt.Sprintf("root:umlgen@tcp(%s:%s)/shop", host, port.Port())

	conn, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	// The port opens before the server accepts logins.
	require.Eventually(t, func() bool { return conn.PingContext(ctx) == nil }, time.Minute, time.Second)
	for _, stmt := range statements(t, "mysql.sql") {
		_, err := conn.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	s, err := Extract(ctx, "mysql://"+dsn, Options{Logger: zap.NewNop()})
	require.NoError(t, err)
	verifyShop(t, s)

	orders, _ := s.Table("orders")
	status, _ := orders.Column("status")
	assert.Equal(t, []string{"pending", "paid", "shipped"}, status.EnumValues)

	users, _ := s.Table("users")
	id, _ := users.Column("id")
	assert.True(t, id.AutoIncrement)
}
