//go:build integration

package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/daylio-dash/daylio-dash/internal/store"
	"github.com/daylio-dash/daylio-dash/internal/store/storetest"
)

var testDSN string

// TestMain uses DAYLIO_TEST_POSTGRES_DSN when set and otherwise starts a
// throwaway PostgreSQL container.
func TestMain(m *testing.M) {
	ctx := context.Background()

	testDSN = os.Getenv("DAYLIO_TEST_POSTGRES_DSN")
	var container testcontainers.Container
	if testDSN == "" {
		c, dsn, err := startPostgres(ctx)
		if err != nil {
			fmt.Printf("Failed to start postgres container: %v\n", err)
			os.Exit(1)
		}
		container, testDSN = c, dsn
	}

	code := m.Run()

	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate postgres container: %v\n", err)
		}
	}
	os.Exit(code)
}

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "daylio",
			"POSTGRES_PASSWORD": "daylio",
			"POSTGRES_DB":       "daylio",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get container port: %w", err)
	}
	dsn := fmt.Sprintf("postgres://daylio:daylio@%s:%s/daylio?sslmode=disable", host, port.Port())
	return container, dsn, nil
}

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	st, err := New(context.Background(), testDSN, zerolog.Nop())
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
