package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/pollgate/internal/adapters/clock"
	"github.com/vncsmyrnk/pollgate/internal/adapters/crypto/secp256k1"
	"github.com/vncsmyrnk/pollgate/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
	"github.com/vncsmyrnk/pollgate/internal/core/ports"
	"github.com/vncsmyrnk/pollgate/internal/core/services"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}
	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}
		content, err := os.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, applyMigrations(db))
	return db
}

func TestLedgerRepository(t *testing.T) {
	db := setupDB(t)
	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		_, err := repo.LoadGateway(ctx)
		assert.ErrorIs(t, err, domain.ErrNotInitialized)

		count, err := repo.LoadPollCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)

		polls, err := repo.LoadPolls(ctx)
		require.NoError(t, err)
		assert.Empty(t, polls)
	})

	t.Run("gateway is written once", func(t *testing.T) {
		gateway := &domain.GatewayConfig{Address: "gw", Hash: "h", PublicKey: []byte{2, 1}}
		require.NoError(t, repo.SaveGateway(ctx, gateway))
		assert.ErrorIs(t, repo.SaveGateway(ctx, gateway), domain.ErrAlreadyInitialized)

		loaded, err := repo.LoadGateway(ctx)
		require.NoError(t, err)
		assert.Equal(t, gateway, loaded)
	})

	t.Run("polls and counter", func(t *testing.T) {
		created := time.Unix(1000, 0).UTC()
		polls := domain.Polls{
			{ID: 0, URI: "ipfs://a", CreatedAt: created, Validity: math.MaxUint64, Tally: domain.Tally{1: 2}, Voted: domain.VoterSet{5: true, 6: true}, VoteCount: 2},
			{ID: 1, URI: "ipfs://b", CreatedAt: created, Validity: 60, Tally: domain.Tally{}, Voted: domain.VoterSet{}},
		}
		require.NoError(t, repo.SavePolls(ctx, polls, 2))

		polls[1].Tally[4] = 1
		polls[1].Voted.Add(9)
		require.NoError(t, repo.SavePolls(ctx, polls, 2))

		count, err := repo.LoadPollCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), count)

		loaded, err := repo.LoadPolls(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, uint64(math.MaxUint64), loaded[0].Validity)
		assert.Equal(t, domain.Tally{1: 2}, loaded[0].Tally)
		assert.Equal(t, domain.Tally{4: 1}, loaded[1].Tally)
		assert.True(t, loaded[1].Voted.Has(9))
		assert.True(t, created.Equal(loaded[0].CreatedAt))
	})
}

func TestLedgerService_OverPostgres(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	signer, err := secp256k1.GenerateSigner()
	require.NoError(t, err)
	clk := clock.NewFixed(time.Unix(1000, 0))
	ledger := services.NewLedgerService(postgres.NewLedgerRepository(db), secp256k1.NewVerifier(), clk, nil)

	require.NoError(t, ledger.Initialize(ctx, ports.InitializeInput{
		GatewayAddress:   "gw",
		GatewayHash:      "h",
		GatewayPublicKey: signer.PublicKey(),
	}))

	signed, err := signer.SignInstruction(domain.CreatePoll{URI: "ipfs://x", Validity: 3600})
	require.NoError(t, err)
	result, err := ledger.Execute(ctx, signed)
	require.NoError(t, err)
	id, _ := result.Attribute("poll_id")
	assert.Equal(t, "0", id)

	clk.Set(time.Unix(1500, 0))
	signed, err = signer.SignInstruction(domain.CastVote{PollID: 0, VoterID: 42, Option: 1})
	require.NoError(t, err)
	_, err = ledger.Execute(ctx, signed)
	require.NoError(t, err)

	_, err = ledger.Execute(ctx, signed)
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	resp, err := ledger.Query(ctx, domain.ResultsQuery{PollID: 0})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultsResponse{Results: domain.Tally{1: 1}}, resp)
}
