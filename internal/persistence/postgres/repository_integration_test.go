//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/exercisetracker/internal/domain"
)

func TestRepositoryAppendAndQuery(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("exercise"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, EnsureSchema(ctx, pool))

	repo := NewRepository(pool)

	now := time.Now().UTC()
	user := domain.User{
		ID:        uuid.NewString(),
		Username:  "integration",
		Exercise:  []domain.Entry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, user))

	// Second insert with the same username must map to the duplicate error.
	dup := user
	dup.ID = uuid.NewString()
	require.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicateUsername)

	entries := []domain.Entry{
		{Description: "run", Duration: 30, Date: "2023-01-01"},
		{Description: "swim", Duration: 45, Date: "2023-01-10"},
		{Description: "lift", Duration: 20, Date: "2023-01-05"},
	}
	for _, entry := range entries {
		require.NoError(t, repo.AppendExercise(ctx, user.ID, entry))
	}

	stored, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, entries, stored.Exercise, "append order must survive the jsonb round-trip")

	require.ErrorIs(t, repo.AppendExercise(ctx, uuid.NewString(), entries[0]), domain.ErrUserNotFound)

	refs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, user.ID, refs[0].ID)
	require.Equal(t, "integration", refs[0].Username)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
