//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/osrs-price-tracker/internal/store"
	domain "github.com/donaldgifford/osrs-price-tracker/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("opt_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, store.WithPoolSize(4))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func ptr[T any](v T) *T { return &v }

func seedItems(t *testing.T, sess store.Session, items ...domain.Item) {
	t.Helper()
	for i := range items {
		require.NoError(t, sess.UpsertItem(context.Background(), &items[i]))
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_MigrateIdempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestSession_CatalogLookups(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	sess, err := s.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Release()

	seedItems(t, sess,
		domain.Item{ID: 1289, Name: "Rune sword", Value: 32000},
		domain.Item{ID: 1277, Name: "Bronze sword", Value: 26},
		domain.Item{ID: 385, Name: "Shark", Value: 300},
		domain.Item{ID: 50, Name: "100%_safe"},
	)

	ref, ok, err := sess.FindItemByName(ctx, "RUNE SWORD")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1289, ref.ID)
	assert.Equal(t, "Rune sword", ref.Name)

	_, ok, err = sess.FindItemByName(ctx, "Dragon sword")
	require.NoError(t, err)
	assert.False(t, ok)

	ref, ok, err = sess.FindItemByPartialName(ctx, "sword")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1277, ref.ID, "lowest id wins")

	_, ok, err = sess.FindItemByPartialName(ctx, "0%_s")
	require.NoError(t, err)
	assert.True(t, ok, "metacharacters match literally")

	_, ok, err = sess.FindItemByPartialName(ctx, "1_0")
	require.NoError(t, err)
	assert.False(t, ok, "underscore is not a wildcard")
}

func TestSession_UpsertEquipmentIdempotent(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	sess, err := s.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Release()

	seedItems(t, sess, domain.Item{ID: 1289, Name: "Rune sword"})
	require.NoError(t, sess.UpsertPrice(ctx, &domain.PriceSnapshot{
		ItemID: 1289, CurrentPrice: ptr(20000.0), CurrentTrend: domain.TrendNeutral,
	}))

	attrs := &domain.EquipmentAttributes{
		ItemID: 1289,
		Slot:   domain.SlotWeapon,
		EquipmentStats: domain.EquipmentStats{
			StabAcc: ptr(38.0), SlashAcc: ptr(26.0), MeleeStrength: ptr(39.0),
			Weight: ptr(1.8), Speed: ptr(4.0),
		},
	}
	require.NoError(t, sess.UpsertEquipment(ctx, attrs))
	require.NoError(t, sess.UpsertEquipment(ctx, attrs))

	rows, err := s.ListEquipment(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rune sword", rows[0].ItemName)
	require.NotNil(t, rows[0].StabAcc)
	assert.InDelta(t, 38.0, *rows[0].StabAcc, 0)
	assert.Nil(t, rows[0].CrushAcc)
	require.NotNil(t, rows[0].Speed)
	assert.InDelta(t, 4.0, *rows[0].Speed, 0)
}

func TestSession_UpsertEquipmentRequiresItem(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	sess, err := s.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Release()

	err = sess.UpsertEquipment(ctx, &domain.EquipmentAttributes{ItemID: 999, Slot: domain.SlotHead})
	require.Error(t, err)
}

func TestSession_UpsertConsumableEffect(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	sess, err := s.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Release()

	seedItems(t, sess, domain.Item{ID: 385, Name: "Shark"})
	require.NoError(t, sess.UpsertPrice(ctx, &domain.PriceSnapshot{ItemID: 385, CurrentPrice: ptr(800.0)}))

	heal := &domain.ConsumableEffect{
		ItemID: 385, EffectType: domain.EffectHeal, Skill: domain.SkillHitpoints,
		Amount: 20, Bites: 1,
	}

	inserted, err := sess.UpsertConsumableEffect(ctx, heal)
	require.NoError(t, err)
	assert.True(t, inserted)

	heal.Amount = 22
	inserted, err = sess.UpsertConsumableEffect(ctx, heal)
	require.NoError(t, err)
	assert.False(t, inserted)

	rows, err := s.ListConsumables(ctx, store.ConsumableQuery{Priced: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 22.0, rows[0].Amount, 0)
	assert.Equal(t, "Shark", rows[0].ItemName)

	name := "shar"
	rows, err = s.ListConsumables(ctx, store.ConsumableQuery{Name: &name})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSession_PricesAndVolumes(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	sess, err := s.Acquire(ctx)
	require.NoError(t, err)
	defer sess.Release()

	seedItems(t, sess,
		domain.Item{ID: 1, Name: "Cheap"},
		domain.Item{ID: 2, Name: "Dear"},
	)

	p := &domain.PriceSnapshot{ItemID: 2, CurrentPrice: ptr(5000.0), CurrentTrend: domain.TrendPositive}
	require.NoError(t, sess.UpsertPrice(ctx, p))
	assert.False(t, p.FetchedAt.IsZero())

	ok, err := sess.UpdateVolume(ctx, 2, 1234)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sess.UpdateVolume(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, ok, "no price row to attach volume to")

	prices, err := s.ListPrices(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	require.NotNil(t, prices[0].Volume)
	assert.Equal(t, int64(1234), *prices[0].Volume)
	assert.Equal(t, domain.TrendPositive, prices[0].CurrentTrend)

	items, total, err := s.ListItems(ctx, &store.ItemQuery{OrderBy: "price"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Dear", items[0].Name)

	it, err := s.GetItem(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, it.CurrentPrice)
	assert.InDelta(t, 5000.0, *it.CurrentPrice, 0)

	_, err = s.GetItem(ctx, 404)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresStore_JobRuns(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	id, err := s.InsertJobRun(ctx, "prices")
	require.NoError(t, err)
	require.NoError(t, s.CompleteJobRun(ctx, id, domain.JobStatusSucceeded, "", 42))

	_, err = s.InsertJobRun(ctx, "equipment")
	require.NoError(t, err)

	runs, err := s.ListJobRuns(ctx, "prices", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.JobStatusSucceeded, runs[0].Status)
	require.NotNil(t, runs[0].RowsAffected)
	assert.Equal(t, 42, *runs[0].RowsAffected)

	latest, err := s.ListLatestJobRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 2)

	crashed, err := s.RecoverStaleJobRuns(ctx, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, crashed)
}
