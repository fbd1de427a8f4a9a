package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/loan-ledger/loans"
	"github.com/warp/loan-ledger/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:", "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleClients() []loans.Client {
	return []loans.Client{
		{
			Name:      "Ana",
			Principal: decimal.NewFromInt(1000),
			Total:     decimal.NewFromInt(1100),
			Installments: []loans.Installment{
				{Amount: decimal.NewFromInt(550), DueDate: loans.NewDate(2024, time.February, 15), Paid: true},
				{Amount: decimal.NewFromInt(550), DueDate: loans.NewDate(2024, time.March, 15)},
			},
		},
		{
			Name:      "Bia",
			Principal: decimal.RequireFromString("99.99"),
			Total:     decimal.RequireFromString("99.99"),
			Installments: []loans.Installment{
				{Amount: decimal.RequireFromString("99.99"), DueDate: loans.NewDate(2024, time.February, 29)},
			},
		},
	}
}

func TestStore_LoadMissingSlotIsEmpty(t *testing.T) {
	store := newTestStore(t)

	clients, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.Equal(t, sqlite.DefaultSlot, store.Slot())

	rev, err := store.Revision(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rev)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	want := sampleClients()

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.True(t, want[i].Principal.Equal(got[i].Principal))
		assert.True(t, want[i].Total.Equal(got[i].Total))
		require.Len(t, got[i].Installments, len(want[i].Installments))
		for j := range want[i].Installments {
			assert.True(t, want[i].Installments[j].Amount.Equal(got[i].Installments[j].Amount))
			assert.Equal(t, want[i].Installments[j].DueDate, got[i].Installments[j].DueDate)
			assert.Equal(t, want[i].Installments[j].Paid, got[i].Installments[j].Paid)
		}
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleClients()))
	rev1, err := store.Revision(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, sampleClients()[1:]))
	rev2, err := store.Revision(ctx)
	require.NoError(t, err)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bia", got[0].Name)
	assert.NotEqual(t, rev1, rev2, "each save gets a new revision")

	require.NoError(t, store.Save(ctx, nil))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SlotsAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.db")
	ctx := context.Background()

	a, err := sqlite.New(path, "a")
	require.NoError(t, err)
	defer a.Close()
	b, err := sqlite.New(path, "b")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Save(ctx, sampleClients()))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.db")
	ctx := context.Background()

	store, err := sqlite.New(path, "clientes")
	require.NoError(t, err)
	ledger := loans.NewLedger(store)
	_, err = ledger.Create(ctx, loans.CreateInput{
		Name: "Ana", Principal: decimal.NewFromInt(1000), RatePercent: decimal.NewFromInt(10),
		Schedule: loans.ScheduleMonthly, Installments: 2,
	})
	require.NoError(t, err)
	_, err = ledger.Pay(ctx, "Ana")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = sqlite.New(path, "clientes")
	require.NoError(t, err)
	defer store.Close()

	reopened, err := loans.Open(ctx, store)
	require.NoError(t, err)
	c, ok := reopened.Find("Ana")
	require.True(t, ok)
	assert.True(t, c.Installments[0].Paid)
	assert.False(t, c.Installments[1].Paid)
	assert.True(t, reopened.Totals().Recovered.Equal(decimal.NewFromInt(550)))
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleClients()))
	require.NoError(t, store.Reset(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SetLocationKeepsPlainDates(t *testing.T) {
	store := newTestStore(t)
	store.SetLocation(time.FixedZone("UTC-3", -3*60*60))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleClients()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, loans.NewDate(2024, time.February, 15), got[0].Installments[0].DueDate)
	assert.Equal(t, loans.NewDate(2024, time.February, 29), got[1].Installments[0].DueDate)
}
