package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/loan-ledger/loans"
	"github.com/warp/loan-ledger/loans/store"
)

func TestMemory_EmptyLoad(t *testing.T) {
	clients, err := store.NewMemory().Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestMemory_SaveWritesWireFormat(t *testing.T) {
	mem := store.NewMemory()
	ledger := loans.NewLedger(mem)

	_, err := ledger.Create(context.Background(), loans.CreateInput{
		Name: "Ana", Principal: decimal.NewFromInt(100), Schedule: loans.ScheduleSingle,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, mem.Saves())
	assert.Contains(t, string(mem.Payload()), `"name":"Ana"`)
	assert.Contains(t, string(mem.Payload()), `"parcelas"`)
}

func TestMemory_FailSave(t *testing.T) {
	mem := store.NewMemory()
	mem.FailSave = errors.New("boom")

	err := mem.Save(context.Background(), nil)
	assert.EqualError(t, err, "boom")
	assert.Zero(t, mem.Saves())
}

func TestMemory_LegacyTimestampsReadInLocation(t *testing.T) {
	// GIVEN: a browser slot holding an evening UTC-3 instant
	mem := store.NewMemoryWithPayload([]byte(`[{"nome":"Bia","valor":100,"total":100,"parcelas":[
		{"valor":100,"vencimento":"2024-02-16T01:30:00.000Z","paga":false}]}]`))
	mem.Location = time.FixedZone("UTC-3", -3*60*60)

	// WHEN
	clients, err := mem.Load(context.Background())

	// THEN
	require.NoError(t, err)
	assert.Equal(t, loans.NewDate(2024, time.February, 15), clients[0].Installments[0].DueDate)
}
