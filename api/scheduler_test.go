package api

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/loan-ledger/loans"
	"github.com/warp/loan-ledger/logger"
)

func TestOverdueMonitor_RunOnce(t *testing.T) {
	now := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	ledger := loans.NewLedger(nil, loans.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	for _, in := range []loans.CreateInput{
		{Name: "Ana", Principal: decimal.NewFromInt(100), Schedule: loans.ScheduleWeekly, Installments: 2},
		{Name: "Bia", Principal: decimal.NewFromInt(100), Schedule: loans.ScheduleMonthly, Installments: 2},
		{Name: "Caio", Principal: decimal.NewFromInt(100), Schedule: loans.ScheduleWeekly, Installments: 1},
	} {
		_, err := ledger.Create(ctx, in)
		require.NoError(t, err)
	}
	_, err := ledger.Pay(ctx, "Caio")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	monitor := NewOverdueMonitor(ledger, logger.NewWithWriter(buf))

	assert.Empty(t, monitor.RunOnce(), "nothing is due yet")

	// Ana's first weekly installment (Jan 22) is past; Bia's (Feb 15) is not;
	// Caio is settled.
	now = time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"Ana"}, monitor.RunOnce())
	assert.Contains(t, buf.String(), "client overdue")
	assert.Contains(t, buf.String(), `"outstanding":"100.00"`)
}

func TestOverdueMonitor_StartStop(t *testing.T) {
	ledger := loans.NewLedger(nil)
	monitor := NewOverdueMonitor(ledger, logger.NewWithWriter(&bytes.Buffer{}))
	monitor.CheckInterval = 10 * time.Millisecond

	monitor.Start()
	monitor.Start()
	time.Sleep(30 * time.Millisecond)
	monitor.Stop()
	monitor.Stop()
}

func TestOverdueMonitor_Disabled(t *testing.T) {
	monitor := NewOverdueMonitor(loans.NewLedger(nil), logger.NewWithWriter(&bytes.Buffer{}))
	monitor.CheckInterval = 0

	monitor.Start()
	monitor.Stop()
}
