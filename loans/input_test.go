package loans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/loan-ledger/loans"
)

func TestParseCreateInput(t *testing.T) {
	in, err := loans.ParseCreateInput("  Ana  ", "1000", "10,5", "mensal", " 3 ")
	require.NoError(t, err)

	assert.Equal(t, "Ana", in.Name)
	assertDecimal(t, "1000", in.Principal)
	assertDecimal(t, "10.5", in.RatePercent)
	assert.Equal(t, loans.ScheduleMonthly, in.Schedule)
	assert.Equal(t, 3, in.Installments)
}

func TestParseCreateInput_SingleSkipsCount(t *testing.T) {
	in, err := loans.ParseCreateInput("Bia", "250.75", "0", "fixo", "not a number")
	require.NoError(t, err)

	assert.Equal(t, loans.ScheduleSingle, in.Schedule)
	assert.Equal(t, 1, in.Installments)
}

func TestParseCreateInput_Invalid(t *testing.T) {
	tests := []struct {
		name                                    string
		nameV, principal, rate, schedule, count string
		field                                   string
	}{
		{"empty name", "", "100", "5", "weekly", "2", "name"},
		{"principal not a number", "Ana", "abc", "5", "weekly", "2", "principal"},
		{"principal empty", "Ana", "", "5", "weekly", "2", "principal"},
		{"principal infinite", "Ana", "Infinity", "5", "weekly", "2", "principal"},
		{"principal zero", "Ana", "0", "5", "weekly", "2", "principal"},
		{"rate not a number", "Ana", "100", "NaN", "weekly", "2", "rate"},
		{"count not a number", "Ana", "100", "5", "semanal", "two", "installments"},
		{"count zero", "Ana", "100", "5", "semanal", "0", "installments"},
		{"unknown schedule", "Ana", "100", "5", "daily", "2", "schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loans.ParseCreateInput(tt.nameV, tt.principal, tt.rate, tt.schedule, tt.count)
			require.ErrorIs(t, err, loans.ErrInvalidInput)

			var inputErr *loans.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.True(t, loans.IsClientError(err))
		})
	}
}

func TestParseScheduleType(t *testing.T) {
	tests := map[string]loans.ScheduleType{
		"single":  loans.ScheduleSingle,
		"Weekly":  loans.ScheduleWeekly,
		"monthly": loans.ScheduleMonthly,
		"fixo":    loans.ScheduleSingle,
		"semanal": loans.ScheduleWeekly,
		" mensal": loans.ScheduleMonthly,
	}
	for raw, want := range tests {
		got, err := loans.ParseScheduleType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}
