package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFmtDollars(t *testing.T) {
	require.Equal(t, "$79", FmtDollars(79, "en"))
	require.Equal(t, "$1,490", FmtDollars(1490, "en"))
	require.Equal(t, "-$158", FmtDollars(-158, "en"))
}

func TestFmtCurrency(t *testing.T) {
	require.Equal(t, "$149.00", FmtCurrency(14900, "usd", "en"))
	require.Equal(t, "$1,234.05", FmtCurrency(123405, "USD", "en"))
	require.Equal(t, "-$0.50", FmtCurrency(-50, "USD", "en"))
	require.Equal(t, "¥12,345", FmtCurrency(12345, "JPY", "en"))
}

func TestFmtNumberAndCompact(t *testing.T) {
	require.Equal(t, "2,840", FmtNumber(2840, "en"))
	require.Equal(t, "2,840", FmtNumber(2840, "not a tag"))
	require.Equal(t, "950", FmtCompact(950))
	require.Equal(t, "2.8k", FmtCompact(2840))
	require.Equal(t, "3k", FmtCompact(3000))
	require.Equal(t, "12k", FmtCompact(12345))
}

func TestFmtDate(t *testing.T) {
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Mar 15, 2024", FmtDate(d, "en"))
	require.Equal(t, "2024-03-15", FmtDate(d, "ja"))
	require.Empty(t, FmtDate(time.Time{}, "en"))
}
