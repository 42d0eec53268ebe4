package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
)

func plans(t *testing.T) []content.Plan {
	t.Helper()
	site, err := content.Load()
	require.NoError(t, err)
	return site.Services.Plans
}

func planIDs(ps []content.Plan) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	all := plans(t)
	tests := map[string][]string{
		"":            {"basic", "professional", "premium"},
		"all":         {"basic", "professional", "premium"},
		"weight-loss": {"basic", "professional"},
		"diabetes":    {"professional", "premium"},
		"pcos":        {"premium"},
		"wellness":    {"basic"},
		"unknown":     {},
	}
	for category, want := range tests {
		require.Equal(t, want, planIDs(Filter(all, category)), "category %q", category)
	}
}

func TestPeriodToggleIsInvolution(t *testing.T) {
	for _, p := range []Period{Monthly, Yearly} {
		require.Equal(t, p, p.Toggle().Toggle())
		require.NotEqual(t, p, p.Toggle())
	}
	require.Equal(t, Monthly, ParsePeriod(""))
	require.Equal(t, Monthly, ParsePeriod("weekly"))
	require.Equal(t, Yearly, ParsePeriod(" YEARLY "))
}

func TestDisplay(t *testing.T) {
	all := plans(t)
	essential := all[0]

	m := Display(essential, Monthly)
	require.Equal(t, 79, m.Amount)
	require.Equal(t, "/month", m.Unit)
	require.Zero(t, m.Savings)

	y := Display(essential, Yearly)
	require.Equal(t, 790, y.Amount)
	require.Equal(t, "/year", y.Unit)
	require.Equal(t, 158, y.Savings)

	require.Equal(t, m, Display(essential, Yearly.Toggle()))
	for _, p := range all {
		require.GreaterOrEqual(t, Savings(p), 0)
	}
}

func TestMatrixAlignsCellsWithColumns(t *testing.T) {
	site, err := content.Load()
	require.NoError(t, err)

	cols, sections := Matrix(site.Services.Plans, site.Services.Comparison)
	require.Len(t, cols, 3)
	require.Len(t, sections, 3)
	video := sections[0].Rows[2]
	require.Equal(t, "Video Calls", video.Name)
	require.Equal(t, []content.Cell{
		{IsFlag: true, Flag: false},
		{IsFlag: true, Flag: true},
		{IsFlag: true, Flag: true},
	}, video.Cells)
}

func TestCategoryCounts(t *testing.T) {
	site, err := content.Load()
	require.NoError(t, err)
	got := CategoryCounts(site.Services.Plans, site.Services.Categories)
	require.Equal(t, CategoryCount{ID: "all", Label: "All Programs", Count: 3}, got[0])
	counts := map[string]int{}
	for _, c := range got[1:] {
		counts[c.ID] = c.Count
	}
	require.Equal(t, map[string]int{"weight-loss": 2, "muscle-gain": 2, "diabetes": 2, "pcos": 1, "wellness": 1}, counts)
}
