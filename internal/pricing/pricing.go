// Package pricing filters plans by program category and computes the
// displayed price for a billing period.
package pricing

import (
	"strings"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
)

// Period is a billing period.
type Period string

const (
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// ParsePeriod returns Monthly for anything that is not "yearly".
func ParsePeriod(v string) Period {
	if strings.EqualFold(strings.TrimSpace(v), string(Yearly)) {
		return Yearly
	}
	return Monthly
}

// Toggle returns the other period.
func (p Period) Toggle() Period {
	if p == Yearly {
		return Monthly
	}
	return Yearly
}

// IsYearly reports whether p is the yearly period.
func (p Period) IsYearly() bool { return p == Yearly }

// Unit is the price suffix shown after the amount.
func (p Period) Unit() string {
	if p == Yearly {
		return "/year"
	}
	return "/month"
}

func (p Period) String() string { return string(p) }

// Filter returns the plans in category in their original order. An empty
// category or "all" keeps every plan.
func Filter(plans []content.Plan, category string) []content.Plan {
	category = strings.TrimSpace(category)
	out := make([]content.Plan, 0, len(plans))
	for _, p := range plans {
		if category == "" || strings.EqualFold(category, "all") || p.InCategory(category) {
			out = append(out, p)
		}
	}
	return out
}

// Price is a plan priced for one period.
type Price struct {
	Plan    content.Plan `json:"-"`
	Period  Period       `json:"period"`
	Amount  int          `json:"amount"`
	Unit    string       `json:"unit"`
	Savings int          `json:"savings"`
}

// Savings is the amount saved by paying yearly: monthly*12 - yearly.
func Savings(p content.Plan) int {
	return p.MonthlyPrice*12 - p.YearlyPrice
}

// Display prices plan for period. Savings is only reported for yearly billing.
func Display(plan content.Plan, period Period) Price {
	out := Price{Plan: plan, Period: period, Unit: period.Unit()}
	if period == Yearly {
		out.Amount = plan.YearlyPrice
		out.Savings = Savings(plan)
		return out
	}
	out.Amount = plan.MonthlyPrice
	return out
}

// DisplayAll prices every plan for period.
func DisplayAll(plans []content.Plan, period Period) []Price {
	out := make([]Price, 0, len(plans))
	for _, p := range plans {
		out = append(out, Display(p, period))
	}
	return out
}

// Column is one plan column header of the comparison matrix.
type Column struct {
	ID   string
	Name string
}

// MatrixRow is a comparison row with cells in column order.
type MatrixRow struct {
	Name  string
	Cells []content.Cell
}

// MatrixSection is a titled group of rows.
type MatrixSection struct {
	Category string
	Rows     []MatrixRow
}

// Matrix lays out the comparison sections with one cell per plan column.
func Matrix(plans []content.Plan, sections []content.ComparisonSection) ([]Column, []MatrixSection) {
	cols := make([]Column, 0, len(plans))
	for _, p := range plans {
		cols = append(cols, Column{ID: p.ID, Name: p.Name})
	}
	out := make([]MatrixSection, 0, len(sections))
	for _, sec := range sections {
		ms := MatrixSection{Category: sec.Category}
		for _, row := range sec.Rows {
			mr := MatrixRow{Name: row.Name, Cells: make([]content.Cell, 0, len(cols))}
			for _, c := range cols {
				mr.Cells = append(mr.Cells, row.Cells[c.ID])
			}
			ms.Rows = append(ms.Rows, mr)
		}
		out = append(out, ms)
	}
	return cols, out
}

// CategoryCount is a program category with the number of plans offering it.
type CategoryCount struct {
	ID    string
	Label string
	Count int
}

// CategoryCounts counts plans per category. The first entry is "all".
func CategoryCounts(plans []content.Plan, categories []content.ProgramCategory) []CategoryCount {
	out := make([]CategoryCount, 0, len(categories)+1)
	out = append(out, CategoryCount{ID: "all", Label: "All Programs", Count: len(plans)})
	for _, c := range categories {
		out = append(out, CategoryCount{ID: c.ID, Label: c.Label, Count: len(Filter(plans, c.ID))})
	}
	return out
}
