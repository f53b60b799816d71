package report

import (
	"sort"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// YearSummary totales de un año del libro mayor.
type YearSummary struct {
	Year         int
	IncomeTotal  int64
	ExpenseTotal int64
	NetTotal     int64
	EntryCount   int
}

// BuildYearlyOverview reduce los asientos a un resumen por año, del más
// reciente al más antiguo.
func BuildYearlyOverview(entries []*Entry) []YearSummary {
	byYear := make(map[int]*YearSummary)

	for _, e := range entries {
		summary, ok := byYear[e.DocumentYear]
		if !ok {
			summary = &YearSummary{Year: e.DocumentYear}
			byYear[e.DocumentYear] = summary
		}
		if e.EntryType == entity.EntryTypeIncome {
			summary.IncomeTotal += e.AmountGross
		} else {
			summary.ExpenseTotal += e.AmountGross
		}
		summary.EntryCount++
	}

	years := make([]YearSummary, 0, len(byYear))
	for _, summary := range byYear {
		summary.NetTotal = summary.IncomeTotal - summary.ExpenseTotal
		years = append(years, *summary)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year > years[j].Year })
	return years
}
