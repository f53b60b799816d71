package report

import (
	"sort"
	"strings"

	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

// UnassignedExpenseLabel etiqueta para gastos sin tipo de gasto asignado.
const UnassignedExpenseLabel = "Unassigned"

// UnknownCounterpartyLabel etiqueta para ingresos sin contraparte legible.
const UnknownCounterpartyLabel = "Unknown counterparty"

// RowKind clase de fila del estado de resultados.
type RowKind string

const (
	RowKindValue    RowKind = "value"    // monto directo de una categoría
	RowKindSubtotal RowKind = "subtotal" // resta derivada (gross profit, etc.)
)

// Totals totales de un período por categoría P&L.
type Totals struct {
	Revenue               int64
	DirectCosts           int64
	OperatingExpenses     int64
	FinancialOther        int64
	Taxes                 int64
	CategorizedExpenses   int64
	UncategorizedExpenses int64
}

// GrossProfit utilidad bruta: ingresos menos costos directos.
func (t Totals) GrossProfit() int64 { return t.Revenue - t.DirectCosts }

// OperatingResult resultado operativo: utilidad bruta menos gastos operativos.
func (t Totals) OperatingResult() int64 { return t.GrossProfit() - t.OperatingExpenses }

// NetResult resultado neto: resultado operativo menos financieros e impuestos.
func (t Totals) NetResult() int64 { return t.OperatingResult() - t.FinancialOther - t.Taxes }

// StatementRow fila del estado de resultados anual, con comparativo del año anterior.
type StatementRow struct {
	Key          string
	Label        string
	Kind         RowKind
	Current      int64
	Prior        int64
	ShareCurrent Ratio // participación sobre ingresos del período actual
	SharePrior   Ratio
	Delta        Ratio // variación interanual relativa
}

// ExpenseDetailRow detalle de gastos por tipo dentro de una categoría.
type ExpenseDetailRow struct {
	TypeOfExpenseID *int64
	Label           string
	Current         int64
	Prior           int64
	ShareCurrent    Ratio
}

// IncomeDetailRow detalle de ingresos agrupado por contraparte.
type IncomeDetailRow struct {
	CounterpartyName string
	Current          int64
	Prior            int64
}

// AnnualPL estado de resultados anual con comparativo del año anterior.
type AnnualPL struct {
	Year      int
	PriorYear int

	Current Totals
	Prior   Totals

	Rows []StatementRow

	DirectCostDetails       []ExpenseDetailRow
	OperatingExpenseDetails []ExpenseDetailRow
	FinancialOtherDetails   []ExpenseDetailRow
	TaxDetails              []ExpenseDetailRow
	IncomeDetails           []IncomeDetailRow

	// HasUnassignedExpenses indica gastos sin categoría P&L en el año actual;
	// el cliente los muestra como advertencia de datos incompletos.
	HasUnassignedExpenses bool
}

// BuildAnnualPL reduce los asientos de una empresa al estado de resultados del
// año pedido comparado contra el inmediatamente anterior. Los asientos de otros
// años se ignoran. Función pura: no muta entries.
func BuildAnnualPL(entries []*Entry, year int) *AnnualPL {
	priorYear := year - 1

	current := buildTotals(entries, year)
	prior := buildTotals(entries, priorYear)

	pl := &AnnualPL{
		Year:      year,
		PriorYear: priorYear,
		Current:   current,
		Prior:     prior,

		DirectCostDetails:       buildExpenseDetails(entries, entity.PLCategoryDirectCost, year, priorYear, current.Revenue),
		OperatingExpenseDetails: buildExpenseDetails(entries, entity.PLCategoryOperatingExpense, year, priorYear, current.Revenue),
		FinancialOtherDetails:   buildExpenseDetails(entries, entity.PLCategoryFinancialOther, year, priorYear, current.Revenue),
		TaxDetails:              buildExpenseDetails(entries, entity.PLCategoryTax, year, priorYear, current.Revenue),
		IncomeDetails:           buildIncomeDetails(entries, year, priorYear),

		HasUnassignedExpenses: current.UncategorizedExpenses != 0,
	}
	pl.Rows = buildStatementRows(current, prior)

	return pl
}

func buildTotals(entries []*Entry, year int) Totals {
	var t Totals
	for _, e := range entries {
		if e.DocumentYear != year {
			continue
		}
		if e.EntryType == entity.EntryTypeIncome {
			t.Revenue += e.AmountGross
			continue
		}
		if e.ExpensePLCategory == nil {
			t.UncategorizedExpenses += e.AmountGross
			continue
		}
		switch *e.ExpensePLCategory {
		case entity.PLCategoryDirectCost:
			t.DirectCosts += e.AmountGross
		case entity.PLCategoryOperatingExpense:
			t.OperatingExpenses += e.AmountGross
		case entity.PLCategoryFinancialOther:
			t.FinancialOther += e.AmountGross
		case entity.PLCategoryTax:
			t.Taxes += e.AmountGross
		default:
			t.UncategorizedExpenses += e.AmountGross
			continue
		}
		t.CategorizedExpenses += e.AmountGross
	}
	return t
}

func buildStatementRows(current, prior Totals) []StatementRow {
	row := func(key, label string, kind RowKind, cur, pri int64) StatementRow {
		return StatementRow{
			Key:          key,
			Label:        label,
			Kind:         kind,
			Current:      cur,
			Prior:        pri,
			ShareCurrent: RatioOf(cur, current.Revenue),
			SharePrior:   RatioOf(pri, prior.Revenue),
			Delta:        DeltaRatio(cur, pri),
		}
	}

	return []StatementRow{
		row("revenue", "Revenue", RowKindValue, current.Revenue, prior.Revenue),
		row("direct_costs", "Direct Costs", RowKindValue, current.DirectCosts, prior.DirectCosts),
		row("gross_profit", "Gross Profit", RowKindSubtotal, current.GrossProfit(), prior.GrossProfit()),
		row("operating_expenses", "Operating Expenses", RowKindValue, current.OperatingExpenses, prior.OperatingExpenses),
		row("operating_result", "Operating Result", RowKindSubtotal, current.OperatingResult(), prior.OperatingResult()),
		row("financial_other", "Financial / Other", RowKindValue, current.FinancialOther, prior.FinancialOther),
		row("taxes", "Taxes", RowKindValue, current.Taxes, prior.Taxes),
		row("net_profit_loss", "Net Profit / Loss", RowKindSubtotal, current.NetResult(), prior.NetResult()),
	}
}

func buildExpenseDetails(entries []*Entry, category entity.PLCategory, year, priorYear int, currentRevenue int64) []ExpenseDetailRow {
	// Clave de agrupación: id del tipo de gasto; -1 agrupa los sin asignar.
	byType := make(map[int64]*ExpenseDetailRow)

	for _, e := range entries {
		if e.EntryType != entity.EntryTypeExpense {
			continue
		}
		if e.DocumentYear != year && e.DocumentYear != priorYear {
			continue
		}
		if e.ExpensePLCategory == nil || *e.ExpensePLCategory != category {
			continue
		}

		key := int64(-1)
		if e.TypeOfExpenseID != nil {
			key = *e.TypeOfExpenseID
		}
		detail, ok := byType[key]
		if !ok {
			label := UnassignedExpenseLabel
			if e.ExpenseTypeText != nil {
				label = *e.ExpenseTypeText
			}
			detail = &ExpenseDetailRow{TypeOfExpenseID: e.TypeOfExpenseID, Label: label}
			byType[key] = detail
		}
		if e.DocumentYear == year {
			detail.Current += e.AmountGross
		} else {
			detail.Prior += e.AmountGross
		}
	}

	rows := make([]ExpenseDetailRow, 0, len(byType))
	for _, detail := range byType {
		detail.ShareCurrent = RatioOf(detail.Current, currentRevenue)
		rows = append(rows, *detail)
	}
	sortExpenseDetails(rows)
	return rows
}

// sortExpenseDetails ordena por monto actual descendente, desempata por
// comparación de bytes de la etiqueta (sensible a mayúsculas) y por último por
// id numérico con los nil al final.
func sortExpenseDetails(rows []ExpenseDetailRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Current != b.Current {
			return a.Current > b.Current
		}
		if cmp := strings.Compare(a.Label, b.Label); cmp != 0 {
			return cmp < 0
		}
		switch {
		case a.TypeOfExpenseID == nil && b.TypeOfExpenseID == nil:
			return false
		case a.TypeOfExpenseID == nil:
			return false
		case b.TypeOfExpenseID == nil:
			return true
		default:
			return *a.TypeOfExpenseID < *b.TypeOfExpenseID
		}
	})
}

func buildIncomeDetails(entries []*Entry, year, priorYear int) []IncomeDetailRow {
	byCounterparty := make(map[string]*IncomeDetailRow)

	for _, e := range entries {
		if e.EntryType != entity.EntryTypeIncome {
			continue
		}
		if e.DocumentYear != year && e.DocumentYear != priorYear {
			continue
		}

		name := strings.TrimSpace(e.CounterpartyName)
		if name == "" {
			name = UnknownCounterpartyLabel
		}
		detail, ok := byCounterparty[name]
		if !ok {
			detail = &IncomeDetailRow{CounterpartyName: name}
			byCounterparty[name] = detail
		}
		if e.DocumentYear == year {
			detail.Current += e.AmountGross
		} else {
			detail.Prior += e.AmountGross
		}
	}

	rows := make([]IncomeDetailRow, 0, len(byCounterparty))
	for _, detail := range byCounterparty {
		rows = append(rows, *detail)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Current != rows[j].Current {
			return rows[i].Current > rows[j].Current
		}
		return strings.Compare(rows[i].CounterpartyName, rows[j].CounterpartyName) < 0
	})
	return rows
}
