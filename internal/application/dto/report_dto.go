package dto

import (
	"github.com/jhoicas/Contabilidad-api/internal/domain/report"
)

// RatioString serializa una razón como string decimal; nil significa indefinida
// (denominador cero). Nunca se emiten NaN ni Inf.
func RatioString(r report.Ratio) *string {
	if !r.Defined {
		return nil
	}
	s := r.Value.String()
	return &s
}

// StatementRowResponse fila del estado de resultados.
type StatementRowResponse struct {
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	Kind         string  `json:"kind"` // value | subtotal
	Current      int64   `json:"current"`
	Prior        int64   `json:"prior"`
	ShareCurrent *string `json:"shareCurrent"` // null = indefinido
	SharePrior   *string `json:"sharePrior"`
	Delta        *string `json:"delta"`
}

// ExpenseDetailRowResponse detalle de gastos por tipo.
type ExpenseDetailRowResponse struct {
	TypeOfExpenseID *int64  `json:"typeOfExpenseId"`
	Label           string  `json:"label"`
	Current         int64   `json:"current"`
	Prior           int64   `json:"prior"`
	ShareCurrent    *string `json:"shareCurrent"`
}

// IncomeDetailRowResponse detalle de ingresos por contraparte.
type IncomeDetailRowResponse struct {
	CounterpartyName string `json:"counterpartyName"`
	Current          int64  `json:"current"`
	Prior            int64  `json:"prior"`
}

// AnnualPLResponse estado de resultados anual con comparativo.
type AnnualPLResponse struct {
	Year      int `json:"year"`
	PriorYear int `json:"priorYear"`

	Rows []StatementRowResponse `json:"rows"`

	DirectCostDetails       []ExpenseDetailRowResponse `json:"directCostDetails"`
	OperatingExpenseDetails []ExpenseDetailRowResponse `json:"operatingExpenseDetails"`
	FinancialOtherDetails   []ExpenseDetailRowResponse `json:"financialOtherDetails"`
	TaxDetails              []ExpenseDetailRowResponse `json:"taxDetails"`
	IncomeDetails           []IncomeDetailRowResponse  `json:"incomeDetails"`

	HasUnassignedExpenses bool `json:"hasUnassignedExpenses"`
}

// NewAnnualPLResponse mapea el estado de resultados de dominio al shape JSON.
func NewAnnualPLResponse(pl *report.AnnualPL) AnnualPLResponse {
	resp := AnnualPLResponse{
		Year:                    pl.Year,
		PriorYear:               pl.PriorYear,
		Rows:                    make([]StatementRowResponse, 0, len(pl.Rows)),
		DirectCostDetails:       newExpenseDetailRows(pl.DirectCostDetails),
		OperatingExpenseDetails: newExpenseDetailRows(pl.OperatingExpenseDetails),
		FinancialOtherDetails:   newExpenseDetailRows(pl.FinancialOtherDetails),
		TaxDetails:              newExpenseDetailRows(pl.TaxDetails),
		IncomeDetails:           newIncomeDetailRows(pl.IncomeDetails),
		HasUnassignedExpenses:   pl.HasUnassignedExpenses,
	}
	for _, row := range pl.Rows {
		resp.Rows = append(resp.Rows, StatementRowResponse{
			Key:          row.Key,
			Label:        row.Label,
			Kind:         string(row.Kind),
			Current:      row.Current,
			Prior:        row.Prior,
			ShareCurrent: RatioString(row.ShareCurrent),
			SharePrior:   RatioString(row.SharePrior),
			Delta:        RatioString(row.Delta),
		})
	}
	return resp
}

func newExpenseDetailRows(rows []report.ExpenseDetailRow) []ExpenseDetailRowResponse {
	out := make([]ExpenseDetailRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ExpenseDetailRowResponse{
			TypeOfExpenseID: row.TypeOfExpenseID,
			Label:           row.Label,
			Current:         row.Current,
			Prior:           row.Prior,
			ShareCurrent:    RatioString(row.ShareCurrent),
		})
	}
	return out
}

func newIncomeDetailRows(rows []report.IncomeDetailRow) []IncomeDetailRowResponse {
	out := make([]IncomeDetailRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, IncomeDetailRowResponse{
			CounterpartyName: row.CounterpartyName,
			Current:          row.Current,
			Prior:            row.Prior,
		})
	}
	return out
}

// YearSummaryResponse resumen de un año del libro.
type YearSummaryResponse struct {
	Year         int   `json:"year"`
	IncomeTotal  int64 `json:"incomeTotal"`
	ExpenseTotal int64 `json:"expenseTotal"`
	NetTotal     int64 `json:"netTotal"`
	EntryCount   int   `json:"entryCount"`
}

// YearlyOverviewResponse resumen por año, del más reciente al más antiguo.
type YearlyOverviewResponse struct {
	Years []YearSummaryResponse `json:"years"`
}

// NewYearlyOverviewResponse mapea el resumen anual de dominio al shape JSON.
func NewYearlyOverviewResponse(years []report.YearSummary) YearlyOverviewResponse {
	resp := YearlyOverviewResponse{Years: make([]YearSummaryResponse, 0, len(years))}
	for _, y := range years {
		resp.Years = append(resp.Years, YearSummaryResponse{
			Year:         y.Year,
			IncomeTotal:  y.IncomeTotal,
			ExpenseTotal: y.ExpenseTotal,
			NetTotal:     y.NetTotal,
			EntryCount:   y.EntryCount,
		})
	}
	return resp
}
