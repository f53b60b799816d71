package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/report"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// PLReportRenderer genera el PDF del estado de resultados anual.
// La implementación vive en infrastructure/pdf.
type PLReportRenderer interface {
	Render(companyName string, pl *report.AnnualPL) ([]byte, error)
}

// EntriesExporter genera el XLSX del libro de asientos.
// La implementación vive en infrastructure/excel.
type EntriesExporter interface {
	Export(companyName string, entries []*entity.EntrySummary) ([]byte, error)
}

// ReportUseCase reportes de solo lectura sobre el libro: listado de asientos,
// resumen por año y estado de resultados anual con comparativo.
type ReportUseCase struct {
	entryRepo   repository.AccountingEntryRepository
	companyRepo repository.CompanyRepository
	plRenderer  PLReportRenderer
	xlsxExport  EntriesExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(entryRepo repository.AccountingEntryRepository, companyRepo repository.CompanyRepository, plRenderer PLReportRenderer, xlsxExport EntriesExporter) *ReportUseCase {
	return &ReportUseCase{
		entryRepo:   entryRepo,
		companyRepo: companyRepo,
		plRenderer:  plRenderer,
		xlsxExport:  xlsxExport,
	}
}

// ListEntries lista el libro completo de la empresa, más reciente primero.
func (uc *ReportUseCase) ListEntries(companyID int64) (*dto.EntryListResponse, error) {
	summaries, err := uc.entryRepo.ListSummariesByCompany(companyID)
	if err != nil {
		return nil, err
	}
	resp := &dto.EntryListResponse{Items: make([]dto.EntrySummaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		resp.Items = append(resp.Items, summaryToResponse(s))
	}
	return resp, nil
}

// YearlyOverview resume ingresos, gastos y neto por año, del más reciente al
// más antiguo.
func (uc *ReportUseCase) YearlyOverview(companyID int64) (*dto.YearlyOverviewResponse, error) {
	entries, err := uc.entryRepo.ListForReports(companyID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewYearlyOverviewResponse(report.BuildYearlyOverview(entries))
	return &resp, nil
}

// AnnualPL construye el estado de resultados del año pedido comparado contra
// el inmediatamente anterior.
func (uc *ReportUseCase) AnnualPL(companyID int64, year int) (*dto.AnnualPLResponse, error) {
	if err := validateReportYear(year); err != nil {
		return nil, err
	}
	entries, err := uc.entryRepo.ListForReports(companyID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAnnualPLResponse(report.BuildAnnualPL(entries, year))
	return &resp, nil
}

// ExportAnnualPLPDF genera el PDF del estado de resultados anual. Devuelve el
// contenido y el nombre de archivo sugerido.
func (uc *ReportUseCase) ExportAnnualPLPDF(companyID int64, year int) ([]byte, string, error) {
	if err := validateReportYear(year); err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	entries, err := uc.entryRepo.ListForReports(companyID)
	if err != nil {
		return nil, "", err
	}
	content, err := uc.plRenderer.Render(company.Name, report.BuildAnnualPL(entries, year))
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("annual-pl-%d.pdf", year), nil
}

// ExportEntriesXLSX genera el XLSX con el libro completo de la empresa.
func (uc *ReportUseCase) ExportEntriesXLSX(companyID int64) ([]byte, string, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	summaries, err := uc.entryRepo.ListSummariesByCompany(companyID)
	if err != nil {
		return nil, "", err
	}
	content, err := uc.xlsxExport.Export(company.Name, summaries)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("entries-%s.xlsx", time.Now().Format("2006-01-02")), nil
}

func validateReportYear(year int) error {
	if year < 1900 || year > 9999 {
		return domain.NewValidationError("year", "debe ser un año de cuatro dígitos")
	}
	return nil
}

func summaryToResponse(s *entity.EntrySummary) dto.EntrySummaryResponse {
	return dto.EntrySummaryResponse{
		ID:                     s.ID,
		EntryType:              string(s.EntryType),
		DocumentYear:           s.DocumentYear,
		DocumentNumber:         int(s.DocumentNumber),
		DocumentDate:           s.DocumentDate,
		CounterpartyName:       s.CounterpartyName,
		BookingText:            s.BookingText,
		AmountGross:            s.AmountGross,
		AmountNet:              s.AmountNet,
		AmountTax:              s.AmountTax,
		PaymentReceivedDate:    s.PaymentReceivedDate,
		TypeOfExpenseID:        s.TypeOfExpenseID,
		ExpenseTypeText:        s.ExpenseTypeText,
		SourceUploadID:         s.UploadID,
		SourceOriginalFilename: s.SourceOriginalFilename,
		CreatedAt:              s.CreatedAt,
	}
}
