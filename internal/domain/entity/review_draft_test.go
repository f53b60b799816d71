package entity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
)

func i64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

// validIncomeDraft borrador completo que pasa la validación de ingreso.
func validIncomeDraft() entity.ReviewDraft {
	return entity.ReviewDraft{
		UploadID:            "u-1",
		DocumentDate:        "2025-03-10",
		CounterpartyName:    "Cliente ACME",
		BookingText:         "Factura de servicios de marzo",
		AmountGross:         125_000,
		PaymentReceivedDate: strPtr("2025-03-20"),
	}
}

// validExpenseDraft borrador completo que pasa la validación de gasto.
func validExpenseDraft() entity.ReviewDraft {
	return entity.ReviewDraft{
		UploadID:         "u-2",
		DocumentDate:     "2025-04-01",
		CounterpartyName: "Proveedor XYZ",
		BookingText:      "Compra de insumos",
		AmountGross:      40_000,
		TypeOfExpenseID:  i64Ptr(3),
	}
}

// ── DefaultDraft ─────────────────────────────────────────────────────────────

func TestDefaultDraft(t *testing.T) {
	uploadedAt := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	draft := entity.DefaultDraft("u-9", uploadedAt)

	assert.Equal(t, "u-9", draft.UploadID)
	assert.Equal(t, "2025-06-15", draft.DocumentDate)
	assert.Equal(t, entity.PendingExtractionPlaceholder, draft.CounterpartyName)
	assert.Empty(t, draft.BookingText)
	assert.Zero(t, draft.AmountGross)
	assert.Nil(t, draft.AmountNet)
	assert.Nil(t, draft.TypeOfExpenseID)
}

// ── Apply ────────────────────────────────────────────────────────────────────

func TestApply_SoloSobreescribeCamposPresentes(t *testing.T) {
	base := validExpenseDraft()

	next := base.Apply(entity.DraftPatch{
		CounterpartyName: strPtr("Proveedor nuevo"),
		AmountGross:      i64Ptr(55_000),
	})

	assert.Equal(t, "Proveedor nuevo", next.CounterpartyName)
	assert.Equal(t, int64(55_000), next.AmountGross)
	// Los campos ausentes del parche no se tocan.
	assert.Equal(t, base.DocumentDate, next.DocumentDate)
	assert.Equal(t, base.BookingText, next.BookingText)
	assert.Equal(t, base.TypeOfExpenseID, next.TypeOfExpenseID)
	// El original no se muta.
	assert.Equal(t, "Proveedor XYZ", base.CounterpartyName)
}

func TestApply_NullExplicitoLimpiaAnulables(t *testing.T) {
	base := validExpenseDraft()
	base.AmountNet = i64Ptr(34_000)
	base.AmountTax = i64Ptr(6_000)

	next := base.Apply(entity.DraftPatch{
		SetAmountNet:       true, // AmountNet nil => asignar NULL
		SetAmountTax:       true,
		SetTypeOfExpenseID: true,
	})

	assert.Nil(t, next.AmountNet)
	assert.Nil(t, next.AmountTax)
	assert.Nil(t, next.TypeOfExpenseID)
}

func TestApply_SinFlagNoTocaAnulables(t *testing.T) {
	base := validExpenseDraft()
	base.AmountNet = i64Ptr(34_000)

	next := base.Apply(entity.DraftPatch{AmountNet: nil, SetAmountNet: false})

	require.NotNil(t, next.AmountNet)
	assert.Equal(t, int64(34_000), *next.AmountNet)
}

// ── ValidateForCommit ────────────────────────────────────────────────────────

func TestValidateForCommit_IngresoValido(t *testing.T) {
	assert.NoError(t, validIncomeDraft().ValidateForCommit(entity.EntryTypeIncome))
}

func TestValidateForCommit_GastoValido(t *testing.T) {
	assert.NoError(t, validExpenseDraft().ValidateForCommit(entity.EntryTypeExpense))
}

func TestValidateForCommit_IngresoSinFechaDePago(t *testing.T) {
	draft := validIncomeDraft()
	draft.PaymentReceivedDate = nil

	err := draft.ValidateForCommit(entity.EntryTypeIncome)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "paymentReceivedDate", ve.Field)
}

func TestValidateForCommit_IngresoConTipoDeGasto(t *testing.T) {
	draft := validIncomeDraft()
	draft.TypeOfExpenseID = i64Ptr(1)

	err := draft.ValidateForCommit(entity.EntryTypeIncome)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "typeOfExpenseId", ve.Field)
}

func TestValidateForCommit_GastoSinTipoDeGasto(t *testing.T) {
	draft := validExpenseDraft()
	draft.TypeOfExpenseID = nil

	err := draft.ValidateForCommit(entity.EntryTypeExpense)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "typeOfExpenseId", ve.Field)
}

func TestValidateForCommit_GastoConFechaDePago(t *testing.T) {
	draft := validExpenseDraft()
	draft.PaymentReceivedDate = strPtr("2025-04-05")

	err := draft.ValidateForCommit(entity.EntryTypeExpense)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "paymentReceivedDate", ve.Field)
}

func TestValidateForCommit_CamposComunes(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(d *entity.ReviewDraft)
		field   string
	}{
		{"fecha inválida", func(d *entity.ReviewDraft) { d.DocumentDate = "2025-02-31" }, "documentDate"},
		{"fecha con hora", func(d *entity.ReviewDraft) { d.DocumentDate = "2025-02-10T00:00:00" }, "documentDate"},
		{"contraparte vacía", func(d *entity.ReviewDraft) { d.CounterpartyName = "   " }, "counterpartyName"},
		{"contraparte demasiado larga", func(d *entity.ReviewDraft) {
			d.CounterpartyName = strings.Repeat("a", entity.MaxCounterpartyNameLength+1)
		}, "counterpartyName"},
		{"concepto vacío", func(d *entity.ReviewDraft) { d.BookingText = "" }, "bookingText"},
		{"concepto demasiado largo", func(d *entity.ReviewDraft) {
			d.BookingText = strings.Repeat("b", entity.MaxBookingTextLength+1)
		}, "bookingText"},
		{"monto bruto negativo", func(d *entity.ReviewDraft) { d.AmountGross = -1 }, "amountGross"},
		{"monto neto negativo", func(d *entity.ReviewDraft) { d.AmountNet = i64Ptr(-5) }, "amountNet"},
		{"impuesto negativo", func(d *entity.ReviewDraft) { d.AmountTax = i64Ptr(-5) }, "amountTax"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validExpenseDraft()
			tc.mutate(&draft)

			err := draft.ValidateForCommit(entity.EntryTypeExpense)

			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

// ── Fechas ───────────────────────────────────────────────────────────────────

func TestIsDateOnly(t *testing.T) {
	assert.True(t, entity.IsDateOnly("2025-01-31"))
	assert.True(t, entity.IsDateOnly("2024-02-29")) // bisiesto

	assert.False(t, entity.IsDateOnly("2025-02-31")) // fecha imposible
	assert.False(t, entity.IsDateOnly("2023-02-29")) // no bisiesto
	assert.False(t, entity.IsDateOnly("31-01-2025"))
	assert.False(t, entity.IsDateOnly("2025-1-31"))
	assert.False(t, entity.IsDateOnly(""))
}

func TestYearOfDate(t *testing.T) {
	assert.Equal(t, 2025, entity.YearOfDate("2025-12-31"))
	assert.Zero(t, entity.YearOfDate("no-es-fecha"))
}
