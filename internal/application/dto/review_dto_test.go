package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contabilidad-api/internal/application/dto"
	"github.com/jhoicas/Contabilidad-api/internal/domain"
)

func TestParseDraftPatch_SoloClavesPresentes(t *testing.T) {
	patch, err := dto.ParseDraftPatch([]byte(`{"counterpartyName":"Proveedor XYZ","amountGross":42000}`))

	require.NoError(t, err)
	require.NotNil(t, patch.CounterpartyName)
	assert.Equal(t, "Proveedor XYZ", *patch.CounterpartyName)
	require.NotNil(t, patch.AmountGross)
	assert.Equal(t, int64(42000), *patch.AmountGross)
	// Las claves ausentes no marcan nada.
	assert.Nil(t, patch.DocumentDate)
	assert.False(t, patch.SetAmountNet)
	assert.False(t, patch.SetTypeOfExpenseID)
}

func TestParseDraftPatch_NullExplicitoEnAnulables(t *testing.T) {
	patch, err := dto.ParseDraftPatch([]byte(`{"amountNet":null,"paymentReceivedDate":null,"typeOfExpenseId":null}`))

	require.NoError(t, err)
	// null explícito: la bandera se enciende con valor nil (asignar NULL).
	assert.True(t, patch.SetAmountNet)
	assert.Nil(t, patch.AmountNet)
	assert.True(t, patch.SetPaymentReceivedDate)
	assert.Nil(t, patch.PaymentReceivedDate)
	assert.True(t, patch.SetTypeOfExpenseID)
	assert.Nil(t, patch.TypeOfExpenseID)
	// Sin tocar los demás anulables.
	assert.False(t, patch.SetAmountTax)
}

func TestParseDraftPatch_ValoresAnulablesConValor(t *testing.T) {
	patch, err := dto.ParseDraftPatch([]byte(`{"amountTax":6000,"paymentReceivedDate":"2025-03-20","typeOfExpenseId":3}`))

	require.NoError(t, err)
	require.True(t, patch.SetAmountTax)
	assert.Equal(t, int64(6000), *patch.AmountTax)
	require.True(t, patch.SetPaymentReceivedDate)
	assert.Equal(t, "2025-03-20", *patch.PaymentReceivedDate)
	require.True(t, patch.SetTypeOfExpenseID)
	assert.Equal(t, int64(3), *patch.TypeOfExpenseID)
}

func TestParseDraftPatch_RechazaClaveDesconocida(t *testing.T) {
	_, err := dto.ParseDraftPatch([]byte(`{"documentDate":"2025-01-01","totalAmount":5}`))

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "totalAmount", ve.Field)
}

func TestParseDraftPatch_RechazaCuerpoNoObjeto(t *testing.T) {
	for _, body := range []string{`[]`, `"texto"`, `42`, `no-json`} {
		_, err := dto.ParseDraftPatch([]byte(body))
		ve, ok := domain.AsValidationError(err)
		require.True(t, ok, body)
		assert.Equal(t, "body", ve.Field, body)
	}
}

func TestParseDraftPatch_ValidacionesDeCampo(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"fecha inválida", `{"documentDate":"2025-02-31"}`, "documentDate"},
		{"fecha null no permitida", `{"documentDate":null}`, "documentDate"},
		{"monto bruto negativo", `{"amountGross":-1}`, "amountGross"},
		{"monto bruto null no permitido", `{"amountGross":null}`, "amountGross"},
		{"monto neto negativo", `{"amountNet":-10}`, "amountNet"},
		{"impuesto no numérico", `{"amountTax":"6000"}`, "amountTax"},
		{"fecha de pago inválida", `{"paymentReceivedDate":"20-03-2025"}`, "paymentReceivedDate"},
		{"tipo de gasto cero", `{"typeOfExpenseId":0}`, "typeOfExpenseId"},
		{"tipo de gasto negativo", `{"typeOfExpenseId":-3}`, "typeOfExpenseId"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dto.ParseDraftPatch([]byte(tc.body))
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestParseDraftPatch_CuerpoVacio(t *testing.T) {
	patch, err := dto.ParseDraftPatch([]byte(`{}`))

	require.NoError(t, err)
	assert.Equal(t, false, patch.SetAmountNet)
	assert.Nil(t, patch.CounterpartyName)
}
