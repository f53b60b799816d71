package ledger

import (
	"context"

	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de asientos atado a esa tx. El cálculo del siguiente número de
// documento y el insert del asiento deben ver el mismo snapshot.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(entryRepo repository.AccountingEntryRepository) error) error
}
