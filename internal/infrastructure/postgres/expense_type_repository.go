package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contabilidad-api/internal/domain"
	"github.com/jhoicas/Contabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Contabilidad-api/internal/domain/repository"
)

// Asegura que ExpenseTypeRepo implementa repository.ExpenseTypeRepository.
var _ repository.ExpenseTypeRepository = (*ExpenseTypeRepo)(nil)

// ExpenseTypeRepo implementación del puerto ExpenseTypeRepository sobre PostgreSQL.
type ExpenseTypeRepo struct {
	pool *pgxpool.Pool
}

// NewExpenseTypeRepository construye el adaptador de persistencia para tipos de gasto.
func NewExpenseTypeRepository(pool *pgxpool.Pool) *ExpenseTypeRepo {
	return &ExpenseTypeRepo{pool: pool}
}

// Create persiste el tipo con el siguiente sort_order al final del catálogo.
// Devuelve domain.ErrDuplicate si el texto normalizado ya existe.
func (r *ExpenseTypeRepo) Create(expenseType *entity.ExpenseType) error {
	query := `
		INSERT INTO expense_types (text, normalized_text, pl_category, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM expense_types), $4, $5)
		RETURNING id, sort_order`
	err := r.pool.QueryRow(context.Background(), query,
		expenseType.Text, expenseType.NormalizedText, string(expenseType.PLCategory),
		expenseType.CreatedAt, expenseType.UpdatedAt,
	).Scan(&expenseType.ID, &expenseType.SortOrder)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de gasto por ID.
func (r *ExpenseTypeRepo) GetByID(id int64) (*entity.ExpenseType, error) {
	query := `
		SELECT id, text, normalized_text, pl_category, sort_order, created_at, updated_at
		FROM expense_types WHERE id = $1`
	var et entity.ExpenseType
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&et.ID, &et.Text, &et.NormalizedText, &et.PLCategory, &et.SortOrder,
		&et.CreatedAt, &et.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense type: %w", err)
	}
	return &et, nil
}

// List devuelve el catálogo ordenado por sort_order ascendente.
func (r *ExpenseTypeRepo) List() ([]*entity.ExpenseType, error) {
	query := `
		SELECT id, text, normalized_text, pl_category, sort_order, created_at, updated_at
		FROM expense_types ORDER BY sort_order ASC, id ASC`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list expense types: %w", err)
	}
	defer rows.Close()

	var list []*entity.ExpenseType
	for rows.Next() {
		var et entity.ExpenseType
		if err := rows.Scan(&et.ID, &et.Text, &et.NormalizedText, &et.PLCategory, &et.SortOrder, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense type: %w", err)
		}
		list = append(list, &et)
	}
	return list, rows.Err()
}

// Delete borra el tipo y resecuencia los restantes a sort_order denso 1..N,
// en una sola transacción.
func (r *ExpenseTypeRepo) Delete(id int64) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmd, err := tx.Exec(ctx, `DELETE FROM expense_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrExpenseTypeNotFound
	}

	resequence := `
		UPDATE expense_types et
		SET sort_order = ranked.new_order, updated_at = $1
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY sort_order ASC, id ASC) AS new_order
			FROM expense_types
		) ranked
		WHERE et.id = ranked.id AND et.sort_order <> ranked.new_order`
	if _, err := tx.Exec(ctx, resequence, time.Now()); err != nil {
		return fmt.Errorf("resequence expense types: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Resequence asigna sort_order 1..N siguiendo el orden de orderedIDs,
// en una sola transacción.
func (r *ExpenseTypeRepo) Resequence(orderedIDs []int64) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	for position, id := range orderedIDs {
		cmd, err := tx.Exec(ctx,
			`UPDATE expense_types SET sort_order = $2, updated_at = $3 WHERE id = $1`,
			id, position+1, now,
		)
		if err != nil {
			return fmt.Errorf("resequence expense type %d: %w", id, err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrExpenseTypeNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
