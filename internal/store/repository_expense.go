package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/jackc/pgerrcode"
)

// expenseRepository is the PostgreSQL-backed implementation of
// [ExpenseRepository]. Every statement filters on user_id, so a user can
// never read or change another user's expense, even with a valid id.
type expenseRepository struct {
	logger *logger.Logger
	db     DBTX
}

// NewExpenseRepository constructs an [ExpenseRepository] backed by db.
func NewExpenseRepository(db DBTX, logger *logger.Logger) ExpenseRepository {
	return &expenseRepository{
		db:     db,
		logger: logger,
	}
}

func scanExpense(row rowScanner) (models.Expense, error) {
	var expense models.Expense
	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Title,
		&expense.Category,
		&expense.Note,
		&expense.Amount,
		&expense.SpentAt,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	return expense, err
}

func expenseError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrExpenseNotFound
	}

	switch postgresError(err) {
	case pgerrcode.InvalidTextRepresentation:
		return ErrExpenseNotFound
	case pgerrcode.ForeignKeyViolation:
		return ErrUserNotFound
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}

func (e *expenseRepository) CreateExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertExpenseQuery(ctx, expense)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.CreateExpense").Msg("failed to build query")
		return models.Expense{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanExpense(e.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.CreateExpense").Str("user_id", expense.UserID).Msg("error inserting expense")
		return models.Expense{}, expenseError(err)
	}

	return created, nil
}

func (e *expenseRepository) FindExpense(ctx context.Context, userID, expenseID string) (models.Expense, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectExpenseQuery(ctx, userID, expenseID)
	if err != nil {
		return models.Expense{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	expense, err := scanExpense(e.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = expenseError(err)
		if !errors.Is(err, ErrExpenseNotFound) {
			log.Err(err).Str("func", "*expenseRepository.FindExpense").Str("expense_id", expenseID).Msg("error selecting expense")
		}
		return models.Expense{}, err
	}

	return expense, nil
}

func (e *expenseRepository) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListExpensesQuery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.ListExpenses").Str("user_id", userID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0, 16)
	for rows.Next() {
		expense, scanErr := scanExpense(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*expenseRepository.ListExpenses").Str("user_id", userID).Msg("failed to scan expense row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		expenses = append(expenses, expense)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*expenseRepository.ListExpenses").Str("user_id", userID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return expenses, nil
}

// ListExpenseIDs returns the ids of the user's expenses in creation order.
func (e *expenseRepository) ListExpenseIDs(ctx context.Context, userID string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListExpenseIDsQuery(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.ListExpenseIDs").Str("user_id", userID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0, 16)
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		ids = append(ids, id)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return ids, nil
}

func (e *expenseRepository) UpdateExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateExpenseQuery(ctx, expense)
	if err != nil {
		return models.Expense{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanExpense(e.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = expenseError(err)
		if !errors.Is(err, ErrExpenseNotFound) {
			log.Err(err).Str("func", "*expenseRepository.UpdateExpense").Str("expense_id", expense.ID).Msg("error updating expense")
		}
		return models.Expense{}, err
	}

	return updated, nil
}

func (e *expenseRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpenseQuery(ctx, userID, expenseID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.DeleteExpense").Str("expense_id", expenseID).Msg("error deleting expense")
		return expenseError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// DeleteUserExpenses removes every expense owned by userID and returns how
// many were deleted.
func (e *expenseRepository) DeleteUserExpenses(ctx context.Context, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserExpensesQuery(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*expenseRepository.DeleteUserExpenses").Str("user_id", userID).Msg("error deleting expenses")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
