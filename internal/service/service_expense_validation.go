package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/expense-tracker/internal/validators"
	"github.com/MKhiriev/expense-tracker/models"
)

// ExpenseValidationService validates expense forms before handing them to
// the wrapped ExpenseService.
type ExpenseValidationService struct {
	inner     ExpenseService
	validator validators.Validator
}

func NewExpenseValidationService() ExpenseServiceWrapper {
	return &ExpenseValidationService{
		validator: validators.NewExpenseValidator(),
	}
}

func (v *ExpenseValidationService) Create(ctx context.Context, userID string, form models.ExpenseForm) (models.Expense, error) {
	if err := v.validator.Validate(ctx, form); err != nil {
		return models.Expense{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Create(ctx, userID, form)
}

func (v *ExpenseValidationService) List(ctx context.Context, userID string) ([]models.Expense, error) {
	return v.inner.List(ctx, userID)
}

func (v *ExpenseValidationService) Get(ctx context.Context, userID, expenseID string) (models.Expense, error) {
	return v.inner.Get(ctx, userID, expenseID)
}

func (v *ExpenseValidationService) Update(ctx context.Context, userID, expenseID string, form models.ExpenseForm) (models.Expense, error) {
	if err := v.validator.Validate(ctx, form); err != nil {
		return models.Expense{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Update(ctx, userID, expenseID, form)
}

func (v *ExpenseValidationService) Delete(ctx context.Context, userID, expenseID string) error {
	return v.inner.Delete(ctx, userID, expenseID)
}

func (v *ExpenseValidationService) Wrap(wrapped ExpenseService) ExpenseService {
	v.inner = wrapped
	return v
}
