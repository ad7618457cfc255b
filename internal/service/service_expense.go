package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/models"
)

type expenseService struct {
	expenseRepository store.ExpenseRepository
	ids               IDGenerator

	logger *logger.Logger
}

func NewExpenseService(expenseRepository store.ExpenseRepository, ids IDGenerator, logger *logger.Logger) ExpenseService {
	return &expenseService{
		expenseRepository: expenseRepository,
		ids:               ids,
		logger:            logger,
	}
}

func (s *expenseService) Create(ctx context.Context, userID string, form models.ExpenseForm) (models.Expense, error) {
	log := logger.FromContext(ctx)

	expense, err := s.expenseRepository.CreateExpense(ctx, fromForm(s.ids.Generate(), userID, form))
	if err != nil {
		log.Err(err).Str("func", "*expenseService.Create").Str("user_id", userID).Msg("expense creation failed")
		return models.Expense{}, fmt.Errorf("expense creation failed: %w", err)
	}

	return expense, nil
}

func (s *expenseService) List(ctx context.Context, userID string) ([]models.Expense, error) {
	expenses, err := s.expenseRepository.ListExpenses(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*expenseService.List").Str("user_id", userID).Msg("listing expenses failed")
		return nil, fmt.Errorf("listing expenses failed: %w", err)
	}

	return expenses, nil
}

func (s *expenseService) Get(ctx context.Context, userID, expenseID string) (models.Expense, error) {
	expense, err := s.expenseRepository.FindExpense(ctx, userID, expenseID)
	if err != nil {
		return models.Expense{}, fmt.Errorf("expense search failed: %w", err)
	}

	return expense, nil
}

func (s *expenseService) Update(ctx context.Context, userID, expenseID string, form models.ExpenseForm) (models.Expense, error) {
	log := logger.FromContext(ctx)

	expense, err := s.expenseRepository.UpdateExpense(ctx, fromForm(expenseID, userID, form))
	if err != nil {
		log.Err(err).Str("func", "*expenseService.Update").Str("expense_id", expenseID).Msg("expense update failed")
		return models.Expense{}, fmt.Errorf("expense update failed: %w", err)
	}

	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, userID, expenseID string) error {
	if err := s.expenseRepository.DeleteExpense(ctx, userID, expenseID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*expenseService.Delete").Str("expense_id", expenseID).Msg("expense deletion failed")
		return fmt.Errorf("expense deletion failed: %w", err)
	}

	return nil
}

func fromForm(expenseID, userID string, form models.ExpenseForm) models.Expense {
	return models.Expense{
		ID:       expenseID,
		UserID:   userID,
		Title:    strings.TrimSpace(form.Title),
		Category: strings.TrimSpace(form.Category),
		Note:     strings.TrimSpace(form.Note),
		Amount:   form.Amount,
		SpentAt:  form.SpentAt,
	}
}
