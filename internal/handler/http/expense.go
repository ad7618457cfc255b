package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/service"
	"github.com/MKhiriev/expense-tracker/internal/validators"
	"github.com/MKhiriev/expense-tracker/models"
	"github.com/go-chi/chi/v5"
)

type expenseFormPage struct {
	Expense models.Expense
}

type expenseListPage struct {
	Expenses []models.Expense
	Total    int64
}

type expenseDetailsPage struct {
	Expense models.Expense
}

func expenseDetailsPath(expenseID string) string {
	return "/expense/details/" + url.PathEscape(expenseID)
}

func expenseUpdatePath(expenseID string) string {
	return "/expense/update/" + url.PathEscape(expenseID)
}

func (h *Handler) createExpensePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "expense_form", "Create Expense", expenseFormPage{})
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	form, err := expenseFormFromRequest(r)
	if err != nil {
		h.redirectWithFlash(w, r, "/expense/create", flashError, validationMessage(err))
		return
	}

	if _, err = h.services.ExpenseService.Create(r.Context(), userID, form); err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			h.redirectWithFlash(w, r, "/expense/create", flashError, validationMessage(err))
			return
		}
		log.Err(err).Msg("expense creation failed")
		h.renderError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "/expense/show", flashSuccess, msgExpenseCreated)
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	expenses, err := h.services.ExpenseService.List(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("listing expenses failed")
		h.renderError(w, r, err)
		return
	}

	page := expenseListPage{Expenses: expenses}
	for _, e := range expenses {
		page.Total += e.Amount
	}

	h.render(w, r, http.StatusOK, "expense_list", "Show Expenses", page)
}

func (h *Handler) expenseDetails(w http.ResponseWriter, r *http.Request) {
	expense, ok := h.ownExpense(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, "expense_details", "Expense Details", expenseDetailsPage{Expense: expense})
}

func (h *Handler) updateExpensePage(w http.ResponseWriter, r *http.Request) {
	expense, ok := h.ownExpense(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, "expense_form", "Update Expense", expenseFormPage{Expense: expense})
}

// ownExpense loads the {id} expense of the signed-in user. Someone else's
// expense is reported as not found. It renders the error page and returns
// false on failure.
func (h *Handler) ownExpense(w http.ResponseWriter, r *http.Request) (models.Expense, bool) {
	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return models.Expense{}, false
	}

	expense, err := h.services.ExpenseService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("expense lookup failed")
		h.renderError(w, r, err)
		return models.Expense{}, false
	}

	return expense, true
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	expenseID := chi.URLParam(r, "id")

	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	form, err := expenseFormFromRequest(r)
	if err != nil {
		h.redirectWithFlash(w, r, expenseUpdatePath(expenseID), flashError, validationMessage(err))
		return
	}

	if _, err = h.services.ExpenseService.Update(r.Context(), userID, expenseID, form); err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			h.redirectWithFlash(w, r, expenseUpdatePath(expenseID), flashError, validationMessage(err))
			return
		}
		log.Err(err).Str("expense_id", expenseID).Msg("expense update failed")
		h.renderError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, expenseDetailsPath(expenseID), flashSuccess, msgExpenseUpdated)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")

	userID, err := currentUserID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err = h.services.ExpenseService.Delete(r.Context(), userID, expenseID); err != nil {
		logger.FromRequest(r).Err(err).Str("expense_id", expenseID).Msg("expense deletion failed")
		h.renderError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "/expense/show", flashSuccess, msgExpenseDeleted)
}

// expenseFormFromRequest converts the posted form. The amount is entered
// in currency units ("12.50") and the date as YYYY-MM-DD.
func expenseFormFromRequest(r *http.Request) (models.ExpenseForm, error) {
	if err := r.ParseForm(); err != nil {
		return models.ExpenseForm{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	amount, err := validators.ParseAmount(r.PostForm.Get("amount"))
	if err != nil {
		return models.ExpenseForm{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	spentAt, err := time.Parse(time.DateOnly, strings.TrimSpace(r.PostForm.Get("spent_at")))
	if err != nil {
		return models.ExpenseForm{}, fmt.Errorf("%w: %w", ErrInvalidForm, validators.ErrInvalidSpentDate)
	}

	return models.ExpenseForm{
		Title:    r.PostForm.Get("title"),
		Category: r.PostForm.Get("category"),
		Note:     r.PostForm.Get("note"),
		Amount:   amount,
		SpentAt:  spentAt,
	}, nil
}
