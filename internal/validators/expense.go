package validators

import (
	"context"
	"strconv"
	"strings"

	"github.com/MKhiriev/expense-tracker/models"
)

const (
	FieldTitle    = "title"
	FieldCategory = "category"
	FieldNote     = "note"
	FieldAmount   = "amount"
	FieldSpentAt  = "spent_at"
)

// ExpenseValidator implements [Validator] for models.ExpenseForm.
type ExpenseValidator struct {
}

func NewExpenseValidator() Validator {
	return &ExpenseValidator{}
}

func (v *ExpenseValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ExpenseForm:
		return v.validateExpenseForm(value, fields...)
	case *models.ExpenseForm:
		return v.validateExpenseForm(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ExpenseValidator) validateExpenseForm(form models.ExpenseForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldCategory, FieldNote, FieldAmount, FieldSpentAt}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldTitle:
			if strings.TrimSpace(form.Title) == "" {
				return ErrEmptyTitle
			}
			err = check(form.Title, tagTitle, ErrTitleTooLong)
		case FieldCategory:
			err = check(form.Category, tagCategory, ErrCategoryTooLong)
		case FieldNote:
			err = check(form.Note, tagNote, ErrNoteTooLong)
		case FieldAmount:
			err = check(form.Amount, tagAmount, ErrInvalidAmount)
		case FieldSpentAt:
			if form.SpentAt.IsZero() {
				err = ErrInvalidSpentDate
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseAmount converts a decimal string such as "12.34" or "7" into minor
// units (1234, 700). At most two fractional digits are accepted and the
// result must be positive.
func ParseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "-") || strings.HasPrefix(raw, "+") {
		return 0, ErrInvalidAmount
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, ErrInvalidAmount
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || strings.ContainsAny(frac, "+-") {
		return 0, ErrInvalidAmount
	}

	if units > (1<<63-1-cents)/100 {
		return 0, ErrInvalidAmount
	}

	amount := units*100 + cents
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	return amount, nil
}

// FormatAmount renders minor units as a decimal string with two digits.
func FormatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := strconv.FormatInt(amount%100, 10)
	if len(cents) == 1 {
		cents = "0" + cents
	}
	return sign + strconv.FormatInt(amount/100, 10) + "." + cents
}
