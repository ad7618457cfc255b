package validators

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/expense-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpenseForm() models.ExpenseForm {
	return models.ExpenseForm{
		Title:    "Groceries",
		Category: "food",
		Amount:   1234,
		SpentAt:  time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestExpenseValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(f *models.ExpenseForm)
		wantErr error
	}{
		{name: "valid", modify: func(f *models.ExpenseForm) {}},
		{name: "blank title", modify: func(f *models.ExpenseForm) { f.Title = "   " }, wantErr: ErrEmptyTitle},
		{name: "long title", modify: func(f *models.ExpenseForm) { f.Title = strings.Repeat("t", 101) }, wantErr: ErrTitleTooLong},
		{name: "long category", modify: func(f *models.ExpenseForm) { f.Category = strings.Repeat("c", 51) }, wantErr: ErrCategoryTooLong},
		{name: "long note", modify: func(f *models.ExpenseForm) { f.Note = strings.Repeat("n", 501) }, wantErr: ErrNoteTooLong},
		{name: "zero amount", modify: func(f *models.ExpenseForm) { f.Amount = 0 }, wantErr: ErrInvalidAmount},
		{name: "negative amount", modify: func(f *models.ExpenseForm) { f.Amount = -5 }, wantErr: ErrInvalidAmount},
		{name: "missing date", modify: func(f *models.ExpenseForm) { f.SpentAt = time.Time{} }, wantErr: ErrInvalidSpentDate},
	}

	v := NewExpenseValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validExpenseForm()
			tt.modify(&form)

			err := v.Validate(context.Background(), &form)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpenseValidator_UnsupportedType(t *testing.T) {
	err := NewExpenseValidator().Validate(context.Background(), models.SignupForm{})

	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "12.34", want: 1234},
		{raw: "12.3", want: 1230},
		{raw: "7", want: 700},
		{raw: " 0.05 ", want: 5},
		{raw: ".5", want: 50},
		{raw: "0", wantErr: true},
		{raw: "0.00", wantErr: true},
		{raw: "-1.00", wantErr: true},
		{raw: "+1.00", wantErr: true},
		{raw: "1.234", wantErr: true},
		{raw: "1.", wantErr: true},
		{raw: "1.+5", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1,50", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "92233720368547758.08", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.34", FormatAmount(1234))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "7.00", FormatAmount(700))
	assert.Equal(t, "-1.50", FormatAmount(-150))
}
