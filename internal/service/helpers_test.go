package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/MKhiriev/expense-tracker/internal/mock"
	"github.com/MKhiriev/expense-tracker/internal/store"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fixedIDs returns "id-1", "id-2", ... in order.
type fixedIDs struct {
	n int
}

func (g *fixedIDs) Generate() string {
	g.n++
	return "id-" + strconv.Itoa(g.n)
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}

// expectTransact makes the Transactor mock run the unit of work against the
// given repository mocks and return its error.
func expectTransact(tx *mock.MockTransactor, users *mock.MockUserRepository, expenses *mock.MockExpenseRepository) *gomock.Call {
	return tx.EXPECT().Transact(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn store.TxFunc) error {
			return fn(ctx, store.Repositories{Users: users, Expenses: expenses})
		},
	)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }
