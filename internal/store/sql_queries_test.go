// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/expense-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildSelectExpenseQuery_ScopedToOwner(t *testing.T) {
	query, args, err := buildSelectExpenseQuery(context.Background(), "u1", "e1")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from expenses")
	require.Contains(t, q, "id = $1")
	require.Contains(t, q, "user_id = $2")
	require.Equal(t, []any{"e1", "u1"}, args)

	for _, col := range expenseColumns {
		assert.Contains(t, q, col)
	}
}

func Test_buildUpdateAndDeleteExpense_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	expense := models.Expense{ID: "e1", UserID: "u1", Title: "Lunch", Amount: 1250, SpentAt: time.Now()}

	update, updateArgs, err := buildUpdateExpenseQuery(ctx, expense)
	require.NoError(t, err)
	assert.Contains(t, update, "WHERE id = $")
	assert.Contains(t, update, "AND user_id = $")
	assert.Contains(t, update, "RETURNING id, user_id")
	assert.Contains(t, updateArgs, "u1")
	assert.NotContains(t, update, "SET user_id", "the owner is never updated")

	del, delArgs, err := buildDeleteExpenseQuery(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM expenses WHERE id = $1 AND user_id = $2", del)
	assert.Equal(t, []any{"e1", "u1"}, delArgs)
}

func Test_buildListExpensesQuery_Ordering(t *testing.T) {
	query, args, err := buildListExpensesQuery(context.Background(), "u1")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(query, "ORDER BY spent_at DESC, created_at DESC"), query)
	assert.Equal(t, []any{"u1"}, args)

	ids, _, err := buildListExpenseIDsQuery(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ids, "ORDER BY created_at, id"), ids)
}

func Test_buildInsertExternalUserQuery_IgnoresEmailConflict(t *testing.T) {
	user := models.User{ID: "u1", Username: "alice", Email: "a@x.com", Avatar: models.DefaultAvatar()}

	query, args, err := buildInsertExternalUserQuery(context.Background(), user)
	require.NoError(t, err)

	assert.Contains(t, query, "ON CONFLICT (email) DO NOTHING RETURNING")
	assert.Len(t, args, 7)

	local, _, err := buildInsertUserQuery(context.Background(), user)
	require.NoError(t, err)
	assert.NotContains(t, local, "ON CONFLICT")
}

func Test_buildResetPasswordWithOTPQuery_SingleStatement(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	query, args, err := buildResetPasswordWithOTPQuery(context.Background(), "u1", 48213, "hash", now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "update users set password_hash = $1"), query)
	assert.Contains(t, q, "otp = $")
	assert.Contains(t, q, "otp_expiry > $")
	assert.Contains(t, args, 48213)
	assert.Contains(t, args, "hash")
	assert.Contains(t, args, now)
}

func Test_buildFailedOTPAttemptQuery(t *testing.T) {
	query, args, err := buildFailedOTPAttemptQuery(context.Background(), "u1", 5)
	require.NoError(t, err)

	assert.Contains(t, query, "otp_attempts = otp_attempts + 1")
	assert.Contains(t, query, "CASE WHEN otp_attempts + 1 >= $")
	assert.Contains(t, query, "otp IS NOT NULL")
	assert.True(t, strings.HasSuffix(query, "RETURNING otp_attempts"), query)
	assert.Equal(t, []any{5, 5, "u1"}, args)
}

func Test_buildClearExpiredOTPsQuery(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	query, args, err := buildClearExpiredOTPsQuery(context.Background(), now)
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE otp_expiry <= $")
	assert.Equal(t, now, args[len(args)-1])
}
