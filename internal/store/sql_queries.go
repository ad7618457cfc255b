// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/expense-tracker/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"avatar_file_id",
	"avatar_url",
	"avatar_thumbnail_url",
	"otp",
	"otp_expiry",
	"otp_attempts",
	"created_at",
	"updated_at",
}

var expenseColumns = []string{
	"id",
	"user_id",
	"title",
	"category",
	"note",
	"amount",
	"spent_at",
	"created_at",
	"updated_at",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// ── users ─────────────────────────────────────────────────────────────────────

func insertUser(user models.User) sq.InsertBuilder {
	return psql.Insert(user.TableName()).
		Columns("id", "username", "email", "password_hash", "avatar_file_id", "avatar_url", "avatar_thumbnail_url").
		Values(user.ID, user.Username, user.Email, user.PasswordHash, user.Avatar.FileID, user.Avatar.URL, user.Avatar.ThumbnailURL)
}

func buildInsertUserQuery(ctx context.Context, user models.User) (string, []any, error) {
	return insertUser(user).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildInsertExternalUserQuery is a no-op on an email conflict, so two
// concurrent OAuth callbacks for the same address create one row.
func buildInsertExternalUserQuery(ctx context.Context, user models.User) (string, []any, error) {
	return insertUser(user).
		Suffix("ON CONFLICT (email) DO NOTHING " + returning(userColumns)).
		ToSql()
}

func buildSelectUserQuery(ctx context.Context, column string, value any) (string, []any, error) {
	return psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

func buildUpdateProfileQuery(ctx context.Context, userID string, update models.ProfileUpdate) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("username", update.Username).
		Set("email", update.Email).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildUpdatePasswordQuery(ctx context.Context, userID, passwordHash string) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildUpdateAvatarQuery(ctx context.Context, userID string, avatar models.Avatar) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("avatar_file_id", avatar.FileID).
		Set("avatar_url", avatar.URL).
		Set("avatar_thumbnail_url", avatar.ThumbnailURL).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildSetOTPQuery(ctx context.Context, userID string, otp int, expiry time.Time) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("otp", otp).
		Set("otp_expiry", expiry).
		Set("otp_attempts", 0).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// buildFailedOTPAttemptQuery increments the counter and drops the code in
// the same statement once the limit is reached. Right-hand side column
// references see the pre-update row.
func buildFailedOTPAttemptQuery(ctx context.Context, userID string, maxAttempts int) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("otp_attempts", sq.Expr("otp_attempts + 1")).
		Set("otp", sq.Expr("CASE WHEN otp_attempts + 1 >= ? THEN NULL ELSE otp END", maxAttempts)).
		Set("otp_expiry", sq.Expr("CASE WHEN otp_attempts + 1 >= ? THEN NULL ELSE otp_expiry END", maxAttempts)).
		Where(sq.Eq{"id": userID}).
		Where(sq.NotEq{"otp": nil}).
		Suffix("RETURNING otp_attempts").
		ToSql()
}

func buildResetPasswordWithOTPQuery(ctx context.Context, userID string, otp int, passwordHash string, now time.Time) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Set("otp", nil).
		Set("otp_expiry", nil).
		Set("otp_attempts", 0).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID, "otp": otp}).
		Where(sq.Gt{"otp_expiry": now}).
		ToSql()
}

func buildClearExpiredOTPsQuery(ctx context.Context, now time.Time) (string, []any, error) {
	return psql.Update(models.User{}.TableName()).
		Set("otp", nil).
		Set("otp_expiry", nil).
		Set("otp_attempts", 0).
		Where(sq.LtOrEq{"otp_expiry": now}).
		ToSql()
}

func buildDeleteUserQuery(ctx context.Context, userID string) (string, []any, error) {
	return psql.Delete(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// ── expenses ──────────────────────────────────────────────────────────────────

func buildInsertExpenseQuery(ctx context.Context, expense models.Expense) (string, []any, error) {
	return psql.Insert(expense.TableName()).
		Columns("id", "user_id", "title", "category", "note", "amount", "spent_at").
		Values(expense.ID, expense.UserID, expense.Title, expense.Category, expense.Note, expense.Amount, expense.SpentAt).
		Suffix(returning(expenseColumns)).
		ToSql()
}

func buildSelectExpenseQuery(ctx context.Context, userID, expenseID string) (string, []any, error) {
	return psql.Select(expenseColumns...).
		From(models.Expense{}.TableName()).
		Where(sq.Eq{"id": expenseID, "user_id": userID}).
		ToSql()
}

func buildListExpensesQuery(ctx context.Context, userID string) (string, []any, error) {
	return psql.Select(expenseColumns...).
		From(models.Expense{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("spent_at DESC", "created_at DESC").
		ToSql()
}

func buildListExpenseIDsQuery(ctx context.Context, userID string) (string, []any, error) {
	return psql.Select("id").
		From(models.Expense{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		ToSql()
}

func buildUpdateExpenseQuery(ctx context.Context, expense models.Expense) (string, []any, error) {
	return psql.Update(expense.TableName()).
		Set("title", expense.Title).
		Set("category", expense.Category).
		Set("note", expense.Note).
		Set("amount", expense.Amount).
		Set("spent_at", expense.SpentAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": expense.ID, "user_id": expense.UserID}).
		Suffix(returning(expenseColumns)).
		ToSql()
}

func buildDeleteExpenseQuery(ctx context.Context, userID, expenseID string) (string, []any, error) {
	return psql.Delete(models.Expense{}.TableName()).
		Where(sq.Eq{"id": expenseID, "user_id": userID}).
		ToSql()
}

func buildDeleteUserExpensesQuery(ctx context.Context, userID string) (string, []any, error) {
	return psql.Delete(models.Expense{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}
