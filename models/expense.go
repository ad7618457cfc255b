// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Expense is a single spending record owned by exactly one user.
type Expense struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Title    string `json:"title"`
	Category string `json:"category"`
	Note     string `json:"note"`

	// Amount is stored in minor currency units (cents).
	Amount int64 `json:"amount"`

	SpentAt   time.Time `json:"spent_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Expense model.
func (e Expense) TableName() string {
	return "expenses"
}

// ExpenseForm is the allow-list of fields accepted when creating or
// updating an expense. The owner is always taken from the session.
type ExpenseForm struct {
	Title    string
	Category string
	Note     string
	Amount   int64
	SpentAt  time.Time
}
