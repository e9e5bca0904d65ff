// Package models defines the persisted domain entities for the trip ledger.
//
// The money-bearing entities are Expense and Payment. Everything the ledger
// engine derives from them (balances, debts, settlement plans) lives in the
// ledger package and is recomputed per request, never persisted.
//
// All monetary amounts are integer cents. Timestamps are Unix seconds.
// Expenses and payments are soft-deleted: a non-nil DeletedAt excludes the
// row from every ledger computation but keeps it queryable.
package models
