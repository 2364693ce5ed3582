// Package models defines the ledger entities for Splitledger.
//
// # Entities
//
//   - User: the account that owns every other entity
//   - Person: someone the owner shares costs with
//   - Movement: one income, expense or payment event
//   - DebtLine: one person's share of a Movement
//   - Payment: an abono applied against a DebtLine
//   - IndirectAllocation: part of a full payer's Payment redirected to another DebtLine
//   - CreditEntry: one signed row of a person's credit balance (saldo a favor)
//
// # Ownership
//
// Everything hangs off a User. Movements and People carry OwnerID
// directly; DebtLines, Payments and Allocations are reached through
// their Movement, and CreditEntries carry OwnerID as well. Stores always
// filter by owner so one user never sees another user's rows.
//
// # Derived fields
//
// DebtLine.Paid, Outstanding and Status are a materialized view of the
// line's Payments. They are refreshed by calculator.Reconcile after every
// payment insert or delete and never adjusted incrementally. A person's
// credit balance is never stored at all: it is the signed sum of their
// CreditEntries.
//
// Relationships use ID strings rather than pointers.
package models
