// Package model defines the invoice document types shared across the module:
// the persisted Template record with its style tokens, the per-render
// DataContext (company, customer, deal, invoice, line items), and the money
// arithmetic that keeps line amounts and invoice totals consistent. Monetary
// values use shopspring/decimal so totals are exact rather than
// epsilon-compared. A DataContext is ephemeral: callers build one per render
// and never persist it.
package model
