package domain

import "context"

// ListRecordQuery narrows ListRecords.
type ListRecordQuery struct {
	OrderID    string `form:"order_id"`
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
}

// Service assembles invoices from completed service orders and owns the
// persisted invoice ledger. Assembly is the only path that moves an
// order into the invoiced status, and it does so atomically with the
// sequence allocation.
type Service interface {
	// Assemble prices the order, allocates the next invoice number and
	// flips the order to invoiced in one transaction, then renders the
	// PDF artifact. Rendering failures do not undo the issued invoice.
	Assemble(ctx context.Context, orderID string) (*Invoice, error)

	// Reopen voids the order's issued invoice and returns the order to
	// completed. The consumed sequence number is never reused.
	Reopen(ctx context.Context, orderID string) error

	GetRecord(ctx context.Context, id string) (*InvoiceRecord, error)
	GetRecordByOrder(ctx context.Context, orderID string) (*InvoiceRecord, error)
	ListRecords(ctx context.Context, q ListRecordQuery) ([]InvoiceRecord, error)
}
