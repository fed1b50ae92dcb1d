package services

import "errors"

// Sentinel errors surfaced to the transport layer, which maps them to HTTP
// status codes in the central error handler.
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrMatterNotFound   = errors.New("matter not found")
	ErrEntryNotFound    = errors.New("time entry not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNothingBillable means the selected time entries, after filtering to
	// billable unbilled entries of the given matter, left nothing to invoice.
	ErrNothingBillable = errors.New("no billable time entries")

	// ErrEntryBilled guards the immutability of billed entries.
	ErrEntryBilled = errors.New("time entry already billed")

	ErrInvalidStatusChange = errors.New("invalid invoice status change")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)
