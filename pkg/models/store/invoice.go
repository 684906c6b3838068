package store

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Invoice is the persisted invoice record. TotalAmount is always >= 0;
// revenue is recognized at TotalAmount once PaymentStatus is "paid".
type Invoice struct {
	ID            string        `bson:"id" json:"id"`
	UserID        string        `bson:"user_id" json:"user_id"`
	CustomerID    string        `bson:"customer_id" json:"customer_id"`
	Number        string        `bson:"invoice_number" json:"invoice_number"`
	TotalAmount   float64       `bson:"total_amount" json:"total_amount"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"payment_status"`
	Status        InvoiceStatus `bson:"status" json:"status"`
	IssueDate     time.Time     `bson:"issue_date" json:"issue_date"`
	DueDate       time.Time     `bson:"due_date" json:"due_date"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
}

// DateRange bounds a query on created_at. Both dates are inclusive
// calendar days; adapters translate End into an exclusive upper bound.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// InvoiceFilter narrows an invoice query. Zero values mean "any".
type InvoiceFilter struct {
	PaymentStatus PaymentStatus
	Status        InvoiceStatus
}
