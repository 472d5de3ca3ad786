package models

import "time"

// Payment transaction types
const (
	PaymentTypeMembership = "Membership"
	PaymentTypePT         = "PT"
	PaymentTypeRenewal    = "Renewal"
)

// IsValidPaymentType checks a payment type against the known set.
func IsValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeMembership, PaymentTypePT, PaymentTypeRenewal:
		return true
	}
	return false
}

// Payment is one row of the append-only payment ledger.
// Rows are never updated or deleted once written.
type Payment struct {
	ID          int64     `json:"id" db:"id"`
	MemberID    int64     `json:"member_id" db:"member_id"`
	Phone       string    `json:"phone" db:"phone"`
	Amount      float64   `json:"amount" db:"amount"`
	PaymentDate string    `json:"payment_date" db:"payment_date"`
	PaymentType string    `json:"payment_type" db:"payment_type"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	ReceiptRef  string    `json:"receipt_ref" db:"receipt_ref"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Joined field for ledger listings.
	MemberName *string `json:"member_name,omitempty" db:"-"`
}
