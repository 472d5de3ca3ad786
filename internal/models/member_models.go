package models

import "time"

// Membership plan types
const (
	MembershipMonthly   = "Monthly"
	MembershipQuarterly = "Quarterly"
	MembershipYearly    = "Yearly"
)

// Member payment status values
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

// Member lifecycle status values
const (
	MemberStatusActive  = "Active"
	MemberStatusExpired = "Expired"
)

// Genders accepted on registration forms.
var Genders = []string{"Male", "Female", "Other"}

// IsValidMembershipType checks a plan name against the known plan set.
func IsValidMembershipType(t string) bool {
	switch t {
	case MembershipMonthly, MembershipQuarterly, MembershipYearly:
		return true
	}
	return false
}

// IsValidGender checks a gender value against the accepted set.
func IsValidGender(g string) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// Member represents a registered gym member.
// Dates are stored as YYYY-MM-DD strings to match the on-disk layout.
type Member struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Phone           string    `json:"phone" db:"phone"`
	Address         *string   `json:"address,omitempty" db:"address"`
	Age             *int      `json:"age,omitempty" db:"age"`
	Gender          *string   `json:"gender,omitempty" db:"gender"`
	MembershipType  string    `json:"membership_type" db:"membership_type"`
	StartDate       string    `json:"start_date" db:"start_date"`
	EndDate         string    `json:"end_date" db:"end_date"`
	Fees            float64   `json:"fees" db:"fees"`
	PaymentStatus   string    `json:"payment_status" db:"payment_status"`
	LastPaymentDate *string   `json:"last_payment_date,omitempty" db:"last_payment_date"`
	AmountPaid      float64   `json:"amount_paid" db:"amount_paid"`
	PendingAmount   float64   `json:"pending_amount" db:"pending_amount"`
	Status          string    `json:"status" db:"status"`
	PhotoPath       *string   `json:"photo_path,omitempty" db:"photo_path"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// MemberFeeDetails is the full fee picture for one member, including the
// currently active personal-training assignment if one exists.
type MemberFeeDetails struct {
	Member         Member   `json:"member"`
	RemainingDays  int      `json:"remaining_days"`
	CurrentTrainer *string  `json:"current_trainer,omitempty"`
	PTFee          *float64 `json:"pt_fee,omitempty"`
	PTEndDate      *string  `json:"pt_end_date,omitempty"`
}
