package models

// AttendanceEvent is one daily check-in. At most one event exists per
// member per calendar date; the rule is enforced in service logic, not
// by a storage constraint.
type AttendanceEvent struct {
	ID          int64   `json:"id" db:"id"`
	MemberID    int64   `json:"member_id" db:"member_id"`
	CheckInTime string  `json:"check_in_time" db:"check_in_time"` // HH:MM:SS
	Date        string  `json:"date" db:"date"`                   // YYYY-MM-DD
	TrainerName *string `json:"trainer_name,omitempty" db:"trainer_name"`

	// Joined fields for daily listings.
	MemberName  *string `json:"member_name,omitempty" db:"-"`
	MemberPhone *string `json:"member_phone,omitempty" db:"-"`
}
