package models

import "time"

// Personal training assignment status values
const (
	TrainingStatusActive    = "Active"
	TrainingStatusCompleted = "Completed"
	TrainingStatusCancelled = "Cancelled"
)

// Trainers is the fixed trainer roster.
var Trainers = []string{"Suriya", "Ganesh"}

// IsValidTrainingStatus checks a training status against the known set.
func IsValidTrainingStatus(s string) bool {
	switch s {
	case TrainingStatusActive, TrainingStatusCompleted, TrainingStatusCancelled:
		return true
	}
	return false
}

// IsKnownTrainer checks a trainer name against the roster.
func IsKnownTrainer(name string) bool {
	for _, t := range Trainers {
		if t == name {
			return true
		}
	}
	return false
}

// PersonalTraining is a trainer assignment for a member. Its date range
// is independent of the membership date range.
type PersonalTraining struct {
	ID           int64     `json:"id" db:"id"`
	MemberID     int64     `json:"member_id" db:"member_id"`
	TrainerName  string    `json:"trainer_name" db:"trainer_name"`
	PlanDuration int       `json:"plan_duration" db:"plan_duration"` // months
	Fee          float64   `json:"fee" db:"fee"`
	StartDate    string    `json:"start_date" db:"start_date"`
	EndDate      string    `json:"end_date" db:"end_date"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Joined fields for roster listings.
	MemberName  *string `json:"member_name,omitempty" db:"-"`
	MemberPhone *string `json:"member_phone,omitempty" db:"-"`
}
