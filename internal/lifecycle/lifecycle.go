// Package lifecycle derives the financial and temporal state of a gym
// membership: plan fees and durations, end-date arithmetic, Active or
// Expired status, and pending balances. Every function is pure; callers
// supply "today" so that derived state is reproducible.
package lifecycle

import (
	"time"

	"gym_crm_backend/internal/models"
)

// DateLayout is the on-disk date format for all membership dates.
const DateLayout = "2006-01-02"

// Official plan pricing.
var feeMap = map[string]float64{
	models.MembershipMonthly:   1200,
	models.MembershipQuarterly: 3200,
	models.MembershipYearly:    12000,
}

// Plan duration in days.
var durationMap = map[string]int{
	models.MembershipMonthly:   30,
	models.MembershipQuarterly: 90,
	models.MembershipYearly:    365,
}

// PlanFee returns the total fee for a membership plan. Unknown plans
// fall back to the Monthly fee.
func PlanFee(membershipType string) float64 {
	if fee, ok := feeMap[membershipType]; ok {
		return fee
	}
	return feeMap[models.MembershipMonthly]
}

// PlanDurationDays returns the duration of a membership plan in days.
// Unknown plans fall back to the Monthly duration.
func PlanDurationDays(membershipType string) int {
	if days, ok := durationMap[membershipType]; ok {
		return days
	}
	return durationMap[models.MembershipMonthly]
}

// ComputeEndDate returns start date plus the plan duration.
func ComputeEndDate(startDate time.Time, membershipType string) time.Time {
	return startDate.AddDate(0, 0, PlanDurationDays(membershipType))
}

// TrainingEndDate returns the personal-training end date for a plan of
// the given duration in months (one month counts as 30 days).
func TrainingEndDate(startDate time.Time, durationMonths int) time.Time {
	return startDate.AddDate(0, 0, durationMonths*30)
}

// RemainingDays returns whole days left until expiry, floored at zero.
func RemainingDays(endDate, today time.Time) int {
	days := int(truncateToDate(endDate).Sub(truncateToDate(today)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsActive reports whether a membership ending on endDate is still
// active on the given day. The boundary is inclusive: a membership
// expiring today is still active.
func IsActive(endDate, today time.Time) bool {
	return !truncateToDate(endDate).Before(truncateToDate(today))
}

// Status returns the stored status string for an end date.
func Status(endDate, today time.Time) string {
	if IsActive(endDate, today) {
		return models.MemberStatusActive
	}
	return models.MemberStatusExpired
}

// PendingFee returns the outstanding balance against the plan fee,
// floored at zero. Overpayment is absorbed, never reported as credit.
func PendingFee(membershipType string, amountPaid float64) float64 {
	pending := PlanFee(membershipType) - amountPaid
	if pending < 0 {
		return 0
	}
	return pending
}

// RenewEndDate returns the end date after a renewal. An unexpired
// membership extends from its current end date, keeping banked days;
// an expired one restarts from today, forfeiting the lapsed gap.
func RenewEndDate(currentEndDate, today time.Time, membershipType string) time.Time {
	anchor := truncateToDate(currentEndDate)
	if t := truncateToDate(today); t.After(anchor) {
		anchor = t
	}
	return anchor.AddDate(0, 0, PlanDurationDays(membershipType))
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a date in the on-disk YYYY-MM-DD format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current calendar date, truncated to midnight.
func Today() time.Time {
	return truncateToDate(time.Now())
}

// truncateToDate reduces a time to its calendar date. Both operands of
// every comparison go through this, so dates parsed in UTC and wall
// clocks in local time compare as plain calendar dates.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
