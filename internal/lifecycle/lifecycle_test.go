package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_crm_backend/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPlanFee(t *testing.T) {
	assert.Equal(t, 1200.0, PlanFee(models.MembershipMonthly))
	assert.Equal(t, 3200.0, PlanFee(models.MembershipQuarterly))
	assert.Equal(t, 12000.0, PlanFee(models.MembershipYearly))
	// Unknown plans fall back to the Monthly fee.
	assert.Equal(t, 1200.0, PlanFee("Weekly"))
	assert.Equal(t, 1200.0, PlanFee(""))
}

func TestPlanDurationDays(t *testing.T) {
	assert.Equal(t, 30, PlanDurationDays(models.MembershipMonthly))
	assert.Equal(t, 90, PlanDurationDays(models.MembershipQuarterly))
	assert.Equal(t, 365, PlanDurationDays(models.MembershipYearly))
	assert.Equal(t, 30, PlanDurationDays("Weekly"))
}

func TestComputeEndDate(t *testing.T) {
	start := date("2024-01-01")
	assert.Equal(t, "2024-01-31", FormatDate(ComputeEndDate(start, models.MembershipMonthly)))
	assert.Equal(t, "2024-03-31", FormatDate(ComputeEndDate(start, models.MembershipQuarterly)))
	assert.Equal(t, "2024-12-31", FormatDate(ComputeEndDate(start, models.MembershipYearly)))
}

func TestTrainingEndDate(t *testing.T) {
	start := date("2024-01-01")
	assert.Equal(t, "2024-01-31", FormatDate(TrainingEndDate(start, 1)))
	assert.Equal(t, "2024-03-31", FormatDate(TrainingEndDate(start, 3)))
}

func TestPendingFee(t *testing.T) {
	for _, plan := range []string{models.MembershipMonthly, models.MembershipQuarterly, models.MembershipYearly} {
		total := PlanFee(plan)
		assert.Equal(t, total, PendingFee(plan, 0))
		assert.Equal(t, total-500, PendingFee(plan, 500))
		assert.Equal(t, 0.0, PendingFee(plan, total))
		// Overpayment is absorbed, never negative.
		assert.Equal(t, 0.0, PendingFee(plan, total+1000))
	}
}

func TestIsActiveBoundaryInclusive(t *testing.T) {
	today := date("2024-06-15")

	assert.True(t, IsActive(date("2024-06-16"), today))
	// A membership expiring today is still active.
	assert.True(t, IsActive(date("2024-06-15"), today))
	assert.False(t, IsActive(date("2024-06-14"), today))
}

func TestStatus(t *testing.T) {
	today := date("2024-06-15")
	assert.Equal(t, models.MemberStatusActive, Status(today, today))
	assert.Equal(t, models.MemberStatusExpired, Status(date("2024-06-14"), today))
}

func TestRemainingDays(t *testing.T) {
	today := date("2024-06-15")

	assert.Equal(t, 10, RemainingDays(date("2024-06-25"), today))
	assert.Equal(t, 0, RemainingDays(today, today))
	// Never negative.
	assert.Equal(t, 0, RemainingDays(date("2024-06-01"), today))
}

func TestRenewEndDateKeepsBankedDays(t *testing.T) {
	today := date("2024-06-15")
	currentEnd := date("2024-06-25") // 10 days left

	got := RenewEndDate(currentEnd, today, models.MembershipMonthly)
	assert.Equal(t, "2024-07-25", FormatDate(got))
	require.False(t, got.Before(currentEnd), "on-time renewal must never lose banked days")
}

func TestRenewEndDateAfterExpiryAnchorsAtToday(t *testing.T) {
	today := date("2024-06-15")
	staleEnd := date("2024-05-01")

	got := RenewEndDate(staleEnd, today, models.MembershipMonthly)
	assert.Equal(t, "2024-07-15", FormatDate(got))
}

func TestRenewEndDateOnExpiryDay(t *testing.T) {
	// Expiring today is still active, so the renewal extends from the
	// end date; today and the end date coincide either way.
	today := date("2024-06-15")
	got := RenewEndDate(today, today, models.MembershipQuarterly)
	assert.Equal(t, "2024-09-13", FormatDate(got))
}

func TestParseDateRejectsMalformedInput(t *testing.T) {
	_, err := ParseDate("15-06-2024")
	assert.Error(t, err)
	_, err = ParseDate("2024-6-15")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}
