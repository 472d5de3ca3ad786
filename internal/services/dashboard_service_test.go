package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_crm_backend/internal/models"
)

func TestDashboardSummary(t *testing.T) {
	env := newTestEnv(t)

	// One paid active member, one long-expired one.
	active := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))
	_, err := env.members.RegisterMember(CreateMemberRequest{
		Name:           "Lapsed Member",
		Phone:          "9123456780",
		Age:            45,
		MembershipType: models.MembershipMonthly,
		StartDate:      daysFromToday(-60),
	})
	require.NoError(t, err)

	_, err = env.attendance.CheckIn(active.Phone)
	require.NoError(t, err)

	summary, err := env.dashboard.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalMembers)
	assert.Equal(t, 1, summary.ActiveMembers)
	assert.Equal(t, 1, summary.ExpiredMembers)
	assert.Equal(t, 1, summary.TodayAttendance)
	// The paid registration is today's only collection.
	assert.Equal(t, 1200.0, summary.TodayCollections)
	assert.Equal(t, 1200.0, summary.MonthlyCollections)
	assert.Equal(t, 1200.0, summary.MonthlyRevenue)
}

func TestDashboardCountsTrainingRevenue(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	_, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone: member.Phone, TrainerName: "Suriya", PlanDuration: 1, Fee: 2500,
	})
	require.NoError(t, err)

	summary, err := env.dashboard.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 3700.0, summary.TodayCollections)
	assert.Equal(t, 3700.0, summary.MonthlyRevenue)
}
