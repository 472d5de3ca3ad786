package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_crm_backend/internal/models"
)

func TestCheckInActiveMember(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	result, err := env.attendance.CheckIn(member.Phone)
	require.NoError(t, err)

	assert.Equal(t, member.ID, result.Event.MemberID)
	assert.Equal(t, daysFromToday(0), result.Event.Date)
	assert.NotEmpty(t, result.Event.CheckInTime)
	assert.Nil(t, result.Event.TrainerName)
	assert.Equal(t, 0.0, result.PendingFee)
	assert.Empty(t, result.Warning)
}

func TestCheckInWarnsOnPendingFeeButAllowsEntry(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))

	result, err := env.attendance.CheckIn(member.Phone)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, result.PendingFee)
	assert.NotEmpty(t, result.Warning)

	// The visit was still recorded.
	events, err := env.attendance.GetTodayAttendance()
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestCheckInBlockedWhenExpired(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(-60))

	_, err := env.attendance.CheckIn(member.Phone)
	assert.ErrorIs(t, err, ErrMembershipExpired)

	events, err := env.attendance.GetTodayAttendance()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCheckInBlockedOnSecondVisitSameDay(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	_, err := env.attendance.CheckIn(member.Phone)
	require.NoError(t, err)

	_, err = env.attendance.CheckIn(member.Phone)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	events, err := env.attendance.GetTodayAttendance()
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestCheckInOnLastDayOfMembership(t *testing.T) {
	env := newTestEnv(t)

	// Cycle ends today; the boundary day still counts as active.
	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(-30))
	require.Equal(t, daysFromToday(0), member.EndDate)

	_, err := env.attendance.CheckIn(member.Phone)
	assert.NoError(t, err)
}

func TestCheckInAttachesActiveTrainer(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	_, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone:        member.Phone,
		TrainerName:  "Ganesh",
		PlanDuration: 1,
		Fee:          2500,
	})
	require.NoError(t, err)

	result, err := env.attendance.CheckIn(member.Phone)
	require.NoError(t, err)

	require.NotNil(t, result.Event.TrainerName)
	assert.Equal(t, "Ganesh", *result.Event.TrainerName)

	byTrainer, err := env.attendance.GetAttendanceByTrainer("Ganesh")
	require.NoError(t, err)
	assert.Len(t, byTrainer, 1)
}

func TestCheckInUnknownPhone(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.CheckIn("0000000000")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestGetMemberAttendanceHistory(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	_, err := env.attendance.CheckIn(member.Phone)
	require.NoError(t, err)

	events, err := env.attendance.GetMemberAttendance(member.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, member.ID, events[0].MemberID)

	_, err = env.attendance.GetMemberAttendance(99999)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
