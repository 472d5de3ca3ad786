package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_crm_backend/internal/models"
)

func TestAssignTrainingComputesEndDate(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipYearly, models.PaymentStatusPaid, daysFromToday(0))

	training, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone:        member.Phone,
		TrainerName:  "Suriya",
		PlanDuration: 3,
		Fee:          7500,
	})
	require.NoError(t, err)

	assert.Equal(t, member.ID, training.MemberID)
	assert.Equal(t, daysFromToday(0), training.StartDate)
	assert.Equal(t, daysFromToday(90), training.EndDate)
	assert.Equal(t, models.TrainingStatusActive, training.Status)
}

func TestAssignTrainingWritesLedgerRow(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))

	_, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone:        member.Phone,
		TrainerName:  "Ganesh",
		PlanDuration: 1,
		Fee:          2500,
	})
	require.NoError(t, err)

	payments, err := env.payments.GetPaymentsByMember(member.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentTypePT, payments[0].PaymentType)
	assert.Equal(t, 2500.0, payments[0].Amount)
}

func TestAssignTrainingValidation(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	_, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone: member.Phone, TrainerName: "Rocky", PlanDuration: 1, Fee: 1000,
	})
	assert.ErrorIs(t, err, ErrUnknownTrainer)

	_, err = env.training.AssignTraining(AssignTrainingRequest{
		Phone: member.Phone, TrainerName: "Suriya", PlanDuration: 0, Fee: 1000,
	})
	assert.ErrorIs(t, err, ErrTrainingValidation)

	_, err = env.training.AssignTraining(AssignTrainingRequest{
		Phone: member.Phone, TrainerName: "Suriya", PlanDuration: 1, Fee: 0,
	})
	assert.ErrorIs(t, err, ErrTrainingValidation)

	_, err = env.training.AssignTraining(AssignTrainingRequest{
		Phone: "0000000000", TrainerName: "Suriya", PlanDuration: 1, Fee: 1000,
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestUpdateTrainingRecomputesEndDate(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipYearly, models.PaymentStatusPaid, daysFromToday(0))

	training, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone: member.Phone, TrainerName: "Suriya", PlanDuration: 1, Fee: 2500,
	})
	require.NoError(t, err)

	months := 4
	updated, err := env.training.UpdateTraining(training.ID, UpdateTrainingRequest{PlanDuration: &months})
	require.NoError(t, err)
	assert.Equal(t, daysFromToday(120), updated.EndDate)
}

func TestCompletedTrainingNotConsideredActive(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipYearly, models.PaymentStatusPaid, daysFromToday(0))

	training, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone: member.Phone, TrainerName: "Suriya", PlanDuration: 2, Fee: 5000,
	})
	require.NoError(t, err)

	completed := models.TrainingStatusCompleted
	_, err = env.training.UpdateTraining(training.ID, UpdateTrainingRequest{Status: &completed})
	require.NoError(t, err)

	_, err = env.training.GetActiveTraining(member.ID)
	assert.ErrorIs(t, err, ErrTrainingNotFound)
}

func TestDeleteTraining(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	training, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone: member.Phone, TrainerName: "Ganesh", PlanDuration: 1, Fee: 2000,
	})
	require.NoError(t, err)

	require.NoError(t, env.training.DeleteTraining(training.ID))
	assert.ErrorIs(t, env.training.DeleteTraining(training.ID), ErrTrainingNotFound)
}

func TestTrainerRoster(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, []string{"Suriya", "Ganesh"}, env.training.GetTrainers())
}
