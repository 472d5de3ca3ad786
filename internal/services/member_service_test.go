package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_crm_backend/internal/models"
)

func registerMember(t *testing.T, env *testEnv, phone, membershipType, paymentStatus, startDate string) *models.Member {
	t.Helper()
	member, err := env.members.RegisterMember(CreateMemberRequest{
		Name:           "Arun Kumar",
		Phone:          phone,
		Age:            28,
		Gender:         "Male",
		MembershipType: membershipType,
		StartDate:      startDate,
		PaymentStatus:  paymentStatus,
	})
	require.NoError(t, err)
	return member
}

func TestRegisterMemberPaidSettlesPlanFee(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	assert.Equal(t, 1200.0, member.Fees)
	assert.Equal(t, 1200.0, member.AmountPaid)
	assert.Equal(t, 0.0, member.PendingAmount)
	assert.Equal(t, models.PaymentStatusPaid, member.PaymentStatus)
	assert.Equal(t, models.MemberStatusActive, member.Status)
	assert.Equal(t, daysFromToday(30), member.EndDate)
	require.NotNil(t, member.LastPaymentDate)

	// A paid registration also writes the opening ledger row.
	payments, err := env.payments.GetPaymentsByMember(member.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 1200.0, payments[0].Amount)
	assert.Equal(t, models.PaymentTypeMembership, payments[0].PaymentType)
	assert.NotEmpty(t, payments[0].ReceiptRef)
}

func TestRegisterMemberPendingOwesFullPlanFee(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipQuarterly, models.PaymentStatusPending, daysFromToday(0))

	assert.Equal(t, 0.0, member.AmountPaid)
	assert.Equal(t, 3200.0, member.PendingAmount)
	assert.Equal(t, models.PaymentStatusPending, member.PaymentStatus)
	assert.Equal(t, daysFromToday(90), member.EndDate)
	assert.Nil(t, member.LastPaymentDate)

	payments, err := env.payments.GetPaymentsByMember(member.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestRegisterMemberNormalizesPhone(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, " 98765 432-10 ", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))
	assert.Equal(t, "9876543210", member.Phone)

	found, err := env.members.GetMemberByPhone("98765-43210")
	require.NoError(t, err)
	assert.Equal(t, member.ID, found.ID)
}

func TestRegisterMemberRejectsDuplicatePhone(t *testing.T) {
	env := newTestEnv(t)

	registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))

	_, err := env.members.RegisterMember(CreateMemberRequest{
		Name:           "Someone Else",
		Phone:          "98765 43210", // Same number, different formatting
		Age:            30,
		MembershipType: models.MembershipMonthly,
		StartDate:      daysFromToday(0),
	})
	assert.ErrorIs(t, err, ErrPhoneNumberExists)
}

func TestRegisterMemberValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		req  CreateMemberRequest
		want error
	}{
		{
			name: "short phone",
			req:  CreateMemberRequest{Name: "A", Phone: "12345", Age: 25, MembershipType: models.MembershipMonthly, StartDate: daysFromToday(0)},
			want: ErrMemberValidation,
		},
		{
			name: "letters in phone",
			req:  CreateMemberRequest{Name: "A", Phone: "98765abcde", Age: 25, MembershipType: models.MembershipMonthly, StartDate: daysFromToday(0)},
			want: ErrMemberValidation,
		},
		{
			name: "age out of range",
			req:  CreateMemberRequest{Name: "A", Phone: "9876543210", Age: 8, MembershipType: models.MembershipMonthly, StartDate: daysFromToday(0)},
			want: ErrMemberValidation,
		},
		{
			name: "unknown membership type",
			req:  CreateMemberRequest{Name: "A", Phone: "9876543210", Age: 25, MembershipType: "Weekly", StartDate: daysFromToday(0)},
			want: ErrMemberValidation,
		},
		{
			name: "bad date",
			req:  CreateMemberRequest{Name: "A", Phone: "9876543210", Age: 25, MembershipType: models.MembershipMonthly, StartDate: "01/02/2024"},
			want: ErrDateFormat,
		},
		{
			name: "empty name",
			req:  CreateMemberRequest{Name: "  ", Phone: "9876543210", Age: 25, MembershipType: models.MembershipMonthly, StartDate: daysFromToday(0)},
			want: ErrMemberValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.members.RegisterMember(tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateMemberPlanRecomputesEndDate(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))

	quarterly := models.MembershipQuarterly
	updated, err := env.members.UpdateMember(member.ID, UpdateMemberRequest{MembershipType: &quarterly})
	require.NoError(t, err)

	assert.Equal(t, models.MembershipQuarterly, updated.MembershipType)
	assert.Equal(t, daysFromToday(90), updated.EndDate)
}

func TestGetMemberFeeDetailsIncludesActiveTraining(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipYearly, models.PaymentStatusPaid, daysFromToday(0))

	_, err := env.training.AssignTraining(AssignTrainingRequest{
		Phone:        member.Phone,
		TrainerName:  "Suriya",
		PlanDuration: 2,
		Fee:          4000,
	})
	require.NoError(t, err)

	details, err := env.members.GetMemberFeeDetails(member.Phone)
	require.NoError(t, err)

	assert.Equal(t, 365, details.RemainingDays)
	require.NotNil(t, details.CurrentTrainer)
	assert.Equal(t, "Suriya", *details.CurrentTrainer)
	require.NotNil(t, details.PTFee)
	assert.Equal(t, 4000.0, *details.PTFee)
}

func TestGetMemberFeeDetailsRecomputesDerivedFields(t *testing.T) {
	env := newTestEnv(t)

	// Registered two months back on a monthly plan: long expired.
	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(-60))

	details, err := env.members.GetMemberFeeDetails(member.Phone)
	require.NoError(t, err)

	assert.Equal(t, models.MemberStatusExpired, details.Member.Status)
	assert.Equal(t, 0, details.RemainingDays)
	assert.Nil(t, details.CurrentTrainer)
}

func TestDeleteMemberRemovesHistory(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(0))

	require.NoError(t, env.members.DeleteMember(member.ID))

	_, err := env.members.GetMemberByID(member.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)

	// Ledger rows cascade with the member.
	payments, err := env.paymentRepo.GetPaymentsByMember(member.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestGetMembersSearchByNameOrPhone(t *testing.T) {
	env := newTestEnv(t)

	registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))
	_, err := env.members.RegisterMember(CreateMemberRequest{
		Name:           "Priya Lakshmi",
		Phone:          "9123456780",
		Age:            32,
		MembershipType: models.MembershipQuarterly,
		StartDate:      daysFromToday(0),
	})
	require.NoError(t, err)

	found, err := env.members.GetMembers(strPtr("priya"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Priya Lakshmi", found[0].Name)

	found, err = env.members.GetMembers(strPtr("98765"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "9876543210", found[0].Phone)

	all, err := env.members.GetMembers(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
