package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_crm_backend/internal/models"
)

func TestTopUpWhileActiveAccumulates(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))

	result, err := env.payments.ProcessPayment(RecordPaymentRequest{
		Phone:  member.Phone,
		Amount: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, 500.0, result.Member.AmountPaid)
	assert.Equal(t, 700.0, result.Member.PendingAmount)
	assert.Equal(t, models.PaymentStatusPending, result.Member.PaymentStatus)
	// A plain top-up never moves the end date.
	assert.Equal(t, member.EndDate, result.Member.EndDate)

	result, err = env.payments.ProcessPayment(RecordPaymentRequest{
		Phone:  member.Phone,
		Amount: 700,
	})
	require.NoError(t, err)

	assert.Equal(t, 1200.0, result.Member.AmountPaid)
	assert.Equal(t, 0.0, result.Member.PendingAmount)
	assert.Equal(t, models.PaymentStatusPaid, result.Member.PaymentStatus)
}

func TestFullPaymentWithExtendBeforeExpiry(t *testing.T) {
	env := newTestEnv(t)

	// Registered unpaid; settles the full plan fee with an extension
	// while the cycle is still running.
	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))
	require.Equal(t, daysFromToday(30), member.EndDate)

	result, err := env.payments.ProcessPayment(RecordPaymentRequest{
		Phone:  member.Phone,
		Amount: 1200,
		Extend: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1200.0, result.Member.AmountPaid)
	assert.Equal(t, 0.0, result.Member.PendingAmount)
	assert.Equal(t, models.PaymentStatusPaid, result.Member.PaymentStatus)
	assert.Equal(t, daysFromToday(60), result.Member.EndDate)
}

func TestRenewalWhileActiveBanksRemainingDays(t *testing.T) {
	env := newTestEnv(t)

	// Ten days into a monthly cycle: twenty days still banked.
	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(-10))
	require.Equal(t, daysFromToday(20), member.EndDate)

	result, err := env.payments.ProcessPayment(RecordPaymentRequest{
		Phone:       member.Phone,
		Amount:      1200,
		PaymentType: models.PaymentTypeRenewal,
		Extend:      true,
	})
	require.NoError(t, err)

	// Extension anchors at the current end date, not today.
	assert.Equal(t, daysFromToday(50), result.Member.EndDate)
	assert.Equal(t, 2400.0, result.Member.AmountPaid)
	assert.Equal(t, 0.0, result.Member.PendingAmount)
	assert.Equal(t, models.MemberStatusActive, result.Member.Status)
}

func TestRenewalAfterExpiryStartsFreshCycle(t *testing.T) {
	env := newTestEnv(t)

	// Expired a month ago, fully paid back then.
	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(-60))
	require.Equal(t, models.MemberStatusExpired, member.Status)

	result, err := env.payments.ProcessPayment(RecordPaymentRequest{
		Phone:       member.Phone,
		Amount:      1200,
		PaymentType: models.PaymentTypeRenewal,
		Extend:      true,
	})
	require.NoError(t, err)

	// Anchor moves to today; the old cycle's balance does not carry over.
	assert.Equal(t, daysFromToday(30), result.Member.EndDate)
	assert.Equal(t, 1200.0, result.Member.AmountPaid)
	assert.Equal(t, 0.0, result.Member.PendingAmount)
	assert.Equal(t, models.PaymentStatusPaid, result.Member.PaymentStatus)
	assert.Equal(t, models.MemberStatusActive, result.Member.Status)
}

func TestPartialRenewalAfterExpiryLeavesPending(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPaid, daysFromToday(-60))

	result, err := env.payments.ProcessPayment(RecordPaymentRequest{
		Phone:  member.Phone,
		Amount: 500,
		Extend: true,
	})
	require.NoError(t, err)

	assert.Equal(t, daysFromToday(30), result.Member.EndDate)
	assert.Equal(t, 500.0, result.Member.AmountPaid)
	assert.Equal(t, 700.0, result.Member.PendingAmount)
	assert.Equal(t, models.PaymentStatusPending, result.Member.PaymentStatus)
	assert.Equal(t, models.MemberStatusActive, result.Member.Status)
}

func TestEveryPaymentLandsInLedger(t *testing.T) {
	env := newTestEnv(t)

	member := registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))

	for _, amount := range []float64{300, 400, 500} {
		_, err := env.payments.ProcessPayment(RecordPaymentRequest{Phone: member.Phone, Amount: amount})
		require.NoError(t, err)
	}

	payments, err := env.payments.GetPaymentsByMember(member.ID)
	require.NoError(t, err)
	require.Len(t, payments, 3)

	refs := map[string]bool{}
	for _, p := range payments {
		assert.NotEmpty(t, p.ReceiptRef)
		refs[p.ReceiptRef] = true
	}
	assert.Len(t, refs, 3, "receipt refs must be unique")
}

func TestProcessPaymentValidation(t *testing.T) {
	env := newTestEnv(t)

	registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))

	_, err := env.payments.ProcessPayment(RecordPaymentRequest{Phone: "9876543210", Amount: 0})
	assert.ErrorIs(t, err, ErrPaymentValidation)

	_, err = env.payments.ProcessPayment(RecordPaymentRequest{Phone: "9876543210", Amount: -10})
	assert.ErrorIs(t, err, ErrPaymentValidation)

	_, err = env.payments.ProcessPayment(RecordPaymentRequest{Phone: "9876543210", Amount: 100, PaymentType: "Cash"})
	assert.ErrorIs(t, err, ErrPaymentValidation)

	_, err = env.payments.ProcessPayment(RecordPaymentRequest{Phone: "0000000000", Amount: 100})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestGetPendingPaymentMembers(t *testing.T) {
	env := newTestEnv(t)

	registerMember(t, env, "9876543210", models.MembershipMonthly, models.PaymentStatusPending, daysFromToday(0))
	_, err := env.members.RegisterMember(CreateMemberRequest{
		Name:           "Settled Member",
		Phone:          "9123456780",
		Age:            40,
		MembershipType: models.MembershipMonthly,
		StartDate:      daysFromToday(0),
		PaymentStatus:  models.PaymentStatusPaid,
	})
	require.NoError(t, err)

	pending, err := env.payments.GetPendingPaymentMembers()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "9876543210", pending[0].Phone)
}
