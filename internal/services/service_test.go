package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"gym_crm_backend/internal/database"
	"gym_crm_backend/internal/lifecycle"
	"gym_crm_backend/internal/repositories"
)

// testEnv wires every service against a fresh in-memory database.
type testEnv struct {
	db         *sql.DB
	members    MemberService
	payments   PaymentService
	training   TrainingService
	attendance AttendanceService
	auth       AuthService
	dashboard  DashboardService

	paymentRepo repositories.PaymentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	memberRepo := repositories.NewMemberRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	trainingRepo := repositories.NewTrainingRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	return &testEnv{
		db:          db,
		members:     NewMemberService(memberRepo, paymentRepo, trainingRepo, db),
		payments:    NewPaymentService(paymentRepo, memberRepo, db),
		training:    NewTrainingService(trainingRepo, memberRepo, paymentRepo, db),
		attendance:  NewAttendanceService(attendanceRepo, memberRepo, trainingRepo, db),
		auth:        NewAuthService(adminRepo, db),
		dashboard:   NewDashboardService(memberRepo, paymentRepo, trainingRepo, attendanceRepo),
		paymentRepo: paymentRepo,
	}
}

// daysFromToday returns a stored-format date n days away from today.
func daysFromToday(n int) string {
	return lifecycle.FormatDate(lifecycle.Today().AddDate(0, 0, n))
}

func strPtr(s string) *string { return &s }
