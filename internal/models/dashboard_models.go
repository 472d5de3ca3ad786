package models

// DashboardSummary aggregates the front-desk dashboard figures.
type DashboardSummary struct {
	TotalMembers       int     `json:"total_members"`
	ActiveMembers      int     `json:"active_members"`
	ExpiredMembers     int     `json:"expired_members"`
	TodayAttendance    int     `json:"today_attendance"`
	TodayCollections   float64 `json:"today_collections"`
	MonthlyCollections float64 `json:"monthly_collections"`
	MonthlyRevenue     float64 `json:"monthly_revenue"`
}
