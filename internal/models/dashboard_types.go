package models

// DashboardStats backs the landing screen cards.
type DashboardStats struct {
	TotalProducts     int     `json:"totalProducts"`
	TotalOrders       int     `json:"totalOrders"`
	PendingOrders     int     `json:"pendingOrders"`
	TotalUsers        int     `json:"totalUsers"`
	LowStockCount     int     `json:"lowStockCount"`
	PendingTickets    int     `json:"pendingTickets"`
	TotalRevenue      float64 `json:"totalRevenue"`
	PendingRxReviews  int     `json:"pendingPrescriptions"`
	UnreadMessages    int     `json:"unreadMessages"`
	TodayOrdersCount  int     `json:"todayOrdersCount"`
	TodayRevenueTotal float64 `json:"todayRevenue"`
}

// AnalyticsReport is intentionally loose: the /dashboard/analytics and
// /reports/* payloads vary by report and are rendered as-is.
type AnalyticsReport map[string]any
