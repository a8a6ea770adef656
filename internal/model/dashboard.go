package model

// DashboardStats is the live roll-up shown on the console home screen.
// Counts are computed at query time; nothing here is stored.
type DashboardStats struct {
	TotalStudents   int `json:"total_students"`
	ActiveStudents  int `json:"active_students"`
	ExpiredStudents int `json:"expired_students"`
	TodayAttendance int `json:"today_attendance"`
}

// DueAlerts partitions students whose plans need renewal attention.
type DueAlerts struct {
	WindowDays int       `json:"window_days"`
	Overdue    []Student `json:"overdue"`
	DueSoon    []Student `json:"due_soon"`
}
