package models

import "time"

// ChartSeries is the chart payload consumed by the dashboard charting
// component: a leading ("Day", "Sales") header row followed by one
// (label, amount) row per booking, in retrieval order.
type ChartSeries [][]interface{}

// NewChartSeries returns a series containing only the header row.
func NewChartSeries() ChartSeries {
	return ChartSeries{{"Day", "Sales"}}
}

// AdminStatsReport is the global statistics dashboard payload.
type AdminStatsReport struct {
	TotalBookings int         `json:"total_bookings"`
	TotalPrice    float64     `json:"total_price"`
	TotalStudents int         `json:"total_students"`
	TotalSessions int         `json:"total_sessions"`
	Chart         ChartSeries `json:"chart"`
}

// TutorStatsReport is the per-tutor statistics payload.
type TutorStatsReport struct {
	TotalBookings int         `json:"total_bookings"`
	TotalPrice    float64     `json:"total_price"`
	MemberSince   time.Time   `json:"member_since"`
	Chart         ChartSeries `json:"chart"`
}

// StudentStatsReport is the per-student statistics payload.
type StudentStatsReport struct {
	TotalBookings int         `json:"total_bookings"`
	TotalPrice    float64     `json:"total_price"`
	MemberSince   time.Time   `json:"member_since"`
	Chart         ChartSeries `json:"chart"`
}
