package models

// DashboardSummary aggregates headline counts across the record store.
// The handler refuses to serve a partial summary, so every field is
// populated or the whole value is discarded.
type DashboardSummary struct {
	TotalStudents      int64 `json:"totalStudents"`
	TotalFaculties     int64 `json:"totalFaculties"`
	TotalCourses       int64 `json:"totalCourses"`
	TotalLeaves        int64 `json:"totalLeaves"`
	TotalTimetableDays int64 `json:"totalTimetableDays"`
}
