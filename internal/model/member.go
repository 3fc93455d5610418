package model

// Member is a parliamentarian. Constituency and designation come from the
// member's most recent attendance record.
type Member struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Summary           *string `json:"summary"`
	SectionCount      int     `json:"sectionCount"`
	Constituency      *string `json:"constituency"`
	Designation       *string `json:"designation"`
	AttendanceTotal   int     `json:"attendanceTotal"`
	AttendancePresent int     `json:"attendancePresent"`
}

// AttendanceRate returns the fraction of recorded sittings attended
func (m Member) AttendanceRate() float64 {
	if m.AttendanceTotal == 0 {
		return 0
	}
	return float64(m.AttendancePresent) / float64(m.AttendanceTotal)
}
