package model

// Session is one sitting of parliament
type Session struct {
	ID           string     `json:"id"`
	Date         Date       `json:"date"`
	SittingNo    int        `json:"sittingNo"`
	Parliament   int        `json:"parliament"`
	SessionNo    int        `json:"sessionNo"`
	VolumeNo     int        `json:"volumeNo"`
	Format       string     `json:"format"`
	URL          string     `json:"url"`
	Summary      *string    `json:"summary"`
	SectionCount int        `json:"sectionCount"`
	Attendance   []Attendee `json:"attendance,omitempty"`
}

// Attendee is a member's attendance at one sitting. Constituency and
// designation are as recorded for that sitting.
type Attendee struct {
	MemberID     string  `json:"memberId"`
	Name         string  `json:"name"`
	Present      bool    `json:"present"`
	Constituency *string `json:"constituency"`
	Designation  *string `json:"designation"`
}

// AttendanceRecord is one row of a member's attendance history
type AttendanceRecord struct {
	SessionID string `json:"sessionId"`
	Date      Date   `json:"date"`
	SittingNo int    `json:"sittingNo"`
	Present   bool   `json:"present"`
}

// Stats summarises the dataset for the home page
type Stats struct {
	SessionCount     int      `json:"sessionCount"`
	MemberCount      int      `json:"memberCount"`
	BillCount        int      `json:"billCount"`
	SectionCount     int      `json:"sectionCount"`
	SittingsThisYear int      `json:"sittingsThisYear"`
	LatestSession    *Session `json:"latestSession"`
}
