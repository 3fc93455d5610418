package model

// ReadingStatus is the derived legislative stage of a bill
type ReadingStatus string

const (
	FirstReadingOnly ReadingStatus = "first_reading"
	SecondReading    ReadingStatus = "second_reading"
)

// ReadingStatusOf classifies a bill from whether a second reading section exists
func ReadingStatusOf(hasSecondReading bool) ReadingStatus {
	if hasSecondReading {
		return SecondReading
	}
	return FirstReadingOnly
}

// Bill is a piece of legislation with its derived reading stage
type Bill struct {
	ID                     string        `json:"id"`
	Title                  string        `json:"title"`
	MinistryID             *string       `json:"ministryId"`
	Ministry               *string       `json:"ministry"`
	MinistryAcronym        *string       `json:"ministryAcronym"`
	FirstReadingDate       Date          `json:"firstReadingDate"`
	FirstReadingSessionID  *string       `json:"firstReadingSessionId"`
	SecondReadingDate      Date          `json:"secondReadingDate"`
	SecondReadingSessionID *string       `json:"secondReadingSessionId"`
	HasSecondReading       bool          `json:"hasSecondReading"`
	ReadingStatus          ReadingStatus `json:"readingStatus"`
	Summary                *string       `json:"summary"`
}

// SessionBill is a bill as it appeared in one sitting, with every reading
// type recorded for it in that sitting
type SessionBill struct {
	BillID       string   `json:"billId"`
	BillTitle    string   `json:"billTitle"`
	SectionTitle string   `json:"sectionTitle"`
	Ministry     *string  `json:"ministry"`
	MinistryID   *string  `json:"ministryId"`
	ReadingTypes []string `json:"readingTypes"`
	SectionOrder int      `json:"sectionOrder"`
}

// BillReading is the latest reading of a bill, used for tickers
type BillReading struct {
	BillID      string  `json:"billId"`
	BillTitle   string  `json:"billTitle"`
	SectionType string  `json:"sectionType"`
	SessionDate Date    `json:"sessionDate"`
	Ministry    *string `json:"ministry"`
}
