package model

import "slices"

// Section type codes
const (
	TypeOralAnswer           = "OA"
	TypeWrittenAnswer        = "WA"
	TypeWrittenAnswerNotOral = "WANA"
	TypeBillIntroduced       = "BI"
	TypeBillSecondReading    = "BP"
	TypeOtherSection         = "OS"
)

// Section categories
const (
	CategoryMotion        = "motion"
	CategoryAdjournment   = "adjournment_motion"
	CategoryClarification = "clarification"
	CategoryStatement     = "statement"
)

// QuestionTypes are the section types treated as parliamentary questions
var QuestionTypes = []string{TypeOralAnswer, TypeWrittenAnswer, TypeWrittenAnswerNotOral}

// BillReadingTypes are the section types that record a bill reading
var BillReadingTypes = []string{TypeBillIntroduced, TypeBillSecondReading}

// MotionCategories are the categories treated as motions
var MotionCategories = []string{CategoryMotion, CategoryAdjournment}

// Section is one item of business within a sitting
type Section struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"sessionId"`
	SessionDate     Date      `json:"sessionDate"`
	SittingNo       int       `json:"sittingNo"`
	SessionURL      string    `json:"sessionUrl,omitempty"`
	SectionType     string    `json:"sectionType"`
	SectionTitle    string    `json:"sectionTitle"`
	ContentHTML     string    `json:"contentHtml,omitempty"`
	ContentPlain    string    `json:"contentPlain"`
	SectionOrder    int       `json:"sectionOrder"`
	Category        *string   `json:"category"`
	Ministry        *string   `json:"ministry"`
	MinistryAcronym *string   `json:"ministryAcronym"`
	MinistryID      *string   `json:"ministryId"`
	BillID          *string   `json:"billId"`
	BillTitle       *string   `json:"billTitle,omitempty"`
	Summary         *string   `json:"summary"`
	SourceURL       *string   `json:"sourceUrl"`
	Speakers        []Speaker `json:"speakers"`
}

// IsQuestion reports whether the section is a question. Both checks mirror
// the list query predicate.
func (s Section) IsQuestion() bool {
	return slices.Contains(QuestionTypes, s.SectionType) && !slices.Contains(BillReadingTypes, s.SectionType)
}

// IsMotion reports whether the section is categorised as a motion
func (s Section) IsMotion() bool {
	return s.Category != nil && slices.Contains(MotionCategories, *s.Category)
}

// Speaker is a member's participation in one section, with constituency and
// designation as recorded at that sitting
type Speaker struct {
	MemberID     string  `json:"memberId"`
	Name         string  `json:"name"`
	Constituency *string `json:"constituency"`
	Designation  *string `json:"designation"`
}

// LatestQuestion is the most recent question with its first speaker
type LatestQuestion struct {
	ID           string  `json:"id"`
	SectionTitle string  `json:"sectionTitle"`
	SessionDate  Date    `json:"sessionDate"`
	Ministry     *string `json:"ministry"`
	AskerID      *string `json:"askerId"`
	AskerName    *string `json:"askerName"`
}

// RecentMotion is a short motion entry for tickers
type RecentMotion struct {
	ID           string `json:"id"`
	SectionTitle string `json:"sectionTitle"`
	SessionDate  Date   `json:"sessionDate"`
}
