package model

// Ministry is a government department
type Ministry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Acronym      string `json:"acronym"`
	SectionCount int    `json:"sectionCount"`
}
