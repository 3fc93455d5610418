package store

import "github.com/jjenkins/hansard/internal/model"

// billReadingRow is one bill-linked section of a sitting before collapsing
type billReadingRow struct {
	BillID       string
	BillTitle    string
	SectionTitle string
	Ministry     *string
	MinistryID   *string
	SectionType  string
	SectionOrder int
}

// collapseSessionBills folds reading rows into one SessionBill per bill. The
// first row of a bill supplies its titles and order; output follows the order
// in which bills first appear.
func collapseSessionBills(rows []billReadingRow) []model.SessionBill {
	bills := []model.SessionBill{}
	index := make(map[string]int, len(rows))

	for _, r := range rows {
		i, ok := index[r.BillID]
		if !ok {
			i = len(bills)
			index[r.BillID] = i
			bills = append(bills, model.SessionBill{
				BillID:       r.BillID,
				BillTitle:    r.BillTitle,
				SectionTitle: r.SectionTitle,
				Ministry:     r.Ministry,
				MinistryID:   r.MinistryID,
				ReadingTypes: []string{},
				SectionOrder: r.SectionOrder,
			})
		}
		bills[i].ReadingTypes = append(bills[i].ReadingTypes, r.SectionType)
	}

	return bills
}
