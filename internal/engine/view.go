package engine

import "salarydash/internal/models"

// View is a read-only subset of a Table. It carries row indexes rather
// than copied data, so stacking filters on a cached table costs one int32
// per surviving row. A nil index list means every row.
type View struct {
	tab *Table
	idx []int32
}

// All returns a view over every row of t.
func (t *Table) All() *View { return &View{tab: t} }

// Len returns the number of rows visible through the view.
func (v *View) Len() int {
	if v.idx == nil {
		return v.tab.Len()
	}
	return len(v.idx)
}

// row translates a view position to a table row index.
func (v *View) row(i int) int32 {
	if v.idx == nil {
		return int32(i)
	}
	return v.idx[i]
}

// Rows decodes a window of the view into row records, preserving the
// table's original order. Out-of-range windows clamp to an empty or
// shortened slice instead of failing.
func (v *View) Rows(offset, limit int) []models.Row {
	n := v.Len()
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset > n {
		offset = n
	}
	end := offset + limit
	if end > n {
		end = n
	}
	rows := make([]models.Row, 0, end-offset)
	for i := offset; i < end; i++ {
		rows = append(rows, v.rowAt(i))
	}
	return rows
}

func (v *View) rowAt(i int) models.Row {
	t := v.tab
	r := v.row(i)
	return models.Row{
		Year:        int(t.Years[r]),
		Seniority:   t.SeniorityDict[t.SeniorityIDs[r]],
		Contract:    t.ContractDict[t.ContractIDs[r]],
		CompanySize: t.CompanySizeDict[t.CompanySizeIDs[r]],
		Title:       t.TitleDict[t.TitleIDs[r]],
		SalaryUSD:   t.Salaries[r],
		Remote:      t.RemoteDict[t.RemoteIDs[r]],
		Country:     t.CountryDict[t.CountryIDs[r]],
	}
}
