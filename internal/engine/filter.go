package engine

import "math"

// Selection is the set of allowed values per filterable attribute. A nil
// slice leaves its attribute unrestricted, matching the dashboard's
// everything-selected default; a non-nil empty slice matches nothing.
// Values that never occur in the table simply match no rows.
type Selection struct {
	Years        []int
	Seniorities  []string
	Contracts    []string
	CompanySizes []string
}

func (s Selection) unrestricted() bool {
	return s.Years == nil && s.Seniorities == nil && s.Contracts == nil && s.CompanySizes == nil
}

// Apply restricts tab to rows whose year, seniority, contract type and
// company size are all members of the corresponding selection sets. The
// result is a fresh view over tab; the table itself is never modified.
func Apply(tab *Table, sel Selection) *View {
	if sel.unrestricted() {
		return tab.All()
	}

	var years map[int32]bool
	if sel.Years != nil {
		years = make(map[int32]bool, len(sel.Years))
		for _, y := range sel.Years {
			// Table years are int32; a wider value can never match a row.
			if y < math.MinInt32 || y > math.MaxInt32 {
				continue
			}
			years[int32(y)] = true
		}
	}
	var seniority, contract, size []bool
	if sel.Seniorities != nil {
		seniority = allowSet(tab.SeniorityDict, sel.Seniorities)
	}
	if sel.Contracts != nil {
		contract = allowSet(tab.ContractDict, sel.Contracts)
	}
	if sel.CompanySizes != nil {
		size = allowSet(tab.CompanySizeDict, sel.CompanySizes)
	}

	idx := make([]int32, 0, tab.Len())
	for i := 0; i < tab.Len(); i++ {
		if years != nil && !years[tab.Years[i]] {
			continue
		}
		if seniority != nil && !seniority[tab.SeniorityIDs[i]] {
			continue
		}
		if contract != nil && !contract[tab.ContractIDs[i]] {
			continue
		}
		if size != nil && !size[tab.CompanySizeIDs[i]] {
			continue
		}
		idx = append(idx, int32(i))
	}
	return &View{tab: tab, idx: idx}
}

// allowSet turns allowed values into a membership table indexed by
// dictionary ID, so the row loop tests IDs instead of strings. Allowed
// values absent from the dictionary cannot match any row.
func allowSet(dict []string, allowed []string) []bool {
	set := make([]bool, len(dict))
	for _, v := range allowed {
		for id, name := range dict {
			if name == v {
				set[id] = true
				break
			}
		}
	}
	return set
}
