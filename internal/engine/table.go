package engine

import "sort"

// Table holds the salary dataset in struct-of-arrays form. Numeric columns
// are flat slices; categorical columns are dictionary encoded (dense int32
// IDs plus an ID -> value dictionary). A Table is immutable once built;
// every downstream consumer works through read-only Views.
type Table struct {
	// Data columns
	Years    []int32
	Salaries []float64

	// Dictionary encoded IDs (0..N)
	SeniorityIDs   []int32
	ContractIDs    []int32
	CompanySizeIDs []int32
	TitleIDs       []int32
	RemoteIDs      []int32
	CountryIDs     []int32

	// Dictionaries (ID -> value)
	SeniorityDict   []string
	ContractDict    []string
	CompanySizeDict []string
	TitleDict       []string
	RemoteDict      []string
	CountryDict     []string
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Years) }

// DistinctYears returns the years present in the table, ascending.
func (t *Table) DistinctYears() []int {
	seen := make(map[int32]bool)
	years := make([]int, 0, 8)
	for _, y := range t.Years {
		if !seen[y] {
			seen[y] = true
			years = append(years, int(y))
		}
	}
	sort.Ints(years)
	return years
}

// DistinctSeniorities returns the seniority levels present, ascending.
func (t *Table) DistinctSeniorities() []string { return sortedCopy(t.SeniorityDict) }

// DistinctContracts returns the contract types present, ascending.
func (t *Table) DistinctContracts() []string { return sortedCopy(t.ContractDict) }

// DistinctCompanySizes returns the company sizes present, ascending.
func (t *Table) DistinctCompanySizes() []string { return sortedCopy(t.CompanySizeDict) }

// titleID resolves a job title to its dictionary ID.
func (t *Table) titleID(name string) (int32, bool) {
	for id, title := range t.TitleDict {
		if title == name {
			return int32(id), true
		}
	}
	return 0, false
}

func sortedCopy(dict []string) []string {
	out := make([]string, len(dict))
	copy(out, dict)
	sort.Strings(out)
	return out
}

// dictionary assigns dense IDs to categorical values in first-seen order.
type dictionary struct {
	index map[string]int32
	names []string
}

func newDictionary() *dictionary {
	return &dictionary{index: make(map[string]int32)}
}

func (d *dictionary) id(s string) int32 {
	if id, ok := d.index[s]; ok {
		return id
	}
	id := int32(len(d.names))
	d.names = append(d.names, s)
	d.index[s] = id
	return id
}

// tableBuilder accumulates rows during parsing and seals them into a Table.
type tableBuilder struct {
	tab       Table
	seniority *dictionary
	contract  *dictionary
	size      *dictionary
	title     *dictionary
	remote    *dictionary
	country   *dictionary
}

func newTableBuilder() *tableBuilder {
	return &tableBuilder{
		seniority: newDictionary(),
		contract:  newDictionary(),
		size:      newDictionary(),
		title:     newDictionary(),
		remote:    newDictionary(),
		country:   newDictionary(),
	}
}

func (b *tableBuilder) append(year int, salary float64, seniority, contract, size, title, remote, country string) {
	b.tab.Years = append(b.tab.Years, int32(year))
	b.tab.Salaries = append(b.tab.Salaries, salary)
	b.tab.SeniorityIDs = append(b.tab.SeniorityIDs, b.seniority.id(seniority))
	b.tab.ContractIDs = append(b.tab.ContractIDs, b.contract.id(contract))
	b.tab.CompanySizeIDs = append(b.tab.CompanySizeIDs, b.size.id(size))
	b.tab.TitleIDs = append(b.tab.TitleIDs, b.title.id(title))
	b.tab.RemoteIDs = append(b.tab.RemoteIDs, b.remote.id(remote))
	b.tab.CountryIDs = append(b.tab.CountryIDs, b.country.id(country))
}

func (b *tableBuilder) build() *Table {
	b.tab.SeniorityDict = b.seniority.names
	b.tab.ContractDict = b.contract.names
	b.tab.CompanySizeDict = b.size.names
	b.tab.TitleDict = b.title.names
	b.tab.RemoteDict = b.remote.names
	b.tab.CountryDict = b.country.names
	return &b.tab
}
