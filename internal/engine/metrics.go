package engine

import "salarydash/internal/models"

// TopTitleEmpty is the placeholder title shown when no rows survive
// filtering.
const TopTitleEmpty = "–"

// Summarize computes the headline metrics over v in a single pass. An
// empty view is a defined state, not an error: zero metrics plus the
// placeholder title.
func Summarize(v *View) models.Metrics {
	n := v.Len()
	if n == 0 {
		return models.Metrics{TopTitle: TopTitleEmpty}
	}

	t := v.tab
	sum := 0.0
	max := t.Salaries[v.row(0)]
	counts := make([]int, len(t.TitleDict))
	for i := 0; i < n; i++ {
		r := v.row(i)
		s := t.Salaries[r]
		sum += s
		if s > max {
			max = s
		}
		counts[t.TitleIDs[r]]++
	}

	// Most frequent title; equal counts resolve to the lexicographically
	// smallest so the answer is stable across reloads.
	top := -1
	for id, c := range counts {
		if c == 0 {
			continue
		}
		if top < 0 || c > counts[top] || (c == counts[top] && t.TitleDict[id] < t.TitleDict[top]) {
			top = id
		}
	}

	return models.Metrics{
		MeanSalary: sum / float64(n),
		MaxSalary:  max,
		Count:      n,
		TopTitle:   t.TitleDict[top],
	}
}
