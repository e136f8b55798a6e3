package engine

import (
	"sort"

	"salarydash/internal/models"
)

const (
	// TopTitleLimit caps the mean-salary ranking at ten titles.
	TopTitleLimit = 10
	// HistogramBinCount is fixed regardless of how the salaries spread.
	HistogramBinCount = 30
	// DefaultCountryTitle is the job title the per-country chart drills
	// into when the caller does not pick one.
	DefaultCountryTitle = "Data Scientist"
)

// TopTitles groups v by job title and returns up to ten titles with the
// highest mean salary, ordered ascending by mean for the horizontal-bar
// convention. Equal means order by title, both at the cut boundary and
// in the returned items.
func TopTitles(v *View) models.TopTitlesChart {
	if v.Len() == 0 {
		return models.TopTitlesChart{Status: models.ChartNoData}
	}

	t := v.tab
	sums := make([]float64, len(t.TitleDict))
	counts := make([]int, len(t.TitleDict))
	for i := 0; i < v.Len(); i++ {
		r := v.row(i)
		sums[t.TitleIDs[r]] += t.Salaries[r]
		counts[t.TitleIDs[r]]++
	}

	items := make([]models.TitleMean, 0, len(counts))
	for id, c := range counts {
		if c == 0 {
			continue
		}
		items = append(items, models.TitleMean{
			Title:      t.TitleDict[id],
			MeanSalary: sums[id] / float64(c),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].MeanSalary != items[j].MeanSalary {
			return items[i].MeanSalary > items[j].MeanSalary
		}
		return items[i].Title < items[j].Title
	})
	if len(items) > TopTitleLimit {
		items = items[:TopTitleLimit]
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].MeanSalary != items[j].MeanSalary {
			return items[i].MeanSalary < items[j].MeanSalary
		}
		return items[i].Title < items[j].Title
	})

	return models.TopTitlesChart{Status: models.ChartOK, Items: items}
}

// SalaryHistogram buckets the view's salaries into HistogramBinCount
// equal-width bins spanning the observed min..max. Bins are half-open
// except the last, which is closed so the max lands inside the grid. A
// single-valued range is widened by half a unit on each side.
func SalaryHistogram(v *View) models.HistogramChart {
	if v.Len() == 0 {
		return models.HistogramChart{Status: models.ChartNoData}
	}

	t := v.tab
	lo := t.Salaries[v.row(0)]
	hi := lo
	for i := 1; i < v.Len(); i++ {
		s := t.Salaries[v.row(i)]
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / HistogramBinCount
	bins := make([]models.HistogramBin, HistogramBinCount)
	for b := range bins {
		bins[b].Low = lo + width*float64(b)
		bins[b].High = lo + width*float64(b+1)
	}
	bins[HistogramBinCount-1].High = hi

	for i := 0; i < v.Len(); i++ {
		b := int((t.Salaries[v.row(i)] - lo) / width)
		if b < 0 {
			b = 0
		}
		if b >= HistogramBinCount {
			b = HistogramBinCount - 1
		}
		bins[b].Count++
	}

	return models.HistogramChart{
		Status:   models.ChartOK,
		BinCount: HistogramBinCount,
		Bins:     bins,
	}
}

// WorkModes counts the view's rows per remote-work mode and reports each
// mode's share of the filtered total, largest first. Equal counts resolve
// by mode name.
func WorkModes(v *View) models.WorkModesChart {
	if v.Len() == 0 {
		return models.WorkModesChart{Status: models.ChartNoData}
	}

	t := v.tab
	counts := make([]int, len(t.RemoteDict))
	for i := 0; i < v.Len(); i++ {
		counts[t.RemoteIDs[v.row(i)]]++
	}

	total := v.Len()
	items := make([]models.WorkModeCount, 0, len(counts))
	for id, c := range counts {
		if c == 0 {
			continue
		}
		items = append(items, models.WorkModeCount{
			Mode:    t.RemoteDict[id],
			Count:   c,
			Percent: float64(c) / float64(total) * 100,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Mode < items[j].Mode
	})

	return models.WorkModesChart{Status: models.ChartOK, Total: total, Items: items}
}

// CountryMeans restricts v to one job title and averages salary per
// residence country, ordered by country code. The two empty outcomes stay
// distinct: no rows at all versus rows but none matching the title.
func CountryMeans(v *View, title string) models.CountryMeansChart {
	if title == "" {
		title = DefaultCountryTitle
	}
	out := models.CountryMeansChart{Title: title}

	if v.Len() == 0 {
		out.Status = models.ChartNoData
		return out
	}
	t := v.tab
	titleID, ok := t.titleID(title)
	if !ok {
		out.Status = models.ChartNoTitleMatch
		return out
	}

	sums := make([]float64, len(t.CountryDict))
	counts := make([]int, len(t.CountryDict))
	matched := 0
	for i := 0; i < v.Len(); i++ {
		r := v.row(i)
		if t.TitleIDs[r] != titleID {
			continue
		}
		sums[t.CountryIDs[r]] += t.Salaries[r]
		counts[t.CountryIDs[r]]++
		matched++
	}
	if matched == 0 {
		out.Status = models.ChartNoTitleMatch
		return out
	}

	items := make([]models.CountryMean, 0, matched)
	for id, c := range counts {
		if c == 0 {
			continue
		}
		items = append(items, models.CountryMean{
			Country:    t.CountryDict[id],
			MeanSalary: sums[id] / float64(c),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Country < items[j].Country })

	out.Status = models.ChartOK
	out.Items = items
	return out
}
