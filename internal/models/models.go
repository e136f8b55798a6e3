package models

import "time"

// ChartStatus tells a consumer whether a chart payload carries data.
// Empty results are a defined state, not an error.
type ChartStatus string

const (
	ChartOK ChartStatus = "ok"
	// ChartNoData means the filtered table had no rows at all.
	ChartNoData ChartStatus = "no_data"
	// ChartNoTitleMatch means rows existed but none for the requested
	// job title (country chart only).
	ChartNoTitleMatch ChartStatus = "no_title_match"
)

// Metrics are the four headline tiles.
type Metrics struct {
	MeanSalary float64 `json:"mean_salary"`
	MaxSalary  float64 `json:"max_salary"`
	Count      int     `json:"count"`
	TopTitle   string  `json:"top_title"`
}

type TitleMean struct {
	Title      string  `json:"title"`
	MeanSalary float64 `json:"mean_salary"`
}

// TopTitlesChart lists the highest-paying job titles by mean salary,
// ascending by mean (horizontal-bar convention).
type TopTitlesChart struct {
	Status ChartStatus `json:"status"`
	Items  []TitleMean `json:"items,omitempty"`
}

type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// HistogramChart is the salary distribution. BinCount is reported, not
// requested: the builder always produces exactly that many bins.
type HistogramChart struct {
	Status   ChartStatus    `json:"status"`
	BinCount int            `json:"bin_count"`
	Bins     []HistogramBin `json:"bins,omitempty"`
}

type WorkModeCount struct {
	Mode    string  `json:"mode"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// WorkModesChart counts rows per remote-work mode. Total always equals
// the row count of the filtered table the chart was built from.
type WorkModesChart struct {
	Status ChartStatus     `json:"status"`
	Total  int             `json:"total"`
	Items  []WorkModeCount `json:"items,omitempty"`
}

type CountryMean struct {
	Country    string  `json:"country"`
	MeanSalary float64 `json:"mean_salary"`
}

// CountryMeansChart is the per-country mean salary for a single job title.
type CountryMeansChart struct {
	Status ChartStatus   `json:"status"`
	Title  string        `json:"title"`
	Items  []CountryMean `json:"items,omitempty"`
}

// FilterOptions are the distinct values of the four filterable attributes,
// taken from the full table, sorted ascending.
type FilterOptions struct {
	Years        []int    `json:"years"`
	Seniorities  []string `json:"seniorities"`
	Contracts    []string `json:"contracts"`
	CompanySizes []string `json:"company_sizes"`
}

// Row is one decoded record of the detailed data table.
type Row struct {
	Year        int     `json:"year"`
	Seniority   string  `json:"seniority"`
	Contract    string  `json:"contract"`
	CompanySize string  `json:"company_size"`
	Title       string  `json:"job_title"`
	SalaryUSD   float64 `json:"salary_usd"`
	Remote      string  `json:"remote"`
	Country     string  `json:"residence_iso3"`
}

// DatasetMeta identifies the snapshot a response was computed from.
type DatasetMeta struct {
	SnapshotID   string    `json:"snapshot_id"`
	FetchedAt    time.Time `json:"fetched_at"`
	TotalRows    int       `json:"total_rows"`
	FilteredRows int       `json:"filtered_rows"`
}

// Dashboard is the single-pass payload: metrics plus all four charts.
type Dashboard struct {
	Meta               DatasetMeta       `json:"meta"`
	Metrics            Metrics           `json:"metrics"`
	TopTitles          TopTitlesChart    `json:"top_titles"`
	SalaryDistribution HistogramChart    `json:"salary_distribution"`
	WorkModes          WorkModesChart    `json:"work_modes"`
	CountryMeans       CountryMeansChart `json:"country_means"`
}
