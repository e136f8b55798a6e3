package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"salarydash/internal/engine"
	"salarydash/internal/models"
)

// Handler serves the dashboard API. Every data endpoint goes through the
// dataset cache, so the first request after expiry pays the fetch and the
// rest read from memory.
type Handler struct {
	cache        *engine.Cache
	countryTitle string
}

// NewHandler builds the API handler. countryTitle is the default job
// title for the per-country chart; empty selects the stock default.
func NewHandler(cache *engine.Cache, countryTitle string) *Handler {
	if countryTitle == "" {
		countryTitle = engine.DefaultCountryTitle
	}
	return &Handler{cache: cache, countryTitle: countryTitle}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.GetHealth)
	api.GET("/filters", h.GetFilters)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/metrics", h.GetMetrics)
	api.GET("/charts/top-titles", h.GetTopTitles)
	api.GET("/charts/top-titles.png", h.GetTopTitlesPNG)
	api.GET("/charts/salary-distribution", h.GetSalaryDistribution)
	api.GET("/charts/salary-distribution.png", h.GetSalaryDistributionPNG)
	api.GET("/charts/work-modes", h.GetWorkModes)
	api.GET("/charts/work-modes.png", h.GetWorkModesPNG)
	api.GET("/charts/country-means", h.GetCountryMeans)
	api.GET("/charts/country-means.png", h.GetCountryMeansPNG)
	api.GET("/records", h.GetRecords)
	api.GET("/records/export", h.GetExport)
}

// snapshot fetches the current dataset, translating a load failure into
// 503 so clients can tell "try again shortly" from a real server bug.
func (h *Handler) snapshot(c echo.Context) (engine.Snapshot, error) {
	snap, err := h.cache.Get(c.Request().Context())
	if err != nil {
		if errors.Is(err, engine.ErrDataUnavailable) {
			return engine.Snapshot{}, echo.NewHTTPError(http.StatusServiceUnavailable,
				"salary dataset unavailable").SetInternal(err)
		}
		return engine.Snapshot{}, err
	}
	return snap, nil
}

// filtered resolves the snapshot and applies the request's selection.
func (h *Handler) filtered(c echo.Context) (*engine.View, engine.Snapshot, error) {
	snap, err := h.snapshot(c)
	if err != nil {
		return nil, engine.Snapshot{}, err
	}
	return engine.Apply(snap.Table, parseSelection(c)), snap, nil
}

// title picks the job title for the per-country chart.
func (h *Handler) title(c echo.Context) string {
	if t := c.QueryParam("title"); t != "" {
		return t
	}
	return h.countryTitle
}

func meta(snap engine.Snapshot, view *engine.View) models.DatasetMeta {
	return models.DatasetMeta{
		SnapshotID:   snap.ID,
		FetchedAt:    snap.FetchedAt,
		TotalRows:    snap.Table.Len(),
		FilteredRows: view.Len(),
	}
}

// --- HANDLERS ---

// GetHealth reports liveness without touching the network: "loading"
// until the first successful fetch, "ok" with snapshot details after.
func (h *Handler) GetHealth(c echo.Context) error {
	snap, ok := h.cache.Peek()
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"status": "loading"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "ok",
		"snapshot_id": snap.ID,
		"fetched_at":  snap.FetchedAt,
		"rows":        snap.Table.Len(),
	})
}

// GetFilters returns the distinct values of the four filterable
// attributes, for populating the sidebar controls.
func (h *Handler) GetFilters(c echo.Context) error {
	snap, err := h.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.FilterOptions{
		Years:        snap.Table.DistinctYears(),
		Seniorities:  snap.Table.DistinctSeniorities(),
		Contracts:    snap.Table.DistinctContracts(),
		CompanySizes: snap.Table.DistinctCompanySizes(),
	})
}

// GetDashboard returns everything the dashboard renders in one payload:
// metrics plus all four charts over the same filtered view.
func (h *Handler) GetDashboard(c echo.Context) error {
	view, snap, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.Dashboard{
		Meta:               meta(snap, view),
		Metrics:            engine.Summarize(view),
		TopTitles:          engine.TopTitles(view),
		SalaryDistribution: engine.SalaryHistogram(view),
		WorkModes:          engine.WorkModes(view),
		CountryMeans:       engine.CountryMeans(view, h.title(c)),
	})
}

func (h *Handler) GetMetrics(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Summarize(view))
}

func (h *Handler) GetTopTitles(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.TopTitles(view))
}

func (h *Handler) GetSalaryDistribution(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.SalaryHistogram(view))
}

func (h *Handler) GetWorkModes(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.WorkModes(view))
}

func (h *Handler) GetCountryMeans(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.CountryMeans(view, h.title(c)))
}

// --- PNG VARIANTS ---
// JSON endpoints carry empty states as structured statuses; the image
// endpoints have no body to carry one, so anything but ok maps to 404.

func (h *Handler) GetTopTitlesPNG(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	data := engine.TopTitles(view)
	if data.Status != models.ChartOK {
		return noChart(data.Status)
	}
	png, err := renderTopTitlesPNG(data)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *Handler) GetSalaryDistributionPNG(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	data := engine.SalaryHistogram(view)
	if data.Status != models.ChartOK {
		return noChart(data.Status)
	}
	png, err := renderHistogramPNG(data)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *Handler) GetWorkModesPNG(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	data := engine.WorkModes(view)
	if data.Status != models.ChartOK {
		return noChart(data.Status)
	}
	png, err := renderWorkModesPNG(data)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *Handler) GetCountryMeansPNG(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	data := engine.CountryMeans(view, h.title(c))
	if data.Status != models.ChartOK {
		return noChart(data.Status)
	}
	png, err := renderCountryMeansPNG(data)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func noChart(status models.ChartStatus) error {
	msg := "no rows match the current selection"
	if status == models.ChartNoTitleMatch {
		msg = "no rows for the requested job title"
	}
	return echo.NewHTTPError(http.StatusNotFound, msg)
}

// --- RECORDS ---

// GetRecords returns the filtered rows as a paginated window in the
// table's original order.
func (h *Handler) GetRecords(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	total := view.Len()
	limit, offset := getPaginationParams(c, total)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   view.Rows(offset, limit),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetExport streams the filtered rows as a download. format=csv (default)
// or format=arrow for the IPC stream.
func (h *Handler) GetExport(c echo.Context) error {
	view, _, err := h.filtered(c)
	if err != nil {
		return err
	}
	switch format := c.QueryParam("format"); format {
	case "", "csv":
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="salaries.csv"`)
		c.Response().WriteHeader(http.StatusOK)
		return engine.WriteCSV(c.Response(), view)
	case "arrow":
		c.Response().Header().Set(echo.HeaderContentType, "application/vnd.apache.arrow.stream")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="salaries.arrow"`)
		c.Response().WriteHeader(http.StatusOK)
		return engine.WriteArrow(c.Response(), view)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown export format: "+format)
	}
}
