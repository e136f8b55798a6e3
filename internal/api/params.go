package api

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"salarydash/internal/engine"
)

// Filter query parameters. Each may repeat: ?year=2023&year=2024. An
// absent parameter leaves its attribute unrestricted; a parameter sent
// with only blank values deselects everything.
const (
	paramYear        = "year"
	paramSeniority   = "seniority"
	paramContract    = "contract"
	paramCompanySize = "company_size"
)

// parseSelection reads the four multi-value filter parameters off the
// request.
func parseSelection(c echo.Context) engine.Selection {
	params := c.QueryParams()
	return engine.Selection{
		Years:        intValues(params[paramYear]),
		Seniorities:  stringValues(params[paramSeniority]),
		Contracts:    stringValues(params[paramContract]),
		CompanySizes: stringValues(params[paramCompanySize]),
	}
}

// stringValues trims and drops blank entries but keeps the slice non-nil
// whenever the parameter was sent at all, preserving the distinction
// between "not filtered" and "nothing selected".
func stringValues(raw []string) []string {
	if raw == nil {
		return nil
	}
	vals := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}

// intValues works like stringValues. Unparseable entries are dropped;
// like any other value absent from the table, they match no rows.
func intValues(raw []string) []int {
	if raw == nil {
		return nil
	}
	vals := make([]int, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		vals = append(vals, n)
	}
	return vals
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
