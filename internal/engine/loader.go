package engine

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// ErrDataUnavailable reports that the remote dataset could not be fetched
// or parsed. Callers treat it as "no base table": the dashboard has nothing
// to serve until a later fetch succeeds.
var ErrDataUnavailable = errors.New("salary dataset unavailable")

// DefaultDatasetURL points at the public salary survey export the
// dashboard is built on.
const DefaultDatasetURL = "https://raw.githubusercontent.com/vqrca/dashboard_salarios_dados/refs/heads/main/dados-imersao-final.csv"

// Source column headers. The export ships with Portuguese headers; columns
// not listed here are ignored.
const (
	colYear        = "ano"
	colSeniority   = "senioridade"
	colContract    = "contrato"
	colCompanySize = "tamanho_empresa"
	colTitle       = "cargo"
	colSalaryUSD   = "usd"
	colRemote      = "remoto"
	colCountry     = "residencia_iso3"
)

// Loader fetches the remote dataset and parses it into a Table.
type Loader struct {
	url    string
	client *http.Client
}

// NewLoader builds a loader for url. An empty url selects the public
// dataset; a nil client falls back to http.DefaultClient.
func NewLoader(url string, client *http.Client) *Loader {
	if url == "" {
		url = DefaultDatasetURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{url: url, client: client}
}

// Load fetches and parses the dataset. Every failure mode wraps
// ErrDataUnavailable; a partially parsed table is never returned.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrDataUnavailable, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrDataUnavailable, l.url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %s: unexpected status %s", ErrDataUnavailable, l.url, resp.Status)
	}
	return ParseCSV(resp.Body)
}

// ParseCSV reads the salary dataset from r. A malformed row fails the whole
// load rather than being silently dropped, so a cached table is always
// internally consistent.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDataUnavailable, err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	b := newTableBuilder()
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrDataUnavailable, line, err)
		}

		year, err := strconv.ParseInt(strings.TrimSpace(rec[cols.year]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: year %q: %v", ErrDataUnavailable, line, rec[cols.year], err)
		}
		salary, err := strconv.ParseFloat(strings.TrimSpace(rec[cols.salary]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: salary %q: %v", ErrDataUnavailable, line, rec[cols.salary], err)
		}
		// ParseFloat accepts the tokens NaN and Inf; neither is a salary.
		if math.IsNaN(salary) || math.IsInf(salary, 0) {
			return nil, fmt.Errorf("%w: row %d: salary %q is not finite", ErrDataUnavailable, line, rec[cols.salary])
		}

		b.append(int(year), salary,
			rec[cols.seniority],
			rec[cols.contract],
			rec[cols.size],
			rec[cols.title],
			rec[cols.remote],
			rec[cols.country],
		)
	}
	return b.build(), nil
}

// columnIndex locates the eight columns we keep within the source header.
type columnIndex struct {
	year, seniority, contract, size, title, salary, remote, country int
}

func mapColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}

	var cols columnIndex
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{colYear, &cols.year},
		{colSeniority, &cols.seniority},
		{colContract, &cols.contract},
		{colCompanySize, &cols.size},
		{colTitle, &cols.title},
		{colSalaryUSD, &cols.salary},
		{colRemote, &cols.remote},
		{colCountry, &cols.country},
	} {
		i, ok := pos[want.name]
		if !ok {
			return columnIndex{}, fmt.Errorf("%w: missing column %q in header", ErrDataUnavailable, want.name)
		}
		*want.dst = i
	}
	return cols, nil
}
