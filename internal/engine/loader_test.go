package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `ano,senioridade,contrato,tamanho_empresa,cargo,usd,remoto,residencia_iso3
2023,senior,integral,M,Data Scientist,100000,remoto,US
2023,pleno,integral,M,"Head of Data, Analytics",80000,presencial,US
2024,junior,parcial,S,Data Analyst,42500.5,hibrido,BR
`

func TestParseCSV(t *testing.T) {
	tab, err := ParseCSV(strings.NewReader(testCSV))
	require.NoError(t, err)

	require.Equal(t, 3, tab.Len())
	assert.Equal(t, int32(2023), tab.Years[0])
	assert.Equal(t, 100000.0, tab.Salaries[0])
	assert.Equal(t, 42500.5, tab.Salaries[2])

	// Quoted fields survive intact.
	assert.Equal(t, "Head of Data, Analytics", tab.TitleDict[tab.TitleIDs[1]])

	assert.Len(t, tab.SeniorityDict, 3)
	assert.Len(t, tab.CountryDict, 2)
}

func TestParseCSVColumnOrderIrrelevant(t *testing.T) {
	// Shuffled header plus a column we do not keep.
	shuffled := `usd,cargo,ano,extra,senioridade,contrato,tamanho_empresa,remoto,residencia_iso3
90000,Data Scientist,2022,ignored,senior,integral,M,presencial,DE
`
	tab, err := ParseCSV(strings.NewReader(shuffled))
	require.NoError(t, err)

	require.Equal(t, 1, tab.Len())
	assert.Equal(t, int32(2022), tab.Years[0])
	assert.Equal(t, 90000.0, tab.Salaries[0])
	assert.Equal(t, "DE", tab.CountryDict[tab.CountryIDs[0]])
}

func TestParseCSVErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing column", "ano,senioridade\n2023,senior\n"},
		{"bad year", strings.Replace(testCSV, "2023", "20x3", 1)},
		{"year out of range", strings.Replace(testCSV, "2023", "4294969319", 1)},
		{"bad salary", strings.Replace(testCSV, "100000", "1e5x", 1)},
		{"NaN salary", strings.Replace(testCSV, "100000", "NaN", 1)},
		{"infinite salary", strings.Replace(testCSV, "100000", "+Inf", 1)},
		{"ragged row", testCSV + "2024,senior\n"},
		{"empty input", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDataUnavailable)
		})
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	// A dataset with no rows is a valid, merely empty, table.
	tab, err := ParseCSV(strings.NewReader("ano,senioridade,contrato,tamanho_empresa,cargo,usd,remoto,residencia_iso3\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tab.Len())
}

func TestLoaderLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testCSV))
	}))
	defer srv.Close()

	tab, err := NewLoader(srv.URL, srv.Client()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, tab.Len())
}

func TestLoaderLoadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewLoader(srv.URL, srv.Client()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestLoaderLoadConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewLoader(srv.URL, nil).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}
