package engine

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	tab := newTestTable()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Apply(tab, Selection{Years: []int{2023}})))

	want := "year,seniority,contract,company_size,job_title,salary_usd,remote,residence_iso3\n" +
		"2023,senior,integral,M,Data Scientist,100000,remoto,US\n" +
		"2023,pleno,integral,M,Data Engineer,80000,presencial,US\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVQuoting(t *testing.T) {
	b := newTableBuilder()
	b.append(2024, 95000, "senior", "integral", "M", "Head of Data, Analytics", "remoto", "US")
	tab := b.build()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tab.All()))
	assert.Contains(t, buf.String(), `"Head of Data, Analytics"`)

	// The embedded comma must not split the record.
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Head of Data, Analytics", records[1][4])
}

func TestWriteArrowRoundTrip(t *testing.T) {
	tab := newTestTable()

	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, tab.All()))

	rdr, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer rdr.Release()

	schema := rdr.Schema()
	require.Equal(t, 8, schema.NumFields())
	assert.Equal(t, "year", schema.Field(0).Name)
	assert.Equal(t, "salary_usd", schema.Field(5).Name)

	total := 0
	for rdr.Next() {
		rec := rdr.Record()
		if total == 0 {
			years := rec.Column(0).(*array.Int32)
			titles := rec.Column(4).(*array.String)
			salaries := rec.Column(5).(*array.Float64)
			assert.Equal(t, int32(2023), years.Value(0))
			assert.Equal(t, "Data Scientist", titles.Value(0))
			assert.Equal(t, 100000.0, salaries.Value(0))
		}
		total += int(rec.NumRows())
	}
	require.NoError(t, rdr.Err())
	assert.Equal(t, tab.Len(), total)
}

func TestWriteArrowFilteredView(t *testing.T) {
	tab := newTestTable()

	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, Apply(tab, Selection{Years: []int{2024}})))

	rdr, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer rdr.Release()

	total := 0
	for rdr.Next() {
		total += int(rdr.Record().NumRows())
	}
	assert.Equal(t, 3, total)
}

func TestWriteArrowEmptyView(t *testing.T) {
	tab := newTestTable()

	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, Apply(tab, Selection{Years: []int{1999}})))

	// Still a valid stream: schema, no batches.
	rdr, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer rdr.Release()
	assert.False(t, rdr.Next())
	require.NoError(t, rdr.Err())
}
