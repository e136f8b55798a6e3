package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// arrowBatchRows is the record-batch size for streamed exports, so a full
// export never materializes the whole view at once.
const arrowBatchRows = 4096

// arrowSchema mirrors the eight exported columns. Categorical columns go
// out decoded; consumers should not need our dictionaries.
var arrowSchema = arrow.NewSchema([]arrow.Field{
	{Name: "year", Type: arrow.PrimitiveTypes.Int32},
	{Name: "seniority", Type: arrow.BinaryTypes.String},
	{Name: "contract", Type: arrow.BinaryTypes.String},
	{Name: "company_size", Type: arrow.BinaryTypes.String},
	{Name: "job_title", Type: arrow.BinaryTypes.String},
	{Name: "salary_usd", Type: arrow.PrimitiveTypes.Float64},
	{Name: "remote", Type: arrow.BinaryTypes.String},
	{Name: "residence_iso3", Type: arrow.BinaryTypes.String},
}, nil)

// WriteArrow streams the view to w as an Arrow IPC stream. An empty view
// still produces a valid stream carrying only the schema.
func WriteArrow(w io.Writer, v *View) error {
	mem := memory.NewGoAllocator()
	wr := ipc.NewWriter(w, ipc.WithSchema(arrowSchema), ipc.WithAllocator(mem))
	rb := array.NewRecordBuilder(mem, arrowSchema)
	defer rb.Release()

	flush := func() error {
		rec := rb.NewRecord()
		defer rec.Release()
		return wr.Write(rec)
	}

	t := v.tab
	pending := 0
	for i := 0; i < v.Len(); i++ {
		r := v.row(i)
		rb.Field(0).(*array.Int32Builder).Append(t.Years[r])
		rb.Field(1).(*array.StringBuilder).Append(t.SeniorityDict[t.SeniorityIDs[r]])
		rb.Field(2).(*array.StringBuilder).Append(t.ContractDict[t.ContractIDs[r]])
		rb.Field(3).(*array.StringBuilder).Append(t.CompanySizeDict[t.CompanySizeIDs[r]])
		rb.Field(4).(*array.StringBuilder).Append(t.TitleDict[t.TitleIDs[r]])
		rb.Field(5).(*array.Float64Builder).Append(t.Salaries[r])
		rb.Field(6).(*array.StringBuilder).Append(t.RemoteDict[t.RemoteIDs[r]])
		rb.Field(7).(*array.StringBuilder).Append(t.CountryDict[t.CountryIDs[r]])
		pending++
		if pending == arrowBatchRows {
			if err := flush(); err != nil {
				return fmt.Errorf("writing arrow batch: %w", err)
			}
			pending = 0
		}
	}
	if pending > 0 {
		if err := flush(); err != nil {
			return fmt.Errorf("writing arrow batch: %w", err)
		}
	}
	return wr.Close()
}

// csvHeader matches the JSON field names of models.Row.
var csvHeader = []string{
	"year", "seniority", "contract", "company_size",
	"job_title", "salary_usd", "remote", "residence_iso3",
}

// WriteCSV streams the view to w as CSV with a header row.
func WriteCSV(w io.Writer, v *View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	t := v.tab
	for i := 0; i < v.Len(); i++ {
		r := v.row(i)
		rec := []string{
			strconv.Itoa(int(t.Years[r])),
			t.SeniorityDict[t.SeniorityIDs[r]],
			t.ContractDict[t.ContractIDs[r]],
			t.CompanySizeDict[t.CompanySizeIDs[r]],
			t.TitleDict[t.TitleIDs[r]],
			strconv.FormatFloat(t.Salaries[r], 'f', -1, 64),
			t.RemoteDict[t.RemoteIDs[r]],
			t.CountryDict[t.CountryIDs[r]],
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
