package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tab := newTestTable()

	// Sum 540000 over 6 rows.
	m := Summarize(tab.All())
	assert.Equal(t, 90000.0, m.MeanSalary)
	assert.Equal(t, 120000.0, m.MaxSalary)
	assert.Equal(t, 6, m.Count)
	assert.Equal(t, "Data Scientist", m.TopTitle)
}

func TestSummarizeFilteredView(t *testing.T) {
	tab := newTestTable()

	m := Summarize(Apply(tab, Selection{Years: []int{2023}}))
	assert.Equal(t, 90000.0, m.MeanSalary)
	assert.Equal(t, 100000.0, m.MaxSalary)
	assert.Equal(t, 2, m.Count)
}

func TestSummarizeEmpty(t *testing.T) {
	tab := newTestTable()

	m := Summarize(Apply(tab, Selection{Years: []int{1999}}))
	require.Equal(t, 0, m.Count)
	assert.Zero(t, m.MeanSalary)
	assert.Zero(t, m.MaxSalary)
	assert.Equal(t, TopTitleEmpty, m.TopTitle)
}

func TestSummarizeTopTitleTie(t *testing.T) {
	tab := newTestTable()

	// 2024 holds one row each of Data Scientist, Data Analyst and
	// ML Engineer; the tie resolves to the smallest title.
	m := Summarize(Apply(tab, Selection{Years: []int{2024}}))
	assert.Equal(t, "Data Analyst", m.TopTitle)
}
