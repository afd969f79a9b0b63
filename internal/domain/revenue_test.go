package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(year int, m time.Month, revenue int64) MonthlyRecord {
	return MonthlyRecord{
		Month:   time.Date(year, m, 1, 0, 0, 0, 0, time.UTC),
		Revenue: decimal.NewFromInt(revenue),
	}
}

func TestSortedView(t *testing.T) {
	records := []MonthlyRecord{
		month(2023, time.March, 1200),
		month(2023, time.January, 1000),
		month(2023, time.February, 1500),
	}
	dataset := NewDataset("monthly.csv", "v1", "abc", time.Now(), records)

	asc := SortedView(dataset, true)
	desc := SortedView(dataset, false)

	require.Len(t, asc, 3)
	assert.Equal(t, time.January, asc[0].Month.Month())
	assert.Equal(t, time.March, asc[2].Month.Month())

	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}

	// A ordem da fonte é preservada
	assert.Equal(t, records, dataset.Records())
}

func TestSortedView_StableForDuplicates(t *testing.T) {
	first := month(2023, time.January, 1)
	second := month(2023, time.January, 2)
	dataset := NewDataset("monthly.csv", "v1", "abc", time.Now(), []MonthlyRecord{first, second})

	assert.Equal(t, []MonthlyRecord{first, second}, SortedView(dataset, true))
	assert.Equal(t, []MonthlyRecord{first, second}, SortedView(dataset, false))
}

func TestDataset_RecordsAreCopies(t *testing.T) {
	records := []MonthlyRecord{month(2023, time.January, 1000)}
	dataset := NewDataset("monthly.csv", "v1", "abc", time.Now(), records)

	records[0].Revenue = decimal.NewFromInt(1)
	view := dataset.Records()
	view[0].Revenue = decimal.NewFromInt(2)

	assert.True(t, decimal.NewFromInt(1000).Equal(dataset.Records()[0].Revenue))
	assert.Equal(t, 1, dataset.Len())
}

func TestDataset_Nil(t *testing.T) {
	var dataset *YearlyDataset

	assert.Equal(t, 0, dataset.Len())
	assert.Empty(t, dataset.Records())
	assert.Empty(t, SortedView(dataset, true))
}
