package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecords_Monthly(t *testing.T) {
	table := &Table{
		Header: []string{" month ", "REVENUE", "Notes"},
		Rows: [][]string{
			{"2023-01-15", " 1000.50 ", "x"},
			{"Feb 2023", "1500", ""},
			{"2023-03", "1200", ""},
		},
	}

	records, err := parseRecords("monthly.csv", table, monthlySchema)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), records[0].Month)
	assert.Equal(t, "1000.5", records[0].Revenue.String())
	assert.Equal(t, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), records[1].Month)
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), records[2].Month)
}

func TestParseRecords_YearlyNormalizesToFirstOfYear(t *testing.T) {
	table := &Table{
		Header: []string{"Year", "Revenue"},
		Rows:   [][]string{{"2022-06-30", "10000"}, {"2023", "15000"}},
	}

	records, err := parseRecords("yearly.csv", table, yearlySchema)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), records[0].Year)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), records[1].Year)
}

func TestParseRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		wantErr error
		wantRow int
	}{
		{
			name:    "sem coluna de data",
			table:   &Table{Header: []string{"Revenue"}, Rows: [][]string{{"1"}}},
			wantErr: ErrDataLoad,
		},
		{
			name:    "sem coluna de receita",
			table:   &Table{Header: []string{"Month"}, Rows: [][]string{{"2023-01"}}},
			wantErr: ErrDataLoad,
		},
		{
			name:    "linha com colunas faltando",
			table:   &Table{Header: []string{"Month", "Revenue"}, Rows: [][]string{{"2023-01"}}},
			wantErr: ErrDataLoad,
		},
		{
			name:    "receita vazia",
			table:   &Table{Header: []string{"Month", "Revenue"}, Rows: [][]string{{"2023-01", "1"}, {"2023-02", ""}}},
			wantErr: ErrDataParse,
			wantRow: 2,
		},
		{
			name:    "data inválida",
			table:   &Table{Header: []string{"Month", "Revenue"}, Rows: [][]string{{"13/45/2023", "1"}}},
			wantErr: ErrDataParse,
			wantRow: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := parseRecords("monthly.csv", tt.table, monthlySchema)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, records)

			var pipelineErr *PipelineError
			require.ErrorAs(t, err, &pipelineErr)
			assert.Equal(t, "monthly.csv", pipelineErr.Source)
			assert.Equal(t, tt.wantRow, pipelineErr.Row)
		})
	}
}

func TestPipelineError_Message(t *testing.T) {
	err := NewParseError("monthly.csv", 4, ColumnRevenue, assert.AnError)

	assert.Contains(t, err.Error(), "data parse error")
	assert.Contains(t, err.Error(), "monthly.csv")
	assert.Contains(t, err.Error(), "linha 4")
	assert.Contains(t, err.Error(), "coluna Revenue")
	assert.ErrorIs(t, err, assert.AnError)
}
