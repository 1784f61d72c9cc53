package features

import (
	"testing"

	"imbalance-bench/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess(t *testing.T) {
	tbl, err := dataset.NewTable(
		[]string{"duration", "proto", "src_bytes", "attack_category"},
		[][]string{
			{"1.0", "tcp", "10", "normal"},
			{"100.0", "udp", "20", "dos"},
			{"2.0", "tcp", "15", "normal"},
			{"250.0", "icmp", "30", "dos"},
		},
	)
	require.NoError(t, err)

	x, err := Preprocess(tbl, []string{"proto"}, []string{"duration", "src_bytes"})
	require.NoError(t, err)
	require.Len(t, x, 4)
	require.Len(t, x[0], 3)

	// categorical column was encoded in place
	proto, err := tbl.Column("proto")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "1", "0"}, proto)

	// matrix keeps table column order, so the categorical codes sit at
	// the same position the column has in the file
	assert.Equal(t, []float64{1, 2, 1, 0}, []float64{x[0][1], x[1][1], x[2][1], x[3][1]})

	// label columns are untouched and excluded from the matrix
	labels, err := tbl.Column("attack_category")
	require.NoError(t, err)
	assert.Equal(t, "normal", labels[0])
}

func TestPreprocess_MissingColumn(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"a"}, [][]string{{"1"}, {"2"}})
	require.NoError(t, err)

	_, err = Preprocess(tbl, []string{"missing"}, nil)
	assert.Error(t, err)

	_, err = Preprocess(tbl, nil, []string{"missing"})
	assert.Error(t, err)
}

func TestPreprocess_OverlappingColumns(t *testing.T) {
	tbl, err := dataset.NewTable([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)

	_, err = Preprocess(tbl, []string{"a"}, []string{"a", "b"})
	assert.Error(t, err)
}
