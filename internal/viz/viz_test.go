package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarChart_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	sink, err := New(filepath.Join(dir, "plots"))
	require.NoError(t, err)

	err = sink.BarChart([]string{"normal", "dos", "probe"}, []int{900, 600, 40},
		"Re-weighted Count (attack_category)")
	require.NoError(t, err)

	path := filepath.Join(dir, "plots", "re_weighted_count_attack_category.png")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestConfusionMatrix_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	sink, err := New(dir)
	require.NoError(t, err)

	actual := []string{"dos", "normal", "dos", "probe", "normal"}
	predicted := []string{"dos", "dos", "dos", "probe", "normal"}
	err = sink.ConfusionMatrix(actual, predicted, "SMOTE - RandomForest - Label attack_category")
	require.NoError(t, err)

	path := filepath.Join(dir, "smote_randomforest_label_attack_category.png")
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestConfusionMatrix_Misaligned(t *testing.T) {
	sink, err := New(t.TempDir())
	require.NoError(t, err)

	err = sink.ConfusionMatrix([]string{"a"}, []string{"a", "b"}, "bad")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Re-weighted Count (attack_category)", "re_weighted_count_attack_category.png"},
		{"SMOTE - RandomForest - Label target", "smote_randomforest_label_target.png"},
		{"ADASYN", "adasyn.png"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, fileName(tc.in))
	}
}
