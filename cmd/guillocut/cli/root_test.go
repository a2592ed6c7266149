package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

func TestApplyParamOverridesAppliesRecognizedNames(t *testing.T) {
	defer func() { paramOverrides = map[string]string{} }()
	paramOverrides = map[string]string{
		"number_of_stages":        "3",
		"cut_type":                "exact",
		"minimum_waste_length":    "15",
		"cut_thickness":           "2",
		"minimum_distance_1_cuts": "50",
		"maximum_distance_1_cuts": "900",
		"minimum_distance_2_cuts": "40",
		"maximum_number_2_cuts":   "2",
		"cut_through_defects":     "false",
	}

	p := instance.DefaultParameters()
	applyParamOverrides(&p)

	assert.Equal(t, 3, p.NumberOfStages)
	assert.Equal(t, instance.Exact, p.CutType)
	assert.Equal(t, geom.Length(15), p.MinimumWaste)
	assert.Equal(t, geom.Length(2), p.CutThickness)
	assert.Equal(t, geom.Length(50), p.MinimumDistance1Cuts)
	assert.Equal(t, geom.Length(900), p.MaximumDistance1Cuts)
	assert.Equal(t, geom.Length(40), p.MinimumDistance2Cuts)
	assert.Equal(t, 2, p.MaximumNumberOf2Cuts)
	assert.False(t, p.CutThroughDefects)
}

func TestApplyParamOverridesIgnoresUnrecognizedValues(t *testing.T) {
	defer func() { paramOverrides = map[string]string{} }()
	paramOverrides = map[string]string{"cut_type": "not-a-real-cut-type"}

	p := instance.DefaultParameters()
	original := p.CutType
	applyParamOverrides(&p)
	assert.Equal(t, original, p.CutType)
}

func TestExecuteEndToEndWritesCertificate(t *testing.T) {
	dir := t.TempDir()
	itemsFile := filepath.Join(dir, "items.csv")
	binsFile := filepath.Join(dir, "bins.csv")
	certFile := filepath.Join(dir, "certificate.csv")

	require.NoError(t, os.WriteFile(itemsFile, []byte("ID,WIDTH,HEIGHT,COPIES\np1,40,30,1\n"), 0o644))
	require.NoError(t, os.WriteFile(binsFile, []byte("ID,WIDTH,HEIGHT\nb1,100,100\n"), 0o644))

	rootCmd.SetArgs([]string{
		"--items", itemsFile,
		"--bins", binsFile,
		"--certificate", certFile,
		"--time-limit", "2s",
	})
	defer rootCmd.SetArgs(nil)

	err := Execute()
	require.NoError(t, err)

	info, err := os.Stat(certFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
