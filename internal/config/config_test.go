package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

func TestLoadWithNoParametersPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, instance.Roadef2018, cfg.Parameters.CutType)
	assert.Equal(t, 2, cfg.Parameters.NumberOfStages)
	assert.Equal(t, 1, cfg.VerbosityLevel)
}

func TestLoadMergesParametersCSV(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/parameters.csv"
	require.NoError(t, os.WriteFile(path, []byte("name,value\nobjective,knapsack\nnumber_of_stages,3\ncut_thickness,4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, instance.Knapsack, cfg.Parameters.Objective)
	assert.Equal(t, 3, cfg.Parameters.NumberOfStages)
	assert.Equal(t, geom.Length(4), cfg.Parameters.CutThickness)
}

func TestLoadRejectsUnreadableNonCSVConfigFile(t *testing.T) {
	_, err := Load("/nonexistent/path/parameters.yaml")
	assert.Error(t, err)
}

func TestApplyPredefinedDecodesStagesCutTypeOrientation(t *testing.T) {
	p := instance.DefaultParameters()
	err := ApplyPredefined(&p, "2RVR")
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumberOfStages)
	assert.Equal(t, instance.Roadef2018, p.CutType)
	assert.Equal(t, geom.Vertical, p.FirstStageOrientation)
}

func TestApplyPredefinedRejectsShortCode(t *testing.T) {
	p := instance.DefaultParameters()
	assert.Error(t, ApplyPredefined(&p, "2R"))
}

func TestApplyPredefinedRejectsUnknownCutType(t *testing.T) {
	p := instance.DefaultParameters()
	assert.Error(t, ApplyPredefined(&p, "2ZVR"))
}

func TestApplyPredefinedRejectsUnknownOrientation(t *testing.T) {
	p := instance.DefaultParameters()
	assert.Error(t, ApplyPredefined(&p, "2RZR"))
}

func TestApplyPredefinedMultiDigitStageCount(t *testing.T) {
	p := instance.DefaultParameters()
	require.NoError(t, ApplyPredefined(&p, "10HAO"))
	assert.Equal(t, 10, p.NumberOfStages)
	assert.Equal(t, instance.Homogenous, p.CutType)
	assert.Equal(t, geom.Any, p.FirstStageOrientation)
}
