// Package config layers parameter sources the way the rest of the
// guillocut stack does configuration: a base set of defaults, a
// parameters CSV (or YAML), environment overrides, and finally CLI flag
// overrides, all unified through a single spf13/viper instance bound to
// instance.Parameters.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/instancecsv"
)

// Config is the resolved run configuration: the packing parameters plus
// the ambient fields (time limit, logging, output paths) the CLI binds.
type Config struct {
	Parameters instance.Parameters

	TimeLimitSeconds  int    `mapstructure:"time_limit"`
	OutputPath        string `mapstructure:"output"`
	CertificatePath   string `mapstructure:"certificate"`
	LogPath           string `mapstructure:"log"`
	VerbosityLevel    int    `mapstructure:"verbosity_level"`
	OnlyWriteAtTheEnd bool   `mapstructure:"only_write_at_the_end"`
}

// Load builds a viper instance seeded with defaults, optionally merges a
// parameters CSV or YAML file at parametersPath, applies environment
// variable overrides (GUILLOCUT_ prefix), and returns the resolved
// Config. CLI flag overrides are applied by the caller afterward (the
// cli package's applyParamOverrides), since cobra flags are parsed after
// this is called.
func Load(parametersPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GUILLOCUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{Parameters: instance.DefaultParameters()}

	if parametersPath != "" {
		if strings.HasSuffix(parametersPath, ".csv") {
			if err := mergeParametersCSV(v, parametersPath); err != nil {
				return nil, err
			}
		} else {
			v.SetConfigFile(parametersPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", parametersPath, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyParametersFromViper(v, &cfg.Parameters)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("time_limit", 0)
	v.SetDefault("output", "")
	v.SetDefault("certificate", "")
	v.SetDefault("log", "")
	v.SetDefault("verbosity_level", 1)
	v.SetDefault("only_write_at_the_end", false)

	v.SetDefault("objective", "default")
	v.SetDefault("cut_type", "roadef2018")
	v.SetDefault("first_stage_orientation", "vertical")
	v.SetDefault("number_of_stages", 2)
	v.SetDefault("minimum_waste_length", 1)
	v.SetDefault("cut_thickness", 0)
}

// mergeParametersCSV reads a two-column NAME,VALUE parameters CSV
// through instancecsv and feeds each row into v as an override, so the
// same viper precedence chain (env > file > default) governs CSV input
// too.
func mergeParametersCSV(v *viper.Viper, path string) error {
	pairs, err := instancecsv.ReadParameterPairs(path)
	if err != nil {
		return fmt.Errorf("config: read parameters csv %s: %w", path, err)
	}
	m := make(map[string]any, len(pairs))
	for name, value := range pairs {
		m[name] = value
	}
	if err := v.MergeConfigMap(m); err != nil {
		return fmt.Errorf("config: merge parameters csv %s: %w", path, err)
	}
	return nil
}

// applyParametersFromViper reads the recognized packing parameter keys
// back out of v and applies them to p, honoring whichever layer (env,
// file, default) won. CLI flag overrides are applied later by the caller.
func applyParametersFromViper(v *viper.Viper, p *instance.Parameters) {
	if v.IsSet("objective") {
		if obj, ok := instancecsv.ParseObjectiveName(v.GetString("objective")); ok {
			p.Objective = obj
		}
	}
	if v.IsSet("cut_type") {
		if ct, ok := instancecsv.ParseCutTypeName(v.GetString("cut_type")); ok {
			p.CutType = ct
		}
	}
	if v.IsSet("first_stage_orientation") {
		if o, ok := instancecsv.ParseOrientationName(v.GetString("first_stage_orientation")); ok {
			p.FirstStageOrientation = o
		}
	}
	if v.IsSet("number_of_stages") {
		p.NumberOfStages = v.GetInt("number_of_stages")
	}
	if v.IsSet("minimum_waste_length") {
		p.MinimumWaste = geom.Length(v.GetInt64("minimum_waste_length"))
	}
	if v.IsSet("cut_thickness") {
		p.CutThickness = geom.Length(v.GetInt64("cut_thickness"))
	}
	if v.IsSet("minimum_distance_1_cuts") {
		p.MinimumDistance1Cuts = geom.Length(v.GetInt64("minimum_distance_1_cuts"))
	}
	if v.IsSet("maximum_distance_1_cuts") {
		p.MaximumDistance1Cuts = geom.Length(v.GetInt64("maximum_distance_1_cuts"))
	}
	if v.IsSet("minimum_distance_2_cuts") {
		p.MinimumDistance2Cuts = geom.Length(v.GetInt64("minimum_distance_2_cuts"))
	}
	if v.IsSet("maximum_number_2_cuts") {
		p.MaximumNumberOf2Cuts = v.GetInt("maximum_number_2_cuts")
	}
	if v.IsSet("cut_through_defects") {
		p.CutThroughDefects = v.GetBool("cut_through_defects")
	}
}

// ApplyPredefined decodes the 4-character DCON predefined-parameter
// shorthand into p: the stage count, cut type and first-stage orientation
// are applied; the rotation-policy letter is validated but not applied.
func ApplyPredefined(p *instance.Parameters, code string) error {
	if len(code) < 4 {
		return fmt.Errorf("config: predefined code %q must be at least 4 characters", code)
	}
	stages := 0
	i := 0
	for i < len(code)-3 && code[i] >= '0' && code[i] <= '9' {
		stages = stages*10 + int(code[i]-'0')
		i++
	}
	if stages == 0 {
		return fmt.Errorf("config: predefined code %q has no stage digit", code)
	}
	rest := code[i:]
	if len(rest) != 3 {
		return fmt.Errorf("config: predefined code %q malformed after stage digits", code)
	}

	switch rest[0] {
	case 'R':
		p.CutType = instance.Roadef2018
	case 'N':
		p.CutType = instance.NonExact
	case 'E':
		p.CutType = instance.Exact
	case 'H':
		p.CutType = instance.Homogenous
	default:
		return fmt.Errorf("config: predefined code %q has unknown cut type %q", code, rest[0])
	}

	switch rest[1] {
	case 'V':
		p.FirstStageOrientation = geom.Vertical
	case 'H':
		p.FirstStageOrientation = geom.Horizontal
	case 'A':
		p.FirstStageOrientation = geom.Any
	default:
		return fmt.Errorf("config: predefined code %q has unknown orientation %q", code, rest[1])
	}

	switch rest[2] {
	case 'R', 'O':
		// Rotation policy is per item type (ItemType.Oriented); the
		// letter is accepted but changes no parameter and no item type.
	default:
		return fmt.Errorf("config: predefined code %q has unknown rotation flag %q", code, rest[2])
	}

	p.NumberOfStages = stages
	return nil
}
