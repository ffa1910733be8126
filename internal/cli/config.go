package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/codalotl/faildiff/internal/diff"
)

// Configuration keys. They are also the YAML keys in config files; the environment variable for a key is FAILDIFF_ followed by the upper-cased key.
const (
	keyContext      = "context"
	keyContextLines = "context_lines"
	keyLineDiff     = "line_diff"
	keyFormat       = "format"
	keyColor        = "color"
)

const (
	envPrefix          = "FAILDIFF"
	globalConfigDir    = "faildiff"
	globalConfigFile   = "config.yaml"
	projectConfigFile  = ".faildiff.yaml"
	maxConfigDirWalkup = 64
)

// Values of the format and color settings.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// Config is faildiff's configuration, loaded from a cascade of sources (lowest precedence first): built-in defaults, the global config file, the nearest project
// config file, FAILDIFF_* environment variables, and command-line flags.
type Config struct {
	// Context is the number of common characters kept next to a difference in single-value mode.
	Context int `mapstructure:"context" json:"context" yaml:"context" validate:"min=0"`

	// ContextLines is the number of common lines kept on each side of a line diff.
	ContextLines int `mapstructure:"context_lines" json:"context_lines" yaml:"context_lines" validate:"min=0"`

	// LineDiff enables line-diff mode for multi-line inputs.
	LineDiff bool `mapstructure:"line_diff" json:"line_diff" yaml:"line_diff"`

	Format string `mapstructure:"format" json:"format" yaml:"format" validate:"oneof=text json yaml"`
	Color  string `mapstructure:"color" json:"color" yaml:"color" validate:"oneof=auto always never"`

	// Sources lists the config files that were read, lowest precedence first.
	Sources []string `mapstructure:"-" json:"-" yaml:"-"`
}

func defaultConfig() Config {
	opts := diff.DefaultOptions()
	return Config{
		Context:      opts.Context,
		ContextLines: opts.ContextLines,
		LineDiff:     !opts.DisableLineDiff,
		Format:       formatText,
		Color:        colorAuto,
	}
}

// Options converts cfg to formatter options.
func (cfg Config) Options() diff.Options {
	return diff.Options{
		Context:         cfg.Context,
		ContextLines:    cfg.ContextLines,
		DisableLineDiff: !cfg.LineDiff,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their config key rather than their Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// loadConfig resolves the configuration for cmd. If the --config flag is set, that file replaces config file discovery and must exist.
func loadConfig(cmd *cobra.Command) (Config, error) {
	v := viper.New()

	def := defaultConfig()
	v.SetDefault(keyContext, def.Context)
	v.SetDefault(keyContextLines, def.ContextLines)
	v.SetDefault(keyLineDiff, def.LineDiff)
	v.SetDefault(keyFormat, def.Format)
	v.SetDefault(keyColor, def.Color)

	v.SetConfigType("yaml")

	var sources []string
	explicit, _ := cmd.Flags().GetString(flagConfig)
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", explicit, err)
		}
		sources = append(sources, explicit)
	} else {
		for _, path := range discoverConfigFiles() {
			v.SetConfigFile(path)
			if err := v.MergeInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			sources = append(sources, path)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	flags := map[string]string{
		keyContext:      flagContext,
		keyContextLines: flagContextLines,
		keyFormat:       flagFormat,
		keyColor:        flagColor,
	}
	for key, name := range flags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}
	// --no-line-diff is the negation of line_diff, so it can't be bound directly.
	if f := cmd.Flags().Lookup(flagNoLineDiff); f != nil && f.Changed {
		noLineDiff, err := cmd.Flags().GetBool(flagNoLineDiff)
		if err != nil {
			return Config{}, err
		}
		v.Set(keyLineDiff, !noLineDiff)
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	cfg.Sources = sources

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// discoverConfigFiles returns the existing config files, lowest precedence first: the global file under the user's config directory, then the nearest
// project file found by walking up from the working directory.
func discoverConfigFiles() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		global := filepath.Join(dir, globalConfigDir, globalConfigFile)
		if isFile(global) {
			paths = append(paths, global)
		}
	}
	if wd, err := os.Getwd(); err == nil {
		if p := nearestFile(wd, projectConfigFile); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// nearestFile returns the path of name in dir or its closest ancestor that has it, or "" if none does.
func nearestFile(dir, name string) string {
	for range maxConfigDirWalkup {
		p := filepath.Join(dir, name)
		if isFile(p) {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func validateConfig(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s (got %v)", fe.Field(), fe.Param(), fe.Value()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s (got %q)", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// writeConfig writes cfg as JSON if format is "json", and as YAML otherwise.
func writeConfig(w io.Writer, cfg Config, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(cfg)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
