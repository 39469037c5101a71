package kitten

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"
)

// LoadConfig builds the process configuration. Sources, lowest precedence
// first: built-in defaults, the optional kitten.yml config file, and
// environment variables (including a .env file in the working directory).
// Malformed input never fails the load; bad values are reported as warnings
// and the documented defaults stand in.
func LoadConfig() (Config, []error) {
	// A project .env augments the environment but never overrides variables
	// that are already set.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	var warnings []error

	// The config file is decoded into a copy so a malformed file leaves the
	// defaults untouched.
	fileCfg := cfg
	if err := readConfigFile(&fileCfg); err != nil {
		warnings = append(warnings, err)
	} else {
		cfg = fileCfg
	}

	// env parse errors are aggregated per field; fields that fail keep their
	// current value, so one bad variable does not spoil the rest.
	if err := env.ParseWithOptions(&cfg, env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): parseWait,
		},
	}); err != nil {
		warnings = append(warnings, fmt.Errorf("parsing environment: %w", err))
	}

	warnings = append(warnings, cfg.Validate()...)
	return cfg, warnings
}

// parseWait accepts both duration strings ("3s", "500ms") and bare numbers
// of seconds ("3"), the form the shell setup scripts historically wrote.
func parseWait(s string) (interface{}, error) {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(n * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}

// readConfigFile loads kitten.yml from the user config directories if one
// exists. A missing file is not an error.
func readConfigFile(cfg *Config) error {
	v := viper.New()
	v.SetConfigName("kitten")
	v.SetConfigType("yaml")

	scope := gap.NewScope(gap.User, "kitten-tts")
	if dirs, err := scope.ConfigDirs(); err == nil {
		for _, d := range dirs {
			v.AddConfigPath(d)
		}
	}
	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		v.AddConfigPath(filepath.Join(c, "kitten-tts"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	// The yaml struct tags drive file unmarshaling.
	err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" })
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}
