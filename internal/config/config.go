package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config: значения по умолчанию → YAML-файл (если есть) → ENV → флаги.
type Config struct {
	Env           string `yaml:"env" env:"SCHEMAGEN_ENV" env-default:"local"`
	Port          string `yaml:"port" env:"SCHEMAGEN_PORT" env-default:"8080"`
	DSLDir        string `yaml:"dsl_dir" env:"SCHEMAGEN_DSL_DIR" env-default:"dsl"`
	OptionSetsDir string `yaml:"option_sets_dir" env:"SCHEMAGEN_OPTION_SETS_DIR" env-default:"reference/optionsets"`
	LogLevel      string `yaml:"log_level" env:"SCHEMAGEN_LOG_LEVEL" env-default:"info"`

	// Пустой DBURL — без базы: схема только компилируется
	DBURL     string `yaml:"-" env:"SCHEMAGEN_DB_URL"`
	AutoApply bool   `yaml:"auto_apply" env:"SCHEMAGEN_AUTO_APPLY" env-default:"false"`

	// Историческая модель User в каждой схеме. Default (true) — в Load, не через env-default.
	LegacySystemModel bool `yaml:"legacy_system_model" env:"SCHEMAGEN_LEGACY_SYSTEM_MODEL"`
}

// Load читает конфиг; path может не существовать. args — без имени программы.
func Load(path string, args []string) (*Config, error) {
	fs := flag.NewFlagSet("schemagen", flag.ContinueOnError)
	configPath := fs.String("config", path, "Path to config YAML")
	port := fs.String("port", "", "HTTP port")
	dsl := fs.String("dsl", "", "Path to DSL directory")
	optionSets := fs.String("option-sets", "", "Path to option sets directory")
	db := fs.String("db", "", "Postgres URL (empty = compile only)")
	autoApply := fs.String("auto-apply", "", "Apply generated DDL on start (true/false)")
	legacy := fs.String("legacy-system-model", "", "Prepend legacy User model (true/false)")
	logLevel := fs.String("log-level", "", "Log level (debug/info/warn/error)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{LegacySystemModel: true}
	if st, err := os.Stat(*configPath); err == nil && !st.IsDir() {
		if err := cleanenv.ReadConfig(*configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", *configPath, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	// Flags overrides
	setString(&cfg.Port, *port)
	setString(&cfg.DSLDir, *dsl)
	setString(&cfg.OptionSetsDir, *optionSets)
	setString(&cfg.DBURL, *db)
	setString(&cfg.LogLevel, *logLevel)
	if err := setBool(&cfg.AutoApply, *autoApply); err != nil {
		return nil, fmt.Errorf("auto-apply: %w", err)
	}
	if err := setBool(&cfg.LegacySystemModel, *legacy); err != nil {
		return nil, fmt.Errorf("legacy-system-model: %w", err)
	}

	if cfg.AutoApply && cfg.DBURL == "" {
		return nil, fmt.Errorf("auto_apply requires SCHEMAGEN_DB_URL")
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v string) error {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return nil
	case "1", "true", "yes":
		*dst = true
	case "0", "false", "no":
		*dst = false
	default:
		return fmt.Errorf("invalid boolean %q", v)
	}
	return nil
}
