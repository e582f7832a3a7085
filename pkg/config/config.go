package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log      LogConfig
	Registry RegistryConfig
	Seed     SeedConfig
	Export   ExportConfig
	Output   OutputConfig
	Metrics  MetricsConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// RegistryConfig carries the enrollment and grading limits.
type RegistryConfig struct {
	CourseCapacity     int
	StudentCourseLimit int
	FailingThreshold   float64
}

// SeedConfig controls the roster loaded at startup.
type SeedConfig struct {
	Enabled bool
	File    string
}

// ExportConfig points report exports at a directory.
type ExportConfig struct {
	Dir string
}

type OutputConfig struct {
	Color bool
}

// MetricsConfig toggles dumping collected metrics when the CLI exits.
type MetricsConfig struct {
	Dump bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Registry = RegistryConfig{
		CourseCapacity:     positiveInt(v.GetInt("COURSE_CAPACITY"), 50),
		StudentCourseLimit: positiveInt(v.GetInt("STUDENT_COURSE_LIMIT"), 5),
		FailingThreshold:   v.GetFloat64("FAILING_THRESHOLD"),
	}

	cfg.Seed = SeedConfig{
		Enabled: v.GetBool("SEED_ENABLED"),
		File:    strings.TrimSpace(v.GetString("SEED_FILE")),
	}

	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	cfg.Output = OutputConfig{Color: v.GetBool("COLOR_OUTPUT")}

	cfg.Metrics = MetricsConfig{Dump: v.GetBool("METRICS_DUMP")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("COURSE_CAPACITY", 50)
	v.SetDefault("STUDENT_COURSE_LIMIT", 5)
	v.SetDefault("FAILING_THRESHOLD", 40)

	v.SetDefault("SEED_ENABLED", true)
	v.SetDefault("SEED_FILE", "")

	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("COLOR_OUTPUT", true)
	v.SetDefault("METRICS_DUMP", false)
}

func positiveInt(raw, fallback int) int {
	if raw <= 0 {
		return fallback
	}
	return raw
}
