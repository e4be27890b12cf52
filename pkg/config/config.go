package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log     LogConfig
	Paths   PathsConfig
	Media   MediaConfig
	Volumes VolumesConfig

	// Seed drives the generator PRNG; 0 derives a seed from the clock.
	Seed int64
	// Today overrides the reference date (YYYY-MM-DD); empty uses the wall clock.
	Today string
}

type LogConfig struct {
	Level  string
	Format string
}

// PathsConfig locates inputs and the output script.
type PathsConfig struct {
	SpecFile   string
	OutputFile string
	MediaDir   string
	SnippetDir string
}

// MediaConfig controls public URL construction for media files.
type MediaConfig struct {
	SupabaseBaseURL string
	SupabaseBucket  string
}

// VolumesConfig carries the volume knobs of the generated universe.
type VolumesConfig struct {
	StudentsPerClass      int
	GeneralNotifications  int
	TargetedNotifications int
	PaymentRate           float64
	InsertChunkSize       int
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Paths = PathsConfig{
		SpecFile:   v.GetString("SPEC_FILE"),
		OutputFile: v.GetString("OUTPUT_FILE"),
		MediaDir:   v.GetString("MEDIA_DIR"),
		SnippetDir: v.GetString("SQL_SNIPPET_DIR"),
	}

	cfg.Media = MediaConfig{
		SupabaseBaseURL: strings.TrimRight(v.GetString("SUPABASE_BASE_URL"), "/"),
		SupabaseBucket:  v.GetString("SUPABASE_BUCKET"),
	}

	cfg.Volumes = VolumesConfig{
		StudentsPerClass:      v.GetInt("STUDENTS_PER_CLASS"),
		GeneralNotifications:  v.GetInt("GENERAL_NOTIFICATIONS"),
		TargetedNotifications: v.GetInt("TARGETED_NOTIFICATIONS"),
		PaymentRate:           v.GetFloat64("PAYMENT_RATE"),
		InsertChunkSize:       v.GetInt("INSERT_CHUNK_SIZE"),
	}

	cfg.Seed = v.GetInt64("SEED")
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Today = v.GetString("TODAY")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SPEC_FILE", "./data/universe.spec")
	v.SetDefault("OUTPUT_FILE", "./out/edu_management_data.sql")
	v.SetDefault("MEDIA_DIR", "./media")
	v.SetDefault("SQL_SNIPPET_DIR", "./sql")
	v.SetDefault("SUPABASE_BASE_URL", "https://storage.example.edu")
	v.SetDefault("SUPABASE_BUCKET", "edu-media")

	v.SetDefault("STUDENTS_PER_CLASS", 40)
	v.SetDefault("GENERAL_NOTIFICATIONS", 800)
	v.SetDefault("TARGETED_NOTIFICATIONS", 80)
	v.SetDefault("PAYMENT_RATE", 0.10)
	v.SetDefault("INSERT_CHUNK_SIZE", 1000)

	v.SetDefault("SEED", 0)
	v.SetDefault("TODAY", "")
}
