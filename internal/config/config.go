package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Backup modes. Library mode dumps into a pre-existing directory inside the
// photo library; standalone mode dumps under the backup root and archives a
// reference data directory alongside the library.
const (
	ModeLibrary    = "library"
	ModeStandalone = "standalone"
)

type Config struct {
	Mode        string
	LibraryPath string
	DataPath    string
	BackupPath  string
	BorgRepo    string

	DBContainer string
	DBUser      string
	DBName      string

	AppContainer      string
	MaintenanceOnCmd  []string
	MaintenanceOffCmd []string
	AppVersionCmd     []string
	DBVersionCmd      []string

	HealthcheckURL string
	Excludes       []string

	KeepDaily   int
	KeepWeekly  int
	KeepMonthly int

	Telegram TelegramConfig
	S3       S3Config

	LogLevel string
	LogFile  string
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string
}

func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Load resolves options from the environment (PHOTARK_* variables),
// optionally pre-populated from a dotenv file using bare option names
// (LIBRARY_PATH=...; environment variables take precedence). Required
// options are validated before any external system is touched.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("photark")
	v.AutomaticEnv()

	v.SetDefault("mode", ModeLibrary)
	v.SetDefault("app_container", "photoprism")
	v.SetDefault("maintenance_on_cmd", "photoprism down")
	v.SetDefault("maintenance_off_cmd", "photoprism up")
	v.SetDefault("app_version_cmd", "photoprism --version")
	v.SetDefault("db_version_cmd", "mariadb --version")
	v.SetDefault("exclude_caches", "cache/thumbnails,cache/video")
	v.SetDefault("keep_daily", 7)
	v.SetDefault("keep_weekly", 4)
	v.SetDefault("keep_monthly", 6)
	v.SetDefault("log_level", "info")

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
	}

	cfg := &Config{
		Mode:        v.GetString("mode"),
		LibraryPath: v.GetString("library_path"),
		DataPath:    v.GetString("data_path"),
		BackupPath:  v.GetString("backup_path"),
		BorgRepo:    v.GetString("borg_repo"),

		DBContainer: v.GetString("db_container"),
		DBUser:      v.GetString("db_user"),
		DBName:      v.GetString("db_name"),

		AppContainer:      v.GetString("app_container"),
		MaintenanceOnCmd:  strings.Fields(v.GetString("maintenance_on_cmd")),
		MaintenanceOffCmd: strings.Fields(v.GetString("maintenance_off_cmd")),
		AppVersionCmd:     strings.Fields(v.GetString("app_version_cmd")),
		DBVersionCmd:      strings.Fields(v.GetString("db_version_cmd")),

		HealthcheckURL: v.GetString("healthcheck_url"),
		Excludes:       splitList(v.GetString("exclude_caches")),

		KeepDaily:   v.GetInt("keep_daily"),
		KeepWeekly:  v.GetInt("keep_weekly"),
		KeepMonthly: v.GetInt("keep_monthly"),

		Telegram: TelegramConfig{
			BotToken: v.GetString("telegram_bot_token"),
			ChatID:   v.GetString("telegram_chat_id"),
		},
		S3: S3Config{
			Region:    v.GetString("s3_region"),
			Bucket:    v.GetString("s3_bucket"),
			AccessKey: v.GetString("s3_access_key"),
			SecretKey: v.GetString("s3_secret_key"),
			Prefix:    v.GetString("s3_prefix"),
		},

		LogLevel: v.GetString("log_level"),
		LogFile:  v.GetString("log_file"),
	}

	if cfg.BorgRepo == "" && cfg.BackupPath != "" {
		cfg.BorgRepo = filepath.Join(cfg.BackupPath, "repo")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Mode != ModeLibrary && c.Mode != ModeStandalone {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeLibrary, ModeStandalone, c.Mode)
	}

	required := []struct {
		name  string
		value string
	}{
		{"library_path", c.LibraryPath},
		{"backup_path", c.BackupPath},
		{"db_container", c.DBContainer},
		{"db_user", c.DBUser},
		{"db_name", c.DBName},
	}
	if c.Mode == ModeStandalone {
		required = append(required, struct {
			name  string
			value string
		}{"data_path", c.DataPath})
	}

	for _, opt := range required {
		if opt.value == "" {
			return fmt.Errorf("%s is required", opt.name)
		}
	}

	if len(c.MaintenanceOnCmd) == 0 || len(c.MaintenanceOffCmd) == 0 {
		return fmt.Errorf("maintenance commands must not be empty")
	}

	return nil
}

// DumpDir is where the database snapshot lands. Library mode uses a
// directory inside the photo library so the archive picks it up for free;
// standalone mode keeps it under the backup root.
func (c *Config) DumpDir() string {
	if c.Mode == ModeStandalone {
		return filepath.Join(c.BackupPath, "database")
	}
	return filepath.Join(c.LibraryPath, "database")
}

// ArchiveSources lists the trees the archive tool snapshots. The dump
// directory is included explicitly only when it lives outside the library.
func (c *Config) ArchiveSources() []string {
	sources := []string{c.LibraryPath}
	if c.Mode == ModeStandalone {
		sources = append(sources, c.DumpDir(), c.DataPath)
	}
	return sources
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
