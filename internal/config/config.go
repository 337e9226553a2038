package config // package config loads application configuration from flags, environment and .env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default administrator identity.  It can be overridden through
// ADMIN_USERNAME / ADMIN_PASSWORD for local setups.
const (
	DefaultAdminUsername = "sina"
	DefaultAdminPassword = "1234"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; a few can also be set by command-line flag.
type Config struct {
	Env           string // application environment (dev, test, prod)
	DataDir       string // directory holding the store files
	EventsFile    string // event store file name, relative to DataDir
	TicketsFile   string // ticket store file name, relative to DataDir
	JournalFile   string // commit journal file name, relative to DataDir
	StoreFormat   string // json or yaml
	AdminUsername string // administrator username
	AdminPassword string // administrator password (hashed before use)
	BcryptCost    int    // bcrypt cost for the admin password hash
	BookingLog    string // booking log path, empty disables it
	LogLevel      string // debug, info, warn, error
	LogFile       string // log output file, empty means stderr
}

// flag name -> config key
var flagKeys = map[string]string{
	"data-dir":    "DATA_DIR",
	"format":      "STORE_FORMAT",
	"log-level":   "LOG_LEVEL",
	"log-file":    "LOG_FILE",
	"booking-log": "BOOKING_LOG",
}

// Flags registers the command-line overrides understood by Load.
func Flags(flags *pflag.FlagSet) {
	flags.String("env-file", ".env", "optional dotenv file with configuration")
	flags.String("data-dir", "", "directory holding events and tickets files")
	flags.String("format", "", "store format: json or yaml")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.String("booking-log", "", "booking log path")
}

// Load resolves configuration.  Precedence, highest first: flags that were
// set explicitly, environment variables, the dotenv file, built-in
// defaults.  flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	envFile, required := ".env", false
	if flags != nil {
		if f := flags.Lookup("env-file"); f != nil {
			envFile = f.Value.String()
			required = f.Changed // a file named on the command line must exist
		}
	}
	if err := applyEnvFile(v, envFile, required); err != nil {
		return Config{}, err
	}

	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := Config{
		Env:           v.GetString("APP_ENV"),
		DataDir:       v.GetString("DATA_DIR"),
		EventsFile:    v.GetString("EVENTS_FILE"),
		TicketsFile:   v.GetString("TICKETS_FILE"),
		JournalFile:   v.GetString("JOURNAL_FILE"),
		StoreFormat:   strings.ToLower(v.GetString("STORE_FORMAT")),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
		BcryptCost:    v.GetInt("BCRYPT_COST"),
		BookingLog:    v.GetString("BOOKING_LOG"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFile:       v.GetString("LOG_FILE"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("EVENTS_FILE", "events.json")
	v.SetDefault("TICKETS_FILE", "tickets.json")
	v.SetDefault("JOURNAL_FILE", "reservation.journal")
	v.SetDefault("STORE_FORMAT", "json")
	v.SetDefault("ADMIN_USERNAME", DefaultAdminUsername)
	v.SetDefault("ADMIN_PASSWORD", DefaultAdminPassword)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("BOOKING_LOG", filepath.Join("logs", "booking.log"))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
}

// applyEnvFile layers the dotenv file over the built-in defaults.  A
// missing file is fine unless required is set; environment variables
// still win because viper consults them before defaults.
func applyEnvFile(v *viper.Viper, path string, required bool) error {
	if path == "" {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for k, val := range values {
		v.SetDefault(k, val)
	}
	return nil
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c Config) Validate() error {
	switch c.StoreFormat {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("unsupported STORE_FORMAT %q", c.StoreFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL %q", c.LogLevel)
	}
	if c.EventsFile == "" || c.TicketsFile == "" || c.JournalFile == "" {
		return errors.New("store file names must not be empty")
	}
	if c.EventsFile == c.TicketsFile {
		return errors.New("EVENTS_FILE and TICKETS_FILE must differ")
	}
	if c.AdminUsername == "" {
		return errors.New("ADMIN_USERNAME must not be empty")
	}
	return nil
}

// EventsPath returns the event store location.
func (c Config) EventsPath() string { return c.inDataDir(c.EventsFile) }

// TicketsPath returns the ticket store location.
func (c Config) TicketsPath() string { return c.inDataDir(c.TicketsFile) }

// JournalPath returns the commit journal location.
func (c Config) JournalPath() string { return c.inDataDir(c.JournalFile) }

func (c Config) inDataDir(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// EnsureDataDir creates the data directory if needed.
func (c Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
