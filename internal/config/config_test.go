package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "DATA_DIR", "EVENTS_FILE", "TICKETS_FILE", "JOURNAL_FILE", "STORE_FORMAT",
	"ADMIN_USERNAME", "ADMIN_PASSWORD", "BCRYPT_COST", "BOOKING_LOG", "LOG_LEVEL", "LOG_FILE",
}

// clearEnv blanks every key for the duration of the test.  Viper treats
// an empty variable as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir()) // no .env in the working directory
	fs := flagSet(t)

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "json", cfg.StoreFormat)
	assert.Equal(t, DefaultAdminUsername, cfg.AdminUsername)
	assert.Equal(t, DefaultAdminPassword, cfg.AdminPassword)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(".", "events.json"), cfg.EventsPath())
	assert.Equal(t, filepath.Join(".", "tickets.json"), cfg.TicketsPath())
	assert.Equal(t, filepath.Join(".", "reservation.journal"), cfg.JournalPath())
}

func TestLoad_ExplicitEnvFileMustExist(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.env")

	_, err := Load(flagSet(t, "--env-file", missing))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
}

func TestLoad_EmptyEnvFileFlagSkipsDotenv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ENV=prod\n"), 0o644))

	cfg, err := Load(flagSet(t, "--env-file", ""))
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
}

func TestLoad_PrecedenceFlagEnvFileDefault(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"DATA_DIR=/from/file\nLOG_LEVEL=debug\nADMIN_USERNAME=file-admin\nSTORE_FORMAT=yaml\n"), 0o644))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("ADMIN_USERNAME", "env-admin")

	fs := flagSet(t, "--env-file", envFile, "--log-level", "error")
	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "/from/file", cfg.DataDir, "dotenv beats default")
	assert.Equal(t, "yaml", cfg.StoreFormat)
	assert.Equal(t, "env-admin", cfg.AdminUsername, "env beats dotenv")
	assert.Equal(t, "error", cfg.LogLevel, "flag beats env")
	assert.Equal(t, "/from/file/events.json", cfg.EventsPath())
}

func TestLoad_WithoutFlagSet(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("DATA_DIR", "var/data")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "var/data", cfg.DataDir)
}

func TestLoad_RejectsUnknownFormat(t *testing.T) {
	clearEnv(t)
	fs := flagSet(t, "--env-file", "", "--format", "xml")

	_, err := Load(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_FORMAT")
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreFormat: "json", LogLevel: "info", AdminUsername: "sina",
		EventsFile: "events.json", TicketsFile: "tickets.json", JournalFile: "j",
	}
	require.NoError(t, base.Validate())

	same := base
	same.TicketsFile = same.EventsFile
	assert.Error(t, same.Validate())

	noAdmin := base
	noAdmin.AdminUsername = ""
	assert.Error(t, noAdmin.Validate())

	badLevel := base
	badLevel.LogLevel = "loud"
	assert.Error(t, badLevel.Validate())
}

func TestPaths_AbsoluteFileIgnoresDataDir(t *testing.T) {
	cfg := Config{DataDir: "data", EventsFile: "/abs/events.json", TicketsFile: "tickets.json"}

	assert.Equal(t, "/abs/events.json", cfg.EventsPath())
	assert.Equal(t, filepath.Join("data", "tickets.json"), cfg.TicketsPath())
}

func TestEnsureDataDir(t *testing.T) {
	cfg := Config{DataDir: filepath.Join(t.TempDir(), "a", "b")}

	require.NoError(t, cfg.EnsureDataDir())
	info, err := os.Stat(cfg.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
