package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/riskibarqy/nfl-trends-api/db/migrations"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
)

// command applies one migration action. args are the CLI arguments after the
// command name.
type command func(m *migrate.Migrate, args []string, logger *logging.Logger) error

var commands = map[string]command{
	"up":      runUp,
	"down":    runDown,
	"version": runVersion,
	"force":   runForce,
	"goto":    runGoto,
	"migrate": runGoto,
}

func main() {
	logger := logging.NewJSON(logging.LevelInfo)
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	cmd, ok := commands[name]
	if !ok {
		printUsage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}

	m, source, err := newMigrator(normalizeDBURL(dbURL, envBool("DB_DISABLE_PREPARED_BINARY_RESULT", true)))
	if err != nil {
		logger.Error("create migrator", "error", err)
		os.Exit(1)
	}

	err = cmd(m, os.Args[2:], logger.With("command", name, "source", source))
	closeMigrator(m, logger)
	if err != nil {
		logger.Error("migration failed", "command", name, "error", err)
		os.Exit(1)
	}
}

// newMigrator reads migrations from MIGRATIONS_DIR when set and from the
// embedded set otherwise.
func newMigrator(dbURL string) (*migrate.Migrate, string, error) {
	if dir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, "", fmt.Errorf("resolve MIGRATIONS_DIR: %w", err)
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return nil, "", fmt.Errorf("MIGRATIONS_DIR %q is not a directory", abs)
		}
		sourceURL := "file://" + filepath.ToSlash(abs)
		m, err := migrate.New(sourceURL, dbURL)
		return m, sourceURL, err
	}

	driver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, "", fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", driver, dbURL)
	return m, "embedded", err
}

func runUp(m *migrate.Migrate, _ []string, logger *logging.Logger) error {
	if err := ignoreNoChange(m.Up(), logger); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m *migrate.Migrate, _ []string, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\n", version)
	fmt.Printf("dirty: %t\n", dirty)
	return nil
}

func runForce(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("force requires a version argument")
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced migration version", "version", version)
	return nil
}

func runGoto(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("goto requires a target version argument")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Migrate(target), logger); err != nil {
		return err
	}
	logger.Info("migrated to version", "version", target)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < -1 {
		return 0, fmt.Errorf("version must be >= -1")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func envBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", bin)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", bin)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", bin)
	fmt.Fprintf(os.Stderr, "  %s version\n", bin)
	fmt.Fprintf(os.Stderr, "  %s force 1772409602\n", bin)
	fmt.Fprintf(os.Stderr, "  %s goto 1772409604\n", bin)
}
