package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/pokedex/internal/app"
	"github.com/atomicstack/pokedex/internal/feature/list"
	"github.com/atomicstack/pokedex/internal/pokeapi"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBaseURL         = "POKEDEX_BASE_URL"
	envPageSize        = "POKEDEX_PAGE_SIZE"
	envHardLimit       = "POKEDEX_HARD_LIMIT"
	envConcurrency     = "POKEDEX_CONCURRENCY"
	envRequestInterval = "POKEDEX_REQUEST_INTERVAL"
	envTimeout         = "POKEDEX_TIMEOUT"
	envPreview         = "POKEDEX_PREVIEW"
	envWidth           = "POKEDEX_WIDTH"
	envHeight          = "POKEDEX_HEIGHT"
	envShowFooter      = "POKEDEX_FOOTER"
	envTrace           = "POKEDEX_TRACE"
	envLogFile         = "POKEDEX_LOG_FILE"
)

const (
	defaultConcurrency = 4
	defaultTimeout     = 10 * time.Second
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	cfgFile := configPath(args, env)
	if cfgFile != "" {
		fc, err := readConfigFile(cfgFile)
		if err != nil {
			return Config{}, err
		}
		applyFile(env, fc)
	}

	fs := flag.NewFlagSet("pokedex", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	baseURL := fs.String("base-url", envOrDefault(env, envBaseURL, pokeapi.DefaultBaseURL), "API root, e.g. https://pokeapi.co/api/v2")
	pageSize := fs.Int("page-size", envOrInt(env, envPageSize, list.DefaultPageSize), "entities fetched per page")
	hardLimit := fs.Int("hard-limit", envOrInt(env, envHardLimit, list.DefaultHardLimit), "stop paging once the cursor reaches this id")
	concurrency := fs.Int("concurrency", envOrInt(env, envConcurrency, defaultConcurrency), "parallel entity requests per page")
	interval := fs.Duration("request-interval", envOrDuration(env, envRequestInterval, 0), "minimum spacing between HTTP requests")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, defaultTimeout), "per request timeout")
	preview := fs.Bool("preview", envOrBool(env, envPreview, false), "serve generated entities instead of calling the API")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	fs.String("config", cfgFile, "YAML file providing default options")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			BaseURL:         strings.TrimSpace(*baseURL),
			PageSize:        *pageSize,
			HardLimit:       *hardLimit,
			Concurrency:     *concurrency,
			RequestInterval: *interval,
			Timeout:         *timeout,
			Preview:         *preview,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"baseURL":         *baseURL,
			"pageSize":        strconv.Itoa(*pageSize),
			"hardLimit":       strconv.Itoa(*hardLimit),
			"concurrency":     strconv.Itoa(*concurrency),
			"requestInterval": interval.String(),
			"timeout":         timeout.String(),
			"preview":         strconv.FormatBool(*preview),
			"width":           strconv.Itoa(*width),
			"height":          strconv.Itoa(*height),
			"footer":          strconv.FormatBool(*footer),
			"trace":           strconv.FormatBool(*trace),
			"logFile":         *logFile,
			"config":          cfgFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the engine cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.PageSize <= 0 {
		return fmt.Errorf("page-size must be > 0 (got %d)", a.PageSize)
	}
	if a.HardLimit <= 0 {
		return fmt.Errorf("hard-limit must be > 0 (got %d)", a.HardLimit)
	}
	if a.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", a.Concurrency)
	}
	if a.RequestInterval < 0 {
		return fmt.Errorf("request-interval must be >= 0 (got %s)", a.RequestInterval)
	}
	if a.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", a.Timeout)
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if !a.Preview && a.BaseURL == "" {
		return fmt.Errorf("base-url must not be empty")
	}
	return nil
}
