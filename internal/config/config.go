// Package config handles client configuration: command-line flags layered
// over an optional YAML file layered over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"gopkg.in/yaml.v3"

	"github.com/joe/fetch-examples/internal/loop"
)

// Scenario selects which example page the client runs.
type Scenario int

const (
	// DecodeFailure fetches JSON from an endpoint that does not exist.
	DecodeFailure Scenario = iota
	// DelayedResponse fetches text from a slow endpoint and can abort it.
	DelayedResponse
)

// String returns the string representation of Scenario
func (s Scenario) String() string {
	switch s {
	case DecodeFailure:
		return "decode-failure"
	case DelayedResponse:
		return "delayed-response"
	default:
		return "unknown"
	}
}

// ParseScenario parses a string into a Scenario
func ParseScenario(s string) (Scenario, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "decode-failure", "json", "b":
		return DecodeFailure, nil
	case "delayed-response", "delayed", "c":
		return DelayedResponse, nil
	default:
		return DelayedResponse, fmt.Errorf("invalid scenario: %s (valid: decode-failure, delayed-response)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg and yaml
func (s *Scenario) UnmarshalText(text []byte) error {
	parsed, err := ParseScenario(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler so help output and YAML show names.
func (s Scenario) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Config holds the client configuration
type Config struct {
	Scenario    Scenario      `arg:"-s,--scenario" yaml:"scenario" help:"Example to run: decode-failure|delayed-response (aliases: json|b, delayed|c)"`
	BaseURL     string        `arg:"-u,--base-url" yaml:"base_url" help:"Base URL of the demo server"`
	Delay       int           `arg:"-d,--delay" yaml:"delay" help:"Delay in milliseconds requested from the delayed-response endpoint"`
	Timeout     time.Duration `arg:"-t,--timeout" yaml:"timeout" help:"Per-request timeout"`
	Retries     int           `arg:"--retries" yaml:"retries" help:"Retries for transient server errors"`
	RateLimit   float64       `arg:"--rate-limit" yaml:"rate_limit" help:"Maximum requests per second (0 = unlimited)"`
	LogPath     string        `arg:"--log-file" yaml:"log_file" help:"Debug log path (empty = no logging)"`
	LogLevel    string        `arg:"--log-level" yaml:"log_level" help:"Log level: debug|info|warn|error"`
	MetricsAddr string        `arg:"--metrics-addr" yaml:"metrics_addr" help:"Serve client metrics on this address (empty = disabled)"`
	Script      []string      `arg:"--script" yaml:"script" help:"Run headless: a sequence of actions (send, abort) and pauses (e.g. 500ms)"`
	ConfigFile  string        `arg:"-c,--config" yaml:"-" help:"YAML file with default values"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scenario: DelayedResponse,
		BaseURL:  "http://localhost:8080",
		Delay:    2000,
		Timeout:  30 * time.Second,
		Retries:  2,
		LogPath:  "fetch-examples-debug.log",
		LogLevel: "info",
	}
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Cancellable HTTP request examples with a Terminal UI"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "fetch-examples 1.0.0"
}

// Headless reports whether a script replaces the interactive UI.
func (cfg *Config) Headless() bool {
	return len(cfg.Script) > 0
}

// ParseFlags parses os.Args and returns configuration. Help, version and
// usage errors exit the process.
func ParseFlags() (*Config, error) {
	cfg, err := seed(os.Args[1:])
	if err != nil {
		return nil, err
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// Parse parses args (without the program name). It returns arg.ErrHelp or
// arg.ErrVersion when asked for those.
func Parse(args []string) (*Config, error) {
	cfg, err := seed(args)
	if err != nil {
		return nil, err
	}

	parser, err := arg.NewParser(arg.Config{Program: "fetch-examples"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	if err := parser.Parse(args); err != nil {
		return nil, err
	}

	return PostProcessConfig(cfg)
}

// seed returns the defaults overlaid with the YAML file named by --config.
func seed(args []string) (*Config, error) {
	cfg := Default()

	path := configFileArg(args)
	if path == "" {
		return cfg, nil
	}

	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	cfg.ConfigFile = path

	return cfg, nil
}

func configFileArg(args []string) string {
	for i, a := range args {
		if a == "--" {
			return ""
		}
		for _, name := range []string{"--config", "-c"} {
			if a == name && i+1 < len(args) {
				return args[i+1]
			}
			if value, ok := strings.CutPrefix(a, name+"="); ok {
				return value
			}
		}
	}
	return ""
}

// LoadFile overlays the values present in the YAML file at path.
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the user's own flag
	if err != nil {
		return fmt.Errorf("cannot read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return nil
}

// PostProcessConfig normalizes and validates a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Exported variables.
var (
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrInvalidStep    = errors.New("invalid script step")
)

// Validate checks the values that cannot be caught by the parser
func (cfg *Config) Validate() error {
	if err := ValidateBaseURL(cfg.BaseURL); err != nil {
		return err
	}

	if cfg.Delay < 0 {
		return fmt.Errorf("delay must not be negative: %d", cfg.Delay)
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: %s", cfg.Timeout)
	}

	if cfg.Retries < 0 {
		return fmt.Errorf("retries must not be negative: %d", cfg.Retries)
	}

	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative: %g", cfg.RateLimit)
	}

	for _, step := range cfg.Script {
		if _, err := ParseStep(step); err != nil {
			return err
		}
	}

	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidBaseURL, raw)
	}

	return nil
}

// Step is one entry of a headless script: an action, or a pause.
type Step struct {
	Action loop.UserAction
	Pause  time.Duration
}

// IsPause reports whether the step waits instead of acting.
func (s Step) IsPause() bool {
	return s.Pause > 0
}

func (s Step) String() string {
	if s.IsPause() {
		return s.Pause.String()
	}
	return s.Action.String()
}

// ParseStep parses "send", "abort" or a positive duration like "500ms".
func ParseStep(raw string) (Step, error) {
	if action, err := loop.ParseAction(raw); err == nil {
		return Step{Action: action}, nil
	}

	pause, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || pause <= 0 {
		return Step{}, fmt.Errorf("%w: %q (want send, abort or a positive duration)", ErrInvalidStep, raw)
	}

	return Step{Pause: pause}, nil
}

// Steps parses the whole script.
func (cfg *Config) Steps() ([]Step, error) {
	steps := make([]Step, 0, len(cfg.Script))
	for _, raw := range cfg.Script {
		step, err := ParseStep(raw)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}
