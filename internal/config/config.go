// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/shauraya-mohan/chatbot/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatbot configuration.
type Config struct {
	// Completion endpoint configuration
	Completion CompletionConfig `toml:"completion" json:"completion"`

	// Reference documents
	Reference ReferenceConfig `toml:"reference" json:"reference"`

	// Progressive reveal
	Reveal RevealConfig `toml:"reveal" json:"reveal"`

	// HTTP backend
	Server ServerConfig `toml:"server" json:"server"`

	// Logging
	Log LogConfig `toml:"log" json:"log"`

	// Terminal UI
	UI UIConfig `toml:"ui" json:"ui"`

	// Assistant texts and shortcuts
	Assistant AssistantConfig `toml:"assistant" json:"assistant"`
}

// CompletionConfig contains completion endpoint settings.
type CompletionConfig struct {
	// APIKey is the bearer token sent to the endpoint
	APIKey string `toml:"api_key" json:"api_key"`
	// URL is the full chat completions URL
	URL string `toml:"url" json:"url"`
	// Model is the model identifier, e.g. "gpt-4o"
	Model string `toml:"model" json:"model"`
	// MaxTokens is the completion token ceiling
	MaxTokens int `toml:"max_tokens" json:"max_tokens"`
	// Temperature is the sampling temperature (0.0-2.0)
	Temperature float64 `toml:"temperature" json:"temperature"`
	// TimeoutSecs bounds one completion request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// Timeout returns TimeoutSecs as a duration.
func (c CompletionConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ReferenceConfig contains reference document locations.
type ReferenceConfig struct {
	// CompanyPath is the company/domain document (.json or .yaml)
	CompanyPath string `toml:"company" json:"company"`
	// CatalogPath is the product catalog document (.json or .yaml)
	CatalogPath string `toml:"products" json:"products"`
	// Watch reloads the documents when they change on disk
	Watch bool `toml:"watch" json:"watch"`
	// DebounceMs is how long to wait after a change before reloading
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
}

// Debounce returns DebounceMs as a duration.
func (r ReferenceConfig) Debounce() time.Duration {
	return time.Duration(r.DebounceMs) * time.Millisecond
}

// RevealConfig contains progressive reveal settings.
type RevealConfig struct {
	// IntervalMs is the delay between revealed characters
	IntervalMs int `toml:"interval_ms" json:"interval_ms"`
	// Disabled shows every reply at once
	Disabled bool `toml:"disabled" json:"disabled"`
}

// Interval returns IntervalMs as a duration.
func (r RevealConfig) Interval() time.Duration {
	return time.Duration(r.IntervalMs) * time.Millisecond
}

// ServerConfig contains HTTP backend settings.
type ServerConfig struct {
	// Listen is the address to bind, e.g. "127.0.0.1:8080"
	Listen string `toml:"listen" json:"listen"`
	// RateLimit is the sustained number of submissions per second (0 disables)
	RateLimit float64 `toml:"rate_limit" json:"rate_limit"`
	// Burst is the number of submissions allowed above the sustained rate
	Burst int `toml:"burst" json:"burst"`
	// MaxBodyBytes caps request bodies
	MaxBodyBytes int64 `toml:"max_body_bytes" json:"max_body_bytes"`
	// ShutdownSecs is the graceful shutdown window
	ShutdownSecs int `toml:"shutdown_secs" json:"shutdown_secs"`
	// AllowedOrigins lists the sites allowed to embed the widget ("*" for any)
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins"`
}

// ShutdownTimeout returns ShutdownSecs as a duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownSecs) * time.Second
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `toml:"level" json:"level"`
	// Format is "console" or "json"
	Format string `toml:"format" json:"format"`
	// File, when set, receives logs instead of stderr
	File string `toml:"file" json:"file"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowTimestamps displays the time next to each message
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// NoColor disables colored output in the line REPL
	NoColor bool `toml:"no_color" json:"no_color"`
}

// AssistantConfig contains the fixed assistant texts and quick actions.
// Empty texts fall back to the built-in OtO wording.
type AssistantConfig struct {
	Greeting       string              `toml:"greeting" json:"greeting"`
	LoadingMessage string              `toml:"loading_message" json:"loading_message"`
	ApologyMessage string              `toml:"apology_message" json:"apology_message"`
	QuickActions   []QuickActionConfig `toml:"quick_actions" json:"quick_actions"`
}

// QuickActionConfig is one canned message.
type QuickActionConfig struct {
	Label   string `toml:"label" json:"label"`
	Message string `toml:"message" json:"message"`
}

// MaxQuickActions is the number of quick actions front ends can bind.
const MaxQuickActions = 9

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Completion: CompletionConfig{
			URL:         "https://api.openai.com/v1/chat/completions",
			Model:       "gpt-4o",
			MaxTokens:   1500,
			Temperature: 0.7,
			TimeoutSecs: 60,
		},
		Reference: ReferenceConfig{
			CompanyPath: filepath.Join("data", "Data.json"),
			CatalogPath: filepath.Join("data", "ProductData.json"),
			Watch:       false,
			DebounceMs:  250,
		},
		Reveal: RevealConfig{
			IntervalMs: 15,
		},
		Server: ServerConfig{
			Listen:       "127.0.0.1:8080",
			RateLimit:    2,
			Burst:        5,
			MaxBodyBytes: 64 << 10,
			ShutdownSecs: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			Theme:          "dark",
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chatbot configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chatbot"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ensureSecurePermissions tightens a config file to 0600. It holds an API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration. An explicit path must exist; with an empty path
// ~/.chatbot/config.toml is tried first, then config.json, then defaults.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	for _, candidate := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		p, err := candidate()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(p); statErr != nil {
			continue
		}
		return LoadFromPath(p)
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are read as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file. Unknown keys are rejected.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	// Completion
	if cfg.Completion.URL == "" {
		cfg.Completion.URL = defaults.Completion.URL
	}
	if cfg.Completion.Model == "" {
		cfg.Completion.Model = defaults.Completion.Model
	}
	if cfg.Completion.MaxTokens == 0 {
		cfg.Completion.MaxTokens = defaults.Completion.MaxTokens
	}
	if cfg.Completion.TimeoutSecs == 0 {
		cfg.Completion.TimeoutSecs = defaults.Completion.TimeoutSecs
	}

	// Reference
	if cfg.Reference.CompanyPath == "" {
		cfg.Reference.CompanyPath = defaults.Reference.CompanyPath
	}
	if cfg.Reference.CatalogPath == "" {
		cfg.Reference.CatalogPath = defaults.Reference.CatalogPath
	}
	if cfg.Reference.DebounceMs == 0 {
		cfg.Reference.DebounceMs = defaults.Reference.DebounceMs
	}

	// Reveal
	if cfg.Reveal.IntervalMs == 0 {
		cfg.Reveal.IntervalMs = defaults.Reveal.IntervalMs
	}

	// Server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = defaults.Server.Listen
	}
	if cfg.Server.Burst == 0 {
		cfg.Server.Burst = defaults.Server.Burst
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = defaults.Server.MaxBodyBytes
	}
	if cfg.Server.ShutdownSecs == 0 {
		cfg.Server.ShutdownSecs = defaults.Server.ShutdownSecs
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML with 0600 permissions. The write
// is atomic.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# chatbot configuration file")
	fmt.Fprintln(&buf, "# Generated by chatbot - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration as indented JSON with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
	validThemes     = []string{"dark", "light", "auto"}
)

// Validate checks every section and returns ValidateErrors listing all
// problems found, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Completion
	if u, err := url.Parse(c.Completion.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		add("completion.url", "must be an absolute http(s) URL, got %q", c.Completion.URL)
	}
	if strings.TrimSpace(c.Completion.Model) == "" {
		add("completion.model", "must not be empty")
	}
	if c.Completion.MaxTokens < 1 || c.Completion.MaxTokens > 128000 {
		add("completion.max_tokens", "must be between 1 and 128000, got %d", c.Completion.MaxTokens)
	}
	if c.Completion.Temperature < 0 || c.Completion.Temperature > 2 {
		add("completion.temperature", "must be between 0.0 and 2.0, got %g", c.Completion.Temperature)
	}
	if c.Completion.TimeoutSecs < 1 || c.Completion.TimeoutSecs > 600 {
		add("completion.timeout_secs", "must be between 1 and 600, got %d", c.Completion.TimeoutSecs)
	}

	// Reference
	if c.Reference.CompanyPath == "" {
		add("reference.company", "must not be empty")
	}
	if c.Reference.CatalogPath == "" {
		add("reference.products", "must not be empty")
	}
	if c.Reference.DebounceMs < 0 {
		add("reference.debounce_ms", "must not be negative")
	}

	// Reveal
	if c.Reveal.IntervalMs < 1 || c.Reveal.IntervalMs > 1000 {
		add("reveal.interval_ms", "must be between 1 and 1000, got %d", c.Reveal.IntervalMs)
	}

	// Server
	if strings.TrimSpace(c.Server.Listen) == "" {
		add("server.listen", "must not be empty")
	}
	if c.Server.RateLimit < 0 {
		add("server.rate_limit", "must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		add("server.burst", "must be at least 1 when rate_limit is set")
	}
	if c.Server.MaxBodyBytes < 1 {
		add("server.max_body_bytes", "must be positive")
	}

	// Log
	if !contains(validLogLevels, c.Log.Level) {
		add("log.level", "must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Log.Level)
	}
	if !contains(validLogFormats, c.Log.Format) {
		add("log.format", "must be one of %s, got %q", strings.Join(validLogFormats, ", "), c.Log.Format)
	}

	// UI
	if !contains(validThemes, c.UI.Theme) {
		add("ui.theme", "must be one of %s, got %q", strings.Join(validThemes, ", "), c.UI.Theme)
	}

	// Assistant
	if len(c.Assistant.QuickActions) > MaxQuickActions {
		add("assistant.quick_actions", "at most %d are supported, got %d", MaxQuickActions, len(c.Assistant.QuickActions))
	}
	for i, qa := range c.Assistant.QuickActions {
		if strings.TrimSpace(qa.Label) == "" {
			add(fmt.Sprintf("assistant.quick_actions[%d].label", i), "must not be empty")
		}
		if strings.TrimSpace(qa.Message) == "" {
			add(fmt.Sprintf("assistant.quick_actions[%d].message", i), "must not be empty")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHATBOT_API_KEY: overrides completion.api_key
//   - OPENAI_API_KEY: used for completion.api_key when CHATBOT_API_KEY is unset
//   - CHATBOT_API_URL: overrides completion.url
//   - CHATBOT_MODEL: overrides completion.model
//   - CHATBOT_COMPANY_DATA: overrides reference.company
//   - CHATBOT_PRODUCT_DATA: overrides reference.products
//   - CHATBOT_LISTEN: overrides server.listen
//   - CHATBOT_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("CHATBOT_API_KEY"); key != "" {
		c.Completion.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Completion.APIKey = key
	}

	if u := os.Getenv("CHATBOT_API_URL"); u != "" {
		c.Completion.URL = u
	}
	if model := os.Getenv("CHATBOT_MODEL"); model != "" {
		c.Completion.Model = model
	}
	if path := os.Getenv("CHATBOT_COMPANY_DATA"); path != "" {
		c.Reference.CompanyPath = path
	}
	if path := os.Getenv("CHATBOT_PRODUCT_DATA"); path != "" {
		c.Reference.CatalogPath = path
	}
	if addr := os.Getenv("CHATBOT_LISTEN"); addr != "" {
		c.Server.Listen = addr
	}
	if level := os.Getenv("CHATBOT_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "reveal.interval_ms").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "completion.model").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the struct by TOML key or Go field name.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByKey(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// fieldByKey finds a struct field by its toml tag, falling back to the
// normalized Go field name.
func fieldByKey(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if tag == key {
			return v.Field(i), true
		}
	}
	fieldName := normalizeFieldName(key)
	field := v.FieldByNameFunc(func(name string) bool {
		return strings.EqualFold(name, fieldName)
	})
	return field, field.IsValid()
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				boolVal = strings.EqualFold(strVal, "yes")
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if isNumeric(val.Kind()) && isNumeric(field.Kind()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all scalar configuration keys in dot notation.
func GetAllKeys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			tag := strings.Split(f.Tag.Get("toml"), ",")[0]
			if tag == "" || tag == "-" {
				continue
			}
			switch f.Type.Kind() {
			case reflect.Struct:
				walk(f.Type, prefix+tag+".")
			case reflect.Slice:
				// lists are edited in the file
			default:
				keys = append(keys, prefix+tag)
			}
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Assistant.QuickActions = append([]QuickActionConfig(nil), c.Assistant.QuickActions...)
	clone.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	return &clone
}

// String returns the config as indented JSON with the API key redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Completion.APIKey != "" {
		safe.Completion.APIKey = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
