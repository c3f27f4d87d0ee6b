// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/ironjira/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files, an optional .env file and
// the process environment.
type Loader struct {
	dataDir       string // Path to the data directory (e.g. .git/ironjira)
	globalConfDir string // Path to global config directory (e.g., ~/.config/ironjira)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// GlobalConfigPath returns the path of the global config file.
func (l *Loader) GlobalConfigPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// Load returns the merged configuration.
// Sources are applied in order default <- global <- repo <- .env <- environment,
// later ones taking precedence. The result is validated.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repo, err := l.LoadRepo()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- repo (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if repo != nil {
		base = mergeConfigs(base, repo)
	}

	env, err := l.environment()
	if err != nil {
		return nil, err
	}
	applyEnv(base, env)

	if err := Validate(base); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(l.GlobalConfigPath())
}

// LoadRepo returns only the data directory configuration.
func (l *Loader) LoadRepo() (*domain.Config, error) {
	if l.dataDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// envKeys lists the variables that override config values.
var envKeys = []string{
	domain.EnvBackend,
	domain.EnvStorePath,
	domain.EnvFormat,
	domain.EnvNamespace,
	domain.EnvLogLevel,
	domain.EnvEncryptionKey,
}

// environment collects IRONJIRA_* variables.
// Values in <data dir>/.env are read without touching the process
// environment; variables already set in the process win.
func (l *Loader) environment() (map[string]string, error) {
	env := make(map[string]string)

	if l.dataDir != "" {
		fileEnv, err := godotenv.Read(filepath.Join(l.dataDir, domain.EnvFileName))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", domain.EnvFileName, err)
		}
		for _, key := range envKeys {
			if v, ok := fileEnv[key]; ok {
				env[key] = v
			}
		}
	}

	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// EncryptionKey returns the snapshot encryption key from the environment or
// the .env file in the data directory.
func (l *Loader) EncryptionKey() (string, error) {
	env, err := l.environment()
	if err != nil {
		return "", err
	}
	return env[domain.EnvEncryptionKey], nil
}

// applyEnv overrides cfg with non-empty environment values.
func applyEnv(cfg *domain.Config, env map[string]string) {
	if v := env[domain.EnvBackend]; v != "" {
		cfg.Store.Backend = v
	}
	if v := env[domain.EnvStorePath]; v != "" {
		cfg.Store.Path = v
	}
	if v := env[domain.EnvFormat]; v != "" {
		cfg.Store.Format = v
	}
	if v := env[domain.EnvNamespace]; v != "" {
		cfg.Store.Namespace = v
	}
	if v := env[domain.EnvLogLevel]; v != "" {
		cfg.Log.Level = v
	}
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					if s, ok := v.(string); ok {
						res.Store.Backend = s
					}
				case "path":
					if s, ok := v.(string); ok {
						res.Store.Path = s
					}
				case "format":
					if s, ok := v.(string); ok {
						res.Store.Format = s
					}
				case "namespace":
					if s, ok := v.(string); ok {
						res.Store.Namespace = s
					}
				case "encrypt":
					if b, ok := v.(bool); ok {
						res.Store.Encrypt = b
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store: base.Store,
		Log:   base.Log,
	}

	result.Warnings = append(result.Warnings, base.Warnings...)
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.Format != "" {
		result.Store.Format = override.Store.Format
	}
	if override.Store.Namespace != "" {
		result.Store.Namespace = override.Store.Namespace
	}
	if override.Store.Encrypt {
		result.Store.Encrypt = override.Store.Encrypt
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their TOML names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks cfg against the constraints declared on domain.Config.
// The returned error wraps domain.ErrInvalidConfig.
func Validate(cfg *domain.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldErrorMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(msgs, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "excludesall":
		return fmt.Sprintf("%s must not contain any of %q", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
