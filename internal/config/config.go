// Package config holds the recognized upgrade-code allow-list and the feature
// catalog. Both are loaded once at startup from embedded defaults and treated
// as immutable for the run.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/castleops/featurectl/internal/messages"
)

// Canonical feature names of the Probe Agent package. The embedded defaults
// mirror these; the override file cannot change the catalog.
const (
	// FeatureNetworkTests is the mandatory capability every run guarantees.
	FeatureNetworkTests = "NetworkTests"
	// FeatureChromeIntegration toggles the Chrome browser integration module.
	FeatureChromeIntegration = "ChromeIntegration"
	// FeatureFirefoxIntegration toggles the Firefox browser integration module.
	FeatureFirefoxIntegration = "FirefoxIntegration"
	// FeatureEdgeIntegration toggles the Edge browser integration module.
	FeatureEdgeIntegration = "EdgeIntegration"
)

//go:embed defaults.toml
var defaultsTOML []byte

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax or filesystem errors). Callers can use
// errors.Is(err, ErrConfigValidation) to distinguish them.
var ErrConfigValidation = errors.New("config validation failed")

// guidPattern matches upgrade codes in registry format: {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}.
var guidPattern = regexp.MustCompile(`^\{[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}\}$`)

// Config is the process-wide configuration for one run.
type Config struct {
	Product  ProductConfig  `toml:"product"`
	Features FeaturesConfig `toml:"features"`
}

// ProductConfig carries the upgrade-code allow-list identifying the product family.
type ProductConfig struct {
	UpgradeCodes []string `toml:"upgrade_codes"`
}

// FeaturesConfig is the fixed feature catalog.
type FeaturesConfig struct {
	Mandatory    []string `toml:"mandatory"`
	Integrations []string `toml:"integrations"`
}

// overrideFile is the shape of the optional user config. Only the allow-list
// may be extended; the feature catalog is not overridable.
type overrideFile struct {
	Product struct {
		ExtraUpgradeCodes []string `toml:"extra_upgrade_codes"`
	} `toml:"product"`
}

// Recognized returns every feature name the reconciler acts on, mandatory first.
func (c *Config) Recognized() []string {
	out := make([]string, 0, len(c.Features.Mandatory)+len(c.Features.Integrations))
	out = append(out, c.Features.Mandatory...)
	out = append(out, c.Features.Integrations...)
	return out
}

// Load builds the run configuration from embedded defaults plus an optional
// override file. overridePath takes precedence when non-empty; otherwise the
// default override location is used when it exists.
func Load(overridePath string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(defaultsTOML, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidDefaultsFmt, err)
	}

	path, required := overridePath, overridePath != ""
	if !required {
		defaultPath, err := DefaultOverridePath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	if path != "" {
		if err := applyOverride(&cfg, path, required); err != nil {
			return nil, err
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultOverridePath returns ~/.config/featurectl/config.toml.
func DefaultOverridePath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeDirFmt, err)
	}
	return filepath.Join(home, ".config", "featurectl", "config.toml"), nil
}

// applyOverride merges the override file at path into cfg. A missing file is
// an error only when the caller named the path explicitly.
func applyOverride(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	var override overrideFile
	if err := toml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf(messages.ConfigInvalidOverrideFmt, path, err)
	}
	cfg.Product.UpgradeCodes = appendUniqueCodes(cfg.Product.UpgradeCodes, override.Product.ExtraUpgradeCodes)
	return nil
}

// appendUniqueCodes appends extras to codes, normalizing case and skipping duplicates.
func appendUniqueCodes(codes []string, extras []string) []string {
	seen := make(map[string]bool, len(codes)+len(extras))
	for _, code := range codes {
		seen[strings.ToUpper(strings.TrimSpace(code))] = true
	}
	for _, extra := range extras {
		normalized := strings.ToUpper(strings.TrimSpace(extra))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		codes = append(codes, normalized)
	}
	return codes
}

func validate(cfg *Config) error {
	if len(cfg.Product.UpgradeCodes) == 0 {
		return fmt.Errorf("%s: %w", messages.ConfigNoUpgradeCodes, ErrConfigValidation)
	}
	for i, code := range cfg.Product.UpgradeCodes {
		normalized := strings.ToUpper(strings.TrimSpace(code))
		if !guidPattern.MatchString(normalized) {
			return fmt.Errorf(messages.ConfigInvalidGUIDFmt+": %w", code, ErrConfigValidation)
		}
		cfg.Product.UpgradeCodes[i] = normalized
	}
	if len(cfg.Features.Mandatory) == 0 {
		return fmt.Errorf("%s: %w", messages.ConfigNoMandatoryFeatures, ErrConfigValidation)
	}
	seen := make(map[string]bool)
	for _, name := range cfg.Recognized() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s: %w", messages.ConfigEmptyFeatureName, ErrConfigValidation)
		}
		if seen[name] {
			return fmt.Errorf(messages.ConfigDuplicateFeatureFmt+": %w", name, ErrConfigValidation)
		}
		seen[name] = true
	}
	return nil
}
