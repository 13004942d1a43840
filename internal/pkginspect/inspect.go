// Package pkginspect reads identity, version, and feature metadata from an
// installer package and from any installed product sharing its upgrade code.
package pkginspect

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/castleops/featurectl/internal/messages"
	"github.com/castleops/featurectl/internal/version"
)

// Sentinel errors for the inspection taxonomy. All are terminal for a run.
var (
	// ErrNotFound indicates the package path does not resolve to a readable file.
	ErrNotFound = errors.New("package not found")
	// ErrInvalidPackage indicates missing identity properties or an unrecognized upgrade code.
	ErrInvalidPackage = errors.New("invalid package")
	// ErrAmbiguousInstallation indicates more than one installation shares the upgrade code.
	ErrAmbiguousInstallation = errors.New("ambiguous installation")
	// ErrIncompleteInstallationInfo indicates a detected installation whose details are unreadable.
	ErrIncompleteInstallationInfo = errors.New("incomplete installation info")
)

// PackageIdentity is the identity read from a package file. Immutable once read.
type PackageIdentity struct {
	ProductName string
	Version     string
	UpgradeCode string
}

// InstalledProduct describes the zero-or-one existing installation sharing a
// package's upgrade code. Looked up fresh on every run, never persisted.
type InstalledProduct struct {
	ProductCode     string
	ProductName     string
	Version         string
	PackageFileName string
}

// ReadPackageIdentity reads and validates the identity of the package at path.
// The upgrade code must be in allowedUpgradeCodes or the package is rejected
// as foreign.
func ReadPackageIdentity(db PackageDatabase, path string, allowedUpgradeCodes []string) (PackageIdentity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return PackageIdentity{}, fmt.Errorf("%w: "+messages.InspectPackageNotFoundFmt, ErrNotFound, path, err)
	}
	if info.IsDir() {
		return PackageIdentity{}, fmt.Errorf(messages.InspectPackageIsDirFmt, path, ErrNotFound)
	}

	names := []string{PropertyProductName, PropertyProductVersion, PropertyUpgradeCode}
	props, err := db.PackageProperties(path, names)
	if err != nil {
		return PackageIdentity{}, fmt.Errorf(messages.InspectReadPropertiesFmt, path, err)
	}
	for _, name := range names {
		if strings.TrimSpace(props[name]) == "" {
			return PackageIdentity{}, fmt.Errorf(messages.InspectMissingPropertyFmt, path, name, ErrInvalidPackage)
		}
	}

	normalized, err := version.Normalize(props[PropertyProductVersion])
	if err != nil {
		return PackageIdentity{}, fmt.Errorf("%w: "+messages.InspectInvalidVersionFmt, ErrInvalidPackage, path, props[PropertyProductVersion], err)
	}

	upgradeCode := strings.ToUpper(strings.TrimSpace(props[PropertyUpgradeCode]))
	if !containsCode(allowedUpgradeCodes, upgradeCode) {
		return PackageIdentity{}, fmt.Errorf(messages.InspectForeignUpgradeCodeFmt, path, upgradeCode, ErrInvalidPackage)
	}

	return PackageIdentity{
		ProductName: strings.TrimSpace(props[PropertyProductName]),
		Version:     normalized,
		UpgradeCode: upgradeCode,
	}, nil
}

// FindExistingInstallation looks up the installed product sharing upgradeCode.
// It returns nil when no installation exists and fails when the lookup is
// ambiguous or the detected installation's details cannot be read.
func FindExistingInstallation(registry ProductRegistry, db PackageDatabase, upgradeCode string) (*InstalledProduct, error) {
	codes, err := registry.RelatedProducts(upgradeCode)
	if err != nil {
		return nil, fmt.Errorf(messages.InspectRelatedProductsFmt, upgradeCode, err)
	}
	if len(codes) == 0 {
		return nil, nil
	}
	if len(codes) > 1 {
		return nil, fmt.Errorf(messages.InspectAmbiguousInstallationFmt, len(codes), upgradeCode, ErrAmbiguousInstallation)
	}

	productCode := codes[0]
	name, err := readProductDetail(db, productCode, DetailProductName)
	if err != nil {
		return nil, err
	}
	rawVersion, err := readProductDetail(db, productCode, DetailVersion)
	if err != nil {
		return nil, err
	}
	packageName, err := readProductDetail(db, productCode, DetailPackageName)
	if err != nil {
		return nil, err
	}

	normalized, err := version.Normalize(rawVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.InspectInstalledVersionFmt, ErrIncompleteInstallationInfo, productCode, rawVersion, err)
	}

	return &InstalledProduct{
		ProductCode:     productCode,
		ProductName:     name,
		Version:         normalized,
		PackageFileName: packageName,
	}, nil
}

// ReadFeatureStates returns the enabled state of every recognized feature for
// an installed product. An empty product code yields an empty mapping.
func ReadFeatureStates(db PackageDatabase, productCode string, recognized []string) (map[string]bool, error) {
	states := make(map[string]bool, len(recognized))
	if strings.TrimSpace(productCode) == "" {
		return states, nil
	}
	for _, feature := range recognized {
		enabled, err := db.FeatureEnabled(productCode, feature)
		if err != nil {
			return nil, fmt.Errorf(messages.InspectFeatureStateFmt, feature, productCode, err)
		}
		states[feature] = enabled
	}
	return states, nil
}

// readProductDetail reads one detail field, treating failures and empty values
// as fatal: the reconciler cannot safely merge feature state without knowing
// the installed baseline.
func readProductDetail(db PackageDatabase, productCode string, field string) (string, error) {
	value, err := db.ProductInfo(productCode, field)
	if err != nil {
		return "", fmt.Errorf("%w: "+messages.InspectProductDetailFmt, ErrIncompleteInstallationInfo, field, productCode, err)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf(messages.InspectProductDetailFmt, field, productCode, ErrIncompleteInstallationInfo)
	}
	return strings.TrimSpace(value), nil
}

func containsCode(codes []string, code string) bool {
	for _, candidate := range codes {
		if strings.EqualFold(strings.TrimSpace(candidate), code) {
			return true
		}
	}
	return false
}
