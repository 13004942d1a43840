package messages

// Package inspection messages.
const (
	// InspectPackageNotFoundFmt indicates the package path does not resolve to a readable file.
	InspectPackageNotFoundFmt = "package %s: %w"
	// InspectPackageIsDirFmt indicates the package path is a directory.
	InspectPackageIsDirFmt       = "package %s is a directory, not an installer package: %w"
	InspectReadPropertiesFmt     = "read package properties from %s: %w"
	InspectMissingPropertyFmt    = "package %s is missing required property %s: %w"
	InspectInvalidVersionFmt     = "package %s has invalid version %q: %w"
	InspectForeignUpgradeCodeFmt = "package %s has unrecognized upgrade code %s: %w"

	InspectRelatedProductsFmt       = "enumerate products for upgrade code %s: %w"
	InspectAmbiguousInstallationFmt = "found %d installations sharing upgrade code %s: %w"
	InspectProductDetailFmt         = "read %s for installed product %s: %w"
	InspectInstalledVersionFmt      = "installed product %s has invalid version %q: %w"
	InspectFeatureStateFmt          = "query state of feature %s on product %s: %w"

	// InspectUnsupportedPlatformFmt indicates the host has no installer database.
	InspectUnsupportedPlatformFmt = "installer database access requires Windows (running on %s)"
)
