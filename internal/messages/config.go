package messages

// Config messages.
const (
	// ConfigInvalidDefaultsFmt indicates the embedded defaults failed to parse.
	ConfigInvalidDefaultsFmt = "parse embedded defaults: %w"
	// ConfigMissingFileFmt indicates an explicit override file could not be read.
	ConfigMissingFileFmt      = "failed to read config %s: %w"
	ConfigInvalidOverrideFmt  = "invalid config %s: %w"
	ConfigResolveHomeDirFmt   = "resolve home directory: %w"
	ConfigNoUpgradeCodes      = "at least one recognized upgrade code is required"
	ConfigInvalidGUIDFmt      = "upgrade code %q is not a GUID in registry format"
	ConfigNoMandatoryFeatures = "at least one mandatory feature is required"
	ConfigEmptyFeatureName    = "feature names must not be empty"
	ConfigDuplicateFeatureFmt = "feature %q appears more than once in the catalog"
)
