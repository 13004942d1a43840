package messages

// CLI messages for the featurectl command surface.
const (
	// RootUse is the CLI invocation syntax.
	RootUse = "featurectl <package.msi>"
	// RootShort is the short description for the root command.
	RootShort = "Install the Probe Agent network tests feature"
	// RootLong describes what a run does to the target installation.
	RootLong = "featurectl reconciles the optional features of a Probe Agent MSI package " +
		"against any existing installation, guarantees the network tests feature is " +
		"enabled, and drives an unattended msiexec transaction to reach that state. " +
		"Browser integration features keep their installed state unless overridden."

	RootFlagChrome  = "Chrome integration feature: enabled or disabled (default: leave as installed)"
	RootFlagFirefox = "Firefox integration feature: enabled or disabled (default: leave as installed)"
	RootFlagEdge    = "Edge integration feature: enabled or disabled (default: leave as installed)"
	RootFlagConfig  = "Path to an override config file (default: ~/.config/featurectl/config.toml when present)"
	RootFlagDebug   = "Emit phase diagnostics to stderr"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// TriStateInvalidFmt rejects override flag values outside the tri-state vocabulary.
	TriStateInvalidFmt = "invalid value %q: must be %q or %q"

	// Progress messages precede each major phase.
	ProgressInspectingFmt     = "Inspecting package %s\n"
	ProgressNoExisting        = "No existing installation found; starting from feature defaults\n"
	ProgressExistingFoundFmt  = "Found existing installation: %s %s (package %s)\n"
	ProgressReinstallFmt      = "Candidate version %s matches installed version; re-installing\n"
	ProgressUpgradeFmt        = "Upgrading %s -> %s\n"
	ProgressFreshInstallFmt   = "Installing version %s\n"
	ProgressInvokingInstaller = "Starting unattended installer transaction\n"

	SuccessFmt               = "Installation succeeded. Installer log: %s\n"
	SuccessRebootRequiredFmt = "Installation succeeded; a reboot is required to complete it. Installer log: %s\n"

	// InstallerExitErrorFmt is the error text for a failed installer transaction.
	InstallerExitErrorFmt = "installer exited with code %d (log: %s)"
)
