package messages

// Orchestration messages.
const (
	// OrchestrateCreateStagingFmt wraps staging directory creation failures.
	OrchestrateCreateStagingFmt = "create staging directory %s: %w"
	// OrchestrateStagePackageFmt wraps package copy failures.
	OrchestrateStagePackageFmt  = "stage package %s as %s: %w"
	OrchestratePackageRequired  = "package path is required"
	OrchestrateFileNameRequired = "package file name is required"
	OrchestrateSystemRequired   = "orchestrator system is required"
	OrchestrateLaunchFmt        = "launch %s: %w"

	// OrchestrateCleanupWarningFmt is logged when staging removal fails; never escalated.
	OrchestrateCleanupWarningFmt = "Warning: failed to remove staging directory %s: %v\n"
)
