package messages

// Reconciliation messages.
const (
	// ReconcileDowngradeFmt rejects installing an older package over a newer installation.
	ReconcileDowngradeFmt = "installed version %s is newer than package version %s: %w"
	// ReconcileCompareVersionsFmt wraps version comparison failures.
	ReconcileCompareVersionsFmt = "compare versions %q and %q: %w"
)
