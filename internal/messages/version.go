package messages

// Version parsing messages.
const (
	// VersionEmpty indicates an empty version string.
	VersionEmpty = "version is empty"
	// VersionInvalidFmt indicates a version outside the X.Y.Z form.
	VersionInvalidFmt = "invalid version %q"
	// VersionInvalidSegmentFmt indicates a non-numeric version segment.
	VersionInvalidSegmentFmt = "invalid version segment %q: %w"
)
