//go:build !windows

package pkginspect

import (
	"fmt"
	"runtime"

	"github.com/castleops/featurectl/internal/messages"
)

// NewPlatform returns the installer database collaborators for this host.
// Only Windows carries an installer database; other platforms fail up front.
func NewPlatform() (PackageDatabase, ProductRegistry, error) {
	return nil, nil, fmt.Errorf(messages.InspectUnsupportedPlatformFmt, runtime.GOOS)
}
