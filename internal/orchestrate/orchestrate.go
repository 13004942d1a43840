// Package orchestrate stages an installer package, drives the external
// installer engine in unattended mode, and classifies its result.
package orchestrate

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/castleops/featurectl/internal/messages"
)

// Status classifies one installer transaction.
type Status string

const (
	// StatusSuccess is a clean installer exit.
	StatusSuccess Status = "success"
	// StatusSuccessRebootRequired is a successful exit that needs a reboot to complete.
	StatusSuccessRebootRequired Status = "success-reboot-required"
	// StatusFailed is any other installer exit; the raw code is preserved.
	StatusFailed Status = "failed"
)

// exitCodeRebootRequired is the installer engine's ERROR_SUCCESS_REBOOT_REQUIRED.
const exitCodeRebootRequired = 3010

// ErrProcessLaunch indicates the installer process could not be started at
// all, as opposed to running and reporting failure.
var ErrProcessLaunch = errors.New("installer launch failed")

// installerBinary is the external installer engine. Seam for tests.
var installerBinary = "msiexec"

var nowFunc = time.Now

// Outcome is the classified result of one installer transaction.
type Outcome struct {
	Status   Status
	ExitCode int
	LogPath  string
}

// Success reports whether the transaction reached the target state.
func (o Outcome) Success() bool {
	return o.Status == StatusSuccess || o.Status == StatusSuccessRebootRequired
}

// Options configures one installer transaction.
type Options struct {
	// PackagePath is the source package file.
	PackagePath string
	// PackageFileName is the name the staged copy takes. Preserving the
	// originally installed package's file name keeps repair and uninstall
	// working on engines that key those off the recorded source name.
	PackageFileName string
	// Features is the target feature mapping; true goes to ADDLOCAL, false to REMOVE.
	Features map[string]bool
	// System performs staging filesystem operations.
	System System
	// Logger receives phase diagnostics. Nil means no diagnostics.
	Logger *zerolog.Logger
	// Stderr receives cleanup warnings. Nil discards them.
	Stderr io.Writer
}

// Execute runs one unattended installer transaction and classifies its exit
// status. A ran-and-failed installer is a classified Outcome, not an error;
// errors are reserved for local staging failures and launch failures.
func Execute(opts Options) (Outcome, error) {
	if strings.TrimSpace(opts.PackagePath) == "" {
		return Outcome{}, errors.New(messages.OrchestratePackageRequired)
	}
	if strings.TrimSpace(opts.PackageFileName) == "" {
		return Outcome{}, errors.New(messages.OrchestrateFileNameRequired)
	}
	if opts.System == nil {
		return Outcome{}, errors.New(messages.OrchestrateSystemRequired)
	}
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	staging := filepath.Join(opts.System.TempDir(), "featurectl-"+uuid.NewString())
	if err := opts.System.MkdirAll(staging, 0o700); err != nil {
		return Outcome{}, fmt.Errorf(messages.OrchestrateCreateStagingFmt, staging, err)
	}
	defer func() {
		if err := opts.System.RemoveAll(staging); err != nil {
			// A leaked staging directory must never mask the real result.
			logger.Warn().Str("staging", staging).Err(err).Msg("staging cleanup failed")
			_, _ = fmt.Fprintf(stderr, messages.OrchestrateCleanupWarningFmt, staging, err)
		}
	}()
	logger.Debug().Str("staging", staging).Msg("created staging directory")

	stagedPackage := filepath.Join(staging, opts.PackageFileName)
	if err := opts.System.CopyFile(opts.PackagePath, stagedPackage); err != nil {
		return Outcome{}, fmt.Errorf(messages.OrchestrateStagePackageFmt, opts.PackagePath, stagedPackage, err)
	}
	logger.Debug().Str("package", stagedPackage).Msg("staged package")

	// The log lives outside the staging directory: it is the run's only
	// durable artifact and must survive cleanup.
	logPath := filepath.Join(opts.System.TempDir(), fmt.Sprintf("featurectl-install-%s.log", nowFunc().Format("20060102-150405")))

	addLocal, remove := PartitionFeatures(opts.Features)
	args := []string{"/i", stagedPackage, "/qn", "/norestart", "/l*v", logPath}
	if len(addLocal) > 0 {
		args = append(args, "ADDLOCAL="+strings.Join(addLocal, ","))
	}
	if len(remove) > 0 {
		args = append(args, "REMOVE="+strings.Join(remove, ","))
	}
	logger.Debug().Strs("args", args).Str("log", logPath).Msg("invoking installer")

	// Synchronous by design: no timeout and no cancellation once launched.
	// The engine serializes concurrent transactions system-wide itself.
	cmd := exec.Command(installerBinary, args...)
	err := cmd.Run()
	if err == nil {
		logger.Debug().Msg("installer exited cleanly")
		return classifyExit(0, logPath), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Outcome{}, fmt.Errorf("%w: "+messages.OrchestrateLaunchFmt, ErrProcessLaunch, installerBinary, err)
	}

	code := exitErr.ExitCode()
	logger.Debug().Int("code", code).Msg("installer exited")
	return classifyExit(code, logPath), nil
}

// classifyExit maps an installer exit status onto an Outcome. 0 and 3010 are
// both successful; 3010 additionally signals a pending reboot.
func classifyExit(code int, logPath string) Outcome {
	switch code {
	case 0:
		return Outcome{Status: StatusSuccess, LogPath: logPath}
	case exitCodeRebootRequired:
		return Outcome{Status: StatusSuccessRebootRequired, ExitCode: code, LogPath: logPath}
	default:
		return Outcome{Status: StatusFailed, ExitCode: code, LogPath: logPath}
	}
}

// PartitionFeatures splits a target feature mapping into sorted ADDLOCAL and
// REMOVE lists. Every feature in the mapping lands in exactly one list.
func PartitionFeatures(features map[string]bool) ([]string, []string) {
	addLocal := make([]string, 0, len(features))
	remove := make([]string, 0, len(features))
	for name, enabled := range features {
		if enabled {
			addLocal = append(addLocal, name)
		} else {
			remove = append(remove, name)
		}
	}
	sort.Strings(addLocal)
	sort.Strings(remove)
	return addLocal, remove
}
