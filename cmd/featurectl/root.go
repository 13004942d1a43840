package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/castleops/featurectl/internal/config"
	"github.com/castleops/featurectl/internal/messages"
	"github.com/castleops/featurectl/internal/orchestrate"
	"github.com/castleops/featurectl/internal/pkginspect"
	"github.com/castleops/featurectl/internal/reconcile"
	"github.com/castleops/featurectl/internal/terminal"
)

// Seams for tests.
var (
	newCollaborators = pkginspect.NewPlatform
	newSystem        = func() orchestrate.System { return orchestrate.RealSystem{} }
)

func newRootCmd() *cobra.Command {
	var (
		chrome     triState
		firefox    triState
		edge       triState
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]reconcile.Override{}
			for feature, flag := range map[string]*triState{
				config.FeatureChromeIntegration:  &chrome,
				config.FeatureFirefoxIntegration: &firefox,
				config.FeatureEdgeIntegration:    &edge,
			} {
				if override := flag.Override(); override != reconcile.OverrideUnspecified {
					overrides[feature] = override
				}
			}
			return runInstall(cmd, args[0], configPath, overrides, debug)
		},
	}

	cmd.Flags().Var(&chrome, "chrome-integration", messages.RootFlagChrome)
	cmd.Flags().Var(&firefox, "firefox-integration", messages.RootFlagFirefox)
	cmd.Flags().Var(&edge, "edge-integration", messages.RootFlagEdge)
	cmd.Flags().StringVar(&configPath, "config", "", messages.RootFlagConfig)
	cmd.Flags().BoolVar(&debug, "debug", false, messages.RootFlagDebug)
	return cmd
}

// runInstall drives the pipeline: inspect the package and any existing
// installation, reconcile the target feature set, execute the transaction.
func runInstall(cmd *cobra.Command, packagePath string, configPath string, overrides map[string]reconcile.Override, debug bool) error {
	logger := zerolog.Nop()
	if debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, registry, err := newCollaborators()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, messages.ProgressInspectingFmt, packagePath)

	identity, err := pkginspect.ReadPackageIdentity(db, packagePath, cfg.Product.UpgradeCodes)
	if err != nil {
		return err
	}
	logger.Debug().Str("product", identity.ProductName).Str("version", identity.Version).Msg("package identity")

	product, err := pkginspect.FindExistingInstallation(registry, db, identity.UpgradeCode)
	if err != nil {
		return err
	}

	var existing *reconcile.Existing
	packageFileName := filepath.Base(packagePath)
	if product == nil {
		_, _ = fmt.Fprint(out, messages.ProgressNoExisting)
		_, _ = fmt.Fprintf(out, messages.ProgressFreshInstallFmt, identity.Version)
	} else {
		_, _ = fmt.Fprintf(out, messages.ProgressExistingFoundFmt, product.ProductName, product.Version, product.PackageFileName)
		states, err := pkginspect.ReadFeatureStates(db, product.ProductCode, cfg.Recognized())
		if err != nil {
			return err
		}
		existing = &reconcile.Existing{Version: product.Version, Features: states}
		// Keep the recorded package file name across upgrades; the engine
		// keys repair and uninstall off it.
		packageFileName = product.PackageFileName
		if product.Version == identity.Version {
			_, _ = fmt.Fprintf(out, messages.ProgressReinstallFmt, identity.Version)
		} else {
			_, _ = fmt.Fprintf(out, messages.ProgressUpgradeFmt, product.Version, identity.Version)
		}
	}

	target, err := reconcile.Reconcile(identity.Version, existing, overrides, cfg.Features.Mandatory, cfg.Recognized())
	if err != nil {
		return err
	}
	logger.Debug().Interface("target", target).Msg("reconciled feature set")

	_, _ = fmt.Fprint(out, messages.ProgressInvokingInstaller)
	outcome, err := orchestrate.Execute(orchestrate.Options{
		PackagePath:     packagePath,
		PackageFileName: packageFileName,
		Features:        target,
		System:          newSystem(),
		Logger:          &logger,
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	success := color.New(color.FgGreen)
	if !terminal.StdoutIsTerminal() {
		success.DisableColor()
	}
	switch outcome.Status {
	case orchestrate.StatusSuccess:
		_, _ = success.Fprintf(out, messages.SuccessFmt, outcome.LogPath)
		return nil
	case orchestrate.StatusSuccessRebootRequired:
		_, _ = success.Fprintf(out, messages.SuccessRebootRequiredFmt, outcome.LogPath)
		return nil
	default:
		return &InstallerExitError{Code: outcome.ExitCode, LogPath: outcome.LogPath}
	}
}
