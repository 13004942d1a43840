// Package reconcile computes the target feature set for an installer
// transaction from prior feature states, mandatory requirements, and caller
// overrides. Reconcile is a pure function of its inputs.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/castleops/featurectl/internal/messages"
	"github.com/castleops/featurectl/internal/version"
)

// ErrDowngradeRejected indicates the existing installation is newer than the
// candidate package. Never install an older package over a newer one.
var ErrDowngradeRejected = errors.New("downgrade rejected")

// Override is the caller's tri-state intent for one feature. The zero value
// means the caller said nothing, which is distinct from saying disabled.
type Override int

const (
	// OverrideUnspecified leaves the feature as reconciliation decides.
	OverrideUnspecified Override = iota
	// OverrideEnabled forces the feature on.
	OverrideEnabled
	// OverrideDisabled forces the feature off.
	OverrideDisabled
)

// Existing captures the relevant state of a detected installation.
type Existing struct {
	Version  string
	Features map[string]bool
}

// Reconcile merges the existing installation state (if any) with the caller's
// overrides and the mandatory feature set into a target feature mapping over
// exactly the recognized feature names.
//
// Precedence, lowest to highest: defaults (all disabled), existing installed
// states, mandatory enables, caller overrides. Feature names in the existing
// state that are not recognized are dropped. Equal versions are a valid
// re-install; only a strictly newer existing version rejects the run.
func Reconcile(candidateVersion string, existing *Existing, overrides map[string]Override, mandatory []string, recognized []string) (map[string]bool, error) {
	if existing != nil {
		cmp, err := version.Compare(existing.Version, candidateVersion)
		if err != nil {
			return nil, fmt.Errorf(messages.ReconcileCompareVersionsFmt, existing.Version, candidateVersion, err)
		}
		if cmp > 0 {
			return nil, fmt.Errorf(messages.ReconcileDowngradeFmt, existing.Version, candidateVersion, ErrDowngradeRejected)
		}
	}

	target := make(map[string]bool, len(recognized))
	for _, name := range recognized {
		target[name] = false
	}

	if existing != nil {
		for name, enabled := range existing.Features {
			if _, ok := target[name]; ok {
				target[name] = enabled
			}
		}
	}

	for _, name := range mandatory {
		if _, ok := target[name]; ok {
			target[name] = true
		}
	}

	for name, override := range overrides {
		if _, ok := target[name]; !ok {
			continue
		}
		switch override {
		case OverrideEnabled:
			target[name] = true
		case OverrideDisabled:
			target[name] = false
		case OverrideUnspecified:
		}
	}

	return target, nil
}
