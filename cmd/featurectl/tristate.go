package main

import (
	"fmt"
	"strings"

	"github.com/castleops/featurectl/internal/messages"
	"github.com/castleops/featurectl/internal/reconcile"
)

const (
	triStateEnabled  = "enabled"
	triStateDisabled = "disabled"
)

// triState is a flag value accepting "enabled" or "disabled". An unset flag
// means the caller said nothing, which must stay distinct from "disabled".
type triState struct {
	set     bool
	enabled bool
}

func (t *triState) String() string {
	if !t.set {
		return ""
	}
	if t.enabled {
		return triStateEnabled
	}
	return triStateDisabled
}

func (t *triState) Set(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case triStateEnabled:
		t.set = true
		t.enabled = true
	case triStateDisabled:
		t.set = true
		t.enabled = false
	default:
		return fmt.Errorf(messages.TriStateInvalidFmt, value, triStateEnabled, triStateDisabled)
	}
	return nil
}

func (t *triState) Type() string {
	return "state"
}

// Override converts the flag into the reconciler's tri-state override.
func (t *triState) Override() reconcile.Override {
	if !t.set {
		return reconcile.OverrideUnspecified
	}
	if t.enabled {
		return reconcile.OverrideEnabled
	}
	return reconcile.OverrideDisabled
}
