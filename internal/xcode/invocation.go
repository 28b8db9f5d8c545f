// Package xcode wraps the external xcodebuild binary: argument assembly,
// scoped child-process execution, and verification of the produced bundle.
package xcode

import "github.com/veloxapp/veloxbuild/internal/config"

// Tool is the external build tool binary name.
const Tool = "xcodebuild"

// ActionBuild is the only xcodebuild action the driver performs.
const ActionBuild = "build"

// Invocation describes one xcodebuild run. Values are fixed before
// execution; no user input flows into the argument list afterwards.
type Invocation struct {
	Project         string
	Scheme          string
	Configuration   string
	DerivedDataPath string
	Action          string
}

// NewBuildInvocation assembles the build invocation for cfg.
func NewBuildInvocation(cfg config.Config) Invocation {
	return Invocation{
		Project:         cfg.Project,
		Scheme:          cfg.Scheme,
		Configuration:   cfg.Configuration,
		DerivedDataPath: cfg.DerivedDataPath,
		Action:          ActionBuild,
	}
}

// Args returns the argument list passed to the xcodebuild binary.
func (inv Invocation) Args() []string {
	return []string{
		"-project", inv.Project,
		"-scheme", inv.Scheme,
		"-configuration", inv.Configuration,
		"-derivedDataPath", inv.DerivedDataPath,
		inv.Action,
	}
}
