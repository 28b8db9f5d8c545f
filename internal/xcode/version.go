package xcode

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
)

// DetectXcodebuildVersion attempts to detect the Xcode version of the
// xcodebuild binary on PATH. Returns the version string (e.g. "15.4") or
// empty string if detection fails. Best-effort: never errors when the
// toolchain is unavailable.
func DetectXcodebuildVersion(ctx context.Context) string {
	toolPath, err := exec.LookPath(Tool)
	if err != nil {
		return ""
	}

	// #nosec G204 -- toolPath is from exec.LookPath, not user-controlled
	cmd := exec.CommandContext(ctx, toolPath, "-version")
	output, err := cmd.Output()
	if err != nil {
		return ""
	}

	return parseXcodebuildVersion(string(output))
}

// parseXcodebuildVersion extracts the version number from `xcodebuild
// -version` output. Expected format:
//
//	Xcode 15.4
//	Build version 15F31d
//
// Returns empty string if parsing fails.
func parseXcodebuildVersion(output string) string {
	versionRegex := regexp.MustCompile(`Xcode\s+(\d+(?:\.\d+)*)`)
	if matches := versionRegex.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}

	// Fallback: first X.Y[.Z] number anywhere in the output.
	simpleRegex := regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)
	if matches := simpleRegex.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}

	return strings.TrimSpace(output)
}
