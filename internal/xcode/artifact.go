package xcode

import (
	"os"
	"path/filepath"
)

// ArtifactPath returns the expected application bundle location.
// xcodebuild places products under Build/Products/<Configuration>/ inside
// the derived data directory; the bundle is named after the scheme.
func ArtifactPath(derivedDataPath, configuration, scheme string) string {
	return filepath.Join(derivedDataPath, "Build", "Products", configuration, scheme+".app")
}

// CheckArtifact reports whether the expected bundle exists on disk and
// returns its absolute path. The check is existence-only; contents are
// never inspected.
func CheckArtifact(derivedDataPath, configuration, scheme string) (string, bool) {
	path := ArtifactPath(derivedDataPath, configuration, scheme)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, err := os.Stat(path); err != nil {
		return abs, false
	}
	return abs, true
}
