package commands

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/veloxapp/veloxbuild/internal/xcode"
)

// DoctorCmd implements the 'doctor' command: a quick toolchain sanity check.
type DoctorCmd struct{}

func (d *DoctorCmd) Run(_ *Global) error {
	toolPath, err := exec.LookPath(xcode.Tool)
	if err != nil {
		fmt.Println("❌ xcodebuild not found on PATH")
		return fmt.Errorf("xcodebuild not found: %w", err)
	}
	fmt.Printf("xcodebuild: %s\n", toolPath)

	if v := xcode.DetectXcodebuildVersion(context.Background()); v != "" {
		fmt.Printf("Xcode version: %s\n", v)
	} else {
		fmt.Println("Xcode version: unknown")
	}
	return nil
}
