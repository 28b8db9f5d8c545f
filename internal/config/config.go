package config

import "fmt"

// Defaults for the standard Velox release build. Flags and VELOXBUILD_*
// environment variables may override them.
const (
	DefaultProject         = "Velox.xcodeproj"
	DefaultScheme          = "Velox"
	DefaultConfiguration   = "Release"
	DefaultDerivedDataPath = "build"
)

// Config holds the immutable values describing a single xcodebuild run.
// All fields are fixed at invocation time; nothing is reloaded mid-run.
type Config struct {
	Project         string
	Scheme          string
	Configuration   string
	DerivedDataPath string
}

// Default returns the configuration used when no overrides are supplied.
func Default() Config {
	return Config{
		Project:         DefaultProject,
		Scheme:          DefaultScheme,
		Configuration:   DefaultConfiguration,
		DerivedDataPath: DefaultDerivedDataPath,
	}
}

// Validate rejects configurations that cannot form a well-defined invocation.
func (c Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("config: project must not be empty")
	}
	if c.Scheme == "" {
		return fmt.Errorf("config: scheme must not be empty")
	}
	if c.Configuration == "" {
		return fmt.Errorf("config: configuration must not be empty")
	}
	if c.DerivedDataPath == "" {
		return fmt.Errorf("config: derived data path must not be empty")
	}
	return nil
}
