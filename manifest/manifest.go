// Package manifest patches the dependency sections of the package
// manifests that sit next to generated clients: package.json, pubspec.yaml
// and Cargo.toml. Patches only add missing dependencies; versions the user
// already pinned are kept.
package manifest

import "errors"

// ErrMalformed is returned when an existing manifest cannot be parsed.
var ErrMalformed = errors.New("manifest: malformed file")

// Dependency is a package the generated code imports.
type Dependency struct {
	Name    string
	Version string
	// Features are Cargo features. Ignored by other manifests.
	Features []string
}

// Patch rewrites the content of an existing manifest.
type Patch func(existing []byte) ([]byte, error)
