package gen

import (
	"path/filepath"

	"github.com/syssam/teogen/schema"
)

// Target generates the bindings of one output language. Every target owns
// a type lookup table and a renderer; the outline it renders from is built
// by the Generator for the target's Mode.
type Target interface {
	// Name returns the registry name of the target ("ts", "rust", ...).
	Name() string
	// Mode returns the side of the schema the target generates for.
	Mode() Mode
	// Lookup renders t as seen from the namespace at current.
	Lookup(t *schema.Type, current []string) (string, error)
	// Render renders the outline tree into files relative to the job's
	// destination directory.
	Render(rc *RenderContext) ([]*File, error)
}

// RenderContext carries everything a Target needs to render one job.
type RenderContext struct {
	// Outline is the outline of the schema root.
	Outline *Outline
	// Schema is the schema root.
	Schema *schema.Namespace
	// Dest is the destination directory of the job.
	Dest string
	// ObjectName is the package object name of the generated client.
	ObjectName string
	// Header is the comment placed at the top of generated files.
	Header string
	// Capabilities are the scalar families used by Outline.
	Capabilities Capabilities
}

// PackageName returns the package name inferred from the destination
// directory, falling back to "untitled".
func (rc *RenderContext) PackageName() string {
	name := filepath.Base(filepath.Clean(rc.Dest))
	if name == "." || name == string(filepath.Separator) {
		return "untitled"
	}
	return name
}

// File is a single output of a target.
type File struct {
	// Path is relative to the job's destination directory.
	Path string
	// Content is the file body.
	Content []byte
	// SkipIfExists keeps a user-editable file that already exists.
	SkipIfExists bool
	// Patch rewrites an existing file instead of writing Content. Patched
	// files that do not exist are skipped.
	Patch func(existing []byte) ([]byte, error)
	// FindUpward searches the destination and its ancestors for a file
	// named after the base of Path. Only used with Patch.
	FindUpward bool
}
