package target

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

var adminTemplates = mustParse("admin/*.tmpl", nil)

const (
	adminGenerated = "src/lib/generated"
	adminExtended  = "src/lib/extended/"
)

// ArtifactProvider supplies the boilerplate of the admin dashboard.
type ArtifactProvider interface {
	Artifacts() (fs.FS, error)
}

// FSProvider serves boilerplate from a file system.
type FSProvider struct{ FS fs.FS }

// Artifacts implements ArtifactProvider.
func (p FSProvider) Artifacts() (fs.FS, error) { return p.FS, nil }

// DirProvider serves boilerplate from a local directory.
func DirProvider(dir string) ArtifactProvider { return FSProvider{FS: os.DirFS(dir)} }

// embeddedProvider serves the boilerplate shipped with teogen.
func embeddedProvider() ArtifactProvider {
	sub, err := fs.Sub(templateFS, "templates/admin/boilerplate")
	if err != nil {
		panic(err)
	}
	return FSProvider{FS: sub}
}

// Admin renders the admin dashboard: boilerplate from the artifact
// provider, enum definitions and the TypeScript client it talks through.
type Admin struct {
	provider ArtifactProvider
	client   *TypeScript
}

// NewAdmin returns the admin target. A nil provider uses the embedded
// boilerplate.
func NewAdmin(p ArtifactProvider) *Admin {
	if p == nil {
		p = embeddedProvider()
	}
	return &Admin{provider: p, client: NewTypeScript()}
}

// Name implements gen.Target.
func (*Admin) Name() string { return "admin" }

// Mode implements gen.Target.
func (*Admin) Mode() gen.Mode { return gen.Client }

// Lookup implements gen.Target.
func (a *Admin) Lookup(t *schema.Type, current []string) (string, error) {
	return a.client.Lookup(t, current)
}

type adminEnum struct {
	Key     string
	Title   string
	Members []*gen.Member
}

// Render implements gen.Target.
func (a *Admin) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	files, err := a.boilerplate()
	if err != nil {
		return nil, err
	}
	var enums []*adminEnum
	rc.Outline.Walk(func(o *gen.Outline) {
		for _, e := range o.Enums {
			if e.Synthesized {
				continue
			}
			enums = append(enums, &adminEnum{Key: strings.Join(e.Path, "."), Title: e.Title, Members: e.Members})
		}
	})
	content, err := execute(adminTemplates.Lookup("enumDefinitions.ts.tmpl"), map[string]any{
		"Header": rc.Header,
		"Enums":  enums,
	})
	if err != nil {
		return nil, err
	}
	files = append(files, &gen.File{Path: path.Join(adminGenerated, "enumDefinitions.ts"), Content: content})

	client, err := a.client.Render(rc)
	if err != nil {
		return nil, err
	}
	for _, f := range client {
		if f.Patch != nil {
			// The boilerplate package.json already lists the client dependencies.
			continue
		}
		f.Path = path.Join(adminGenerated, rc.ObjectName, f.Path)
		files = append(files, f)
	}
	return files, nil
}

// boilerplate reads every provider file. Files under src/lib/extended are
// owned by the user once written.
func (a *Admin) boilerplate() ([]*gen.File, error) {
	fsys, err := a.provider.Artifacts()
	if err != nil {
		return nil, gen.NewGenerationError("admin", "", "load artifacts", err)
	}
	var files []*gen.File
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		files = append(files, &gen.File{
			Path:         p,
			Content:      content,
			SkipIfExists: strings.HasPrefix(p, adminExtended),
		})
		return nil
	})
	if err != nil {
		return nil, gen.NewGenerationError("admin", "", "read artifacts", err)
	}
	return files, nil
}
