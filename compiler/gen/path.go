package gen

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/syssam/teogen/schema"
)

// PathStyle selects how a target expresses a reference to a declaration in
// another namespace.
type PathStyle uint8

const (
	// PathStyleQualified keeps fully qualified names, stripping the current
	// namespace prefix from descendants. Used by targets that nest every
	// namespace in one output file.
	PathStyleQualified PathStyle = iota + 1
	// PathStyleAncestor walks up with an ancestor token ("super") and then
	// down the remaining path.
	PathStyleAncestor
	// PathStyleDirectory imports the namespace file through a relative
	// directory path and qualifies the name with the import alias.
	PathStyleDirectory
)

// String returns the style name.
func (s PathStyle) String() string {
	switch s {
	case PathStyleQualified:
		return "qualified"
	case PathStyleAncestor:
		return "ancestor"
	case PathStyleDirectory:
		return "directory"
	default:
		return fmt.Sprintf("PathStyle(%d)", s)
	}
}

// PathOptions holds the target specific tokens used during relativization.
type PathOptions struct {
	// Separator joins path segments ("." or "::").
	Separator string
	// Ancestor is the token for the parent namespace ("super").
	Ancestor string
	// Reserved renames root level namespaces that clash with the target
	// language, e.g. {"std": "stdlib"}.
	Reserved map[string]string
	// ObjectName aliases imports of the root namespace in directory style.
	ObjectName string
	// FileName is the file each namespace directory is rendered into.
	FileName string
	// AliasPrefix is prepended to import aliases in directory style, so
	// that they cannot collide with member names.
	AliasPrefix string
}

// Import is a single import statement of a namespace file.
type Import struct {
	Path  string
	Alias string
}

// Relative is the result of relativizing a target path against the current
// namespace.
type Relative struct {
	// Up is the number of namespace levels to climb.
	Up int
	// Remainder is the target path below the common prefix.
	Remainder []string
	// Self reports that the target is the current namespace.
	Self bool
	// Segments are the rendered tokens in qualified and ancestor styles.
	Segments []string
	// Import is set in directory style unless Self is true.
	Import *Import
}

// CommonPrefix returns the length of the longest common prefix of a and b.
func CommonPrefix(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Relativize expresses the namespace path target as seen from the namespace
// path current.
func Relativize(target, current []string, style PathStyle, opts PathOptions) (*Relative, error) {
	l := CommonPrefix(target, current)
	rel := &Relative{
		Up:        len(current) - l,
		Remainder: slices.Clone(target[l:]),
	}
	rel.Self = len(rel.Remainder) == 0 && rel.Up == 0
	remainder := rel.Remainder
	if l == 0 && len(remainder) > 0 {
		if alias, ok := opts.Reserved[remainder[0]]; ok {
			remainder = append([]string{alias}, remainder[1:]...)
		}
	}
	switch style {
	case PathStyleQualified:
		if rel.Up == 0 {
			rel.Segments = remainder
			break
		}
		rel.Segments = slices.Clone(target)
		if len(target) == 0 {
			break
		}
		if alias, ok := opts.Reserved[target[0]]; ok {
			rel.Segments[0] = alias
		}
	case PathStyleAncestor:
		if rel.Up > 0 && opts.Ancestor == "" {
			return nil, NewAmbiguousPathError(target, current, "target has no ancestor token")
		}
		for i := 0; i < rel.Up; i++ {
			rel.Segments = append(rel.Segments, opts.Ancestor)
		}
		rel.Segments = append(rel.Segments, remainder...)
	case PathStyleDirectory:
		if rel.Self {
			break
		}
		var segs []string
		for i := 0; i < rel.Up; i++ {
			segs = append(segs, "..")
		}
		segs = append(segs, rel.Remainder...)
		if opts.FileName != "" {
			segs = append(segs, opts.FileName)
		}
		// Aliases come from the absolute path, one per namespace.
		alias := opts.ObjectName
		if len(target) == 0 {
			if alias == "" {
				return nil, NewAmbiguousPathError(target, current, "root import requires a package object name")
			}
		} else {
			abs := slices.Clone(target)
			if r, ok := opts.Reserved[abs[0]]; ok {
				abs[0] = r
			}
			alias = strings.Join(abs, "_")
		}
		rel.Import = &Import{Path: strings.Join(segs, "/"), Alias: opts.AliasPrefix + alias}
	default:
		return nil, NewConfigError("PathStyle", style, "unknown path style")
	}
	return rel, nil
}

// RenderReference renders the absolute declaration path decl as seen from
// the namespace current. In directory style the import the reference needs
// is returned as well.
func RenderReference(decl, current []string, style PathStyle, opts PathOptions) (string, *Import, error) {
	if len(decl) == 0 {
		return "", nil, NewAmbiguousPathError(decl, current, "empty declaration path")
	}
	rel, err := Relativize(parent(decl), current, style, opts)
	if err != nil {
		return "", nil, err
	}
	sep := opts.Separator
	if sep == "" {
		sep = "."
	}
	name := last(decl)
	if style == PathStyleDirectory {
		if rel.Self {
			return name, nil, nil
		}
		return rel.Import.Alias + sep + name, rel.Import, nil
	}
	return strings.Join(append(slices.Clone(rel.Segments), name), sep), nil, nil
}

// ImportSet collects the imports of one namespace file. Imports are unique
// by alias and rendered in lexicographic order.
type ImportSet struct {
	current []string
	aliases map[string]Import
}

// NewImportSet returns an empty set for the namespace at current.
func NewImportSet(current []string) *ImportSet {
	return &ImportSet{current: current, aliases: make(map[string]Import)}
}

// Add adds imp to the set. Adding a different path under an alias that is
// already taken fails with an AmbiguousPathError.
func (s *ImportSet) Add(imp Import) error {
	if prev, ok := s.aliases[imp.Alias]; ok {
		if prev.Path != imp.Path {
			return NewAmbiguousPathError(s.current, s.current,
				"alias "+imp.Alias+" imports both "+prev.Path+" and "+imp.Path)
		}
		return nil
	}
	s.aliases[imp.Alias] = imp
	return nil
}

// Len returns the number of imports in the set.
func (s *ImportSet) Len() int { return len(s.aliases) }

// List returns the imports sorted by path.
func (s *ImportSet) List() []Import {
	list := make([]Import, 0, len(s.aliases))
	for _, imp := range s.aliases {
		list = append(list, imp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Path != list[j].Path {
			return list[i].Path < list[j].Path
		}
		return list[i].Alias < list[j].Alias
	})
	return list
}

// CollectImports returns the imports the declarations of o need in
// directory style. Child outlines are not visited; they are rendered into
// their own files.
func CollectImports(o *Outline, opts PathOptions) ([]Import, error) {
	set := NewImportSet(o.Path)
	var visit func(t *schema.Type) error
	visit = func(t *schema.Type) error {
		if t == nil {
			return nil
		}
		if t.Kind.IsReference() {
			decl, err := ReferencePath(t, o.Mode)
			if err != nil {
				return err
			}
			_, imp, err := RenderReference(decl, o.Path, PathStyleDirectory, opts)
			if err != nil {
				return err
			}
			if imp != nil {
				if err := set.Add(*imp); err != nil {
					return err
				}
			}
			for _, a := range t.Args {
				if err := visit(a); err != nil {
					return err
				}
			}
			return nil
		}
		if err := visit(t.Inner); err != nil {
			return err
		}
		for _, it := range t.Items {
			if err := visit(it); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range o.Types() {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return set.List(), nil
}
