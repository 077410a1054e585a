package target

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/99designs/gqlgen/graphql"
	"gopkg.in/yaml.v3"
)

// gqlgenRuntime is the import path of the gqlgen runtime package that
// implements the marshalers of the built-in scalars.
var gqlgenRuntime = reflect.TypeOf(graphql.Upload{}).PkgPath()

// gqlgenBindings binds the scalars declared by the GraphQL target.
var gqlgenBindings = map[string]string{
	"Long":     "Int64",
	"Decimal":  "String",
	"Date":     "String",
	"DateTime": "Time",
	"Upload":   "Upload",
	"JSON":     "Map",
}

// GQLGenConfig is the subset of gqlgen.yml the GraphQL target maintains.
type GQLGenConfig struct {
	// SchemaFilename is the path(s) to the GraphQL schema file(s).
	SchemaFilename StringList `yaml:"schema,omitempty"`

	// Exec configures the generated executor.
	Exec PackageConfig `yaml:"exec,omitempty"`

	// Model configures the generated models.
	Model PackageConfig `yaml:"model,omitempty"`

	// Resolver configures the resolver generation.
	Resolver ResolverConfig `yaml:"resolver,omitempty"`

	// Autobind is a list of packages to autobind types from.
	Autobind []string `yaml:"autobind,omitempty"`

	// Models is a map of GraphQL type name to model configuration.
	Models map[string]TypeMapEntry `yaml:"models,omitempty"`

	// Extra keeps the settings the target does not maintain.
	Extra map[string]any `yaml:",inline"`
}

// PackageConfig configures a generated gqlgen package.
type PackageConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
}

// ResolverConfig configures the resolver generation.
type ResolverConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
	Layout   string `yaml:"layout,omitempty"`
	DirName  string `yaml:"dir,omitempty"`
}

// TypeMapEntry is the configuration for a single GraphQL type.
type TypeMapEntry struct {
	// Model is the Go model(s) to bind to this GraphQL type.
	Model StringList `yaml:"model,omitempty"`
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for StringList.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// AddSchemaPath adds a schema path to the configuration if not already present.
func (c *GQLGenConfig) AddSchemaPath(path string) {
	if !slices.Contains(c.SchemaFilename, path) {
		c.SchemaFilename = append(c.SchemaFilename, path)
	}
}

// SetModel adds a model binding for a GraphQL type. Bindings the user
// already declared for the type are kept.
func (c *GQLGenConfig) SetModel(typeName string, modelPath string) {
	if c.Models == nil {
		c.Models = make(map[string]TypeMapEntry)
	}
	entry := c.Models[typeName]
	if len(entry.Model) > 0 {
		return
	}
	entry.Model = append(entry.Model, modelPath)
	c.Models[typeName] = entry
}

// InjectBindings registers the schema file and binds the generated scalars
// to the gqlgen runtime.
func (c *GQLGenConfig) InjectBindings(schemaPath string) {
	if schemaPath != "" {
		c.AddSchemaPath(schemaPath)
	}
	for scalar, model := range gqlgenBindings {
		c.SetModel(scalar, gqlgenRuntime+"."+model)
	}
}

// gqlgenPatch returns a patch of an existing gqlgen.yml.
func gqlgenPatch(schemaPath string) func([]byte) ([]byte, error) {
	return func(existing []byte) ([]byte, error) {
		var cfg GQLGenConfig
		if err := yaml.Unmarshal(existing, &cfg); err != nil {
			return nil, fmt.Errorf("parse gqlgen config: %w", err)
		}
		cfg.InjectBindings(schemaPath)
		data, err := yaml.Marshal(&cfg)
		if err != nil {
			return nil, fmt.Errorf("marshal gqlgen config: %w", err)
		}
		return data, nil
	}
}
