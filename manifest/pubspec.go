package manifest

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Pubspec returns a patch adding deps to the dependencies mapping of a
// pubspec.yaml file. Comments and key order are preserved.
func Pubspec(deps ...Dependency) Patch {
	return func(existing []byte) ([]byte, error) {
		var doc yaml.Node
		if err := yaml.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("%w: pubspec.yaml: %v", ErrMalformed, err)
		}
		if doc.Kind == 0 {
			doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
		}
		if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: pubspec.yaml: top level is not a mapping", ErrMalformed)
		}
		root := doc.Content[0]
		section := mappingValue(root, "dependencies")
		if section == nil {
			section = &yaml.Node{Kind: yaml.MappingNode}
			root.Content = append(root.Content, scalar("dependencies"), section)
		}
		if section.Kind == yaml.ScalarNode && section.Value == "" {
			// "dependencies:" with no entries.
			section.Kind, section.Tag = yaml.MappingNode, ""
		}
		if section.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: pubspec.yaml: dependencies is not a mapping", ErrMalformed)
		}
		changed := false
		for _, d := range deps {
			if mappingValue(section, d.Name) != nil {
				continue
			}
			section.Content = append(section.Content, scalar(d.Name), scalar(d.Version))
			changed = true
		}
		if !changed {
			return existing, nil
		}
		var b bytes.Buffer
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	}
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
