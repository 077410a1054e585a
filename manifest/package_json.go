package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// object is a JSON object that keeps the order of its keys.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

func decodeObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	o := &object{values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if _, dup := o.values[key]; !dup {
			o.keys = append(o.keys, key)
		}
		o.values[key] = raw
	}
	return o, nil
}

func (o *object) set(key string, value json.RawMessage) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// MarshalJSON implements json.Marshaler.
func (o *object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(o.values[k])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// PackageJSON returns a patch adding deps to the "dependencies" object of
// a package.json file.
func PackageJSON(deps ...Dependency) Patch {
	return func(existing []byte) ([]byte, error) {
		root, err := decodeObject(existing)
		if err != nil {
			return nil, fmt.Errorf("%w: package.json: %v", ErrMalformed, err)
		}
		section := &object{values: make(map[string]json.RawMessage)}
		if raw, ok := root.values["dependencies"]; ok {
			if section, err = decodeObject(raw); err != nil {
				return nil, fmt.Errorf("%w: package.json dependencies: %v", ErrMalformed, err)
			}
		}
		changed := false
		for _, d := range deps {
			if _, ok := section.values[d.Name]; ok {
				continue
			}
			v, err := json.Marshal(d.Version)
			if err != nil {
				return nil, err
			}
			section.set(d.Name, v)
			changed = true
		}
		if !changed {
			return existing, nil
		}
		raw, err := section.MarshalJSON()
		if err != nil {
			return nil, err
		}
		root.set("dependencies", raw)
		flat, err := root.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, flat, "", "  "); err != nil {
			return nil, err
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	}
}
