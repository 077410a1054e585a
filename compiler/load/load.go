// Package load decodes a compiled schema tree from a file.
//
// The schema compiler can dump its tree as JSON, YAML or MessagePack. The
// format is chosen from the file extension. Paths omitted by hand-written
// schemas are derived from the tree, and the result is validated before it
// is handed to the generator.
package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

// Format is an encoding of a schema file.
type Format string

// Supported formats.
const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

// FormatOf returns the format of the file at path, judged by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".msgpack", ".mpk":
		return MsgPack, nil
	}
	return "", gen.NewConfigError("Schema", path, "unknown schema format; expected .json, .yaml, .yml, .msgpack or .mpk")
}

// Load reads, decodes and validates the schema file at path.
func Load(path string) (*schema.Namespace, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	ns, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ns, nil
}

// Decode decodes and validates a schema tree from r.
func Decode(r io.Reader, format Format) (*schema.Namespace, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	ns := &schema.Namespace{}
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(ns)
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(ns)
		if err == io.EOF {
			err = nil
		}
	case MsgPack:
		err = msgpack.Unmarshal(data, ns)
	default:
		return nil, gen.NewConfigError("Format", format, "unsupported schema format")
	}
	if err != nil {
		return nil, gen.NewSchemaError(nil, "decode "+string(format), err)
	}
	Normalize(ns)
	if err := Validate(ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// Encode writes ns to w in format.
func Encode(w io.Writer, ns *schema.Namespace, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ns)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ns); err != nil {
			return err
		}
		return enc.Close()
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(ns)
	}
	return gen.NewConfigError("Format", format, "unsupported schema format")
}
