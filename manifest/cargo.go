package manifest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Cargo returns a patch adding deps to the [dependencies] table of a
// Cargo.toml file. Missing entries are inserted as lines right after the
// table header so the rest of the file is left untouched.
func Cargo(deps ...Dependency) Patch {
	return func(existing []byte) ([]byte, error) {
		var manifest struct {
			Dependencies map[string]any `toml:"dependencies"`
		}
		if err := toml.Unmarshal(existing, &manifest); err != nil {
			return nil, fmt.Errorf("%w: Cargo.toml: %v", ErrMalformed, err)
		}
		var lines []string
		for _, d := range deps {
			if _, ok := manifest.Dependencies[d.Name]; ok {
				continue
			}
			lines = append(lines, cargoLine(d))
		}
		if len(lines) == 0 {
			return existing, nil
		}
		out := insertIntoTable(existing, "dependencies", lines)
		// The result must still be a valid manifest.
		if err := toml.Unmarshal(out, &manifest); err != nil {
			return nil, fmt.Errorf("%w: patched Cargo.toml: %v", ErrMalformed, err)
		}
		return out, nil
	}
}

func cargoLine(d Dependency) string {
	if len(d.Features) == 0 {
		return d.Name + " = " + strconv.Quote(d.Version)
	}
	features := make([]string, len(d.Features))
	for i, f := range d.Features {
		features[i] = strconv.Quote(f)
	}
	return fmt.Sprintf("%s = { version = %s, features = [%s] }", d.Name, strconv.Quote(d.Version), strings.Join(features, ", "))
}

// insertIntoTable inserts lines after the header of table, appending the
// table when the file has none.
func insertIntoTable(src []byte, table string, lines []string) []byte {
	header := "[" + table + "]"
	all := strings.SplitAfter(string(src), "\n")
	for i, l := range all {
		if strings.TrimSpace(l) != header {
			continue
		}
		if !strings.HasSuffix(l, "\n") {
			all[i] = l + "\n"
		}
		block := strings.Join(lines, "\n") + "\n"
		return []byte(strings.Join(all[:i+1], "") + block + strings.Join(all[i+1:], ""))
	}
	var b bytes.Buffer
	b.Write(src)
	if len(src) > 0 && !bytes.HasSuffix(src, []byte("\n")) {
		b.WriteByte('\n')
	}
	if len(src) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(header + "\n")
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	return b.Bytes()
}
