package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/compiler/load"
	"github.com/syssam/teogen/schema"
)

func outlineCmd(root *rootOptions) *cobra.Command {
	var (
		schemaPath string
		mode       string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Print the outline tree of a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if schemaPath == "" {
				cfg, err := loadConfig(root.configFile)
				if err != nil {
					return err
				}
				schemaPath = cfg.Schema
			}
			m, err := gen.ParseMode(mode)
			if err != nil {
				return err
			}
			ns, err := load.Load(schemaPath)
			if err != nil {
				return err
			}
			o, err := gen.NewOutline(ns, m, ns)
			if err != nil {
				return err
			}
			return writeOutline(cmd.OutOrStdout(), newOutlineView(o), format)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (default from the config)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "client", "outline mode: client or entity")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json or yaml")
	return cmd
}

// outlineView is the printable form of an Outline. Types are rendered in
// their schema notation.
type (
	outlineView struct {
		Name          string              `json:"name" yaml:"name"`
		Path          string              `json:"path,omitempty" yaml:"path,omitempty"`
		Interfaces    []interfaceView     `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
		Enums         []enumView          `json:"enums,omitempty" yaml:"enums,omitempty"`
		Delegates     []delegateView      `json:"delegates,omitempty" yaml:"delegates,omitempty"`
		PathArguments map[string][]string `json:"pathArguments,omitempty" yaml:"pathArguments,omitempty"`
		Children      []outlineView       `json:"children,omitempty" yaml:"children,omitempty"`
	}

	interfaceView struct {
		Name     string            `json:"name" yaml:"name"`
		Generics []string          `json:"generics,omitempty" yaml:"generics,omitempty"`
		Extends  []string          `json:"extends,omitempty" yaml:"extends,omitempty"`
		Model    string            `json:"model,omitempty" yaml:"model,omitempty"`
		Shape    string            `json:"shape,omitempty" yaml:"shape,omitempty"`
		Fields   map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	}

	enumView struct {
		Name        string   `json:"name" yaml:"name"`
		Members     []string `json:"members" yaml:"members"`
		Synthesized bool     `json:"synthesized,omitempty" yaml:"synthesized,omitempty"`
	}

	delegateView struct {
		Name       string        `json:"name" yaml:"name"`
		Groups     []string      `json:"groups,omitempty" yaml:"groups,omitempty"`
		Namespaces []string      `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
		Requests   []requestView `json:"requests,omitempty" yaml:"requests,omitempty"`
	}

	requestView struct {
		Name   string `json:"name" yaml:"name"`
		Method string `json:"method" yaml:"method"`
		Path   string `json:"path" yaml:"path"`
		Input  string `json:"input" yaml:"input"`
		Output string `json:"output" yaml:"output"`
	}
)

func newOutlineView(o *gen.Outline) outlineView {
	v := outlineView{
		Name: o.Name,
		Path: strings.Join(o.Path, "."),
	}
	for _, i := range o.Interfaces {
		iv := interfaceView{
			Name:     i.Name,
			Generics: i.Generics,
			Model:    strings.Join(i.Model, "."),
			Shape:    i.Shape,
		}
		for _, e := range i.Extends {
			iv.Extends = append(iv.Extends, e.String())
		}
		if len(i.Fields) > 0 {
			iv.Fields = make(map[string]string, len(i.Fields))
			for _, f := range i.Fields {
				iv.Fields[f.Name] = f.Type.String()
			}
		}
		v.Interfaces = append(v.Interfaces, iv)
	}
	for _, e := range o.Enums {
		ev := enumView{Name: e.Name, Synthesized: e.Synthesized}
		for _, m := range e.Members {
			ev.Members = append(ev.Members, m.Name)
		}
		v.Enums = append(v.Enums, ev)
	}
	for _, d := range o.Delegates {
		dv := delegateView{Name: d.Name}
		for _, g := range d.GroupItems {
			dv.Groups = append(dv.Groups, g.PropertyName)
		}
		for _, n := range d.NamespaceItems {
			dv.Namespaces = append(dv.Namespaces, n.PropertyName)
		}
		for _, r := range d.RequestItems {
			dv.Requests = append(dv.Requests, requestView{
				Name:   r.Name,
				Method: r.Method,
				Path:   r.Path,
				Input:  typeString(r.Input),
				Output: typeString(r.Output),
			})
		}
		v.Delegates = append(v.Delegates, dv)
	}
	if len(o.PathArguments) > 0 {
		v.PathArguments = make(map[string][]string, len(o.PathArguments))
		for _, p := range o.PathArguments {
			v.PathArguments[p.Name] = p.Items
		}
	}
	for _, c := range o.Children {
		v.Children = append(v.Children, newOutlineView(c))
	}
	return v
}

func typeString(t *schema.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func writeOutline(w io.Writer, v outlineView, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}
