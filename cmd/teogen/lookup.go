package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/compiler/gen/target"
	"github.com/syssam/teogen/compiler/load"
	"github.com/syssam/teogen/schema"
)

func lookupCmd() *cobra.Command {
	var (
		schemaPath string
		targetName string
		typ        string
		current    string
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Render a type as a target sees it",
		Example: `  teogen lookup --target ts --type '{"kind": "optional", "inner": {"kind": "string"}}'
  teogen lookup --target rust --current shop --type '{kind: modelObject, path: [User]}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tgt, err := target.New(targetName)
			if err != nil {
				return err
			}
			t, err := parseType(typ)
			if err != nil {
				return err
			}
			var path []string
			if current != "" {
				path = strings.Split(current, ".")
			}
			if schemaPath != "" {
				ns, err := load.Load(schemaPath)
				if err != nil {
					return err
				}
				if ns.Lookup(path) == nil {
					return gen.NewSchemaError(path, "namespace not found", nil)
				}
			}
			out, err := tgt.Lookup(t, path)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file the current namespace must exist in")
	cmd.Flags().StringVarP(&targetName, "target", "t", "", "target name ("+strings.Join(target.Names(), ", ")+")")
	cmd.Flags().StringVar(&typ, "type", "", "type in JSON or YAML notation")
	cmd.Flags().StringVar(&current, "current", "", "dotted path of the namespace the type is seen from")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// parseType decodes a type written in JSON or YAML notation.
func parseType(s string) (*schema.Type, error) {
	t := &schema.Type{}
	if err := yaml.Unmarshal([]byte(s), t); err != nil {
		return nil, fmt.Errorf("parse type: %w", err)
	}
	if err := load.ValidateType(t); err != nil {
		return nil, err
	}
	return t, nil
}
