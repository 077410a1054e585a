package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/compiler/gen/target"
)

const defaultHeader = "// Code generated by teogen. DO NOT EDIT."

// targetConfig is one entry of the targets list.
type targetConfig struct {
	Name string `mapstructure:"name"`
	Dest string `mapstructure:"dest"`
	// Package overrides the package name of the go target.
	Package string `mapstructure:"package"`
	// Artifacts is a directory replacing the embedded admin boilerplate.
	Artifacts string `mapstructure:"artifacts"`
}

// ledgerConfig enables the generation ledger when Dialect is set.
type ledgerConfig struct {
	Dialect     string `mapstructure:"dialect"`
	DSN         string `mapstructure:"dsn"`
	TablePrefix string `mapstructure:"table_prefix"`
}

// fileConfig is the content of teogen.yaml.
type fileConfig struct {
	Schema     string         `mapstructure:"schema"`
	Header     string         `mapstructure:"header"`
	ObjectName string         `mapstructure:"object_name"`
	Workers    int            `mapstructure:"workers"`
	Format     string         `mapstructure:"format"`
	DryRun     bool           `mapstructure:"dry_run"`
	Targets    []targetConfig `mapstructure:"targets"`
	Ledger     ledgerConfig   `mapstructure:"ledger"`

	// file is the config file used, empty when defaults only.
	file string
}

// loadConfig reads the config file at path, or teogen.{yaml,toml,json} in
// the working directory when path is empty. Scalar settings can be
// overridden with TEOGEN_ environment variables, for example
// TEOGEN_LEDGER_DSN. Relative paths are resolved against the directory of
// the config file.
func loadConfig(path string) (*fileConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("TEOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("schema", "schema.yaml")
	v.SetDefault("header", defaultHeader)
	v.SetDefault("object_name", gen.DefaultObjectName)
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("format", string(gen.FormatGoimports))
	v.SetDefault("dry_run", false)
	v.SetDefault("ledger.dialect", "")
	v.SetDefault("ledger.dsn", "")
	v.SetDefault("ledger.table_prefix", "teogen")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("teogen")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	c := &fileConfig{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.file = v.ConfigFileUsed()
	c.Schema = c.resolve(c.Schema)
	for i := range c.Targets {
		c.Targets[i].Dest = c.resolve(c.Targets[i].Dest)
		if c.Targets[i].Artifacts != "" {
			c.Targets[i].Artifacts = c.resolve(c.Targets[i].Artifacts)
		}
	}
	return c, nil
}

func (c *fileConfig) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.file == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.file), p)
}

// watched returns the files whose change triggers a regeneration.
func (c *fileConfig) watched() []string {
	files := []string{c.Schema}
	if c.file != "" {
		files = append(files, c.file)
	}
	return files
}

// options translates the config into generator options. When only is not
// empty, the targets not named in it are left out.
func (c *fileConfig) options(only []string) ([]gen.Option, error) {
	opts := []gen.Option{
		gen.WithHeader(c.Header),
		gen.WithObjectName(c.ObjectName),
		gen.WithWorkers(c.Workers),
		gen.WithFormat(c.Format),
		gen.WithDryRun(c.DryRun),
	}
	for _, name := range only {
		if !slices.ContainsFunc(c.Targets, func(t targetConfig) bool { return t.Name == name }) {
			return nil, gen.NewConfigError("only", name, "target is not configured")
		}
	}
	for _, t := range c.Targets {
		if len(only) > 0 && !slices.Contains(only, t.Name) {
			continue
		}
		tgt, err := t.build()
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithTarget(tgt, t.Dest))
	}
	return opts, nil
}

func (t targetConfig) build() (gen.Target, error) {
	switch {
	case t.Name == "go" && t.Package != "":
		return target.NewGo(t.Package), nil
	case t.Name == "admin" && t.Artifacts != "":
		return target.NewAdmin(target.DirProvider(t.Artifacts)), nil
	}
	return target.New(t.Name)
}
