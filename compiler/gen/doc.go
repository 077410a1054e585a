// Package gen provides the language-independent core of the teogen code
// generator.
//
// A loaded schema tree is turned into one Outline per namespace, and each
// target renders its files from the outline tree through its own type
// Lookup table.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	schema.Namespace (loaded by compiler/load)
//	        ↓
//	   Outline tree (per Mode: client or entity)
//	        ↓
//	   Target.Render (per language, with a Syntax driven Lookup)
//	        ↓
//	   Writer (formatting, ledger, patches)
//
// # Key Types
//
//   - Outline: Interfaces, enums, delegates and path arguments of a namespace
//   - Syntax: Per-target token table driving Lookup
//   - Lookup: Renders schema types as seen from one namespace
//   - Target: A language backend, registered in compiler/gen/target
//   - Generator: Runs every configured target in parallel
//   - Writer: Writes files, consulting the generation Ledger
//
// # Synthesized References
//
// Model shapes and enums are referenced by kind and owner rather than by
// name. ResolveShapeName, ResolveEnumName and ReferencePath turn them into
// declaration names and absolute paths. The Result shape is named after
// the model itself in client mode.
//
// # Paths
//
// Relativize expresses one namespace path as seen from another in one of
// three styles: qualified (nested declarations in one file), ancestor
// ("super::" walks) and directory (relative imports of per-namespace files).
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: Malformed schema input
//   - ConfigError: Invalid options
//   - UnresolvableTypeError: A type a target cannot express
//   - MalformedReferenceError: A synthesized reference that cannot resolve
//   - AmbiguousPathError: A path with no rendering in the target
//   - GenerationError: A failure of one target, wrapping the cause
//
// Example error handling:
//
//	report, err := g.Generate(ctx)
//	if err != nil {
//	    if gen.IsUnresolvableTypeError(err) {
//	        // The schema uses a type the target cannot express.
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget(target.MustNew("ts"), "./client/ts"),
//	    gen.WithHeader("// Code generated by teogen. DO NOT EDIT."),
//	    gen.WithWorkers(4),
//	)
package gen
