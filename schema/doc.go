// Package schema defines the compiled, read-only schema tree consumed by the
// teogen generators and the abstract Type expression attached to its fields.
//
// A schema is a tree of namespaces. Each namespace declares models, enums,
// interfaces and request handlers, and every declaration carries its absolute
// path from the root:
//
//	main
//	├── User            ["User"]
//	└── shop
//	    ├── Order       ["shop", "Order"]
//	    └── Status      ["shop", "Status"]
//
// # Types
//
// Type is a closed sum type identified by its Kind:
//
//	schema.Int()                                  // scalar
//	schema.Array(schema.Optional(schema.String()))  // composite
//	schema.ModelObject("shop", "Order")           // reference by absolute path
//	schema.ShapeRef(schema.ShapeCreateInputWithout,
//	    schema.ModelObject("User"), "posts")      // synthesized shape reference
//
// Synthesized references do not name a declaration directly. They are
// resolved to concrete names by the generator (see compiler/gen), which
// keeps naming rules in a single table shared by every output language.
//
// # Shape caches
//
// Models carry the shapes the compiler derived from them (create inputs,
// filters, results) as an ordered list of ShapeEntry values. An entry holds
// a plain shape, a union of shapes, or a synthesized enum.
package schema
