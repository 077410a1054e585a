package gen

import "github.com/syssam/teogen/schema"

// Capabilities is the set of scalar families an outline tree uses. Targets
// consult it to decide which runtime imports and package dependencies the
// generated code needs.
type Capabilities uint16

// Capability bits.
const (
	CapDate Capabilities = 1 << iota
	CapDateTime
	CapDecimal
	CapObjectID
	CapFile
	CapRegex
	CapAny
)

var capabilityNames = []struct {
	c    Capabilities
	name string
}{
	{CapDate, "date"},
	{CapDateTime, "datetime"},
	{CapDecimal, "decimal"},
	{CapObjectID, "objectid"},
	{CapFile, "file"},
	{CapRegex, "regex"},
	{CapAny, "any"},
}

// Has reports if every capability of c2 is in c.
func (c Capabilities) Has(c2 Capabilities) bool { return c&c2 == c2 }

// Names returns the names of the capabilities in c, in bit order.
func (c Capabilities) Names() []string {
	var names []string
	for _, n := range capabilityNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	return names
}

// CapabilitiesOf folds every type used by o and its descendants into a
// capability set.
func CapabilitiesOf(o *Outline) Capabilities {
	var c Capabilities
	o.Walk(func(n *Outline) {
		for _, t := range n.Types() {
			c |= TypeCapabilities(t)
		}
	})
	return c
}

// TypeCapabilities returns the capabilities a single type expression uses.
func TypeCapabilities(t *schema.Type) Capabilities {
	var c Capabilities
	t.Walk(func(n *schema.Type) bool {
		switch n.Kind {
		case schema.KindDate:
			c |= CapDate
		case schema.KindDateTime:
			c |= CapDateTime
		case schema.KindDecimal:
			c |= CapDecimal
		case schema.KindObjectID:
			c |= CapObjectID
		case schema.KindFile:
			c |= CapFile
		case schema.KindRegex:
			c |= CapRegex
		case schema.KindAny:
			c |= CapAny
		case schema.KindShapeReference, schema.KindEnumReference, schema.KindDeclaredShape:
			// Owners are not rendered.
			return false
		}
		return true
	})
	return c
}
