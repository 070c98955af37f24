package catalog

// Catalog is the ordered, read-only set of fabrics for one session.
// A nil *Catalog behaves like an empty one.
type Catalog struct {
	fabrics []Fabric
}

// New builds a catalog from a copy of fabrics.
func New(fabrics []Fabric) *Catalog {
	out := make([]Fabric, len(fabrics))
	copy(out, fabrics)
	return &Catalog{fabrics: out}
}

// Len returns the number of fabrics.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.fabrics)
}

// At returns the fabric at index i. It panics when i is out of range, which
// for a nil or empty catalog is every i; check Len first.
func (c *Catalog) At(i int) Fabric {
	return c.fabrics[i]
}

// All returns a copy of the fabrics in catalog order.
func (c *Catalog) All() []Fabric {
	if c == nil {
		return nil
	}
	out := make([]Fabric, len(c.fabrics))
	copy(out, c.fabrics)
	return out
}
