package pairpot

// ScalingCursor walks one center particle's exclusion table. The table must
// be sorted by Other, and successive Lookup calls must ask for
// non-decreasing indices: the cursor never moves backwards, so an earlier
// index asked for late silently gets 1.0.
type ScalingCursor struct {
	table []Scaling
	pos   int
}

func NewScalingCursor(table []Scaling) ScalingCursor {
	return ScalingCursor{table: table}
}

// Lookup returns the scale for other, or 1.0 when the table has no entry.
func (c *ScalingCursor) Lookup(other int) float64 {
	for c.pos < len(c.table) && c.table[c.pos].Other < other {
		c.pos++
	}
	if c.pos < len(c.table) && c.table[c.pos].Other == other {
		return c.table[c.pos].Scale
	}
	return 1.0
}

func (c *ScalingCursor) Pos() int { return c.pos }

func (c *ScalingCursor) Reset() { c.pos = 0 }
