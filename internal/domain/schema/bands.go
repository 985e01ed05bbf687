package schema

// BandMapping maps band identifiers to the table of observations taken in
// that band. Iteration follows insertion order. A nil *BandMapping reads as
// an empty mapping.
type BandMapping struct {
	order  []string
	tables map[string]*Table
}

// NewBandMapping creates an empty mapping
func NewBandMapping() *BandMapping {
	return &BandMapping{tables: make(map[string]*Table)}
}

// Set adds or replaces the table for a band
func (m *BandMapping) Set(band string, t *Table) {
	if _, exists := m.tables[band]; !exists {
		m.order = append(m.order, band)
	}
	m.tables[band] = t
}

// Get returns the table for a band
func (m *BandMapping) Get(band string) (*Table, bool) {
	if m == nil {
		return nil, false
	}
	t, ok := m.tables[band]
	return t, ok
}

// Bands returns band identifiers in insertion order
func (m *BandMapping) Bands() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of bands
func (m *BandMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}
