package data

// Row represents a single observation
// Key = column name, Value = cell value (float64 or string)
// Missing cells are absent from the map
type Row struct {
	Data map[string]interface{}
}

// NewRow creates a new Row with the given data
func NewRow(data map[string]interface{}) Row {
	if data == nil {
		data = make(map[string]interface{})
	}
	return Row{Data: data}
}

// Get retrieves a value by column name
func (r Row) Get(column string) (interface{}, bool) {
	val, exists := r.Data[column]
	return val, exists
}
