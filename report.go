package filterdesign

import (
	"io"
	"strconv"
	"strings"
)

// Table is a coefficient list rendered as fixed-precision decimal literals,
// ready to be pasted into a C array initializer.
type Table struct {
	// Title is written as a line comment above the values. Empty omits it.
	Title string

	// Values are the coefficients or fitted parameters.
	Values []float64

	// Precision is the number of decimal places.
	Precision int

	// Indent prefixes the value line.
	Indent string

	// TrailingComma appends a comma after the last value so consecutive
	// tables concatenate into one initializer.
	TrailingComma bool
}

// FormatValues renders values with the given number of decimals, separated
// by ", ".
func FormatValues(values []float64, precision int) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'f', precision, 64))
	}
	return b.String()
}

// String renders the table, ending with a newline.
func (t *Table) String() string {
	var b strings.Builder
	if t.Title != "" {
		b.WriteString("// ")
		b.WriteString(t.Title)
		b.WriteByte('\n')
	}
	b.WriteString(t.Indent)
	b.WriteString(FormatValues(t.Values, t.Precision))
	if t.TrailingComma && len(t.Values) > 0 {
		b.WriteByte(',')
	}
	b.WriteByte('\n')
	return b.String()
}

// WriteTo implements io.WriterTo.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}
