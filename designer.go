package filterdesign

import "fmt"

// Designer is implemented by both design pipelines. Design runs the full
// pipeline and renders its result as a coefficient table.
type Designer interface {
	// Name identifies the design in reports.
	Name() string

	// Design computes the coefficients.
	Design() (*Table, error)
}

var (
	_ Designer = (*CICCompensator)(nil)
	_ Designer = (*FIRDesigner)(nil)
)

// DesignAll runs each designer in order and returns their tables. It stops at
// the first error.
func DesignAll(designers ...Designer) ([]*Table, error) {
	tables := make([]*Table, 0, len(designers))
	for _, d := range designers {
		t, err := d.Design()
		if err != nil {
			return tables, fmt.Errorf("%s: %w", d.Name(), err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}
