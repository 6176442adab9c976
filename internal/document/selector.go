package document

import (
	"github.com/andybalholm/cascadia"
)

// Selector is a compiled CSS selector together with its source expression.
type Selector struct {
	expr string
	sel  cascadia.Selector
}

// String returns the source expression.
func (s Selector) String() string {
	return s.expr
}

// CompileSelector compiles a CSS selector expression.
func CompileSelector(expr string) (Selector, error) {
	sel, err := cascadia.Compile(expr)
	if err != nil {
		return Selector{}, &SelectorError{Expr: expr, Err: err}
	}
	return Selector{expr: expr, sel: sel}, nil
}

// mustCompile is for the package-level selectors, which are constants.
func mustCompile(expr string) Selector {
	s, err := CompileSelector(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// Positional selectors used on every level of the report.
var (
	// Timestamp addresses the "Update: ..." line above the table.
	Timestamp = mustCompile("body > p[align='right']")

	// FirstColumnLink addresses the descend link in the first column.
	FirstColumnLink = mustCompile("td:nth-child(1) > a")

	// FirstColumn addresses the first cell of a row.
	FirstColumn = mustCompile("td:nth-child(1)")

	// SecondColumn addresses the second cell of a row.
	SecondColumn = mustCompile("td:nth-child(2)")

	// ThirdColumn addresses the third cell of a row.
	ThirdColumn = mustCompile("td:nth-child(3)")

	// FourthColumn addresses the fourth cell of a row.
	FourthColumn = mustCompile("td:nth-child(4)")

	tableRow = mustCompile("tr")
)
