package pipeline

import (
	"errors"
	"fmt"

	"github.com/nao1215/mepower/internal/model"
)

var (
	// ErrNoOutageData is returned by Walk when the top-level table has no rows.
	ErrNoOutageData = errors.New("no outage data found")

	// ErrInvalidBranchPolicy is returned by ParseBranchPolicy for an unknown name.
	ErrInvalidBranchPolicy = errors.New("invalid branch policy: must be skip, report or abort")
)

// BranchError records a county or municipality page that could not be
// fetched or parsed.
type BranchError struct {
	// Region is the county the failure belongs to.
	Region model.RegionRow

	// SubRegion is the municipality, or nil when the county page itself failed.
	SubRegion *model.RegionRow

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *BranchError) Error() string {
	if e.SubRegion != nil {
		return fmt.Sprintf("county %q, muni %q: %v", e.Region.Name, e.SubRegion.Name, e.Err)
	}
	return fmt.Sprintf("county %q: %v", e.Region.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *BranchError) Unwrap() error {
	return e.Err
}
