package pipeline

import "strings"

// BranchPolicy decides what happens when a county or municipality page fails.
type BranchPolicy string

const (
	// BranchSkip drops the failing branch, logs a warning and continues.
	BranchSkip BranchPolicy = "skip"

	// BranchReport drops the failing branch and emits a diagnostic record
	// in its place.
	BranchReport BranchPolicy = "report"

	// BranchAbort ends the walk; the run collapses to one error record.
	BranchAbort BranchPolicy = "abort"
)

// DefaultBranchPolicy is used when no policy is configured.
const DefaultBranchPolicy = BranchSkip

// ParseBranchPolicy parses a policy name, case-insensitively.
// The empty string selects DefaultBranchPolicy.
func ParseBranchPolicy(s string) (BranchPolicy, error) {
	switch p := BranchPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultBranchPolicy, nil
	case BranchSkip, BranchReport, BranchAbort:
		return p, nil
	default:
		return "", ErrInvalidBranchPolicy
	}
}

// String returns the policy name.
func (p BranchPolicy) String() string {
	return string(p)
}
