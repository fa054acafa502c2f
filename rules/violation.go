// Package rules implements the hard/soft constraint discipline for
// four-part voice leading: stateless evaluators for range, ordering,
// spacing, parallels, hidden perfects and resolutions (hard), and scorers
// for motion, contrary motion, doubling and spacing (soft). Evaluators are
// pure and commutative in pair iteration; they can be computed in any order
// and combined by list append.
package rules

// Severity distinguishes disqualifying violations from scored ones.
type Severity string

const (
	Hard Severity = "hard"
	Soft Severity = "soft"
)

// Violation is a single constraint failure, uniform in contract across rule
// kinds even though the detail behind each is heterogeneous.
type Violation struct {
	Rule        string
	Description string
	Severity    Severity
}
