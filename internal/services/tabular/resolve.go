package tabular

import (
	"errors"
	"fmt"
	"strings"

	"MacroGold/internal/domain/models"
)

// ErrRoleNotFound is the resolver's miss result. Structural drift is an
// expected upstream condition, so callers branch on it rather than abort.
var ErrRoleNotFound = errors.New("no column matches role")

// Heuristic is a named predicate over a column's header name and position.
// The name shows up in logs and statuses so drift decisions stay auditable.
type Heuristic struct {
	Name  string
	Match func(name string, index int) bool
}

// ExactName matches the header verbatim, case-sensitive.
func ExactName(name string) Heuristic {
	return Heuristic{
		Name:  fmt.Sprintf("exact:%s", name),
		Match: func(n string, _ int) bool { return n == name },
	}
}

// NameContains matches a case-insensitive substring of the header.
func NameContains(token string) Heuristic {
	lower := strings.ToLower(token)
	return Heuristic{
		Name:  fmt.Sprintf("contains:%s", token),
		Match: func(n string, _ int) bool { return strings.Contains(strings.ToLower(n), lower) },
	}
}

// NameContainsAll matches headers carrying every token, case-insensitive.
func NameContainsAll(tokens ...string) Heuristic {
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t)
	}
	return Heuristic{
		Name: fmt.Sprintf("contains-all:%s", strings.Join(tokens, "+")),
		Match: func(n string, _ int) bool {
			ln := strings.ToLower(n)
			for _, t := range lowered {
				if !strings.Contains(ln, t) {
					return false
				}
			}
			return true
		},
	}
}

// PositionAt is the positional fallback, e.g. "first column is the entity".
func PositionAt(index int) Heuristic {
	return Heuristic{
		Name:  fmt.Sprintf("position:%d", index),
		Match: func(_ string, i int) bool { return i == index },
	}
}

// ResolvedColumn is a resolver hit: the column, the role it was resolved for,
// and the heuristic that matched.
type ResolvedColumn struct {
	Index int
	Name  string
	Role  string
	Rule  string
}

// Resolve evaluates heuristics strictly in order and returns the first column
// satisfying the first heuristic that matches anything. Deterministic: the
// same payload and heuristic list always resolve to the same column.
func Resolve(t *models.Table, role string, hs []Heuristic) (ResolvedColumn, error) {
	for _, h := range hs {
		for i, c := range t.Columns {
			if h.Match(c.Name, i) {
				return ResolvedColumn{Index: i, Name: c.Name, Role: role, Rule: h.Name}, nil
			}
		}
	}
	return ResolvedColumn{}, fmt.Errorf("%w: %s", ErrRoleNotFound, role)
}

// AdmissibleNumericColumns returns, in payload order, the columns whose
// normalized non-missing count reaches minSupport. The filter keeps a
// mostly-empty notes column from masquerading as a data column. Indices in
// exclude (typically the entity label column) are skipped.
func AdmissibleNumericColumns(t *models.Table, minSupport int, exclude ...int) []int {
	skip := make(map[int]bool, len(exclude))
	for _, i := range exclude {
		skip[i] = true
	}
	var out []int
	for i := range t.Columns {
		if skip[i] {
			continue
		}
		if Support(NormalizeColumn(t, i)) >= minSupport {
			out = append(out, i)
		}
	}
	return out
}
