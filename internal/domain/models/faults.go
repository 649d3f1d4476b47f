package models

import (
	"errors"
	"fmt"
)

// FaultKind classifies why a source section failed. Every fault is reduced to
// a SourceStatus at the adapter boundary; none of them aborts the run.
type FaultKind string

const (
	FaultTransport    FaultKind = "transport"    // unreachable, non-2xx, timeout
	FaultDrift        FaultKind = "drift"        // expected role not resolvable
	FaultInsufficient FaultKind = "insufficient" // fewer rows than the lookback needs
	FaultNumeric      FaultKind = "numeric"      // value unparseable after normalization
)

// SourceFault carries the kind, the stage that failed, and the proximate
// cause for one source. It satisfies errors.Is/As chains via Unwrap.
type SourceFault struct {
	Kind   FaultKind
	Source string
	Stage  Stage
	Role   string // the semantic role attempted, set for drift faults
	Err    error
}

func (f *SourceFault) Error() string {
	if f.Role != "" {
		return fmt.Sprintf("%s: %s %s (role %q): %v", f.Source, f.Stage, f.Kind, f.Role, f.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", f.Source, f.Stage, f.Kind, f.Err)
}

func (f *SourceFault) Unwrap() error { return f.Err }

// TransportFault wraps a fetch-stage I/O failure, timeouts included.
func TransportFault(source string, err error) *SourceFault {
	return &SourceFault{Kind: FaultTransport, Source: source, Stage: StageFetching, Err: err}
}

// DriftFault reports that a semantic role could not be resolved against the
// payload, or that a resolved column fell below the support threshold.
func DriftFault(source, role string, err error) *SourceFault {
	return &SourceFault{Kind: FaultDrift, Source: source, Stage: StageResolving, Role: role, Err: err}
}

// InsufficientFault reports fewer usable rows than the lookback requires.
func InsufficientFault(source string, err error) *SourceFault {
	return &SourceFault{Kind: FaultInsufficient, Source: source, Stage: StageComputing, Err: err}
}

// NumericEscalation converts a wholesale parse failure of a required role
// into drift: a column with zero usable values is structural, not numeric.
func NumericEscalation(source, role string) *SourceFault {
	return &SourceFault{
		Kind:   FaultDrift,
		Source: source,
		Stage:  StageComputing,
		Role:   role,
		Err:    errors.New("no usable numeric values after normalization"),
	}
}

// FaultKindOf extracts the kind from an adapter error, or "" for plain errors.
func FaultKindOf(err error) FaultKind {
	var sf *SourceFault
	if errors.As(err, &sf) {
		return sf.Kind
	}
	return ""
}
