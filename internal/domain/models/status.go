package models

// Stage identifies how far a source adapter got before finishing or failing.
type Stage string

const (
	StageFetching  Stage = "fetching"
	StageResolving Stage = "resolving"
	StageComputing Stage = "computing"
	StageDone      Stage = "done"
)

// SourceStatus is the single output of one adapter invocation: either a
// populated digest section or a failure description naming the source and the
// proximate cause. It is folded into the digest and discarded; nothing is
// kept across runs.
type SourceStatus struct {
	Source string // config key, e.g. "reserves"
	Text   string // rendered digest section, populated on success and failure
	Stage  Stage  // stage reached; StageDone on success
	Err    error  // the reduced fault when the adapter failed
}

// Failed reports whether the adapter ended in the Failed state.
func (s SourceStatus) Failed() bool { return s.Err != nil }
