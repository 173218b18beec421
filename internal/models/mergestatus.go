package models

// MergeStatusKind classifies the outcome of a merge preview.
type MergeStatusKind int

const (
	// MergeStatusLoading means a preview is in flight for the selection.
	MergeStatusLoading MergeStatusKind = iota

	// MergeStatusClean means the merge would apply without conflicts.
	MergeStatusClean

	// MergeStatusConflicted means the merge would leave conflicted files.
	MergeStatusConflicted

	// MergeStatusInvalid means the branches share no history and cannot
	// be merged.
	MergeStatusInvalid
)

func (k MergeStatusKind) String() string {
	switch k {
	case MergeStatusLoading:
		return "loading"
	case MergeStatusClean:
		return "clean"
	case MergeStatusConflicted:
		return "conflicted"
	case MergeStatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// MergeStatus is the result of previewing a merge between two branches.
// ConflictedFiles is meaningful only when Kind is MergeStatusConflicted.
type MergeStatus struct {
	Kind            MergeStatusKind
	ConflictedFiles int
}

// AheadBehind holds the commit counts on either side of a symmetric
// difference between two revisions.
type AheadBehind struct {
	Ahead  int
	Behind int
}
