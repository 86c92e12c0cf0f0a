package domain

import "time"

// Action is the terminal decision for one candidate medium.
type Action string

// Actions.
const (
	ActionDelete   Action = "delete"
	ActionReparent Action = "reparent"
	ActionSkip     Action = "skip"
)

// SkipReason explains why a medium was left untouched.
type SkipReason string

// Skip reasons.
const (
	SkipNone         SkipReason = ""
	SkipStillInUse   SkipReason = "still-in-use"
	SkipNotFound     SkipReason = "not-found"
	SkipWrongType    SkipReason = "wrong-type"
	SkipStoreFailure SkipReason = "store-query-failure"
	SkipApplyFailure SkipReason = "apply-failure"
)

// Outcome is the decision reached for one medium during a deletion event.
type Outcome struct {
	// MediaID is the medium the decision applies to.
	MediaID int64

	// Encodings lists the encodings whose extractors found the medium.
	Encodings []Encoding

	// Action is the decision.
	Action Action

	// NewParentID is the new owner when Action is reparent.
	NewParentID int64

	// Reason is set when Action is skip.
	Reason SkipReason

	// Blockers lists other records still referencing the medium.
	Blockers []int64

	// Applied is true once the action was carried out against the store.
	Applied bool

	// Err holds the underlying error for failure skips.
	Err error
}

// EncodingFailure records an encoding whose extraction failed.
type EncodingFailure struct {
	Encoding Encoding
	Err      error
}

// Report summarises one deletion event.
type Report struct {
	// EventID uniquely identifies the deletion event.
	EventID string

	// RecordID is the record whose deletion triggered the event.
	RecordID int64

	// DryRun is true when decisions were computed but not applied.
	DryRun bool

	// Encodings lists the encodings that ran.
	Encodings []Encoding

	// Outcomes holds one decision per distinct medium.
	Outcomes []Outcome

	// Failures lists encodings whose extraction failed.
	Failures []EncodingFailure

	StartedAt  time.Time
	FinishedAt time.Time
}

// Count returns the number of outcomes with the given action.
func (r *Report) Count(action Action) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}

// Outcome returns the outcome for mediaID, if any.
func (r *Report) Outcome(mediaID int64) (Outcome, bool) {
	if r == nil {
		return Outcome{}, false
	}
	for _, o := range r.Outcomes {
		if o.MediaID == mediaID {
			return o, true
		}
	}
	return Outcome{}, false
}
