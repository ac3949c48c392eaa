// Package phases implements the Business Innovation track's phase
// progression rules. Everything here is pure; persistence of an Outcome is
// the store's job, guarded by a compare-and-swap on the validated phase.
package phases

import (
	"errors"
	"strings"
)

type Phase string

const (
	IdeaSelection Phase = "idea_selection"
	Design        Phase = "design"
	Development   Phase = "development"
	Submission    Phase = "submission"
)

// order drives every transition check: a participant may stay put or move to
// any later phase, which is how design can jump straight to submission.
var order = []Phase{IdeaSelection, Design, Development, Submission}

const (
	SubmissionStatusPending   = "pending"
	SubmissionStatusSubmitted = "submitted"
)

var (
	ErrUnknownPhase       = errors.New("unknown phase")
	ErrBackwardTransition = errors.New("cannot move back to an earlier phase")
	ErrMissingRepository  = errors.New("a repository link is required to submit")
)

// Index returns the position of p in the phase ordering, or -1.
func Index(p Phase) int {
	for i, known := range order {
		if known == p {
			return i
		}
	}
	return -1
}

func Valid(p Phase) bool { return Index(p) >= 0 }

// All lists the phases in progression order.
func All() []Phase {
	out := make([]Phase, len(order))
	copy(out, order)
	return out
}

// Context carries what the participant supplied with a transition request,
// plus the business idea currently on record.
type Context struct {
	RepoLink        string
	FinalSubmission map[string]any
	BusinessIdea    map[string]any
}

// Outcome is the write-payload a successful transition produces. Fields left
// zero mean "keep what is stored".
type Outcome struct {
	Phase            Phase
	SubmissionStatus string
	RepoLink         string
	BusinessIdea     map[string]any
}

// Transition validates a requested phase change and computes the resulting
// write-payload. Moves to a strictly earlier phase are rejected; same-phase
// and forward moves are accepted, development may be skipped entirely.
// Entering submission requires a repository link, flips submission_status to
// submitted, and folds any final-submission payload into the business idea.
func Transition(current, requested Phase, ctx Context) (*Outcome, error) {
	ci, ri := Index(current), Index(requested)
	if ci < 0 || ri < 0 {
		return nil, ErrUnknownPhase
	}
	if ri < ci {
		return nil, ErrBackwardTransition
	}

	out := &Outcome{Phase: requested, BusinessIdea: ctx.BusinessIdea}
	if requested != Submission {
		return out, nil
	}

	if strings.TrimSpace(ctx.RepoLink) == "" {
		return nil, ErrMissingRepository
	}

	out.SubmissionStatus = SubmissionStatusSubmitted
	out.RepoLink = strings.TrimSpace(ctx.RepoLink)

	if len(ctx.FinalSubmission) > 0 {
		idea := make(map[string]any, len(ctx.BusinessIdea)+1)
		for k, v := range ctx.BusinessIdea {
			idea[k] = v
		}
		prior, _ := idea["final_submission"].(map[string]any)
		merged := make(map[string]any, len(prior)+len(ctx.FinalSubmission))
		for k, v := range prior {
			merged[k] = v
		}
		for k, v := range ctx.FinalSubmission {
			merged[k] = v
		}
		idea["final_submission"] = merged
		out.BusinessIdea = idea
	}

	return out, nil
}
