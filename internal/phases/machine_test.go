package phases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionMatrix(t *testing.T) {
	// Every same-or-forward pair succeeds, every backward pair is rejected.
	// Submission targets carry a repo link to satisfy the precondition.
	for _, current := range All() {
		for _, requested := range All() {
			t.Run(string(current)+"_to_"+string(requested), func(t *testing.T) {
				ctx := Context{}
				if requested == Submission {
					ctx.RepoLink = "https://github.com/team/project"
				}

				out, err := Transition(current, requested, ctx)
				if Index(requested) < Index(current) {
					assert.ErrorIs(t, err, ErrBackwardTransition)
					assert.Nil(t, out)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, requested, out.Phase)
			})
		}
	}
}

func TestTransition(t *testing.T) {
	t.Run("design straight to submission", func(t *testing.T) {
		out, err := Transition(Design, Submission, Context{
			RepoLink: "https://github.com/team/project",
		})
		require.NoError(t, err)
		assert.Equal(t, Submission, out.Phase)
		assert.Equal(t, SubmissionStatusSubmitted, out.SubmissionStatus)
		assert.Equal(t, "https://github.com/team/project", out.RepoLink)
	})

	t.Run("same phase is a no-op, not backward", func(t *testing.T) {
		out, err := Transition(IdeaSelection, IdeaSelection, Context{})
		require.NoError(t, err)
		assert.Equal(t, IdeaSelection, out.Phase)
		assert.Empty(t, out.SubmissionStatus)
	})

	t.Run("development back to idea selection rejected", func(t *testing.T) {
		_, err := Transition(Development, IdeaSelection, Context{})
		assert.ErrorIs(t, err, ErrBackwardTransition)
	})

	t.Run("submission without repo link rejected", func(t *testing.T) {
		_, err := Transition(Design, Submission, Context{})
		assert.ErrorIs(t, err, ErrMissingRepository)
	})

	t.Run("blank repo link rejected", func(t *testing.T) {
		_, err := Transition(Design, Submission, Context{RepoLink: "   "})
		assert.ErrorIs(t, err, ErrMissingRepository)
	})

	t.Run("unknown phase rejected", func(t *testing.T) {
		_, err := Transition(Design, Phase("grand_finale"), Context{})
		assert.ErrorIs(t, err, ErrUnknownPhase)

		_, err = Transition(Phase(""), Design, Context{})
		assert.ErrorIs(t, err, ErrUnknownPhase)
	})
}

func TestTransitionFinalSubmissionMerge(t *testing.T) {
	t.Run("payload lands under final_submission", func(t *testing.T) {
		out, err := Transition(Development, Submission, Context{
			RepoLink: "https://github.com/team/project",
			FinalSubmission: map[string]any{
				"documents_link": "https://drive.example/docs",
				"video_link":     "https://youtu.be/demo",
			},
			BusinessIdea: map[string]any{"title": "AgriSense"},
		})
		require.NoError(t, err)

		assert.Equal(t, "AgriSense", out.BusinessIdea["title"])
		final := out.BusinessIdea["final_submission"].(map[string]any)
		assert.Equal(t, "https://drive.example/docs", final["documents_link"])
		assert.Equal(t, "https://youtu.be/demo", final["video_link"])
	})

	t.Run("shallow merge keeps earlier keys", func(t *testing.T) {
		out, err := Transition(Submission, Submission, Context{
			RepoLink: "https://github.com/team/project",
			FinalSubmission: map[string]any{
				"description": "updated pitch",
			},
			BusinessIdea: map[string]any{
				"title": "AgriSense",
				"final_submission": map[string]any{
					"documents_link": "https://drive.example/docs",
					"description":    "old pitch",
				},
			},
		})
		require.NoError(t, err)

		final := out.BusinessIdea["final_submission"].(map[string]any)
		assert.Equal(t, "updated pitch", final["description"])
		assert.Equal(t, "https://drive.example/docs", final["documents_link"])
		assert.Equal(t, "AgriSense", out.BusinessIdea["title"])
	})

	t.Run("stored idea is not mutated", func(t *testing.T) {
		idea := map[string]any{"title": "AgriSense"}
		_, err := Transition(Design, Submission, Context{
			RepoLink:        "https://github.com/team/project",
			FinalSubmission: map[string]any{"description": "pitch"},
			BusinessIdea:    idea,
		})
		require.NoError(t, err)
		assert.NotContains(t, idea, "final_submission")
	})
}
