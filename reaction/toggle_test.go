package reaction

import (
	"testing"

	"github.com/neighbus/neighbus/models"
)

func TestApplyToggleCases(t *testing.T) {
	cases := []struct {
		name  string
		state models.ReactionState
		kind  models.ReactionKind
		want  models.ReactionState
	}{
		{
			name:  "first like",
			state: models.ReactionState{LikeCount: 0, DislikeCount: 0, UserReaction: models.ReactionNone},
			kind:  models.ReactionLike,
			want:  models.ReactionState{LikeCount: 1, DislikeCount: 0, UserReaction: models.ReactionLike},
		},
		{
			name:  "retract like",
			state: models.ReactionState{LikeCount: 3, DislikeCount: 1, UserReaction: models.ReactionLike},
			kind:  models.ReactionLike,
			want:  models.ReactionState{LikeCount: 2, DislikeCount: 1, UserReaction: models.ReactionNone},
		},
		{
			name:  "switch like to dislike",
			state: models.ReactionState{LikeCount: 5, DislikeCount: 2, UserReaction: models.ReactionLike},
			kind:  models.ReactionDislike,
			want:  models.ReactionState{LikeCount: 4, DislikeCount: 3, UserReaction: models.ReactionDislike},
		},
		{
			name:  "switch dislike to like",
			state: models.ReactionState{LikeCount: 5, DislikeCount: 2, UserReaction: models.ReactionDislike},
			kind:  models.ReactionLike,
			want:  models.ReactionState{LikeCount: 6, DislikeCount: 1, UserReaction: models.ReactionLike},
		},
		{
			name:  "first dislike",
			state: models.ReactionState{LikeCount: 9, DislikeCount: 0, UserReaction: models.ReactionNone},
			kind:  models.ReactionDislike,
			want:  models.ReactionState{LikeCount: 9, DislikeCount: 1, UserReaction: models.ReactionDislike},
		},
	}
	for _, c := range cases {
		got := ApplyToggle(c.state, c.kind)
		if got != c.want {
			t.Fatalf("%s: got %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestApplyToggleDoesNotMutateInput(t *testing.T) {
	state := models.ReactionState{LikeCount: 2, DislikeCount: 2, UserReaction: models.ReactionLike}
	before := state
	ApplyToggle(state, models.ReactionDislike)
	if state != before {
		t.Fatalf("input mutated: %+v", state)
	}
}

// Aynı tuşa iki kez basmak başlangıç sayaçlarına geri döndürmeli.
func TestApplyToggleDoubleTapRestoresCounts(t *testing.T) {
	start := models.ReactionState{LikeCount: 7, DislikeCount: 4, UserReaction: models.ReactionNone}
	once := ApplyToggle(start, models.ReactionLike)
	twice := ApplyToggle(once, models.ReactionLike)
	if twice != start {
		t.Fatalf("double tap drifted: got %+v, want %+v", twice, start)
	}
}

func TestSelectVerb(t *testing.T) {
	cases := []struct {
		previous  models.ReactionKind
		requested models.ReactionKind
		want      Verb
	}{
		{models.ReactionNone, models.ReactionLike, VerbInsert},
		{models.ReactionNone, models.ReactionDislike, VerbInsert},
		{models.ReactionLike, models.ReactionLike, VerbDelete},
		{models.ReactionDislike, models.ReactionDislike, VerbDelete},
		{models.ReactionLike, models.ReactionDislike, VerbUpdate},
		{models.ReactionDislike, models.ReactionLike, VerbUpdate},
	}
	for i, c := range cases {
		if got := SelectVerb(c.previous, c.requested); got != c.want {
			t.Fatalf("case %d (%s→%s): got %s, want %s", i, c.previous, c.requested, got, c.want)
		}
	}
}
