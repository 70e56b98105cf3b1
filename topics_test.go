package trends

import (
	"errors"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

type fakeFitter struct {
	theta *mat.Dense
	phi   *mat.Dense
	err   error
}

func (f fakeFitter) Fit(counts *mat.Dense, k int) (*mat.Dense, *mat.Dense, error) {
	return f.theta, f.phi, f.err
}

func topicCorpus() []HashtagRecord {
	return []HashtagRecord{
		{Hashtag: "#dance_moves", Rank: 1},
		{Hashtag: "#dance_floor", Rank: 2},
		{Hashtag: "#dance_battle", Rank: 3},
		{Hashtag: "#cooking_recipe", Rank: 4},
		{Hashtag: "#cooking_tips", Rank: 5},
		{Hashtag: "#cooking_hacks", Rank: 6},
	}
}

func TestIdentifyTopicsSmallCorpus(t *testing.T) {
	t.Parallel()

	m := NewTopicModeler()
	for _, hashtags := range [][]HashtagRecord{
		nil,
		{{Hashtag: "#solo", Rank: 1}},
		topicCorpus()[:4],
	} {
		topics := m.IdentifyTopics(hashtags)
		if len(topics) != 3 {
			t.Fatalf("got %d topics, want 3 defaults", len(topics))
		}
		if topics[0].Name != "Entertainment Content" || topics[0].Strength != 0.85 {
			t.Errorf("first default = %q/%v", topics[0].Name, topics[0].Strength)
		}
		if topics[1].Strength != 0.75 || topics[2].Strength != 0.70 {
			t.Errorf("default strengths = %v, %v", topics[1].Strength, topics[2].Strength)
		}
		if topics[2].Name != "Food Content" {
			t.Errorf("third default = %q", topics[2].Name)
		}
		for _, topic := range topics {
			if topic.Hashtags == nil || len(topic.Hashtags) != 0 {
				t.Errorf("default topic %s members = %v, want empty", topic.ID, topic.Hashtags)
			}
		}
	}
}

func TestIdentifyTopicsFitterFailure(t *testing.T) {
	t.Parallel()

	m := NewTopicModeler().WithFitter(fakeFitter{err: errors.New("diverged")})
	topics := m.IdentifyTopics(topicCorpus())
	if len(topics) != 3 || topics[0].Name != "Entertainment Content" {
		t.Errorf("got %d topics (%q), want defaults", len(topics), topics[0].Name)
	}
}

func TestIdentifyTopicsFromFit(t *testing.T) {
	t.Parallel()

	// Vocabulary over topicCorpus in alphabetical order:
	// battle, cooking, dance, floor, hacks, moves, recipe, tips
	theta := mat.NewDense(6, 2, []float64{
		0.9, 0.1,
		0.9, 0.1,
		0.9, 0.1,
		0.05, 0.95,
		0.05, 0.95,
		0.05, 0.95,
	})
	phi := mat.NewDense(2, 8, []float64{
		0.05, 0.00, 0.50, 0.15, 0.00, 0.15, 0.00, 0.00,
		0.00, 0.50, 0.00, 0.00, 0.15, 0.00, 0.20, 0.15,
	})

	m := NewTopicModeler().WithTopicCount(2).WithFitter(fakeFitter{theta: theta, phi: phi})
	topics := m.IdentifyTopics(topicCorpus())
	if len(topics) != 2 {
		t.Fatalf("got %d topics, want 2", len(topics))
	}

	// Sorted by strength: the cooking topic (0.95) first.
	food := topics[0]
	if food.ID != "topic_2" {
		t.Errorf("id = %q, want topic_2", food.ID)
	}
	if food.Name != "Food Content" {
		t.Errorf("name = %q, want Food Content", food.Name)
	}
	if food.Strength != 0.95 {
		t.Errorf("strength = %v, want 0.95", food.Strength)
	}
	wantMembers := []string{"#cooking_recipe", "#cooking_tips", "#cooking_hacks"}
	var gotMembers []string
	for _, mem := range food.Hashtags {
		gotMembers = append(gotMembers, mem.Hashtag)
	}
	if !reflect.DeepEqual(gotMembers, wantMembers) {
		t.Errorf("members = %v, want %v", gotMembers, wantMembers)
	}

	dance := topics[1]
	if dance.Name != "Dance Content" {
		t.Errorf("name = %q, want Dance Content", dance.Name)
	}
	if dance.ID != "topic_1" {
		t.Errorf("id = %q, want topic_1", dance.ID)
	}
	if len(dance.Keywords) == 0 || dance.Keywords[0] != "dance" {
		t.Errorf("keywords = %v, want dance first", dance.Keywords)
	}
	for _, mem := range dance.Hashtags {
		if mem.Score <= memberThreshold {
			t.Errorf("member %s kept with weight %v", mem.Hashtag, mem.Score)
		}
	}
}

func TestIdentifyTopicsEndToEnd(t *testing.T) {
	t.Parallel()

	topics := NewTopicModeler().WithTopicCount(2).IdentifyTopics(topicCorpus())
	if len(topics) == 0 {
		t.Fatal("got no topics")
	}
	for _, topic := range topics {
		if topic.Name == "" || topic.ID == "" {
			t.Errorf("topic missing name or id: %+v", topic)
		}
		if topic.Strength <= 0 || topic.Strength > 1 {
			t.Errorf("topic %s strength = %v", topic.ID, topic.Strength)
		}
	}
	for i := 1; i < len(topics); i++ {
		if topics[i].Strength > topics[i-1].Strength {
			t.Error("topics not sorted by strength descending")
		}
	}
}

func TestTopicName(t *testing.T) {
	t.Parallel()

	m := NewTopicModeler()
	tests := []struct {
		words []string
		want  string
	}{
		{[]string{"dance", "floor", "moves"}, "Dance Content"},
		{[]string{"cooking", "tips", "hacks"}, "Food Content"},
		{[]string{"zzqxv", "qwerty"}, "Zzqxv-Based Content"},
		{nil, "Misc Content"},
	}
	for _, tt := range tests {
		if got := m.topicName(tt.words); got != tt.want {
			t.Errorf("topicName(%v) = %q, want %q", tt.words, got, tt.want)
		}
	}
}
