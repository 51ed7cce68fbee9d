package xtts

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"plain sentences",
			"Hello world. How are you? Great!",
			[]string{"Hello world.", "How are you?", "Great!"},
		},
		{
			"title abbreviation",
			"Dr. Smith went to Washington. He arrived late.",
			[]string{"Dr. Smith went to Washington.", "He arrived late."},
		},
		{
			"latin abbreviation",
			"Fruit, e.g. apples, is healthy.",
			[]string{"Fruit, e.g. apples, is healthy."},
		},
		{
			"initial",
			"J. Smith arrived. We left.",
			[]string{"J. Smith arrived.", "We left."},
		},
		{
			"decimal",
			"Pi is 3.14. Next topic.",
			[]string{"Pi is 3.14.", "Next topic."},
		},
		{
			"ellipsis run",
			"Wait... really?",
			[]string{"Wait...", "really?"},
		},
		{
			"hostname stays intact",
			"Visit example.com now.",
			[]string{"Visit example.com now."},
		},
		{
			"quote after punctuation",
			`He said "Stop!" and left.`,
			[]string{`He said "Stop!" and left.`},
		},
		{
			"fullwidth punctuation",
			"你好。世界。",
			[]string{"你好。", "世界。"},
		},
		{
			"no boundary",
			"no punctuation at all",
			[]string{"no punctuation at all"},
		},
		{
			"empty",
			"",
			[]string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitSentences(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitSentences(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestEndsWithAbbreviation(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"met Dr.", true},
		{"met dr.", true},
		{"for e.g.", true},
		{"by J.", true},
		{"the end.", false},
		{"3.14.", false},
		{".", false},
	}

	for _, tt := range tests {
		if got := endsWithAbbreviation(tt.s); got != tt.want {
			t.Errorf("endsWithAbbreviation(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
