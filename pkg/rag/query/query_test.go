package query

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "drops stopwords and short tokens",
			query:    "What is the size of the kitchen",
			expected: []string{"size", "kitchen"},
		},
		{
			name:     "lowercases tokens",
			query:    "KITCHEN Countertop",
			expected: []string{"kitchen", "countertop"},
		},
		{
			name:     "stopword-only query yields nothing",
			query:    "what about the",
			expected: []string{},
		},
		{
			name:     "empty query",
			query:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.query)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		supplier  bool
		dimension bool
		property  bool
	}{
		{
			name:      "supplier phrase pattern",
			query:     "who supplied the worktops",
			supplier:  true,
			dimension: false,
			property:  false,
		},
		{
			name:      "dimension phrase pattern",
			query:     "how big is the main bedroom",
			supplier:  false,
			dimension: true,
			property:  true,
		},
		{
			name:      "dimension keyword",
			query:     "floor area of the house",
			supplier:  false,
			dimension: true,
			property:  false,
		},
		{
			name:      "property keyword only",
			query:     "tell me about the boiler",
			supplier:  false,
			dimension: false,
			property:  true,
		},
		{
			name:      "no intent",
			query:     "hello there",
			supplier:  false,
			dimension: false,
			property:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectIntent(tt.query)
			if got.IsSupplierQuery != tt.supplier || got.IsDimensionQuery != tt.dimension || got.IsPropertyQuery != tt.property {
				t.Errorf("DetectIntent(%q) = %+v, want supplier=%v dimension=%v property=%v",
					tt.query, got, tt.supplier, tt.dimension, tt.property)
			}
		})
	}
}

func TestKeywordScore(t *testing.T) {
	t.Run("zero without keywords or intent", func(t *testing.T) {
		if got := KeywordScore("some content", nil, Intent{}); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("full match scores 1", func(t *testing.T) {
		got := KeywordScore("the kitchen is lovely", []string{"kitchen"}, Intent{})
		if got != 1 {
			t.Errorf("expected 1, got %v", got)
		}
	})

	t.Run("missing keyword scores 0", func(t *testing.T) {
		got := KeywordScore("the hallway is lovely", []string{"kitchen"}, Intent{})
		if got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("repeat bonus is capped", func(t *testing.T) {
		content := "kitchen kitchen kitchen kitchen kitchen kitchen"
		// score = 1 + 0.2*min(5,3) = 1.6 over maxScore 1, clamped to 1.
		got := KeywordScore(content, []string{"kitchen"}, Intent{})
		if got != 1 {
			t.Errorf("expected clamp to 1, got %v", got)
		}
	})

	t.Run("dimension bonus rewards measurement patterns", func(t *testing.T) {
		intent := Intent{IsDimensionQuery: true}
		withDims := KeywordScore("bedroom measures 4.2m x 3.1m (13.0 sqm)", []string{"bedroom"}, intent)
		withoutDims := KeywordScore("bedroom has fitted wardrobes", []string{"bedroom"}, intent)
		if withDims <= withoutDims {
			t.Errorf("expected dimension content to outscore plain content: %v <= %v", withDims, withoutDims)
		}
	})

	t.Run("supplier bonus only counts present terms", func(t *testing.T) {
		intent := Intent{IsSupplierQuery: true}
		got := KeywordScore("the kitchen was installed by a contractor", []string{"kitchen"}, intent)
		// 1 keyword + 2 supplier terms present: score 2.0 / maxScore 2.0.
		if got != 1 {
			t.Errorf("expected 1, got %v", got)
		}
	})
}
