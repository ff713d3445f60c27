package generation

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		topic    string
		keywords []string
		want     Category
	}{
		{"electric vehicles", nil, CategoryCars},
		{"Electric Vehicles", []string{"battery"}, CategoryCars},
		{"quarterly stock market review", nil, CategoryBusiness},
		{"photosynthesis", []string{"plants"}, CategoryNature},
		{"machine learning with AI", nil, CategoryTechnology},
		{"carpet weaving", nil, CategoryDefault},
		{"xyzzy", []string{"plugh"}, CategoryDefault},
		{"", nil, CategoryDefault},
	}
	for _, tt := range tests {
		if got := Classify(tt.topic, tt.keywords); got != tt.want {
			t.Errorf("Classify(%q, %v) = %s, want %s", tt.topic, tt.keywords, got, tt.want)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := Classify("the future of space travel and galaxy exploration", []string{"rocket", "astronaut"})
	for i := 0; i < 50; i++ {
		if got := Classify("the future of space travel and galaxy exploration", []string{"rocket", "astronaut"}); got != first {
			t.Fatalf("run %d: got %s, first run gave %s", i, got, first)
		}
	}
}

func TestEveryCategoryHasDistinctFallbackPool(t *testing.T) {
	cats := Categories()
	if cats[len(cats)-1] != CategoryDefault {
		t.Fatalf("expected default category last, got %s", cats[len(cats)-1])
	}
	for _, c := range cats {
		pool := FallbackPool(c)
		if len(pool) != 5 {
			t.Errorf("%s: expected 5 pool entries, got %d", c, len(pool))
		}
		seen := map[string]bool{}
		for _, u := range pool {
			if seen[u] {
				t.Errorf("%s: duplicate pool entry %s", c, u)
			}
			seen[u] = true
		}
		if fallbackFor(c).canonical == "" {
			t.Errorf("%s: missing canonical image", c)
		}
	}
}
