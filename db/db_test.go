package db

import "testing"

func TestExtractDBName(t *testing.T) {
	tests := map[string]string{
		"mongodb://localhost:27017/decks":                "decks",
		"mongodb://localhost:27017/":                     "slidecraft",
		"mongodb://localhost:27017":                      "slidecraft",
		"mongodb+srv://u:p@cluster.example.net/prod?w=1": "prod",
		"::not a uri":                                    "slidecraft",
	}
	for uri, want := range tests {
		if got := extractDBName(uri); got != want {
			t.Errorf("extractDBName(%q) = %q, want %q", uri, got, want)
		}
	}
}
