package generation

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	body := `<div class="x"><h2>Charging</h2><p>Charging infrastructure keeps expanding across highways.</p></div>`
	got := ExtractKeywords(body, "The Battery Revolution", "electric vehicles")

	want := []string{"electric vehicles", "battery", "revolution", "infrastructure", "expanding"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsIgnoresMarkup(t *testing.T) {
	got := ExtractKeywords(`<div style="background-color: #ffffff"><span>Ocean</span></div>`, "", "")
	for _, k := range got {
		if k == "background" || k == "backgroundcolor" || k == "ffffff" {
			t.Fatalf("markup leaked into keywords: %v", got)
		}
	}
}

func TestExtractKeywordsBounds(t *testing.T) {
	inputs := []struct{ body, title, topic string }{
		{"", "", ""},
		{"<p>a an the</p>", "is it", ""},
		{"<p>extraordinary comprehensive understanding institutional infrastructure</p>",
			"Sustainable Renewable Energy Transition Strategies", "clean energy"},
	}
	for _, in := range inputs {
		got := ExtractKeywords(in.body, in.title, in.topic)
		if len(got) == 0 || len(got) > 5 {
			t.Errorf("ExtractKeywords(%q, %q, %q) returned %d terms: %v", in.body, in.title, in.topic, len(got), got)
		}
	}
	if got := ExtractKeywords("", "", ""); got[0] != "presentation" {
		t.Errorf("expected presentation fallback, got %v", got)
	}
}

func TestExtractKeywordsDropsStopWords(t *testing.T) {
	got := ExtractKeywords("", "What Would Happen", "")
	want := []string{"happen"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractKeywords = %v, want %v", got, want)
	}
}
