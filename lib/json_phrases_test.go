package lib

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/deadloct/bitheroes-hg-rounds/data"
)

func TestJSONPhrases_AllCompileAndExec(t *testing.T) {
	jp, err := NewJSONPhrases(data.PhrasesJSON)
	if err != nil {
		t.Fatal(err)
	}

	for i, phrase := range jp.templates {
		p := phrase
		t.Run(fmt.Sprintf("Template %v", i), func(t *testing.T) {
			t.Parallel()
			var result bytes.Buffer
			err := p.Execute(&result, PhraseValues{
				Host:  "host",
				Round: "round",
			})
			if err != nil {
				t.Error(err)
			}
		})
	}
}

func TestJSONPhrases_GetRandomPhrase_AllThenReset(t *testing.T) {
	jp, err := NewJSONPhrases(data.PhrasesJSON)
	if err != nil {
		t.Fatal(err)
	}

	phraseCount := jp.PhraseCount()
	seen := make(map[string]int, phraseCount)

	if phraseCount == 0 {
		t.Fatal("there should be more than 0 phrases")
	}

	for i := 0; i < phraseCount; i++ {
		str := jp.GetRandomPhrase("host", "round")
		if _, ok := seen[str]; ok {
			t.Fatalf("first pass - dupe phrase before all have been used ('%v')", str)
		}

		seen[str] = 1
	}

	if len(seen) != phraseCount {
		t.Fatalf("should have seen %v phrases instead of %v after first pass", phraseCount, len(seen))
	}

	for i := 0; i < phraseCount; i++ {
		str := jp.GetRandomPhrase("host", "round")
		if seen[str] > 1 {
			t.Fatalf("second pass - phrase used again before all have been used ('%v')", str)
		}

		seen[str]++
	}

	if len(seen) != phraseCount {
		t.Fatalf("should have seen %v phrases instead of %v after second pass", phraseCount, len(seen))
	}
}

func TestJSONPhrases_GetRandomPhrase_Replace(t *testing.T) {
	jp, err := NewJSONPhrases([]byte(`["{{.Host}} closed {{.Round}}, and {{.Host}} bowed"]`))
	if err != nil {
		t.Fatal(err)
	}

	actual := jp.GetRandomPhrase("Caesar", "Round 2")
	expected := "Caesar closed Round 2, and Caesar bowed"
	if actual != expected {
		t.Errorf("expected '%v' to equal '%v'", actual, expected)
	}
}

func TestNewJSONPhrases_Errors(t *testing.T) {
	if _, err := NewJSONPhrases([]byte(`[]`)); !errors.Is(err, ErrNoPhrases) {
		t.Errorf("expected ErrNoPhrases but got %v", err)
	}

	if _, err := NewJSONPhrases([]byte(`not json`)); err == nil {
		t.Error("expected an error for invalid json")
	}

	if _, err := NewJSONPhrases([]byte(`["{{.Host"]`)); err == nil {
		t.Error("expected an error for an invalid template")
	}
}

func TestToDoubleStruck(t *testing.T) {
	tests := map[string]struct {
		Input    string
		Expected string
	}{
		"letters":     {Input: "Round", Expected: "ℝ𝕠𝕦𝕟𝕕"},
		"digits":      {Input: "10", Expected: "𝟙𝟘"},
		"untouched":   {Input: "- !", Expected: "- !"},
		"mixed label": {Input: "Stage 3", Expected: "𝕊𝕥𝕒𝕘𝕖 𝟛"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if actual := ToDoubleStruck(test.Input); actual != test.Expected {
				t.Errorf("expected '%v' but got '%v'", test.Expected, actual)
			}
		})
	}
}
