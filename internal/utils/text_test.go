package utils

import (
	"reflect"
	"testing"
)

func TestFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "strips accents", input: "Sênior", expect: "SENIOR"},
		{name: "collapses whitespace", input: "  ensino   médio\tcompleto ", expect: "ENSINO MEDIO COMPLETO"},
		{name: "keeps punctuation", input: "Pós-graduação", expect: "POS-GRADUACAO"},
		{name: "empty", input: "   ", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Fold(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestCleanList(t *testing.T) {
	t.Parallel()

	got := CleanList([]string{" Go ", "", "   ", "SQL"})
	if !reflect.DeepEqual(got, []string{"Go", "SQL"}) {
		t.Fatalf("unexpected cleaned list: %#v", got)
	}

	empty := CleanList(nil)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}
}
