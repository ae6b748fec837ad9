package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	def := []string{"a", "b"}
	if got := IfEmpty(nil, def); len(got) != 2 || got[0] != "a" {
		t.Fatalf("nil input: got %v", got)
	}
	in := []string{"x"}
	if got := IfEmpty(in, def); len(got) != 1 || got[0] != "x" {
		t.Fatalf("non-empty input: got %v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"debug":    "/debug",
		"/debug":   "/debug",
		"/debug/":  "/debug",
		" /api/v1": "/api/v1",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMustPrefixPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty prefix")
		}
	}()
	MustPrefix("  / ")
}
