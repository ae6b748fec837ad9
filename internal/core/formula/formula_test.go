package formula

import (
	"testing"

	perr "lineload/internal/platform/errors"
)

func TestEvalTwoShiftPattern(t *testing.T) {
	got, err := Eval("{days} * 7.5 * 2 - {excl}", Inputs{Days: 20, ExclusionHours: 5})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != 295 {
		t.Fatalf("got %v, want 295", got)
	}
}

func TestEvalJapaneseAliases(t *testing.T) {
	got, err := Eval("{月間稼働日数} * 7.5 * 3 - {月除外時間}", Inputs{Days: 21, ExclusionHours: 8})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	want := 21*7.5*3 - 8
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCompileOnceEvalMany(t *testing.T) {
	ex, err := Compile("({days} - 1) * 8")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for days, want := range map[float64]float64{20: 152, 21: 160, 18: 136} {
		got, err := ex.Eval(Inputs{Days: days})
		if err != nil {
			t.Fatalf("eval days=%v: %v", days, err)
		}
		if got != want {
			t.Fatalf("days=%v: got %v, want %v", days, got, want)
		}
	}
}

func TestPrecedenceAndUnaryMinus(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"-{days} + 25", 5},
		{"10 / 4", 2.5},
	}
	for _, c := range cases {
		got, err := Eval(c.src, Inputs{Days: 20})
		if err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %v, want %v", c.src, got, c.want)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	bad := []string{
		"",
		"{shift_count} * 8",
		"{days * 8",
		"1 + ",
		"(1 + 2",
		"2 ** 3 4",
		"days * 8",
	}
	for _, src := range bad {
		if _, err := Compile(src); err == nil {
			t.Fatalf("%q: expected compile error", src)
		} else if !perr.IsCode(err, perr.ErrorCodeFormula) {
			t.Fatalf("%q: code = %v, want formula", src, perr.CodeOf(err))
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := Eval("{days} / {excl}", Inputs{Days: 20, ExclusionHours: 0})
	if err == nil {
		t.Fatal("expected division-by-zero error")
	}
	if !perr.IsCode(err, perr.ErrorCodeFormula) {
		t.Fatalf("code = %v, want formula", perr.CodeOf(err))
	}
}
