package config

import (
	"testing"
	"time"

	"lineload/internal/platform/testkit"
)

func TestMayAccessors(t *testing.T) {
	t.Setenv("CFGTEST_PORT", "9090")
	t.Setenv("CFGTEST_SCALE", "0.8")
	t.Setenv("CFGTEST_TIMEOUT", "45s")

	c := New().Prefix("CFGTEST_")
	if got := c.MayString("PORT", ""); got != "9090" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayFloat("SCALE", 1.0); got != 0.8 {
		t.Fatalf("MayFloat = %v", got)
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 45*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayInt("ABSENT", 60); got != 60 {
		t.Fatalf("MayInt default = %d", got)
	}
}

func TestMustStringPanicsOnMissing(t *testing.T) {
	c := New().Prefix("CFGTEST_MISSING_")
	testkit.MustPanic(t, func() { c.MustString("NOPE") })
}

func TestMustPort(t *testing.T) {
	t.Setenv("CFGTEST_GOODPORT", "4000")
	c := New().Prefix("CFGTEST_")
	if got := c.MustPort("GOODPORT"); got != ":4000" {
		t.Fatalf("MustPort = %q", got)
	}

	t.Setenv("CFGTEST_BADPORT", "99999")
	testkit.MustPanic(t, func() { c.MustPort("BADPORT") })
}
