package anpr

import "testing"

func TestResolveFineKnownCategory(t *testing.T) {
	d := DefaultFineRules().Resolve("Signal Jump")
	if !d.IsFined || d.Amount != 1000 {
		t.Fatalf("expected fined 1000 got %+v", d)
	}
}

func TestResolveFineUnknownCategory(t *testing.T) {
	d := DefaultFineRules().Resolve("Not A Real Category")
	if d.IsFined || d.Amount != 0 {
		t.Fatalf("unknown category must resolve to no fine, got %+v", d)
	}
}

func TestResolveFineTotal(t *testing.T) {
	table := DefaultFineRules()
	for _, cat := range []string{"", "No Violation", "Signal Jump", "\x00weird", "overspeeding"} {
		d := table.Resolve(cat)
		if d.Amount < 0 {
			t.Fatalf("negative amount for %q", cat)
		}
		if d.IsFined != (d.Amount > 0) {
			t.Fatalf("is_fined disagrees with amount for %q: %+v", cat, d)
		}
	}
}
