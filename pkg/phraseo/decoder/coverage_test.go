package decoder

import "testing"

func TestCoverageCloneIsIndependent(t *testing.T) {
	c := NewCoverage(4)
	c.MarkSpan(1, 2)

	d := c.Clone()
	d.MarkSpan(0, 1)

	if c[0] {
		t.Error("marking a clone mutated the original")
	}
	if got := c.Count(); got != 2 {
		t.Errorf("original Count = %d, want 2", got)
	}
	if got := d.Count(); got != 3 {
		t.Errorf("clone Count = %d, want 3", got)
	}
}

func TestCoverageFull(t *testing.T) {
	c := NewCoverage(3)
	if c.Full() {
		t.Error("fresh coverage reported full")
	}
	c.MarkSpan(0, 3)
	if !c.Full() {
		t.Error("fully marked coverage reported not full")
	}
	if NewCoverage(0).Full() != true {
		t.Error("zero-length coverage should be full")
	}
}

func TestCoverageKey(t *testing.T) {
	c := NewCoverage(4)
	c.MarkSpan(1, 2)
	if got := c.Key(); got != "0110" {
		t.Errorf("Key = %q, want %q", got, "0110")
	}

	d := NewCoverage(4)
	d.MarkSpan(1, 2)
	if c.Key() != d.Key() {
		t.Error("equal vectors produced different keys")
	}
}
