package profile

import "testing"

func TestGetKnown(t *testing.T) {
	p := Get("fast")
	if p.Width != 100 || p.Height != 100 || p.Bins != 6 {
		t.Errorf("fast = %+v", p)
	}
	if c := Get("trainer").Config(); c.Width != 300 || c.Height != 300 || c.SigmaC != 16 {
		t.Errorf("trainer config = %+v", c)
	}
}

func TestGetUnknownFallsBack(t *testing.T) {
	p := Get("custom")
	if p.Name != "custom" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Width != 200 || p.Bins != 8 || p.CropRatio != 0.75 {
		t.Errorf("fallback = %+v", p)
	}
}
