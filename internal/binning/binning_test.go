package binning

import (
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		p       Params
		wantErr bool
	}{
		{"ok", Params{Hmin: 0, Hmax: 10, Bins: 10}, false},
		{"equal bounds", Params{Hmin: 5, Hmax: 5, Bins: 10}, true},
		{"inverted bounds", Params{Hmin: 10, Hmax: 0, Bins: 10}, true},
		{"zero bins", Params{Hmin: 0, Hmax: 10, Bins: 0}, true},
		{"negative bins", Params{Hmin: 0, Hmax: 10, Bins: -1}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.p.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}

func TestBinUnderOverflow(t *testing.T) {
	p := Params{Hmin: 0, Hmax: 10, Bins: 10}

	if got := p.Bin(-1); got != 0 {
		t.Errorf("Bin(-1) = %d, want 0 (underflow)", got)
	}
	if got := p.Bin(10); got != int32(p.Bins+1) {
		t.Errorf("Bin(hmax) = %d, want overflow bin %d (hmax is overflow, not top in-range)", got, p.Bins+1)
	}
	if got := p.Bin(100); got != int32(p.Bins+1) {
		t.Errorf("Bin(100) = %d, want overflow bin %d", got, p.Bins+1)
	}
	if got := p.Bin(float32(math.NaN())); got != NaNBin {
		t.Errorf("Bin(NaN) = %d, want NaNBin", got)
	}
}

func TestBinInRange(t *testing.T) {
	p := Params{Hmin: 0, Hmax: 10, Bins: 10}
	for v := float32(0); v < 10; v++ {
		want := int32(1 + v)
		if got := p.Bin(v); got != want {
			t.Errorf("Bin(%v) = %d, want %d", v, got, want)
		}
	}
}

func TestNAndNB(t *testing.T) {
	p := Params{Hmin: 0, Hmax: 10, Bins: 10}
	if p.N() != 13 {
		t.Errorf("N() = %d, want 13 (B+3)", p.N())
	}
	if p.NB() != 12 {
		t.Errorf("NB() = %d, want 12 (B+2)", p.NB())
	}
}

func TestDebinRoundTrip(t *testing.T) {
	p := Params{Hmin: 0, Hmax: 10, Bins: 10}
	// A mid-bin decimal position should map back near the bin's real value.
	v := p.Debin(5.5) // bin index 5 (coordinate system: 1=first in-range bin)
	want := float32(4.5)
	if math32Abs(v-want) > 1e-5 {
		t.Errorf("Debin(5.5) = %v, want ~%v", v, want)
	}
}

func TestDebinUnderOverflowConventions(t *testing.T) {
	p := Params{Hmin: 0, Hmax: 10, Bins: 10}
	nb := p.NB()

	// FP underflow: p = 0.5 -> hmin - s/2
	if got, want := p.Debin(0.5), p.Hmin-p.Width()/2; math32Abs(got-want) > 1e-5 {
		t.Errorf("Debin(0.5) = %v, want %v", got, want)
	}
	// FP overflow: p = NB - 1.5 = B + 0.5 -> hmin + s*(B - 0.5) = hmax - s/2
	if got, want := p.Debin(float32(nb)-1.5), p.Hmax-p.Width()/2; math32Abs(got-want) > 1e-5 {
		t.Errorf("Debin(NB-1.5) = %v, want %v", got, want)
	}
	// Integer underflow: p = 0 -> hmin - s
	if got, want := p.Debin(0), p.Hmin-p.Width(); math32Abs(got-want) > 1e-5 {
		t.Errorf("Debin(0) = %v, want %v", got, want)
	}
	// Integer overflow: p = NB - 1 -> hmax
	if got, want := p.Debin(float32(nb-1)), p.Hmax; math32Abs(got-want) > 1e-5 {
		t.Errorf("Debin(NB-1) = %v, want %v", got, want)
	}
}

func math32Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
