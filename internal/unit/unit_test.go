package unit

import (
	"math"
	"testing"
)

func TestUpdateNetIntegratesTowardRaw(t *testing.T) {
	u := New(DefaultSpec())
	for i := 0; i < 50; i++ {
		u.UpdateNet(1.0)
	}
	if math.Abs(u.Net-1.0) > 1e-6 {
		t.Errorf("Net = %f after sustained input, want ~1.0", u.Net)
	}
}

func TestUpdateActRisesWithInputAndFallsWithInhibition(t *testing.T) {
	u := New(DefaultSpec())
	for i := 0; i < 50; i++ {
		u.UpdateNet(1.0)
		u.UpdateAct(0)
	}
	excited := u.Act
	if excited < 0.5 {
		t.Errorf("Act = %f with strong input and no inhibition, want > 0.5", excited)
	}

	for i := 0; i < 50; i++ {
		u.UpdateNet(1.0)
		u.UpdateAct(2.0)
	}
	if u.Act >= excited {
		t.Errorf("Act = %f under inhibition, want below uninhibited %f", u.Act, excited)
	}
}

func TestActStaysInRange(t *testing.T) {
	u := New(DefaultSpec())
	for i := 0; i < 200; i++ {
		u.UpdateNet(10.0)
		u.UpdateAct(0)
		if u.Act < 0 || u.Act >= 1.0+1e-9 {
			t.Fatalf("tick %d: Act = %f outside [0, 1]", i, u.Act)
		}
	}
}

func TestClamp(t *testing.T) {
	u := New(DefaultSpec())
	u.UpdateNet(1.0)
	u.UpdateAct(0)
	u.Clamp(0.75)
	if u.Act != 0.75 || u.Net != 0 || u.Gi != 0 {
		t.Errorf("after Clamp: Act=%f Net=%f Gi=%f, want 0.75 0 0", u.Act, u.Net, u.Gi)
	}
}

func TestAttr(t *testing.T) {
	u := New(DefaultSpec())
	u.Net = 0.3
	u.Act = 0.6
	u.Gi = 0.1

	tests := []struct {
		name   string
		want   float64
		wantOK bool
	}{
		{"act", 0.6, true},
		{"net", 0.3, true},
		{"gi", 0.1, true},
		{"spike", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := u.Attr(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Attr(%q) = (%f, %v), want (%f, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}
