package layer

import (
	"errors"
	"math"
	"testing"

	"github.com/synaptiq/neuroloop/internal/observe"
)

func newLayer(t *testing.T, name string, size int) *Layer {
	t.Helper()
	l, err := New(name, size, DefaultSpec())
	if err != nil {
		t.Fatalf("New(%q, %d): %v", name, size, err)
	}
	return l
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, err := New("in", 0, DefaultSpec()); err == nil {
		t.Error("New accepted size 0")
	}
	if _, err := New("in", -3, DefaultSpec()); err == nil {
		t.Error("New accepted negative size")
	}
}

func TestLayerHasFixedNameAndSize(t *testing.T) {
	l := newLayer(t, "in", 3)
	if l.Name() != "in" {
		t.Errorf("Name = %q, want %q", l.Name(), "in")
	}
	if l.Size() != 3 {
		t.Errorf("Size = %d, want 3", l.Size())
	}
}

func TestAverages(t *testing.T) {
	l := newLayer(t, "in", 2)
	l.Units()[0].Act = 0
	l.Units()[1].Act = 1
	if got := l.AvgAct(); got != 0.5 {
		t.Errorf("AvgAct = %f, want 0.5", got)
	}
	l.Units()[0].Net = 0
	l.Units()[1].Net = 1
	if got := l.AvgNet(); got != 0.5 {
		t.Errorf("AvgNet = %f, want 0.5", got)
	}
}

func TestUpdateNetRejectsWrongWidth(t *testing.T) {
	l := newLayer(t, "in", 3)
	if err := l.UpdateNet([]float64{1, 2}); err == nil {
		t.Error("UpdateNet accepted 2 inputs for 3 units")
	}
}

func TestActivationCycleDrivesActs(t *testing.T) {
	l := newLayer(t, "hid", 3)
	raw := []float64{1.0, 1.0, 1.0}
	for i := 0; i < 50; i++ {
		if err := l.ActivationCycle(raw); err != nil {
			t.Fatalf("ActivationCycle: %v", err)
		}
	}
	if l.AvgAct() <= 0.05 {
		t.Errorf("AvgAct = %f after sustained input, want clearly above rest", l.AvgAct())
	}
	if l.Gi() <= 0 {
		t.Errorf("Gi = %f with active units, want positive", l.Gi())
	}
}

func TestClampHoldsActivations(t *testing.T) {
	l := newLayer(t, "in", 3)
	if err := l.Clamp([]float64{0.2, 0.5, 0.8}); err != nil {
		t.Fatalf("Clamp: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := l.ActivationCycle([]float64{5, 5, 5}); err != nil {
			t.Fatalf("ActivationCycle: %v", err)
		}
	}
	want := []float64{0.2, 0.5, 0.8}
	for i, w := range want {
		if got := l.Units()[i].Act; math.Abs(got-w) > 1e-12 {
			t.Errorf("unit %d Act = %f while clamped, want %f", i, got, w)
		}
	}

	l.Unclamp()
	for i := 0; i < 20; i++ {
		if err := l.ActivationCycle([]float64{5, 5, 5}); err != nil {
			t.Fatalf("ActivationCycle: %v", err)
		}
	}
	if math.Abs(l.Units()[0].Act-0.2) < 1e-6 {
		t.Error("unit 0 never moved after Unclamp")
	}
}

func TestClampRejectsWrongWidth(t *testing.T) {
	l := newLayer(t, "in", 3)
	if err := l.Clamp([]float64{0.2}); err == nil {
		t.Error("Clamp accepted 1 value for 3 units")
	}
}

func TestObserveSimpleAttrs(t *testing.T) {
	l := newLayer(t, "in", 3)
	row, err := l.Observe("avg_act")
	if err != nil {
		t.Fatalf("Observe(avg_act): %v", err)
	}
	if len(row) != 1 || row[0].Column != "avg_act" || row[0].Value != 0.0 {
		t.Errorf("Observe(avg_act) = %+v, want [{avg_act 0}]", row)
	}
}

func TestObserveUnitAttrs(t *testing.T) {
	l := newLayer(t, "in", 3)
	row, err := l.Observe("unit_act")
	if err != nil {
		t.Fatalf("Observe(unit_act): %v", err)
	}
	want := []observe.Observation{
		{Column: "unit0_act", Value: 0.0},
		{Column: "unit1_act", Value: 0.0},
		{Column: "unit2_act", Value: 0.0},
	}
	if len(row) != len(want) {
		t.Fatalf("Observe(unit_act) = %+v, want %+v", row, want)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("Observe(unit_act)[%d] = %+v, want %+v", i, row[i], want[i])
		}
	}
}

func TestObserveUnknownAttr(t *testing.T) {
	l := newLayer(t, "in", 3)
	for _, attr := range []string{"foobar", "unit_foobar", ""} {
		_, err := l.Observe(attr)
		var uerr *observe.UnknownAttrError
		if !errors.As(err, &uerr) {
			t.Errorf("Observe(%q) err = %v, want UnknownAttrError", attr, err)
			continue
		}
		if uerr.Entity != "in" || uerr.Attr != attr {
			t.Errorf("Observe(%q) error fields = %+v", attr, uerr)
		}
	}
}

func TestObserveDoesNotMutate(t *testing.T) {
	l := newLayer(t, "in", 2)
	l.Units()[0].Act = 0.3
	l.Units()[1].Act = 0.7
	before := l.Acts()
	for _, attr := range LoggableAttrs() {
		if _, err := l.Observe(attr); err != nil {
			t.Fatalf("Observe(%q): %v", attr, err)
		}
	}
	after := l.Acts()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("unit %d Act changed from %f to %f during observation", i, before[i], after[i])
		}
	}
}
