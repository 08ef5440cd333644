package sceneutil_test

import (
	"errors"
	"path/filepath"
	"testing"

	"scenelink/internal/adapters/sqlite"
	"scenelink/internal/application"
	"scenelink/internal/domain"
	"scenelink/internal/ports"
	"scenelink/internal/sceneutil"
)

var unit = domain.NewBox3(domain.V3{}, domain.V3{X: 1, Y: 1, Z: 1})

// writeScene writes / -> c (object, moved to x=2 at t=1) and / -> d -> e
func writeScene(t *testing.T) ports.Scene {
	t.Helper()
	path := filepath.Join(t.TempDir(), "util.scn")
	w, err := sqlite.Open(path, domain.ModeWrite)
	if err != nil {
		t.Fatal(err)
	}
	c, err := w.CreateChild("c")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.WriteObject(domain.Object{Type: "box", Bound: unit}, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteTransform(domain.Identity(), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteTransform(domain.Translate(domain.V3{X: 2}), 1); err != nil {
		t.Fatal(err)
	}
	d, err := w.CreateChild("d")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateChild("e"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := sqlite.Open(path, domain.ModeRead)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSampleTime(t *testing.T) {
	times := []float64{0, 1.5, 3}
	tests := []struct {
		i       int
		want    float64
		wantErr bool
	}{
		{0, 0, false},
		{2, 3, false},
		{-1, 0, true},
		{3, 0, true},
	}

	for _, tt := range tests {
		got, err := sceneutil.SampleTime(times, tt.i)
		if tt.wantErr {
			if !errors.Is(err, application.ErrNotFound) {
				t.Errorf("SampleTime(%d) error = %v, want ErrNotFound", tt.i, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("SampleTime(%d) = %g, %v, want %g", tt.i, got, err, tt.want)
		}
	}
}

func TestAggregateBound(t *testing.T) {
	s := writeScene(t)

	times, err := sceneutil.AggregateBoundTimes(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 2 || times[0] != 0 || times[1] != 1 {
		t.Fatalf("AggregateBoundTimes = %v, want [0 1]", times)
	}

	tests := []struct {
		time float64
		minX float64
		maxX float64
	}{
		{0, 0, 1},
		{1, 2, 3},
		{0.5, 1, 2},
	}
	for _, tt := range tests {
		b, err := sceneutil.AggregateBound(s, tt.time)
		if err != nil {
			t.Fatal(err)
		}
		if b.Min.X != tt.minX || b.Max.X != tt.maxX {
			t.Errorf("bound at %g = %+v, want x in [%g, %g]", tt.time, b, tt.minX, tt.maxX)
		}
	}
}

func TestReadAtSample(t *testing.T) {
	s := writeScene(t)
	c, err := s.Child("c")
	if err != nil {
		t.Fatal(err)
	}

	m, err := sceneutil.ReadTransformAtSample(c, 1)
	if err != nil {
		t.Fatal(err)
	}
	if m.Translation().X != 2 {
		t.Errorf("translation = %+v, want x=2", m.Translation())
	}
	o, err := sceneutil.ReadObjectAtSample(c, 0)
	if err != nil || o.Type != "box" {
		t.Errorf("object = %+v, %v", o, err)
	}
	if _, err := sceneutil.ReadObjectAtSample(c, 1); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound past the last sample, got %v", err)
	}
}

func TestWalk(t *testing.T) {
	s := writeScene(t)

	var visited []string
	err := sceneutil.Walk(s, func(n ports.Scene) error {
		visited = append(visited, n.Path().String())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/", "/c", "/d", "/d/e"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}

	stop := errors.New("stop")
	count := 0
	err = sceneutil.Walk(s, func(n ports.Scene) error {
		count++
		if n.Name() == "c" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || count != 2 {
		t.Errorf("Walk stopped with %v after %d nodes", err, count)
	}
}
