package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/orbit"
)

func testFrames(t *testing.T) []export.Frame {
	t.Helper()
	sys, err := orbit.NewSystem([]orbit.Body{
		{Name: "Sun", Color: "#ffcc00", Radius: 2},
		{Name: "Earth", Color: "#0000ff", Radius: 0.65, Distance: 8, AngularSpeed: 0.01},
		{Name: "Mars", Color: "#ff0000", Radius: 0.5, Distance: 10, AngularSpeed: 0.008, Angle: math.Pi},
	})
	if err != nil {
		t.Fatalf("new system: %v", err)
	}
	return export.Record(sys, 20, 5)
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	frames := testFrames(t)
	runID, err := st.Save(RunMetadata{Preset: "classic", Seed: 42, Ticks: 20, Every: 5,
		Speeds: map[string]float64{"Earth": 0.01}}, frames)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Preset != "classic" || meta.Seed != 42 || meta.Ticks != 20 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Speeds["Earth"] != 0.01 {
		t.Errorf("expected Earth speed 0.01, got %f", meta.Speeds["Earth"])
	}

	got, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(got) != len(frames) {
		t.Fatalf("expected %d frames, got %d", len(frames), len(got))
	}
	for i := range frames {
		if got[i].Tick != frames[i].Tick {
			t.Errorf("frame %d: tick %d, want %d", i, got[i].Tick, frames[i].Tick)
		}
		for j, b := range frames[i].Bodies {
			g := got[i].Bodies[j]
			if g.Name != b.Name {
				t.Errorf("frame %d body %d: name %s, want %s", i, j, g.Name, b.Name)
			}
			if math.Abs(g.X-b.X) > 1e-5 || math.Abs(g.Z-b.Z) > 1e-5 || math.Abs(g.Angle-b.Angle) > 1e-5 {
				t.Errorf("frame %d %s: got %+v, want %+v", i, b.Name, g, b)
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	first, err := st.Save(RunMetadata{}, testFrames(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(RunMetadata{Preset: "fast"}, testFrames(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected runs oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{}, testFrames(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "frames.csv")); os.IsNotExist(err) {
		t.Error("frames.csv not created")
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
	if _, err := st.LoadFrames("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("expected ErrNoRun, got %v", err)
	}
}
