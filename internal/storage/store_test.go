package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/nukelab/internal/reactor"
)

func sampleResult() *reactor.Result {
	return &reactor.Result{
		States: []reactor.State{
			{50.0, 0.0, 0.0},
			{49.5, 0.4, 0.1},
		},
		Controls: []reactor.Control{
			{0.0},
		},
		Times: []float64{0.0, 0.01},
		Metrics: map[string]float64{
			"activity": 5.2,
		},
		BalanceDrift: 1.5e-9,
		StepsTaken:   2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("decay", 0.01, 1.0, 42, "rk4", "none", sampleResult())
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

	if meta.Model != "decay" {
		t.Errorf("expected model 'decay', got '%s'", meta.Model)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["activity"] != 5.2 {
		t.Errorf("expected activity 5.2, got %f", meta.Metrics["activity"])
	}
	if meta.BalanceDrift != 1.5e-9 {
		t.Errorf("expected balance drift 1.5e-9, got %g", meta.BalanceDrift)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 {
		t.Errorf("expected 2 states, got %d", len(states))
	}
	if len(times) != 2 {
		t.Errorf("expected 2 times, got %d", len(times))
	}
	if len(states[0]) != 4 {
		// 3 state columns plus 1 control column.
		t.Errorf("expected 4 columns, got %d", len(states[0]))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save("decay", 0.01, 1.0, 1, "rk4", "none", sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save("kinetics", 0.001, 5.0, 2, "rk45", "pid", sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	if err := ExportJSON(path, "decay", "rk4", "none", 0.01, 1.0, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if out.Model != "decay" {
		t.Errorf("expected model decay, got %s", out.Model)
	}
	if out.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", out.Steps)
	}
	if len(out.States) != 2 || len(out.States[0]) != 3 {
		t.Error("state rows did not round-trip")
	}
}
