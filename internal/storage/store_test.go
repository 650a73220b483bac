package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/kinsim/internal/kin"
)

func testResult() *kin.Result {
	return &kin.Result{
		Concs: []kin.Conc{
			{1, 0, 0},
			{0.5, 0.4, 0.1},
			{0.1, 0.2, 0.7},
		},
		Times:   []float64{0, 0.5, 1.0},
		Metrics: map[string]float64{"mass_drift": 1e-12},
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("triangle", []string{"A", "B", "C"}, 0.0001, 1.0, "rk4", testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "triangle_") {
		t.Errorf("unexpected run id: %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Mechanism != "triangle" {
		t.Errorf("expected triangle, got %s", meta.Mechanism)
	}
	if len(meta.Species) != 3 || meta.Species[2] != "C" {
		t.Errorf("unexpected species: %v", meta.Species)
	}
	if meta.Integrator != "rk4" {
		t.Errorf("expected rk4, got %s", meta.Integrator)
	}
	if meta.Metrics["mass_drift"] != 1e-12 {
		t.Errorf("metrics not round-tripped: %v", meta.Metrics)
	}
}

func TestLoadSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("triangle", []string{"A", "B", "C"}, 0.0001, 1.0, "rk4", testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	concs, times, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(concs) != 3 || len(times) != 3 {
		t.Fatalf("expected 3 rows, got %d concs %d times", len(concs), len(times))
	}
	if times[1] != 0.5 {
		t.Errorf("expected t=0.5, got %g", times[1])
	}
	if concs[2][2] != 0.7 {
		t.Errorf("expected 0.7, got %g", concs[2][2])
	}
}

func TestList(t *testing.T) {
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

	if _, err := st.Save("triangle", []string{"A", "B", "C"}, 0.0001, 1.0, "rk4", testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestLoadMissing(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("no_such_run"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, _, err := st.LoadSeries("no_such_run"); err == nil {
		t.Error("expected error for missing series")
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:        "triangle_1",
		Mechanism: "triangle",
		Species:   []string{"A", "B", "C"},
	}
	concs := [][]float64{{1, 0, 0}, {0.5, 0.4, 0.1}}
	times := []float64{0, 1}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := ExportJSON(enc, meta, concs, times); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var doc struct {
		Meta  RunMetadata `json:"meta"`
		Times []float64   `json:"times"`
		Concs [][]float64 `json:"concentrations"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.Meta.Mechanism != "triangle" {
		t.Errorf("unexpected mechanism in export: %v", doc.Meta.Mechanism)
	}
	if len(doc.Times) != 2 || len(doc.Concs) != 2 {
		t.Errorf("unexpected table size: %d times, %d rows", len(doc.Times), len(doc.Concs))
	}
}
