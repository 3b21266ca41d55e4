package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/bubblesort/internal/metrics"
	"github.com/san-kum/bubblesort/internal/sorting"
)

func sampleTrace(values ...int) *Trace {
	initial := sorting.NewGenerator(1).FromValues(values)
	return &Trace{
		Seed:    42,
		Speed:   3,
		Initial: initial,
		Steps:   sorting.Produce(initial).Collect(),
		Metrics: metrics.Collect(sorting.Produce(initial)),
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	tr := sampleTrace(50, 20, 80, 20)
	runID, err := st.Save(tr)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "bubblesort_") || len(runID) != len("bubblesort_")+8 {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Size != 4 || meta.Steps != len(tr.Steps) {
		t.Errorf("expected size 4 and %d steps, got %d and %d", len(tr.Steps), meta.Size, meta.Steps)
	}
	if meta.Metrics["swaps"] != 3 {
		t.Errorf("expected 3 swaps, got %f", meta.Metrics["swaps"])
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		t.Fatalf("load steps failed: %v", err)
	}
	if len(steps) != len(tr.Steps) {
		t.Fatalf("expected %d steps, got %d", len(tr.Steps), len(steps))
	}
	for i := range steps {
		if !reflect.DeepEqual(steps[i], tr.Steps[i]) {
			t.Fatalf("step %d mismatch:\n got %+v\nwant %+v", i, steps[i], tr.Steps[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(sampleTrace(30, 10, 20, 40, 50)); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "unrelated"), 0755); err != nil {
		t.Fatal(err)
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
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(sampleTrace(10, 20, 30, 40, 50))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	data, err := os.ReadFile(filepath.Join(runDir, "steps.csv"))
	if err != nil {
		t.Fatalf("steps.csv not created: %v", err)
	}
	first := strings.SplitN(string(data), "\n", 2)[0]
	if first != "index,code_line,swap_count,comparing,swapped,sorted_index,sound,values" {
		t.Errorf("unexpected header %q", first)
	}
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	tr := sampleTrace(3, 1, 2)
	tr.Metrics = map[string]float64{"ratio": math.NaN()}
	if _, err := st.Save(tr); err == nil {
		t.Fatal("expected save to fail on an unencodable metric")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no run directory after a failed save, found %d entries", len(entries))
	}
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestLoadStepsMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	runDir := filepath.Join(tmpDir, "bubblesort_deadbeef")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	body := "index,code_line,swap_count,comparing,swapped,sorted_index,sound,values\n" +
		"0,1,0,,false,-1,,1:50:bogus\n"
	if err := os.WriteFile(filepath.Join(runDir, "steps.csv"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New(tmpDir).LoadSteps("bubblesort_deadbeef")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleTrace(20, 10, 30, 40, 50)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Steps[0].SortedIndex != nil {
		t.Error("expected null sortedIndex on the initial step")
	}
	if data.Steps[0].Comparing == nil || len(data.Steps[0].Comparing) != 0 {
		t.Errorf("expected empty comparing on the initial step, got %v", data.Steps[0].Comparing)
	}
	if bytes.Contains(buf.Bytes(), []byte(`"comparing": null`)) {
		t.Error("comparing encoded as null")
	}
	if !reflect.DeepEqual(data.Steps[2].Comparing, []int{0, 1}) {
		t.Errorf("expected comparing [0 1] on the first compare step, got %v", data.Steps[2].Comparing)
	}
	last := data.Steps[len(data.Steps)-1]
	if last.SortedIndex == nil || *last.SortedIndex != 0 {
		t.Error("expected sortedIndex 0 on the final step")
	}
	if !reflect.DeepEqual(last.Values, []int{10, 20, 30, 40, 50}) {
		t.Errorf("unexpected final values %v", last.Values)
	}
}
