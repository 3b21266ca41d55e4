package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/bubblesort/internal/sorting"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
	runPrefix    = "bubblesort_"
)

var ErrMalformed = errors.New("storage: malformed step record")

var header = []string{"index", "code_line", "swap_count", "comparing", "swapped", "sorted_index", "sound", "values"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Trace is a complete recorded run.
type Trace struct {
	Seed    int64
	Speed   int
	Initial []sorting.Element
	Steps   []sorting.Step
	Metrics map[string]float64
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Size      int                `json:"size"`
	Speed     int                `json:"speed"`
	Initial   []int              `json:"initial"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

func NewRunID() string {
	return runPrefix + uuid.New().String()[:8]
}

// Save writes tr under a fresh run directory. A failed save removes the
// directory so List never reports a partial run.
func (s *Store) Save(tr *Trace) (string, error) {
	runID := NewRunID()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      tr.Seed,
		Size:      len(tr.Initial),
		Speed:     tr.Speed,
		Initial:   sorting.Values(tr.Initial),
		Steps:     len(tr.Steps),
		Metrics:   tr.Metrics,
	}

	if err := writeRun(runDir, meta, tr.Steps); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}
	return runID, nil
}

// writeRun writes steps.csv before metadata.json; List only reads the
// metadata, so a run becomes visible once its steps are on disk.
func writeRun(runDir string, meta RunMetadata, steps []sorting.Step) error {
	csvFile, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return err
	}
	w := csv.NewWriter(csvFile)
	if err := w.Write(header); err != nil {
		csvFile.Close()
		return err
	}
	for i, step := range steps {
		if err := w.Write(encodeStep(i, step)); err != nil {
			csvFile.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		csvFile.Close()
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runDir, metadataFile), append(data, '\n'), 0644)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), runPrefix) {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]sorting.Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sorting.Step{}, nil
	}

	steps := make([]sorting.Step, 0, len(records)-1)
	for line, record := range records[1:] {
		step, err := decodeStep(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", stepsFile, line+2, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func encodeStep(index int, step sorting.Step) []string {
	comparing := ""
	if len(step.Comparing) == 2 {
		comparing = fmt.Sprintf("%d-%d", step.Comparing[0], step.Comparing[1])
	}
	elems := make([]string, len(step.Array))
	for i, e := range step.Array {
		elems[i] = fmt.Sprintf("%d:%d:%s", e.ID, e.Value, e.State)
	}
	return []string{
		strconv.Itoa(index),
		strconv.Itoa(step.CodeLine),
		strconv.Itoa(step.SwapCount),
		comparing,
		strconv.FormatBool(step.Swapped),
		strconv.Itoa(step.SortedIndex),
		step.Sound.String(),
		strings.Join(elems, " "),
	}
}

func decodeStep(record []string) (sorting.Step, error) {
	var step sorting.Step
	var err error

	if step.CodeLine, err = strconv.Atoi(record[1]); err != nil {
		return step, fmt.Errorf("%w: code_line %q", ErrMalformed, record[1])
	}
	if step.SwapCount, err = strconv.Atoi(record[2]); err != nil {
		return step, fmt.Errorf("%w: swap_count %q", ErrMalformed, record[2])
	}
	if record[3] != "" {
		a, b, ok := strings.Cut(record[3], "-")
		left, errA := strconv.Atoi(a)
		right, errB := strconv.Atoi(b)
		if !ok || errA != nil || errB != nil {
			return step, fmt.Errorf("%w: comparing %q", ErrMalformed, record[3])
		}
		step.Comparing = []int{left, right}
	}
	if step.Swapped, err = strconv.ParseBool(record[4]); err != nil {
		return step, fmt.Errorf("%w: swapped %q", ErrMalformed, record[4])
	}
	if step.SortedIndex, err = strconv.Atoi(record[5]); err != nil {
		return step, fmt.Errorf("%w: sorted_index %q", ErrMalformed, record[5])
	}
	switch record[6] {
	case "":
	case sorting.SoundSwap.String():
		step.Sound = sorting.SoundSwap
	case sorting.SoundPassComplete.String():
		step.Sound = sorting.SoundPassComplete
	default:
		return step, fmt.Errorf("%w: sound %q", ErrMalformed, record[6])
	}

	step.Array = []sorting.Element{}
	for _, field := range strings.Fields(record[7]) {
		e, err := decodeElement(field)
		if err != nil {
			return step, err
		}
		step.Array = append(step.Array, e)
	}
	return step, nil
}

func decodeElement(field string) (sorting.Element, error) {
	parts := strings.Split(field, ":")
	if len(parts) != 3 {
		return sorting.Element{}, fmt.Errorf("%w: element %q", ErrMalformed, field)
	}
	id, errID := strconv.Atoi(parts[0])
	value, errValue := strconv.Atoi(parts[1])
	state, ok := parseState(parts[2])
	if errID != nil || errValue != nil || !ok {
		return sorting.Element{}, fmt.Errorf("%w: element %q", ErrMalformed, field)
	}
	return sorting.Element{ID: id, Value: value, State: state}, nil
}

func parseState(s string) (sorting.ElementState, bool) {
	for st := sorting.Default; st <= sorting.FinalHighlight; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}
