package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/bubblesort/internal/sorting"
)

type ExportStep struct {
	CodeLine    int      `json:"codeLine"`
	Comparing   []int    `json:"comparing"`
	Swapped     bool     `json:"swapped"`
	SortedIndex *int     `json:"sortedIndex"`
	SwapCount   int      `json:"swapCount"`
	Sound       string   `json:"sound,omitempty"`
	Values      []int    `json:"values"`
	IDs         []int    `json:"ids"`
	States      []string `json:"states"`
}

type ExportData struct {
	Seed    int64              `json:"seed"`
	Speed   int                `json:"speed"`
	Initial []int              `json:"initial"`
	Steps   []ExportStep       `json:"steps"`
	Metrics map[string]float64 `json:"metrics"`
}

func newExportData(tr *Trace) ExportData {
	data := ExportData{
		Seed:    tr.Seed,
		Speed:   tr.Speed,
		Initial: sorting.Values(tr.Initial),
		Steps:   make([]ExportStep, len(tr.Steps)),
		Metrics: tr.Metrics,
	}
	for i, step := range tr.Steps {
		es := ExportStep{
			CodeLine:  step.CodeLine,
			Comparing: []int{},
			Swapped:   step.Swapped,
			SwapCount: step.SwapCount,
			Sound:     step.Sound.String(),
			Values:    sorting.Values(step.Array),
			IDs:       sorting.IDs(step.Array),
			States:    make([]string, len(step.Array)),
		}
		if step.Comparing != nil {
			es.Comparing = step.Comparing
		}
		if step.SortedIndex != sorting.NoBoundary {
			idx := step.SortedIndex
			es.SortedIndex = &idx
		}
		for k, e := range step.Array {
			es.States[k] = e.State.String()
		}
		data.Steps[i] = es
	}
	return data
}

// WriteJSON encodes tr with the step fields named as in the browser
// visualizer; a missing sorted boundary is null and a step without a
// compared pair has an empty comparing list.
func WriteJSON(w io.Writer, tr *Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(tr))
}

func ExportJSON(path string, tr *Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, tr)
}
