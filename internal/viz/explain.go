package viz

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const explainWidth = 44

var explanation = []string{
	"Bubble Sort repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order. The pass through the list is repeated until the list is sorted.",
	"Smaller elements \"bubble\" to the top of the list while larger elements sink to the bottom.",
	"Time: worst O(n²), average O(n²), best O(n) when a pass makes no swap.",
	"Space: O(1).",
}

func (m Model) renderExplanation() string {
	paras := make([]string, len(explanation))
	for i, p := range explanation {
		paras[i] = wordwrap.String(p, explainWidth)
	}
	return m.styles.Header.Render("ALGORITHM") + "\n" + m.styles.Value.Render(strings.Join(paras, "\n\n"))
}
