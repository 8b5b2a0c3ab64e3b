package analyzer

import "github.com/benedict-anokye-davies/glance/internal/models"

// history is a bounded most-recent-first buffer of analysis results.
// Entries are appended at the front and evicted from the back; an entry is
// never mutated after insertion.
type history struct {
	capacity int
	results  []*models.ScreenAnalysisResult
}

func newHistory(capacity int) *history {
	if capacity < 1 {
		capacity = 1
	}
	return &history{capacity: capacity}
}

func (h *history) Push(r *models.ScreenAnalysisResult) {
	h.results = append([]*models.ScreenAnalysisResult{r}, h.results...)
	if len(h.results) > h.capacity {
		h.results = h.results[:h.capacity]
	}
}

func (h *history) Latest() *models.ScreenAnalysisResult {
	if len(h.results) == 0 {
		return nil
	}
	return h.results[0]
}

func (h *history) Len() int {
	return len(h.results)
}

// Snapshot returns a copy of the buffer, most-recent-first.
func (h *history) Snapshot() []*models.ScreenAnalysisResult {
	out := make([]*models.ScreenAnalysisResult, len(h.results))
	copy(out, h.results)
	return out
}
