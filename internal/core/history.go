package core

import "sync"

// History is an in-memory registry of completed runs. It exists for
// operator visibility; the artifacts themselves live in the store and
// survive restarts, the history does not.
type History struct {
	mu   sync.RWMutex
	runs []RunInfo
	byID map[string]int
}

// NewHistory creates an empty run history.
func NewHistory() *History {
	return &History{byID: make(map[string]int)}
}

// Add records a completed run.
func (h *History) Add(info RunInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byID[info.ProcessID] = len(h.runs)
	h.runs = append(h.runs, info)
}

// Get returns the run for a process identifier.
func (h *History) Get(processID string) (RunInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	i, ok := h.byID[processID]
	if !ok {
		return RunInfo{}, false
	}
	return h.runs[i], true
}

// List returns all recorded runs, newest first.
func (h *History) List() []RunInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]RunInfo, len(h.runs))
	for i, run := range h.runs {
		out[len(h.runs)-1-i] = run
	}
	return out
}
