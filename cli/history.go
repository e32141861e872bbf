package cli

// History is a bounded list of the commands entered, oldest first.
type History struct {
	entries []string
	max     int
}

// NewHistory creates a history buffer with the given maximum size.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
	}
}

// Push adds a command to history. Consecutive duplicates are skipped.
func (h *History) Push(cmd string) {
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Last returns the most recent command, or ("", false) if history is empty.
func (h *History) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Entries returns the commands, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
