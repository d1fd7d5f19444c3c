package compare

// headerState tracks whether a scope header has been written.
type headerState int

const (
	// headerPending means the header is known but not yet written.
	headerPending headerState = iota

	// headerEmitted means the header has been written. It is terminal.
	headerEmitted
)

// header is a report line that is written at most once, the first time
// something inside its scope needs reporting.
type header struct {
	text  string
	state headerState
}

func newHeader(text string) *header {
	return &header{text: text, state: headerPending}
}

// open writes the header to w if it is still pending. Further calls do nothing.
func (h *header) open(w *writer) {
	if h.state == headerEmitted {
		return
	}
	w.line(h.text)
	h.state = headerEmitted
}

// writer collects report lines.
type writer struct {
	lines []string
}

func (w *writer) line(s ...string) {
	w.lines = append(w.lines, s...)
}
