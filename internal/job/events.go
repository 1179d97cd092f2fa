package job

// EventKind discriminates the events a job handle emits.
type EventKind int

const (
	// EventProgress reports rows finished so far out of the row total.
	EventProgress EventKind = iota
	// EventLog carries a human-readable progress line.
	EventLog
	// EventCompleted is terminal; the summary is attached.
	EventCompleted
	// EventFailed is terminal; Err carries the job-fatal reason.
	EventFailed
	// EventCancelled is terminal.
	EventCancelled
)

// Event is one lifecycle notification from a running job.
type Event struct {
	Kind    EventKind
	Done    int
	Total   int
	Message string
	Summary *Summary
	Err     error
}

// emit delivers a progress or log event without ever blocking the
// pipeline: when the subscriber lags, the event is dropped.
func (h *Handle) emit(ev Event) {
	select {
	case h.events <- ev:
	default:
	}
}

// emitTerminal delivers the single terminal event and closes the channel.
// If the buffer is full of unread progress events, the oldest are dropped
// so the terminal event always goes through without blocking.
func (h *Handle) emitTerminal(ev Event) {
	for {
		select {
		case h.events <- ev:
			close(h.events)
			return
		default:
			select {
			case <-h.events:
			default:
			}
		}
	}
}
