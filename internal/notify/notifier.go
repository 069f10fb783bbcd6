// Package notify is the fire-and-forget event sink. Events describe
// workflow outcomes for humans; nothing in the core depends on delivery.
package notify

import "log"

const (
	KindTransition       = "transition"
	KindTransitionDenied = "transition_denied"
)

// Event describes one workflow outcome.
type Event struct {
	Kind         string `json:"kind"`
	SubmissionID string `json:"submissionId"`
	Message      string `json:"message"`
}

// Notifier writes events to the process log. With GELF wired into the log
// output the events reach the log collector over UDP for free.
type Notifier struct{}

func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Emit(e Event) {
	if n == nil {
		return
	}
	log.Printf("event %s submission=%s: %s", e.Kind, e.SubmissionID, e.Message)
}
