package notifymock

import (
	"context"
	"sync"
)

type Emitted struct {
	UserID    string
	Title     string
	Message   string
	Type      string
	ActionURL string
}

// Notifier records every Emit; safe for concurrent use.
type Notifier struct {
	mu     sync.Mutex
	Events []Emitted
}

func (n *Notifier) Emit(ctx context.Context, userID, title, message, typ, actionURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, Emitted{UserID: userID, Title: title, Message: message, Type: typ, ActionURL: actionURL})
	return nil
}

// ByType returns the recorded events with the given type.
func (n *Notifier) ByType(typ string) []Emitted {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []Emitted
	for _, e := range n.Events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
