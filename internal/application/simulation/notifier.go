package simulation

import (
	"log/slog"
	"sync"
)

// LogNotifier logs player notifications and keeps them for the run summary
type LogNotifier struct {
	mu       sync.Mutex
	log      *slog.Logger
	messages []string
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{log: logger}
}

func (n *LogNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	if n.log != nil {
		n.log.Warn("player notification", "message", message)
	}
}

// Messages returns the notifications received so far
func (n *LogNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}
