// Package notifier tells open update streams that the catalog changed.
package notifier

import "sync"

// Notifier pings subscribed update streams after every catalog change.
// Listeners receive an empty struct and re-read the store themselves. Each
// listener is tagged with the workspace that opened it, so the workspace that
// made a change can be skipped: its own response already carries the result.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]string
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]string),
	}
}

// Subscribe returns a channel that receives pings for changes made outside
// workspace. The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe(workspace string) chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = workspace
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast pings every listener.
func (n *Notifier) Broadcast() {
	n.BroadcastExcept("")
}

// BroadcastExcept pings every listener not opened by origin. An empty origin
// skips no one. A listener whose channel is full already has a ping pending and
// is skipped.
func (n *Notifier) BroadcastExcept(origin string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch, ws := range n.listeners {
		if origin != "" && ws == origin {
			continue
		}
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of open listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
