package server

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"
)

const watchInterval = 500 * time.Millisecond

// ReloadNotifier broadcasts static asset changes to connected dev clients.
// Subscriber channels are buffered with size one so a pending notification
// is kept while the client is busy and the watcher never blocks.
type ReloadNotifier struct {
	mu      sync.Mutex
	closed  bool
	nextID  int
	clients map[int]chan struct{}
}

func newReloadNotifier() *ReloadNotifier {
	return &ReloadNotifier{
		clients: make(map[int]chan struct{}),
	}
}

// Subscribe registers a listener. After Close the returned channel is
// already closed so callers fail fast instead of hanging.
func (n *ReloadNotifier) Subscribe() (int, <-chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		ch := make(chan struct{})
		close(ch)
		return -1, ch
	}

	id := n.nextID
	n.nextID++

	ch := make(chan struct{}, 1)
	n.clients[id] = ch

	return id, ch
}

func (n *ReloadNotifier) Unsubscribe(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if ch, ok := n.clients[id]; ok {
		close(ch)
		delete(n.clients, id)
	}
}

func (n *ReloadNotifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}

	for _, ch := range n.clients {
		select {
		case ch <- struct{}{}:
		default:
			// notification already pending
		}
	}
}

func (n *ReloadNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true

	for id, ch := range n.clients {
		close(ch)
		delete(n.clients, id)
	}
}

// startDevWatcher polls the on-disk assets and notifies subscribers whenever
// a file is added, removed or touched. The returned cancel func stops it.
func startDevWatcher(root string, notifier *ReloadNotifier) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer notifier.Notify() // wake hanging subscribers on shutdown

		last, err := scanAssets(root)
		if err != nil {
			slog.Error("Failed to scan static assets", slog.String("root", root), slog.Any("err", err))
		}

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				state, err := scanAssets(root)
				if err != nil {
					slog.Error("Failed to scan static assets", slog.String("root", root), slog.Any("err", err))
					continue
				}

				if state != last {
					last = state
					notifier.Notify()
				}
			}
		}
	}()

	return cancel
}

type assetState struct {
	files   int
	lastMod time.Time
}

func scanAssets(root string) (assetState, error) {
	var state assetState
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		state.files++
		if info.ModTime().After(state.lastMod) {
			state.lastMod = info.ModTime()
		}

		return nil
	})
	return state, err
}
