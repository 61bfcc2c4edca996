package postgres

import (
	"log"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/ports"
)

// CatalogChannel is the LISTEN channel written by the catalog insert triggers.
const CatalogChannel = "catalog_changes"

const notifierPingInterval = 90 * time.Second

// Notifier turns Postgres NOTIFY events on CatalogChannel into per-collection
// signals. A dropped listener connection is followed by a broadcast to every
// subscriber so live queries re-read whatever they may have missed.
type Notifier struct {
	listener *pq.Listener

	mu     sync.Mutex
	subs   map[string]map[int]chan string
	nextID int

	done chan struct{}
	wg   sync.WaitGroup
}

func NewNotifier(dsn string) (*Notifier, error) {
	listener := pq.NewListener(dsn, 2*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("catalog listener event=%d error=%v", ev, err)
		}
	})
	if err := listener.Listen(CatalogChannel); err != nil {
		listener.Close()
		return nil, err
	}
	n := newNotifier()
	n.listener = listener
	n.wg.Add(1)
	go n.run()
	return n, nil
}

func newNotifier() *Notifier {
	return &Notifier{
		subs: make(map[string]map[int]chan string),
		done: make(chan struct{}),
	}
}

// Subscribe registers interest in a collection. The returned channel has room
// for one pending signal; bursts of writes coalesce into a single wake-up.
func (n *Notifier) Subscribe(collection string) (<-chan string, func()) {
	ch := make(chan string, 1)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	if n.subs[collection] == nil {
		n.subs[collection] = make(map[int]chan string)
	}
	n.subs[collection][id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[collection], id)
			if len(n.subs[collection]) == 0 {
				delete(n.subs, collection)
			}
			n.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish signals subscribers of collection. It is what the listener loop
// calls for each notification.
func (n *Notifier) Publish(collection string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[collection] {
		signal(ch, collection)
	}
}

func (n *Notifier) broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for collection, subs := range n.subs {
		for _, ch := range subs {
			signal(ch, collection)
		}
	}
}

func signal(ch chan string, collection string) {
	select {
	case ch <- collection:
	default:
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()
	ticker := time.NewTicker(notifierPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-n.done:
			return
		case ev, ok := <-n.listener.Notify:
			if !ok {
				return
			}
			if ev == nil {
				n.broadcast()
				continue
			}
			n.Publish(ev.Extra)
		case <-ticker.C:
			if err := n.listener.Ping(); err != nil {
				log.Printf("catalog listener ping failed: %v", err)
			}
		}
	}
}

func (n *Notifier) Close() error {
	close(n.done)
	var err error
	if n.listener != nil {
		err = n.listener.Close()
	}
	n.wg.Wait()
	return err
}

var _ ports.ChangeFeed = (*Notifier)(nil)
