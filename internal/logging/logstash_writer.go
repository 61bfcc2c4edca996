package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// LogstashWriter mirrors log lines to a Logstash TCP input. Write only
// enqueues; a background goroutine owns the connection, so request logging
// never waits on the network. Lines are dropped while Logstash is
// unreachable or the queue is full.
type LogstashWriter struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration
	queueSize     int
	dial          func(network, addr string, timeout time.Duration) (net.Conn, error)

	queue   chan []byte
	wg      sync.WaitGroup
	dropped atomic.Int64

	mu     sync.Mutex
	closed bool
}

type Option func(*LogstashWriter)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.dialTimeout = d }
}

// WithWriteTimeout overrides the TCP write timeout. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.writeTimeout = d }
}

// WithRetryInterval sets how long lines are dropped after a failed connect
// or write. Defaults to 5 seconds.
func WithRetryInterval(d time.Duration) Option {
	return func(w *LogstashWriter) { w.retryInterval = d }
}

// WithQueueSize bounds the number of lines waiting to be shipped. Defaults
// to 1024.
func WithQueueSize(n int) Option {
	return func(w *LogstashWriter) {
		if n > 0 {
			w.queueSize = n
		}
	}
}

func NewLogstashWriter(addr string, opts ...Option) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	w := &LogstashWriter{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		queueSize:     1024,
		dial:          net.DialTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.queue = make(chan []byte, w.queueSize)

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Write implements io.Writer and always reports the full length unless the
// writer is closed.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	select {
	case w.queue <- line:
	default:
		w.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped reports how many lines never reached Logstash.
func (w *LogstashWriter) Dropped() int64 {
	return w.dropped.Load()
}

// Close ships what is already queued, best effort, and closes the
// connection.
func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
	return nil
}

func (w *LogstashWriter) run() {
	defer w.wg.Done()

	var (
		conn      net.Conn
		nextRetry time.Time
	)
	defer func() {
		if conn != nil {
			_ = conn.Close()
		}
	}()

	for line := range w.queue {
		if conn == nil {
			if time.Now().Before(nextRetry) {
				w.dropped.Add(1)
				continue
			}
			c, err := w.dial("tcp", w.addr, w.dialTimeout)
			if err != nil {
				nextRetry = time.Now().Add(w.retryInterval)
				w.dropped.Add(1)
				continue
			}
			conn = c
		}

		if w.writeTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
		}
		if _, err := conn.Write(line); err != nil {
			_ = conn.Close()
			conn = nil
			nextRetry = time.Now().Add(w.retryInterval)
			w.dropped.Add(1)
		}
	}
}
