package loki

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	pushPath      = "/loki/api/v1/push"
	flushBatch    = 20
	flushInterval = time.Second
)

// Writer buffers log lines and ships them to Loki's push API. It is an io.Writer so it can
// sit behind a slog handler next to stdout.
type Writer struct {
	url    string
	labels map[string]string
	client *http.Client
	mu     sync.Mutex
	buf    []entry
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

type entry struct {
	ts   time.Time
	line string
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// NewWriter returns a Writer pushing to baseURL (e.g. http://loki:3100) with a job label,
// or nil when baseURL or job is empty.
func NewWriter(baseURL, job, env string) *Writer {
	if baseURL == "" || job == "" {
		return nil
	}
	labels := map[string]string{"job": job}
	if env != "" {
		labels["env"] = env
	}
	w := &Writer{
		url:    strings.TrimSuffix(baseURL, "/") + pushPath,
		labels: labels,
		client: &http.Client{Timeout: 5 * time.Second},
		buf:    make([]entry, 0, 64),
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
	}
	go w.flushLoop()
	return w
}

func (w *Writer) Write(p []byte) (n int, err error) {
	now := time.Now()
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.mu.Lock()
		w.buf = append(w.buf, entry{ts: now, line: string(line)})
		needFlush := len(w.buf) >= flushBatch
		w.mu.Unlock()
		if needFlush {
			w.flush()
		}
	}
	return len(p), nil
}

func (w *Writer) flushLoop() {
	for {
		select {
		case <-w.done:
			return
		case <-w.ticker.C:
			w.flush()
		}
	}
}

// flush drops the batch when Loki is unreachable; logging must never block requests.
func (w *Writer) flush() {
	w.mu.Lock()
	if len(w.buf) == 0 {
		w.mu.Unlock()
		return
	}
	entries := w.buf
	w.buf = make([]entry, 0, 64)
	w.mu.Unlock()

	values := make([][2]string, len(entries))
	for i, e := range entries {
		values[i] = [2]string{strconv.FormatInt(e.ts.UnixNano(), 10), e.line}
	}
	raw, err := json.Marshal(pushRequest{Streams: []stream{{Stream: w.labels, Values: values}}})
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Close stops the background flusher and pushes whatever is still buffered.
func (w *Writer) Close() error {
	w.once.Do(func() {
		w.ticker.Stop()
		close(w.done)
		w.flush()
	})
	return nil
}
