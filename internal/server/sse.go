package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Batch stream event names.
const (
	eventProgress = "progress"
	eventComplete = "complete"
	eventError    = "error"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// batchStream writes a batch run as Server-Sent Events. Every event carries a
// sequence id so clients can tell dropped events apart from a slow batch.
// Progress callbacks arrive from worker goroutines, so writes are serialized.
type batchStream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
	closed  bool
}

func newBatchStream(w http.ResponseWriter) (*batchStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &batchStream{w: w, flusher: flusher}, nil
}

// Progress reports one finished resume.
func (b *batchStream) Progress(p types.BatchProgress) error {
	return b.send(eventProgress, p, false)
}

// Complete sends the final report and ends the stream.
func (b *batchStream) Complete(report *types.BatchReport) error {
	return b.send(eventComplete, report, true)
}

// Fail sends the error that aborted the batch and ends the stream.
func (b *batchStream) Fail(err error) error {
	return b.send(eventError, map[string]string{"error": err.Error()}, true)
}

func (b *batchStream) send(event string, data any, final bool) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return fmt.Errorf("%s event after end of stream", event)
	}
	b.seq++
	b.closed = final
	if _, err := fmt.Fprintf(b.w, "id: %d\nevent: %s\ndata: %s\n\n", b.seq, event, payload); err != nil {
		return err
	}
	b.flusher.Flush()
	return nil
}
