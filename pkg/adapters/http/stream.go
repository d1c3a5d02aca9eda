package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/ports"
)

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe(sessionID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "session_id", sessionID, "payload_size", len(msg))

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// publish sends a frame to the session's subscribers.
func (s *Server) publish(resp FrameResponse) {
	bytes, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("Frame encode failed", "session_id", resp.SessionID, "err", err)
		return
	}
	s.Streams.Broadcast(resp.SessionID, string(bytes))
}

// SubscribeEvents handles the GET /events request (SSE).
// With session_id it streams that session's frames; without it, it streams
// the IDs of changed library examples.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.streamLibrary(w, r, flusher)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to Session Updates", "session_id", sessionID)
	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	var watchList []string
	if watch := r.URL.Query().Get("watch"); watch != "" {
		watchList = strings.Split(watch, ",")
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watchList) > 0 && !matchesWatch(msg, watchList) {
				continue
			}
			fmt.Fprintf(w, "event: frame\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// matchesWatch reports whether a frame's diff touches any watched field.
// Frames that cannot be decoded are always delivered.
func matchesWatch(msg string, watchList []string) bool {
	var frame struct {
		Diff *domain.StateDiff `json:"diff"`
	}
	if err := json.Unmarshal([]byte(msg), &frame); err != nil {
		return true
	}
	if frame.Diff == nil {
		return false
	}
	for _, field := range watchList {
		switch strings.TrimSpace(field) {
		case "state":
			if len(frame.Diff.State) > 0 {
				return true
			}
		case "history":
			if frame.Diff.Appended > 0 || frame.Diff.Cleared {
				return true
			}
		}
	}
	return false
}

func (s *Server) streamLibrary(w http.ResponseWriter, r *http.Request, flusher http.Flusher) {
	watchable, ok := s.Library.(ports.Watchable)
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Errorf("no watchable example library configured"))
		return
	}
	events, err := watchable.Watch(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Errorf("watch error: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to library changes")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: example\ndata: %s\n\n", id)
			flusher.Flush()
		}
	}
}
