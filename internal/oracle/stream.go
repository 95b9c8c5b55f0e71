package oracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ProgressMessage is one cosmetic progress update for an in-flight batch.
// The feed never gates results; a run completes or fails through RunBatch
// regardless of what arrives here.
type ProgressMessage struct {
	BatchID    string `json:"batch_id"`
	ConfigID   string `json:"config_id,omitempty"`
	GamesDone  int    `json:"games_done"`
	TotalGames int    `json:"total_games"`
	Message    string `json:"message,omitempty"`
}

// ProgressHandler is called for every progress message received.
type ProgressHandler func(msg ProgressMessage)

// ReconnectConfig controls reconnection behavior
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultReconnectConfig returns recommended reconnect settings.
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        5,
		InitialBackoff:    time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// ProgressStream handles the WebSocket connection to the oracle's batch
// progress feed.
type ProgressStream struct {
	url             string
	conn            *websocket.Conn
	mu              sync.RWMutex
	isConnected     bool
	handlers        []ProgressHandler
	reconnectConfig ReconnectConfig
	logger          *logrus.Logger
}

// NewProgressStream creates a progress stream client for the given ws URL.
func NewProgressStream(url string, logger *logrus.Logger) *ProgressStream {
	return &ProgressStream{
		url:             url,
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// OnProgress registers a handler invoked for every message.
func (s *ProgressStream) OnProgress(handler ProgressHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Connect dials the progress feed.
func (s *ProgressStream) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	s.conn = conn
	s.isConnected = true
	s.logger.WithField("url", s.url).Debug("Connected to oracle progress stream")
	return nil
}

// Listen reads progress messages until the context is cancelled or the
// connection drops beyond the reconnect budget.
func (s *ProgressStream) Listen(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.mu.RLock()
		conn := s.conn
		connected := s.isConnected
		s.mu.RUnlock()

		if !connected || conn == nil {
			if err := s.reconnect(ctx); err != nil {
				return err
			}
			continue
		}

		var msg ProgressMessage
		if err := conn.ReadJSON(&msg); err != nil {
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			s.logger.WithError(err).Warn("Progress stream read failed, reconnecting")
			continue
		}

		s.dispatch(msg)
	}
}

// Close shuts down the stream connection.
func (s *ProgressStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isConnected = false
	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}

func (s *ProgressStream) dispatch(msg ProgressMessage) {
	s.mu.RLock()
	handlers := make([]ProgressHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.RUnlock()

	for _, h := range handlers {
		h(msg)
	}
}

func (s *ProgressStream) reconnect(ctx context.Context) error {
	backoff := s.reconnectConfig.InitialBackoff

	for attempt := 1; attempt <= s.reconnectConfig.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		if err := s.Connect(ctx); err == nil {
			return nil
		}

		backoff = time.Duration(float64(backoff) * s.reconnectConfig.BackoffMultiplier)
		if backoff > s.reconnectConfig.MaxBackoff {
			backoff = s.reconnectConfig.MaxBackoff
		}
		s.logger.WithField("attempt", attempt).Warn("Progress stream reconnect failed")
	}

	return ErrStreamClosed
}
