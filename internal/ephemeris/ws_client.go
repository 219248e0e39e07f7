package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"astro-chart-lab/internal/domain"
)

// WSConfig configures WebSocket client behavior.
type WSConfig struct {
	// ReconnectDelay is initial delay before reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is timeout for writing messages.
	WriteTimeout time.Duration
}

// DefaultWSConfig returns default WebSocket configuration.
func DefaultWSConfig() WSConfig {
	return WSConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// WSClient implements StreamClient using gorilla/websocket. It resubscribes
// to the active planet set automatically after a reconnect.
type WSClient struct {
	endpoint string
	config   WSConfig

	conn   *websocket.Conn
	connMu sync.Mutex
	closed atomic.Bool

	// frames is the single delivery channel shared by all subscriptions.
	frames   chan PositionFrame
	framesMu sync.Mutex

	// activePlanets stores the subscribed set for resubscription after reconnect.
	activePlanets   []domain.Planet
	activePlanetsMu sync.RWMutex

	done chan struct{}
	wg   sync.WaitGroup
}

// Compile-time interface check.
var _ StreamClient = (*WSClient)(nil)

// NewWSClient creates a streaming client and connects to the endpoint.
func NewWSClient(ctx context.Context, endpoint string, config *WSConfig) (*WSClient, error) {
	cfg := DefaultWSConfig()
	if config != nil {
		cfg = *config
	}

	c := &WSClient{
		endpoint: endpoint,
		config:   cfg,
		frames:   make(chan PositionFrame, 256),
		done:     make(chan struct{}),
	}

	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	c.wg.Add(1)
	go c.readLoop()

	c.wg.Add(1)
	go c.pingLoop()

	return c, nil
}

// connect establishes the WebSocket connection.
func (c *WSClient) connect(ctx context.Context) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}

	c.conn = conn
	return nil
}

// wsSubscribeRequest is the subscription message format.
type wsSubscribeRequest struct {
	Action  string          `json:"action"`
	Planets []domain.Planet `json:"planets"`
}

// SubscribePositions subscribes to live frames for the given planets and
// returns the shared delivery channel. Calling it again replaces the
// active planet set.
func (c *WSClient) SubscribePositions(ctx context.Context, planets []domain.Planet) (<-chan PositionFrame, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("client closed")
	}

	c.activePlanetsMu.Lock()
	c.activePlanets = append([]domain.Planet(nil), planets...)
	c.activePlanetsMu.Unlock()

	if err := c.sendSubscribe(planets); err != nil {
		return nil, err
	}
	return c.frames, nil
}

func (c *WSClient) sendSubscribe(planets []domain.Planet) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected")
	}

	c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	req := wsSubscribeRequest{Action: "subscribe", Planets: planets}
	if err := c.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("write subscribe: %w", err)
	}
	return nil
}

// readLoop reads frames and dispatches them until shutdown, reconnecting
// with exponential backoff on read failure.
func (c *WSClient) readLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		default:
		}

		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()
		if conn == nil {
			if !c.reconnect() {
				return
			}
			continue
		}

		conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if c.closed.Load() {
				return
			}
			if !c.reconnect() {
				return
			}
			continue
		}

		var frame PositionFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			// Skip malformed frames; the feed interleaves acks and data.
			continue
		}
		if frame.Planet == "" {
			continue
		}

		select {
		case c.frames <- frame:
		case <-c.done:
			return
		default:
			// Drop the frame when the consumer lags; transit sampling
			// tolerates gaps.
		}
	}
}

// reconnect re-establishes the connection and resubscribes the active
// planet set. Returns false when the client was closed during reconnect.
func (c *WSClient) reconnect() bool {
	delay := c.config.ReconnectDelay

	for {
		select {
		case <-c.done:
			return false
		case <-time.After(delay):
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := c.connect(ctx)
		cancel()
		if err == nil {
			c.activePlanetsMu.RLock()
			planets := append([]domain.Planet(nil), c.activePlanets...)
			c.activePlanetsMu.RUnlock()

			if len(planets) == 0 {
				return true
			}
			if err := c.sendSubscribe(planets); err == nil {
				return true
			}
		}

		delay *= 2
		if delay > c.config.MaxReconnectDelay {
			delay = c.config.MaxReconnectDelay
		}
	}
}

// pingLoop sends ping frames to keep the connection alive.
func (c *WSClient) pingLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.connMu.Lock()
			if c.conn != nil {
				c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.config.WriteTimeout))
			}
			c.connMu.Unlock()
		}
	}
}

// Close terminates the connection and all subscriptions.
func (c *WSClient) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	close(c.done)

	c.connMu.Lock()
	if c.conn != nil {
		c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(c.config.WriteTimeout),
		)
		c.conn.Close()
	}
	c.connMu.Unlock()

	c.wg.Wait()
	close(c.frames)
	return nil
}
