package mwapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"mwi-alchemist/internal/logger"
	"mwi-alchemist/internal/market"

	"github.com/gorilla/websocket"
)

const (
	handshakeTimeout = 10 * time.Second
	readTimeout      = 60 * time.Second
	baseDelay        = 1 * time.Second
	maxDelay         = 60 * time.Second
	maxRetries       = 10
)

// OrderBookHandler receives every order book snapshot the server pushes,
// whether requested or spontaneous.
type OrderBookHandler func(itemHrid string, books market.OrderBooks)

// Client maintains the game WebSocket connection. It reconnects with
// exponential backoff and fans incoming order book snapshots out to
// registered handlers. Safe for concurrent use.
type Client struct {
	url    string
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool

	writeMu sync.Mutex

	handlerMu       sync.RWMutex
	bookHandlers    []OrderBookHandler
	actionObservers []func()
}

func NewClient(url string) *Client {
	return &Client{url: url}
}

// OnOrderBookUpdate registers a handler for pushed snapshots. Handlers run
// on the read loop goroutine and must not block.
func (c *Client) OnOrderBookUpdate(h OrderBookHandler) {
	c.handlerMu.Lock()
	c.bookHandlers = append(c.bookHandlers, h)
	c.handlerMu.Unlock()
}

// OnActionCompleted registers an observer for completed game actions.
func (c *Client) OnActionCompleted(fn func()) {
	c.handlerMu.Lock()
	c.actionObservers = append(c.actionObservers, fn)
	c.handlerMu.Unlock()
}

// Connect starts the connection loop. It returns immediately; use Ready or
// WaitReady to find out when the socket is usable.
func (c *Client) Connect(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go c.connectionLoop(ctx)
}

// Ready reports whether the socket is currently connected.
func (c *Client) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// WaitReady polls the connection state up to attempts times, interval
// apart, and reports whether the socket came up in time.
func (c *Client) WaitReady(ctx context.Context, attempts int, interval time.Duration) bool {
	for i := 0; i < attempts; i++ {
		if c.Ready() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
		}
	}
	return c.Ready()
}

// RequestOrderBooks asks the server for a fresh snapshot of one item. The
// snapshot arrives asynchronously through OnOrderBookUpdate handlers.
func (c *Client) RequestOrderBooks(itemHrid string) error {
	msg, err := encodeOrderBooksRequest(itemHrid)
	if err != nil {
		return err
	}
	return c.threadSafeWrite(websocket.TextMessage, msg)
}

// Disconnect tears the connection down and stops the reconnect loop.
func (c *Client) Disconnect() {
	if c.cancel != nil {
		c.cancel()
	}
	c.closeConnection()
	c.wg.Wait()
}

func (c *Client) connectionLoop(ctx context.Context) {
	defer c.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := c.connect(ctx); err != nil {
			delay := backoff(retryCount)
			logger.Warn("game", fmt.Sprintf("connection failed (%v), retrying in %s", err, delay))
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		} else {
			retryCount = 0
			c.readLoop(ctx)
			logger.Warn("game", "connection lost, reconnecting")
		}
	}
}

func backoff(retryCount int) time.Duration {
	delay := baseDelay << uint(retryCount)
	if delay > maxDelay || delay <= 0 {
		return maxDelay
	}
	return delay
}

func (c *Client) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.url, http.Header{})
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	logger.Success("game", "connected to "+c.url)
	return nil
}

func (c *Client) threadSafeWrite(msgType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteMessage(msgType, data)
}

func (c *Client) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()
		if conn == nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			c.closeConnection()
			return
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg []byte) {
	var env envelope
	if json.Unmarshal(msg, &env) != nil {
		return
	}

	switch env.Type {
	case msgOrderBooksUpdated:
		if env.MarketItemOrderBooks == nil || env.MarketItemOrderBooks.ItemHrid == "" {
			return
		}
		c.handlerMu.RLock()
		handlers := c.bookHandlers
		c.handlerMu.RUnlock()
		for _, h := range handlers {
			h(env.MarketItemOrderBooks.ItemHrid, env.MarketItemOrderBooks.OrderBooks)
		}
	case msgActionCompleted:
		c.handlerMu.RLock()
		observers := c.actionObservers
		c.handlerMu.RUnlock()
		for _, fn := range observers {
			fn()
		}
	}
}

func (c *Client) closeConnection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}
