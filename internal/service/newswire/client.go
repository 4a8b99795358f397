package newswire

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"FinSight/internal/domain/models"
	drepo "FinSight/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client implements a NewsStream backed by a newswire WebSocket feed.
// The wire publishes already-clean article frames per subscribed feed.
type Client struct {
	apiKey         string
	websocketURL   string
	feeds          []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a newswire NewsStream.
func New(apiKey, websocketURL string, feeds []string, reconnectDelay, pingInterval time.Duration) drepo.NewsStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		feeds:          feeds,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("newswire connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("newswire: connected")
	return nil
}

// Subscribe subscribes to configured feeds.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("newswire not connected")
	}
	for _, f := range c.feeds {
		msg := map[string]string{"type": "subscribe", "feed": f}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", f, err)
		}
		log.Printf("newswire: subscribed %s", f)
	}
	return nil
}

type wireArticle struct {
	Source string    `json:"source"`
	Text   string    `json:"text"`
	T      int64     `json:"t"` // ms
	Prices []float64 `json:"prices,omitempty"`
}

type wireMessage struct {
	Type string        `json:"type"`
	Data []wireArticle `json:"data"`
}

// Read streams Article events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.Article, <-chan error) {
	articles := make(chan *models.Article, 256)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(articles)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("newswire conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("newswire read: %w", err)
					return
				}
				var m wireMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-article frames
					continue
				}
				if m.Type != "news" {
					continue
				}
				for _, d := range m.Data {
					article := &models.Article{
						ID:        uuid.NewString(),
						Source:    d.Source,
						Timestamp: time.UnixMilli(d.T),
						Text:      d.Text,
						Prices:    d.Prices,
					}
					select {
					case articles <- article:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return articles, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
