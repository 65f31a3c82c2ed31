// Package simulator is the wire client for the household simulator process.
// Commands go out as JSON; each reply carries a base64 PNG frame plus the
// object and inventory metadata, decoded and validated here once so the
// rest of the module works with typed snapshots.
package simulator

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/agentsim/thorgym/pkg/core"
)

const resetAction = "Reset"

// Client talks to the simulator over a websocket. The simulator is a single
// exclusive resource: the mutex guarantees at most one outstanding command.
// The connection is acquired at construction and released by Close.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Dial connects to the simulator at the given websocket URL, e.g.
// "ws://localhost:9200/session".
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing simulator at %s: %w", url, err)
	}
	log.Printf("connected to simulator at %s", url)
	return &Client{conn: conn}, nil
}

// NewClient wraps an already-established connection. Used by tests.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// Reset loads the target scene and returns its snapshot.
func (c *Client) Reset(ctx context.Context, sceneID string) (*core.Snapshot, error) {
	return c.Step(ctx, core.Command{Action: resetAction, SceneID: sceneID})
}

// Step sends one command and blocks until the simulator replies with a new
// snapshot. Commands are fully ordered; there is no cancellation of a
// command once it has been written.
func (c *Client) Step(ctx context.Context, cmd core.Command) (*core.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetWriteDeadline(deadline)
		c.conn.SetReadDeadline(deadline)
	}

	if err := c.conn.WriteJSON(cmd); err != nil {
		return nil, fmt.Errorf("sending %s command: %w", cmd.Action, err)
	}

	var ev event
	if err := c.conn.ReadJSON(&ev); err != nil {
		return nil, fmt.Errorf("reading %s reply: %w", cmd.Action, err)
	}
	snap, err := ev.snapshot()
	if err != nil {
		return nil, fmt.Errorf("decoding %s reply: %w", cmd.Action, err)
	}
	return snap, nil
}

// Close releases the simulator connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
