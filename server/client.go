package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/cheese/game"
	"github.com/minaorangina/cheese/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// client is one websocket connection watching one game
type client struct {
	server   *GameServer
	conn     *websocket.Conn
	gameID   string
	playerID string
	send     chan []byte
}

func newClient(g *GameServer, conn *websocket.Conn, gameID, playerID string) *client {
	return &client{
		server:   g,
		conn:     conn,
		gameID:   gameID,
		playerID: playerID,
		send:     make(chan []byte, 16),
	}
}

// run streams game updates to the client until the connection drops
func (c *client) run() {
	ctx, cancel := context.WithCancel(context.Background())

	updates, err := c.server.sessions.Subscribe(ctx, c.gameID)
	if err != nil {
		log.Println(err)
		cancel()
		c.conn.Close()
		return
	}

	go c.writePump(ctx, cancel)
	go c.forward(ctx, updates)
	go c.readPump(ctx, cancel)
}

func (c *client) forward(ctx context.Context, updates <-chan game.GameState) {
	for s := range updates {
		c.push(ctx, protocol.StateMessage(c.gameID, s))
	}
}

func (c *client) push(ctx context.Context, msg protocol.OutboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println(err)
		return
	}

	select {
	case c.send <- data:
	case <-ctx.Done():
	}
}

func (c *client) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("game %s: %v", c.gameID, err)
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.push(ctx, protocol.ErrorMessage(c.gameID, fmt.Errorf("malformed message: %w", err)))
			continue
		}

		if err := c.server.dispatch(c.gameID, c.playerID, msg); err != nil {
			c.push(ctx, protocol.ErrorMessage(c.gameID, err))
		}
	}
}

func (c *client) writePump(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		cancel()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// dispatch applies a player's command. The resulting state reaches every
// client through their subscription.
func (g *GameServer) dispatch(gameID, playerID string, msg protocol.InboundMessage) error {
	ctx := context.Background()

	switch msg.Command {
	case protocol.Roll:
		_, started, err := g.sessions.StartRoll(ctx, gameID, playerID)
		if err != nil {
			return err
		}
		if started {
			time.AfterFunc(g.rollDelay, func() {
				if _, err := g.sessions.PostRoll(context.Background(), gameID); err != nil {
					log.Printf("game %s: post roll: %v", gameID, err)
				}
			})
		}
		return nil

	case protocol.SetAside:
		_, err := g.sessions.SetAside(ctx, gameID, playerID, msg.Decision)
		return err

	case protocol.EndTurn:
		_, err := g.sessions.EndTurn(ctx, gameID, playerID, false)
		return err

	case protocol.CutTheCheese:
		_, err := g.sessions.EndTurn(ctx, gameID, playerID, true)
		return err

	case protocol.Start:
		_, err := g.sessions.Start(ctx, gameID, playerID)
		return err

	case protocol.DrawCard:
		_, err := g.sessions.DrawCard(ctx, gameID, playerID)
		return err
	}

	return fmt.Errorf("unsupported command %s", msg.Command)
}
