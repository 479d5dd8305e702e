// feedsim is a standalone websocket feed simulator for manual testing.
// It speaks the same wire protocol as the real alert backend: clients
// subscribe to channels and receive randomized alert and live_scores
// frames at a configurable rate.
//
// Usage:
//
//	go run ./tests/feedsim -addr :18091 -rate 2s -scores 5s
//
// then point the daemon at ws://127.0.0.1:18091/ws.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var alertTypes = []string{
	"priceChange", "injury", "lateOut", "roleChange", "tradeDeadline",
	"captainReminder", "breakingNews", "milestone", "system",
}

var players = []struct {
	id   string
	name string
}{
	{"p1001", "M. Rowell"},
	{"p1002", "T. English"},
	{"p1003", "N. Daicos"},
	{"p1004", "E. Gulden"},
	{"p1005", "H. Sheezel"},
	{"p1006", "Z. Merrett"},
}

type controlFrame struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels,omitempty"`
}

type alertPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	PlayerID  string    `json:"playerId,omitempty"`
}

type pushFrame struct {
	Type   string         `json:"type"`
	Alert  *alertPayload  `json:"alert,omitempty"`
	Scores map[string]int `json:"scores,omitempty"`
}

// client is one connected daemon with its channel subscriptions.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu       sync.Mutex
	channels map[string]bool
}

func (c *client) subscribed(channel string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channels[channel]
}

func (c *client) send(frame pushFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type simulator struct {
	mu      sync.Mutex
	clients map[*client]bool
	rng     *rand.Rand
	rngMu   sync.Mutex
}

func newSimulator() *simulator {
	return &simulator{
		clients: make(map[*client]bool),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *simulator) add(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = true
}

func (s *simulator) remove(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}

func (s *simulator) snapshot() []*client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		out = append(out, c)
	}
	return out
}

func (s *simulator) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func (s *simulator) randomAlert() *alertPayload {
	at := alertTypes[s.intn(len(alertTypes))]
	p := players[s.intn(len(players))]
	return &alertPayload{
		ID:        uuid.NewString(),
		Title:     p.name,
		Message:   fmt.Sprintf("%s update for %s", at, p.name),
		Type:      at,
		Timestamp: time.Now(),
		PlayerID:  p.id,
	}
}

func (s *simulator) randomScores() map[string]int {
	scores := make(map[string]int, len(players))
	for _, p := range players {
		scores[p.id] = s.intn(160)
	}
	return scores
}

// pushAlerts broadcasts one random alert per tick to subscribers of the
// alerts channel.
func (s *simulator) pushAlerts(rate time.Duration) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	for range ticker.C {
		frame := pushFrame{Type: "alert", Alert: s.randomAlert()}
		for _, c := range s.snapshot() {
			if !c.subscribed("alerts") {
				continue
			}
			if err := c.send(frame); err != nil {
				log.Printf("push alert: %v", err)
			}
		}
	}
}

func (s *simulator) pushScores(rate time.Duration) {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	for range ticker.C {
		frame := pushFrame{Type: "live_scores", Scores: s.randomScores()}
		for _, c := range s.snapshot() {
			if !c.subscribed("scores") {
				continue
			}
			if err := c.send(frame); err != nil {
				log.Printf("push scores: %v", err)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func (s *simulator) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade: %v", err)
		return
	}

	c := &client{conn: conn, channels: make(map[string]bool)}
	s.add(c)
	log.Printf("client connected: %s", conn.RemoteAddr())

	defer func() {
		s.remove(c)
		_ = conn.Close()
		log.Printf("client gone: %s", conn.RemoteAddr())
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var ctrl controlFrame
		if err := json.Unmarshal(data, &ctrl); err != nil {
			log.Printf("bad frame from %s: %v", conn.RemoteAddr(), err)
			continue
		}

		switch ctrl.Type {
		case "subscribe":
			c.mu.Lock()
			for _, ch := range ctrl.Channels {
				c.channels[ch] = true
			}
			c.mu.Unlock()
			ack(c, "subscribed", ctrl.Channels)
			log.Printf("%s subscribed to %v", conn.RemoteAddr(), ctrl.Channels)
		case "unsubscribe":
			c.mu.Lock()
			for _, ch := range ctrl.Channels {
				delete(c.channels, ch)
			}
			c.mu.Unlock()
			ack(c, "unsubscribed", ctrl.Channels)
		default:
			log.Printf("unknown control frame %q from %s", ctrl.Type, conn.RemoteAddr())
		}
	}
}

func ack(c *client, frameType string, channels []string) {
	data, err := json.Marshal(controlFrame{Type: frameType, Channels: channels})
	if err != nil {
		return
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.WriteMessage(websocket.TextMessage, data)
}

func main() {
	addr := flag.String("addr", ":18091", "listen address")
	rate := flag.Duration("rate", 2*time.Second, "interval between alert pushes")
	scores := flag.Duration("scores", 5*time.Second, "interval between live score pushes")
	flag.Parse()

	sim := newSimulator()
	go sim.pushAlerts(*rate)
	go sim.pushScores(*scores)

	http.HandleFunc("/ws", sim.handleWS)

	fmt.Printf("=== Alert Feed Simulator ===\n")
	fmt.Printf("Listening on ws://%s/ws | alerts every %s | scores every %s\n", *addr, *rate, *scores)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
