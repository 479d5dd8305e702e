package connection

import (
	"errors"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"

	"alertd/internal/models"
	"alertd/internal/providers"
	"alertd/internal/structures"
)

// State is the connection lifecycle state. Not persisted.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
	Reconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

const (
	eventBuffer  = 256
	controlWait  = 5 * time.Second
	closeTimeout = time.Second
)

var ErrNotConnected = errors.New("not connected")

// Dialer abstracts the websocket dial for tests. *websocket.Dialer
// satisfies it.
type Dialer interface {
	Dial(urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

type ManagerInterface interface {
	Connect() error
	Disconnect()
	Subscribe(channels []string) error
	Unsubscribe(channels []string) error
	State() State
	Events() <-chan *models.AlertEvent
	LatestScores() map[string]int
}

// Manager owns exactly one logical connection to the alert backend. A
// transport or ping failure tears the connection down and retries after a
// fixed delay, forever, until Disconnect is called. Decoded alert events
// are published on the Events channel; the consumer serializes ingestion.
type Manager struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	dialer  Dialer

	state atomic.Int32
	// gen is bumped on every explicit Disconnect. Goroutines belonging to
	// a previous generation see the mismatch and stop instead of
	// reconnecting.
	gen atomic.Uint64

	mu      sync.Mutex // guards conn and done
	conn    *websocket.Conn
	done    chan struct{}
	writeMu sync.Mutex // one frame writer at a time

	events chan *models.AlertEvent

	scoresMu sync.RWMutex
	scores   map[string]int
}

func NewManager(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ManagerInterface {
	return &Manager{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		dialer:  &websocket.Dialer{HandshakeTimeout: conf.Connection.HandshakeTimeout},
		events:  make(chan *models.AlertEvent, eventBuffer),
		scores:  make(map[string]int),
	}
}

// NewManagerWithDialer is the test seam.
func NewManagerWithDialer(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, dialer Dialer) ManagerInterface {
	m := NewManager(conf, logger, metrics).(*Manager)
	m.dialer = dialer
	return m
}

func (m *Manager) State() State {
	return State(m.state.Load())
}

func (m *Manager) setState(s State) {
	m.state.Store(int32(s))
	m.metrics.SetConnectionState(int(s))
}

func (m *Manager) Events() <-chan *models.AlertEvent {
	return m.events
}

func (m *Manager) LatestScores() map[string]int {
	m.scoresMu.RLock()
	defer m.scoresMu.RUnlock()

	out := make(map[string]int, len(m.scores))
	for k, v := range m.scores {
		out[k] = v
	}
	return out
}

// Connect dials the configured endpoint, starts the receive and keep-alive
// loops and subscribes the configured channel set. A dial failure kicks off
// the reconnect cycle; Connect itself returns the first error.
func (m *Manager) Connect() error {
	return m.connect(m.gen.Load())
}

func (m *Manager) connect(gen uint64) error {
	m.mu.Lock()
	if m.gen.Load() != gen {
		m.mu.Unlock()
		return nil
	}
	if s := m.State(); s == Connected || s == Connecting {
		m.mu.Unlock()
		return nil
	}
	m.setState(Connecting)

	url := m.conf.Connection.URL
	conn, _, err := m.dialer.Dial(url, nil)
	if err != nil {
		m.mu.Unlock()
		m.logger.Warnf(providers.TypeConn, "Dial %s failed: %s", url, err)
		go m.scheduleReconnect(gen)
		return err
	}

	m.conn = conn
	m.done = make(chan struct{})
	done := m.done
	m.setState(Connected)
	m.mu.Unlock()

	m.logger.Infof(providers.TypeConn, "Connected to %s", url)

	if err := m.Subscribe(m.conf.Connection.Channels); err != nil {
		m.logger.Warnf(providers.TypeConn, "Subscribe failed: %s", err)
	}

	go m.readLoop(conn, gen)
	go m.pingLoop(conn, done, gen)
	return nil
}

// Disconnect is the explicit, owner-initiated teardown. It cancels the
// receive and ping loops and suppresses any further reconnect attempt
// until Connect is called again.
func (m *Manager) Disconnect() {
	m.gen.Inc()
	m.teardownConn()
	m.setState(Disconnected)
	m.logger.Infof(providers.TypeConn, "Disconnected")
}

func (m *Manager) teardownConn() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done != nil {
		close(m.done)
		m.done = nil
	}
	if m.conn != nil {
		_ = m.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeTimeout),
		)
		_ = m.conn.Close()
		m.conn = nil
	}
}

// scheduleReconnect owns the Connected/Connecting -> Reconnecting
// transition. When the read loop and the ping loop fail at the same time
// only one of them wins the CAS; the other returns.
func (m *Manager) scheduleReconnect(gen uint64) {
	if m.gen.Load() != gen {
		return
	}
	if !m.state.CompareAndSwap(int32(Connected), int32(Reconnecting)) &&
		!m.state.CompareAndSwap(int32(Connecting), int32(Reconnecting)) {
		return
	}
	m.metrics.SetConnectionState(int(Reconnecting))
	m.metrics.IncReconnects()
	m.teardownConn()

	delay := m.conf.Connection.ReconnectDelay
	m.logger.Infof(providers.TypeConn, "Reconnecting in %s", delay)

	// Fixed delay, no backoff, unbounded retries.
	time.Sleep(delay)
	if m.gen.Load() != gen {
		return
	}
	_ = m.connect(gen)
}

// reconnectIfCurrent enters the reconnect cycle only when conn is still the
// live connection. A loop belonging to an already replaced connection that
// errors late must not tear down its healthy successor.
func (m *Manager) reconnectIfCurrent(conn *websocket.Conn, gen uint64) {
	m.mu.Lock()
	current := m.conn == conn
	m.mu.Unlock()
	if !current {
		return
	}
	m.scheduleReconnect(gen)
}

func (m *Manager) readLoop(conn *websocket.Conn, gen uint64) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if m.gen.Load() == gen {
				m.logger.Warnf(providers.TypeConn, "Receive failed: %s", err)
				m.reconnectIfCurrent(conn, gen)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil || !frame.valid() {
			m.metrics.IncFramesDropped()
			m.logger.Debugf(providers.TypeConn, "Dropping undecodable frame (%d bytes)", len(data))
			continue
		}

		switch frame.Type {
		case frameAlert:
			select {
			case m.events <- frame.Alert:
			default:
				m.logger.Warnf(providers.TypeConn, "Event queue full, dropping alert %s", frame.Alert.ID)
			}
		case frameScores:
			m.setScores(frame.Scores)
		case frameSubscribed:
			m.logger.Debugf(providers.TypeConn, "Subscribed: %v", frame.Channels)
		case frameUnsubscribed:
			m.logger.Debugf(providers.TypeConn, "Unsubscribed: %v", frame.Channels)
		}
	}
}

func (m *Manager) pingLoop(conn *websocket.Conn, done chan struct{}, gen uint64) {
	ticker := time.NewTicker(m.conf.Connection.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(controlWait))
			if err != nil {
				if m.gen.Load() == gen {
					m.logger.Warnf(providers.TypeConn, "Ping failed: %s", err)
					m.reconnectIfCurrent(conn, gen)
				}
				return
			}
		}
	}
}

func (m *Manager) Subscribe(channels []string) error {
	return m.writeControlFrame(frameSubscribe, channels)
}

func (m *Manager) Unsubscribe(channels []string) error {
	return m.writeControlFrame(frameUnsubscribe, channels)
}

func (m *Manager) writeControlFrame(frameType string, channels []string) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(controlFrame{Type: frameType, Channels: channels})
	if err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (m *Manager) setScores(scores map[string]int) {
	m.scoresMu.Lock()
	defer m.scoresMu.Unlock()

	for k, v := range scores {
		m.scores[k] = v
	}
}
