package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
	updatesBuffer   = 64
)

const actionGameState = "game:state"

type gameEngine interface {
	Snapshot() entity.Snapshot
	MakeTurn(cell int) entity.Snapshot
	Reset() entity.Snapshot
	ResetScores() entity.Snapshot
	SetMode(mode entity.Mode) entity.Snapshot
	ToggleMode() entity.Snapshot
	Subscribe(observer usecase.Observer) func()
}

type handlerFunc func(ctx context.Context, message *Message, conn *connection) error

type Server struct {
	logger *slog.Logger
	engine gameEngine

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc

	connectionsMutex sync.Mutex
	connections      map[string]*connection
}

// connection serializes writes to one client.
type connection struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *connection) send(action string, payload Payload) error {
	data, err := encodeMessage(action, payload)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// close sends a close frame with code and reason. The connection is closed by the caller.
func (that *connection) close(code int, reason string) error {
	message := websocket.FormatCloseMessage(code, reason)

	return that.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeTimeout))
}

func New(logger *slog.Logger, engine gameEngine) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		engine: engine,

		upgrader: websocket.Upgrader{
			HandshakeTimeout: writeTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		},
		handlers:    make(map[string]handlerFunc),
		connections: make(map[string]*connection),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers["game:turn"] = server.handleGameTurn
	server.handlers["game:reset"] = server.handleGameReset
	server.handlers["game:mode"] = server.handleGameMode
	server.handlers["scores:reset"] = server.handleScoresReset

	return server
}

// Handler - returns the HTTP handler that upgrades requests on /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server. Every engine change is pushed to all clients until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	stop := that.Broadcast(ctx)
	defer stop()

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(ctx),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}

		that.closeConnections()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Broadcast subscribes to the engine and forwards snapshots to every connection.
// The returned function stops forwarding.
func (that *Server) Broadcast(ctx context.Context) func() {
	updates := make(chan entity.Snapshot, updatesBuffer)
	done := make(chan struct{})

	unsubscribe := that.engine.Subscribe(func(snapshot entity.Snapshot) {
		select {
		case updates <- snapshot:
		case <-done:
		case <-ctx.Done():
		}
	})

	go func() {
		for {
			select {
			case snapshot := <-updates:
				that.broadcast(snapshot)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}
}

func (that *Server) broadcast(snapshot entity.Snapshot) {
	log := that.logger.With("method", "broadcast")

	that.connectionsMutex.Lock()
	connections := make([]*connection, 0, len(that.connections))
	for _, conn := range that.connections {
		connections = append(connections, conn)
	}
	that.connectionsMutex.Unlock()

	for _, conn := range connections {
		if err := conn.send(actionGameState, Payload{Game: &snapshot}); err != nil {
			log.Error("failed to push game state", "connection", conn.id, "error", err)
		}
	}
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		// the upgrader has already answered with an HTTP error
		log.Debug("failed to upgrade connection", "error", err)
		return
	}

	defer wsConn.Close()

	// the server's read timeout must not apply to a long-lived socket
	if err = wsConn.SetReadDeadline(time.Time{}); err != nil {
		log.Error("failed to clear read deadline", "error", err)
		return
	}

	wsConn.SetReadLimit(maxMessageSize)

	conn := &connection{
		id:   pkg.GenerateConnectionID(),
		conn: wsConn,
	}

	that.addConnection(conn)
	defer that.removeConnection(conn)

	log = log.With("connection", conn.id)
	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until it closes the connection.
// Pings, pongs and the closing handshake are answered by the websocket library.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "HandleMessages", "connection", conn.id)

	for {
		messageType, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
				errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		if messageType != websocket.TextMessage {
			return conn.close(websocket.CloseUnsupportedData, ErrBinaryMessage.Error())
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = that.sendErrorResponse(conn, "", fmt.Errorf("%w: %w", apperror.ErrBadRequest, err)); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("error processing message", "action", message.Action, "error", errUnknownAction(message.Action))
			if err = that.sendErrorResponse(conn, message.Action, errUnknownAction(message.Action)); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) addConnection(conn *connection) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	that.connections[conn.id] = conn
}

func (that *Server) removeConnection(conn *connection) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	delete(that.connections, conn.id)
}

func (that *Server) closeConnections() {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for _, conn := range that.connections {
		if err := conn.conn.Close(); err != nil {
			that.logger.Error("failed to close connection", "connection", conn.id, "error", err)
		}
	}
}
