package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
	"github.com/msto63/mRW/internal/euler/service"
	"github.com/msto63/mRW/pkg/core/logging"
)

// WebSocket upgrader with permissive settings for local use
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsReadTimeout = 120 * time.Second

// WebSocketHandler runs calculations over a WebSocket connection
type WebSocketHandler struct {
	service *service.Service
	metrics *Metrics
	logger  *logging.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(svc *service.Service, metrics *Metrics) *WebSocketHandler {
	return &WebSocketHandler{
		service: svc,
		metrics: metrics,
		logger:  logging.New("euler-websocket"),
	}
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`    // "calculate", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSCalculatePayload represents the calculate message payload
type WSCalculatePayload struct {
	RequestID  string                 `json:"request_id,omitempty"`
	Calculator string                 `json:"calculator"`
	Fields     map[string]interface{} `json:"fields"`
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type      string      `json:"type"` // "result", "error", "pong"
	RequestID string      `json:"request_id,omitempty"`
	Payload   interface{} `json:"payload"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// wsConn serializes writes on one connection
type wsConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (c *wsConn) send(resp WSResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.WriteJSON(resp)
}

// handleConnection handles a single WebSocket connection
func (h *WebSocketHandler) handleConnection(parent context.Context, raw *websocket.Conn) {
	conn := &wsConn{Conn: raw}
	defer conn.Close()

	h.metrics.WebSocketClients.Inc()
	defer h.metrics.WebSocketClients.Dec()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Error("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			h.sendResponse(conn, WSResponse{Type: "pong"})

		case "calculate":
			var payload WSCalculatePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(conn, "", mrwerror.CodeInvalidFormat.String(), "invalid calculate payload", "")
				continue
			}
			h.handleCalculate(ctx, conn, payload)

		default:
			h.sendError(conn, "", mrwerror.CodeInvalidInput.String(), "unknown message type: "+msg.Type, "")
		}
	}
}

// handleCalculate runs one calculation and answers with a result or error
func (h *WebSocketHandler) handleCalculate(ctx context.Context, conn *wsConn, payload WSCalculatePayload) {
	fields, err := FlattenFields(payload.Fields)
	if err != nil {
		h.sendError(conn, payload.RequestID, mrwerror.CodeInvalidFormat.String(), err.Error(), "")
		return
	}

	out, err := h.service.Calculate(ctx, payload.Calculator, fields)
	observeOutcome(h.metrics, payload.Calculator, out)
	if err != nil {
		field := ""
		if e, ok := mrwerror.As(err); ok {
			if v, ok := e.Detail("field"); ok {
				field, _ = v.(string)
			}
		}
		h.sendError(conn, payload.RequestID, mrwerror.GetCode(err).String(), err.Error(), field)
		return
	}

	h.sendResponse(conn, WSResponse{Type: "result", RequestID: payload.RequestID, Payload: out})
}

// sendResponse sends a response message via WebSocket
func (h *WebSocketHandler) sendResponse(conn *wsConn, resp WSResponse) {
	if err := conn.send(resp); err != nil {
		h.logger.Error("WebSocket send error", "error", err)
	}
}

// sendError sends an error response via WebSocket
func (h *WebSocketHandler) sendError(conn *wsConn, requestID, code, message, field string) {
	h.sendResponse(conn, WSResponse{
		Type:      "error",
		RequestID: requestID,
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
			Field:   field,
		},
	})
}
