package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ideal206/fitlens/internal/imaging"
	"github.com/ideal206/fitlens/internal/posedetect"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// maxPreviewClients caps concurrent preview sessions. Each frame runs the
// full detector, so an unbounded client set would starve measurement
// requests.
const maxPreviewClients = 4

// PreviewHandler runs live pose preview over WebSocket: the client streams
// binary JPEG/PNG frames, the server answers each with the detected
// landmarks. Clients use it to help the user line up a usable full-body
// shot before submitting a measurement request.
type PreviewHandler struct {
	detector posedetect.Detector
	clients  map[*websocket.Conn]bool
	mu       sync.Mutex
}

// NewPreviewHandler creates a new PreviewHandler with the given detector.
func NewPreviewHandler(d posedetect.Detector) *PreviewHandler {
	return &PreviewHandler{
		detector: d,
		clients:  make(map[*websocket.Conn]bool),
	}
}

type previewFrame struct {
	Detected   bool                  `json:"detected"`
	Confidence float64               `json:"confidence,omitempty"`
	Landmarks  []posedetect.Landmark `json:"landmarks,omitempty"`
	Error      string                `json:"error,omitempty"`
	Timestamp  int64                 `json:"timestamp"`
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if len(h.clients) >= maxPreviewClients {
		h.mu.Unlock()
		http.Error(w, "Too many preview sessions", http.StatusServiceUnavailable)
		return
	}
	h.mu.Unlock()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		if err := conn.WriteJSON(h.process(data)); err != nil {
			break
		}
	}
}

// process runs detection on one client frame.
func (h *PreviewHandler) process(data []byte) previewFrame {
	frame := previewFrame{Timestamp: time.Now().UnixMilli()}

	mat, err := imaging.Decode(data)
	if err != nil {
		frame.Error = "frame did not decode"
		return frame
	}
	defer mat.Close()

	result, err := h.detector.Detect(mat)
	if err != nil {
		frame.Error = "detection failed"
		return frame
	}
	if result == nil {
		return frame
	}

	frame.Detected = true
	frame.Confidence = result.Confidence
	frame.Landmarks = result.Landmarks[:]
	return frame
}
