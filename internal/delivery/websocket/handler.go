package websocket

import (
	"log"
	"net/http"
	"time"

	"sentinel-backend/internal/domain"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

type Handler struct {
	repo domain.ResultRepository
}

func NewHandler(repo domain.ResultRepository) *Handler {
	return &Handler{
		repo: repo,
	}
}

// Handle upgrades the connection and streams the latest scan results, first
// immediately and then on a fixed poll interval.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	log.Println("New client connected")

	if err := conn.WriteJSON(h.repo.GetResults()); err != nil {
		log.Println("Write error:", err)
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteJSON(h.repo.GetResults()); err != nil {
			log.Println("Write error:", err)
			return
		}
	}
}
