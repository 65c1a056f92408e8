package handlers

import (
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/polomanager/polomanager/internal/types"
)

var (
	teamClients   = make(map[uint]map[*websocket.Conn]bool)
	teamClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastTeamRefresh tells every client watching a team that its roster or
// calendar changed and should be refetched.
func BroadcastTeamRefresh(teamID uint) {
	teamClientsMu.RLock()
	clients, exists := teamClients[teamID]
	if !exists || len(clients) == 0 {
		teamClientsMu.RUnlock()
		return
	}

	// Copy the connection set so the lock is not held while writing.
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	teamClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":    "refresh",
			"message": "Team data updated",
			"team_id": teamID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			teamClientsMu.Lock()
			if clients, exists := teamClients[teamID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(teamClients, teamID)
				}
			}
			teamClientsMu.Unlock()
			conn.Close()
		}
	}
}

func TeamFeed(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Team ID is required"})
		return
	}

	team := uint(teamID)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	teamClientsMu.Lock()
	if teamClients[team] == nil {
		teamClients[team] = make(map[*websocket.Conn]bool)
	}
	teamClients[team][conn] = true
	teamClientsMu.Unlock()

	defer func() {
		teamClientsMu.Lock()

		if clients, exists := teamClients[team]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(teamClients, team)
			}
		}

		teamClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for team %d", team)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "WebSocket connection established",
		"team_id": team,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	// Stopping the ticker alone would leave the ping loop parked on its
	// channel; done releases it when the handler returns.
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					log.Printf("Failed to set write deadline for team %d: %v", team, err)
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					log.Printf("Ping failed for team %d: %v", team, err)
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for team %d: %v", team, err)
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for team %d: %v", team, err)
			}
			break
		}

		if messageType == websocket.TextMessage {
			log.Printf("Received message from client in team %d: %s", team, string(message))
		}
	}
}
