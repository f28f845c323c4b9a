// Package transport is the adapter layer (C7, §6): it decodes wire
// messages into internal/ot values, drives internal/room, and encodes
// replies. It carries no algorithmic content of its own — everything
// here is plumbing around internal/room.Registry.
//
// Structurally this replaces kolabpad's pkg/server (a hand-rolled
// net/http mux) with github.com/gin-gonic/gin, the HTTP framework used
// by three of the five pack repos, and keeps nhooyr.io/websocket —
// kolabpad's own choice — as the realtime transport underneath gin's
// routing.
package transport

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewq/collabcode/internal/room"
	"github.com/andrewq/collabcode/pkg/logger"
)

// Server is the HTTP surface described in §6: GET /create/, GET
// /editor/, and the WebSocket upgrade endpoint the editor page opens
// against.
type Server struct {
	registry *room.Registry
	hubs     *hubRegistry
	engine   *gin.Engine
}

// NewServer builds a gin.Engine with the three routes wired to a fresh
// room.Registry.
func NewServer(templatesGlob string) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	if templatesGlob != "" {
		engine.SetHTMLTemplate(template.Must(template.ParseGlob(templatesGlob)))
	}

	s := &Server{
		registry: room.NewRegistry(),
		hubs:     newHubRegistry(),
		engine:   engine,
	}

	engine.GET("/create/", s.handleCreate)
	engine.GET("/editor/", s.handleEditor)
	engine.GET("/ws", s.handleWebSocket)

	return s
}

// Handler returns the http.Handler to pass to http.Server / ListenAndServe.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// handleCreate implements `GET /create/` (§6): allocate a room and
// redirect into it, mirroring original_source/server.py's create().
func (s *Server) handleCreate(c *gin.Context) {
	id, _, err := s.registry.Create()
	if err != nil {
		logger.Error("create room failed", "error", err)
		c.String(http.StatusInternalServerError, "could not create a new room")
		return
	}

	logger.Info("room created", "room_id", id)
	c.HTML(http.StatusOK, "redirect_to_editor.html", gin.H{"Target": id})
}

// handleEditor implements `GET /editor/?editor_id=<id>` (§6): render
// the editor for an existing room, or an error page for an unknown id.
func (s *Server) handleEditor(c *gin.Context) {
	id := c.Query("editor_id")
	if id == "" {
		c.HTML(http.StatusOK, "editor_home.html", gin.H{"IsError": false})
		return
	}

	r, ok := s.registry.Get(id)
	if !ok {
		c.HTML(http.StatusOK, "editor_home.html", gin.H{"IsError": true})
		return
	}

	c.HTML(http.StatusOK, "editor.html", gin.H{"Document": r.Text()})
}
