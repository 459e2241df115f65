// Package server exposes the swarm router and the completion service over
// HTTP: authenticated run dispatch, memory inspection and completion
// streaming (chunked and SSE). It is a thin adapter; all orchestration logic
// stays in the engine packages.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	synapseflow "github.com/hupe1980/synapseflow"
	"github.com/hupe1980/synapseflow/logging"
	"github.com/hupe1980/synapseflow/model"
)

// Options configures the HTTP layer.
type Options struct {
	// Model backs the streaming endpoints. Optional; without one those
	// endpoints answer 503.
	Model model.Model

	// JWTSecret signs and verifies access tokens. Required for the
	// authenticated routes.
	JWTSecret []byte

	// TokenTTL bounds issued tokens. Defaults to one hour.
	TokenTTL time.Duration

	// AllowedOrigins enables CORS handling when non-empty.
	AllowedOrigins []string

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Server holds the handler state shared across routes.
type Server struct {
	swarm  *synapseflow.Swarm
	model  model.Model
	auth   Auth
	logger logging.Logger
}

// New builds the gin engine with all routes attached.
func New(swarm *synapseflow.Swarm, optFns ...func(o *Options)) *gin.Engine {
	opts := Options{
		TokenTTL: time.Hour,
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		swarm:  swarm,
		model:  opts.Model,
		auth:   NewAuth(opts.JWTSecret, opts.TokenTTL),
		logger: opts.Logger,
	}

	g := gin.New()
	g.Use(gin.Recovery())

	if len(opts.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = opts.AllowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		g.Use(cors.New(corsCfg))
	}

	g.GET("/healthz", s.health)
	g.POST("/auth/token", s.auth.Token)

	authed := g.Group("/", s.auth.Middleware())
	authed.POST("/run", s.run)
	authed.GET("/agents", s.agents)
	authed.GET("/memory/:user", s.memoryLog)
	authed.POST("/stream", s.stream)
	authed.GET("/sse_stream", s.sseStream)

	return g
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) agents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": s.swarm.Names()})
}

type runRequest struct {
	Agent  string `json:"agent" binding:"required"`
	UserID string `json:"user_id"`
	Query  string `json:"query" binding:"required"`
}

func (s *Server) run(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = synapseflow.DefaultSwarmUser
	}

	outcome := s.swarm.RunAs(c.Request.Context(), req.Agent, userID, req.Query)
	if !outcome.Found {
		c.JSON(http.StatusNotFound, outcome)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": outcome})
}

func (s *Server) memoryLog(c *gin.Context) {
	a, ok := s.swarm.Agent(c.Query("agent"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"err": "agent not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": a.Memory().Records(c.Param("user"))})
}

type streamRequest struct {
	Query string `json:"query" binding:"required"`
}

// stream writes raw completion fragments as a chunked text/plain body.
func (s *Server) stream(c *gin.Context) {
	if s.model == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "no completion model configured"})
		return
	}

	var req streamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	out, errCh := s.model.Stream(c.Request.Context(), req.Query)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	c.Stream(func(w io.Writer) bool {
		select {
		case chunk, ok := <-out:
			if !ok {
				return false
			}
			_, _ = io.WriteString(w, chunk)
			return true
		case err, ok := <-errCh:
			if ok && err != nil {
				_, _ = io.WriteString(w, "\n[stream error] "+err.Error())
			}
			return false
		}
	})
}

// sseStream relays completion fragments as server-sent events. The query
// text rides in the q parameter; auth accepts the token query parameter so
// EventSource clients can connect without headers.
func (s *Server) sseStream(c *gin.Context) {
	if s.model == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "no completion model configured"})
		return
	}

	out, errCh := s.model.Stream(c.Request.Context(), c.Query("q"))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	c.Stream(func(w io.Writer) bool {
		select {
		case chunk, ok := <-out:
			if !ok {
				return false
			}
			c.SSEvent("message", chunk)
			return true
		case err, ok := <-errCh:
			if ok && err != nil {
				c.SSEvent("message", "[stream error] "+err.Error())
			}
			return false
		}
	})
}
