package server

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------
// OpsServer
// -----------------------------------------------------------------------------

// OpsServer is the service-mode HTTP surface: health, run status from the
// journal, the latest delivered briefing, a manual trigger, and a websocket
// feed pushing each briefing as it is delivered.
type OpsServer struct {
	Config  *models.MConfig
	Logger  *logger.Logger
	Journal interfaces.IRunJournal
	engine  *gin.Engine

	// Trigger fires one briefing run; second return is false when a run is
	// already in flight.
	Trigger func() (models.SessionMode, bool, error)

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan models.MBriefing
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// Local cache of the last delivered briefing
	latest     *models.MBriefing
	stateMutex sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewOpsServer(cfg *models.MConfig, journal interfaces.IRunJournal) *OpsServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &OpsServer{
		Config:  cfg,
		Logger:  logger.NewLogger(cfg.LogLevel, "OpsServer"),
		Journal: journal,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered so a slow hub tick never blocks the briefing pipeline
		broadcast:  make(chan models.MBriefing, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}

	// CORS middleware for local dashboards
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *OpsServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/status", s.getStatus)
	s.engine.GET("/api/briefing", s.getBriefing)
	s.engine.POST("/api/trigger", s.postTrigger)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *OpsServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting ops server on %s", addr)

	go s.runHub()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

// Stop terminates the hub loop. The command channels stay open so a late
// Broadcast or register from an in-flight request cannot panic; their sends
// simply park in the buffer.
func (s *OpsServer) Stop() error {
	close(s.done)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *OpsServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	var lastDelivered int64
	if s.latest != nil {
		lastDelivered = s.latest.GeneratedAt.Unix()
	}
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":         "ok",
		"connections":    connections,
		"last_delivered": lastDelivered,
	})
}

// -----------------------------------------------------------------------------

func (s *OpsServer) getStatus(c *gin.Context) {
	last, err := s.Journal.LastRun()
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if last == nil {
		c.JSON(200, gin.H{"status": "no runs recorded"})
		return
	}
	c.JSON(200, last)
}

// -----------------------------------------------------------------------------

func (s *OpsServer) getBriefing(c *gin.Context) {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()

	if s.latest == nil {
		c.JSON(404, gin.H{"error": "no briefing delivered yet"})
		return
	}
	c.JSON(200, s.latest)
}

// -----------------------------------------------------------------------------

func (s *OpsServer) postTrigger(c *gin.Context) {
	if s.Trigger == nil {
		c.JSON(503, gin.H{"error": "trigger not wired"})
		return
	}

	mode, ran, err := s.Trigger()
	if !ran {
		c.JSON(409, gin.H{"error": "a run is already in progress"})
		return
	}
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"mode": mode.String()})
}
