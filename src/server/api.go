package server

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"wellness-observer/src/interfaces"
	"wellness-observer/src/logger"
	"wellness-observer/src/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// FastAPIServer
// -----------------------------------------------------------------------------

type FastAPIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Database interfaces.IDatabase
	engine   *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MLatestData // Strongly typed and Buffered Queue
	register   chan *Client
	unregister chan *Client

	// Local cache
	latestState *models.MLatestData
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewFastAPIServer(cfg *models.MConfig, db interfaces.IDatabase, logger *logger.Logger) *FastAPIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &FastAPIServer{
		Config:   cfg,
		Logger:   logger,
		Database: db,
		engine:   gin.Default(),
		clients:  make(map[*Client]struct{}),
		// Buffered channel to prevent lock/blocking
		// Queue size of 256 ensures we can handle bursts of updates
		broadcast:  make(chan *models.MLatestData, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		latestState: &models.MLatestData{
			Type:     "INITIAL",
			Features: make(map[string]any),
		},
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *FastAPIServer) setupRoutes() {
	// REST API endpoints
	s.engine.POST("/api/requests", s.postRequest)
	s.engine.GET("/api/requests/pending", s.getPendingRequests)
	s.engine.GET("/api/features", s.getFeatures)
	s.engine.GET("/api/health", s.getHealth)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *FastAPIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) Stop() error {
	// Clean shutdown
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

type requestBody struct {
	UserID         string         `json:"userId" binding:"required"`
	CreatedAt      int64          `json:"createdAt"`
	ClientFeatures map[string]any `json:"clientFeatures"`
	Label          *string        `json:"label"`
	LabelCategory  *string        `json:"labelCategory"`
}

// postRequest enqueues a feature-build request. createdAt is the anchor in
// unix milliseconds and may be historical; zero means "now".
func (s *FastAPIServer) postRequest(c *gin.Context) {
	var body requestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	createdAt := body.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}

	clientFeatures := "{}"
	if body.ClientFeatures != nil {
		b, err := json.Marshal(body.ClientFeatures)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid clientFeatures"})
			return
		}
		clientFeatures = string(b)
	}

	req := models.MFeatureRequest{
		ID:             uuid.NewString(),
		UserID:         body.UserID,
		CreatedAt:      createdAt,
		ClientFeatures: clientFeatures,
		Label:          body.Label,
		LabelCategory:  body.LabelCategory,
		Status:         models.RequestStatusPending,
	}

	if err := s.Database.EnqueueRequest(req); err != nil {
		s.Logger.Error("Failed to enqueue request: %v", err)
		c.JSON(500, gin.H{"error": "failed to enqueue request"})
		return
	}

	c.JSON(201, gin.H{"id": req.ID, "status": req.Status})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getPendingRequests(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "userId query parameter is required"})
		return
	}

	requests, err := s.Database.ListPendingRequests(userID)
	if err != nil {
		s.Logger.Error("Failed to list pending requests: %v", err)
		c.JSON(500, gin.H{"error": "failed to list pending requests"})
		return
	}
	if requests == nil {
		requests = []models.MFeatureRequest{}
	}

	c.JSON(200, gin.H{"requests": requests})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getFeatures(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(400, gin.H{"error": "invalid limit"})
			return
		}
		limit = v
	}

	rows, err := s.Database.ListFeatures(limit)
	if err != nil {
		s.Logger.Error("Failed to list features: %v", err)
		c.JSON(500, gin.H{"error": "failed to list features"})
		return
	}
	if rows == nil {
		rows = []models.MFeatureRow{}
	}

	c.JSON(200, gin.H{"features": rows})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":        "ok",
		"connections":   connections,
		"latest_update": timestamp,
	})
}
