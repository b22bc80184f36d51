// Package api implements the HTTP/WebSocket control plane: the boundary
// spec.md section 6 describes as consumed by CLI and agent collaborators.
// Routing, auth, and rate-limiting are carried over near-verbatim from the
// teacher's internal/api package (routes.go, auth.go, ratelimit.go,
// websocket.go), generalized from "block-scan progress over a Bitcoin
// RPC" to "discovery-pipeline progress over an in-process run registry".
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/latticeforge/discovery/internal/discovery"
	"github.com/latticeforge/discovery/internal/novelty"
	"github.com/latticeforge/discovery/internal/pipeline"
	"github.com/latticeforge/discovery/internal/seeds"
	"github.com/latticeforge/discovery/internal/signature"
	"github.com/latticeforge/discovery/internal/telemetry"
)

// Handler wires every HTTP/WebSocket route to the pipeline, novelty
// store, run registry, and discovery feed.
type Handler struct {
	baseConfig   pipeline.Config
	store        novelty.Store
	runs         *RunStore
	discoveries  *discoveryFeed
	wsHub        *Hub
	log          *telemetry.Logger
}

// NewHandler constructs a Handler. wsHub must already be running (its
// Run method started in its own goroutine) for broadcasts to deliver.
func NewHandler(baseConfig pipeline.Config, store novelty.Store, wsHub *Hub, log *telemetry.Logger) *Handler {
	if log == nil {
		log = telemetry.NewNop()
	}
	return &Handler{
		baseConfig:  baseConfig,
		store:       store,
		runs:        NewRunStore(),
		discoveries: newDiscoveryFeed(),
		wsHub:       wsHub,
		log:         log.Component("api"),
	}
}

// RouterConfig governs route setup: the auth token (empty disables
// auth), allowed CORS origins ("*" or empty allows any), and the rate
// limit applied to POST /v1/explore.
type RouterConfig struct {
	AuthToken          string
	AllowedOrigins     string
	ExploreRatePerMin  int
	ExploreRateBurst   int
}

// SetupRouter builds the gin.Engine: CORS middleware, public routes
// (health, structures, discoveries, the websocket feed), and
// auth+rate-limited routes (explore).
func SetupRouter(h *Handler, rc RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(rc.AllowedOrigins))

	pub := r.Group("/v1")
	{
		pub.GET("/health", h.handleHealth)
		pub.GET("/structures", h.handleListStructures)
		pub.GET("/discoveries", h.handleListDiscoveries)
		pub.GET("/runs/:id", h.handleGetRun)
		pub.DELETE("/runs/:id", h.handleCancelRun)
		pub.GET("/ws/discoveries", h.wsHub.Subscribe)
	}

	protected := r.Group("/v1")
	protected.Use(AuthMiddleware(rc.AuthToken, h.log))
	ratePerMin, burst := rc.ExploreRatePerMin, rc.ExploreRateBurst
	if ratePerMin <= 0 {
		ratePerMin = 10
	}
	if burst <= 0 {
		burst = 3
	}
	protected.Use(NewRateLimiter(ratePerMin, burst).WeightedMiddleware(exploreRequestWeight))
	{
		protected.POST("/explore", h.handleExplore)
	}

	return r
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range splitAndTrim(allowedOrigins, ",") {
				if allowed == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func splitAndTrim(s, sep string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || string(s[i]) == sep {
			part := trimSpace(s[start:i])
			if part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "operational",
		"engine": "algebraic structure discovery engine",
	})
}

func (h *Handler) handleListStructures(c *gin.Context) {
	names := seeds.Names()
	c.JSON(http.StatusOK, gin.H{"structures": names})
}

// exploreRequest is the POST /v1/explore body: which seeds to start
// from (by catalog name; empty means every catalog entry) and an
// optional depth override.
type exploreRequest struct {
	Seeds []string `json:"seeds"`
	Depth int      `json:"depth"`
}

// exploreRequestWeight peeks the requested depth out of the body before
// handleExplore binds it, so the rate limiter can charge
// ExplorationWeight(depth) instead of a flat 1. The body is buffered
// back onto the request so handleExplore's own ShouldBindJSON still
// sees it.
func exploreRequestWeight(c *gin.Context) float64 {
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return 1
	}
	var req exploreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return 1
	}
	return ExplorationWeight(req.Depth)
}

func (h *Handler) handleExplore(c *gin.Context) {
	var req exploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var seedSigs []*signature.Signature
	var seedNames []string
	if len(req.Seeds) == 0 {
		seedSigs = seeds.All()
		seedNames = seeds.Names()
	} else {
		for _, name := range req.Seeds {
			sig, err := seeds.ByName(name)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			seedSigs = append(seedSigs, sig)
			seedNames = append(seedNames, name)
		}
	}

	cfg := h.baseConfig
	if req.Depth > 0 {
		cfg.Depth = req.Depth
	}

	run := &Run{
		ID:        uuid.NewString(),
		State:     RunQueued,
		SeedNames: seedNames,
		Depth:     cfg.Depth,
		StartedAt: time.Now(),
	}
	h.runs.Put(run)

	ctx, cancel := context.WithCancel(context.Background())
	run.cancel = cancel

	go h.runExplore(ctx, run.ID, cfg, seedSigs)

	c.JSON(http.StatusAccepted, gin.H{"runId": run.ID, "status": string(RunQueued)})
}

func (h *Handler) runExplore(ctx context.Context, runID string, cfg pipeline.Config, seedSigs []*signature.Signature) {
	h.runs.Update(runID, func(r *Run) { r.State = RunRunning })

	pipe := pipeline.New(cfg, h.store, h.log)
	candidates, err := pipe.Run(ctx, seedSigs)

	h.runs.Update(runID, func(r *Run) {
		r.Candidates = candidates
		r.CompletedAt = time.Now()
		if err != nil {
			r.State = RunFailed
			r.Error = err.Error()
			return
		}
		r.State = RunCompleted
	})

	for _, cand := range candidates {
		doc := discovery.New(cand.Signature, cand.Breakdown, cand.Description, time.Now(), runID)
		h.discoveries.add(doc)
		if h.store != nil {
			_ = h.store.Record(context.Background(), doc.Fingerprint, doc.Name)
		}
		if h.wsHub != nil {
			if payload, err := json.Marshal(doc.ToMap()); err == nil {
				h.wsHub.Broadcast(runID, payload)
			}
		}
	}
}

func (h *Handler) handleGetRun(c *gin.Context) {
	id := c.Param("id")
	run, ok := h.runs.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown run id"})
		return
	}

	resp := gin.H{
		"runId":       run.ID,
		"status":      string(run.State),
		"seeds":       run.SeedNames,
		"depth":       run.Depth,
		"startedAt":   run.StartedAt.Format(time.RFC3339Nano),
		"numCandidates": len(run.Candidates),
	}
	if run.State == RunFailed {
		resp["error"] = run.Error
	}
	if run.State == RunCompleted {
		docs := make([]map[string]any, 0, len(run.Candidates))
		for _, cand := range run.Candidates {
			doc := discovery.New(cand.Signature, cand.Breakdown, cand.Description, run.CompletedAt, run.ID)
			docs = append(docs, doc.ToMap())
		}
		resp["candidates"] = docs
		resp["completedAt"] = run.CompletedAt.Format(time.RFC3339Nano)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleCancelRun(c *gin.Context) {
	id := c.Param("id")
	run, ok := h.runs.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown run id"})
		return
	}
	if run.cancel != nil {
		run.cancel()
	}
	c.JSON(http.StatusAccepted, gin.H{"runId": id, "status": "cancelling"})
}

func (h *Handler) handleListDiscoveries(c *gin.Context) {
	docs := h.discoveries.list()
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ToMap())
	}
	c.JSON(http.StatusOK, gin.H{"discoveries": out})
}
