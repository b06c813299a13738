// Package api exposes solving, generation, and the puzzle library over
// JSON HTTP.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GabrielTofvesson/sudoku/internal/board"
	"github.com/GabrielTofvesson/sudoku/internal/generator"
	"github.com/GabrielTofvesson/sudoku/internal/puzzle"
	"github.com/GabrielTofvesson/sudoku/internal/solver"
	"github.com/GabrielTofvesson/sudoku/internal/storage"
)

// Config tunes the API server.
type Config struct {
	// Engine selects the solver backend: "backtrack" (default) or
	// "sat".
	Engine string
	// Timeout bounds each solve and generate request. Zero means no
	// limit.
	Timeout time.Duration
	// HiddenSingles is passed through to the backtracking solver.
	HiddenSingles bool
	// Store holds saved puzzles. Required.
	Store *storage.Store
}

type handler struct {
	cfg Config
}

// NewRouter builds the HTTP API around the given configuration.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	h := &handler{cfg: cfg}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/solve", h.solve)
		v1.POST("/generate", h.generate)
		v1.GET("/puzzles", h.list)
		v1.GET("/puzzles/:id", h.get)
	}

	return r
}

// requestLogger writes one zerolog line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

type solveRequest struct {
	Puzzle string `json:"puzzle" binding:"required"`
}

type solveResponse struct {
	Solution   string                      `json:"solution"`
	Grid       [board.Size][board.Size]int `json:"grid"`
	Placements int                         `json:"placements"`
	Guesses    int                         `json:"guesses"`
	DurationMS int64                       `json:"duration_ms"`
}

func (h *handler) solve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}

	b, err := puzzle.ParseString(req.Puzzle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid puzzle", "message": err.Error()})
		return
	}

	start := time.Now()
	solved, stats, err := h.runSolve(b)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, solver.ErrTimeout) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": "unsolvable", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, solveResponse{
		Solution:   solved.String(),
		Grid:       solved.Grid(),
		Placements: stats.Placements,
		Guesses:    stats.Guesses,
		DurationMS: time.Since(start).Milliseconds(),
	})
}

func (h *handler) runSolve(b *board.Board) (*board.Board, solver.Stats, error) {
	if h.cfg.Engine == "sat" {
		solved, err := solver.SolveSAT(b)
		return solved, solver.Stats{}, err
	}

	s := solver.New(b, &solver.Options{
		Timeout:       h.cfg.Timeout,
		HiddenSingles: h.cfg.HiddenSingles,
	})
	solved, err := s.Solve()
	return solved, s.Stats(), err
}

type generateRequest struct {
	Clues  int   `json:"clues"`
	Seed   int64 `json:"seed"`
	Unique *bool `json:"unique"`
	Save   bool  `json:"save"`
}

func (h *handler) generate(c *gin.Context) {
	req := generateRequest{Clues: generator.DefaultClueCount}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
		return
	}
	if req.Clues < generator.MinValidClueCount || req.Clues > generator.MaxValidClueCount {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"message": generator.ErrInvalidClueCount.Error(),
		})
		return
	}

	opts := generator.DefaultOptions(req.Clues)
	opts.Seed = req.Seed
	if req.Unique != nil {
		opts.EnsureUnique = *req.Unique
	}
	if h.cfg.Timeout > 0 {
		opts.Timeout = h.cfg.Timeout
	}

	puz, sol, err := generator.New(opts).Generate()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "generation failed", "message": err.Error()})
		return
	}

	rec := &storage.Puzzle{
		Clues:      puz.ClueCount(),
		Difficulty: solver.Difficulty(puz),
		Puzzle:     puz.String(),
		Solution:   sol.String(),
	}
	if req.Save {
		if err := h.cfg.Store.Save(c.Request.Context(), rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed", "message": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, rec)
}

func (h *handler) list(c *gin.Context) {
	puzzles, err := h.cfg.Store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"puzzles": puzzles, "count": len(puzzles)})
}

func (h *handler) get(c *gin.Context) {
	p, err := h.cfg.Store.Load(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "message": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}
