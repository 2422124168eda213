// Command server runs a thin HTTP front-end over the search engine: it
// decodes a query, calls engine.Engine.Search, and encodes the ranked
// rows. Request routing, auth and multi-tenant backend selection are
// explicitly out of the core's scope; this is the minimal shell a
// complete repo still has to ship something for.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eci-voterfind/voterfind/internal/candidate"
	"github.com/eci-voterfind/voterfind/internal/config"
	"github.com/eci-voterfind/voterfind/internal/diagnostics"
	"github.com/eci-voterfind/voterfind/internal/engine"
	"github.com/eci-voterfind/voterfind/internal/entity"
	"github.com/eci-voterfind/voterfind/internal/rank"
)

// maxQueryGraphemes bounds accepted query length, measured in grapheme
// clusters rather than codepoints so a name heavy with matras is not
// penalized for its combining marks.
const maxQueryGraphemes = 64

var (
	addr    = flag.String("addr", "", "HTTP listen address (empty = config default)")
	dbPath  = flag.String("db", "", "bbolt index snapshot path (empty = config default)")
	verbose = flag.Bool("verbose", false, "log every request's candidate/result counts")
)

// searchRequest is the request body for POST /v1/search.
type searchRequest struct {
	Query     string   `json:"query" binding:"required"`
	ACs       []string `json:"acs" binding:"required"`
	Scope     string   `json:"scope"`
	ExactOnly bool     `json:"exact_only"`
}

// searchResultRow is one row of POST /v1/search's response.
type searchResultRow struct {
	AC              string  `json:"ac"`
	RowID           uint64  `json:"row_id"`
	SerialNo        int64   `json:"serial_no"`
	VoterNameRaw    string  `json:"voter_name_raw"`
	RelativeNameRaw string  `json:"relative_name_raw"`
	Key             []int64 `json:"key"`
	Detail          string  `json:"detail"`
}

type searchResponse struct {
	Results []searchResultRow   `json:"results"`
	Errors  []searchResultError `json:"errors,omitempty"`
	Count   int                 `json:"count"`
}

type searchResultError struct {
	AC  string `json:"ac"`
	Err string `json:"error"`
}

// server bundles the engine and request-independent config the gin
// handlers close over — a thin orchestrator over the engine, nothing more.
type server struct {
	eng *engine.Engine
	cfg *config.Config
}

func main() {
	flag.Parse()
	cfg := config.Load()
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if *dbPath != "" {
		cfg.IndexDBPath = *dbPath
	}

	factory := engine.NewBackendFactory(&engine.BackendConfig{
		PreferredOrder: []string{"bbolt", "memory"},
		BoltPath:       cfg.IndexDBPath,
	})
	log.Printf("[server] backend resolved to %q", factory.BestName())

	eng := engine.New(factory.Best(), cfg.RankConfig())
	eng.Prefix = cfg.PrefixParams()
	eng.Concurrency = engine.HostCPUCount()

	s := &server{eng: eng, cfg: cfg}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/v1")
	{
		v1.GET("/health", s.handleHealth)
		v1.POST("/search", s.handleSearch)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("[server] listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[server] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[server] shutdown error: %v", err)
	}
	log.Println("[server] stopped")
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if n := entity.SafeGraphemeCount(req.Query); n > maxQueryGraphemes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("query too long: %d graphemes (max %d)", n, maxQueryGraphemes)})
		return
	}

	scope := candidate.ScopeAnywhere
	switch req.Scope {
	case "voter":
		scope = candidate.ScopeVoter
	case "relative":
		scope = candidate.ScopeRelative
	}

	cfg := s.cfg.RankConfig()
	cfg.ExactOnly = cfg.ExactOnly || req.ExactOnly
	eng := &engine.Engine{Backend: s.eng.Backend, Config: cfg, Prefix: s.eng.Prefix, Concurrency: s.eng.Concurrency}

	start := time.Now()
	rows, acErrs, err := eng.Search(c.Request.Context(), req.Query, req.ACs, scope, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := searchResponse{Results: make([]searchResultRow, 0, len(rows))}
	for _, r := range rows {
		resp.Results = append(resp.Results, searchResultRow{
			AC:              r.AC,
			RowID:           r.Row.RowID,
			SerialNo:        r.Row.SerialNo,
			VoterNameRaw:    r.Row.VoterNameRaw,
			RelativeNameRaw: r.Row.RelativeNameRaw,
			Key:             []int64(r.Key),
			Detail:          diagnostics.Explain(req.Scope, rank.Result{OK: true, Key: r.Key, Detail: r.Detail}),
		})
	}
	resp.Count = len(resp.Results)
	for _, e := range acErrs {
		resp.Errors = append(resp.Errors, searchResultError{AC: e.AC, Err: e.Err.Error()})
	}

	if *verbose {
		log.Printf("[server] query=%q acs=%d results=%d errs=%d latency=%s", req.Query, len(req.ACs), resp.Count, len(resp.Errors), time.Since(start))
	}
	c.JSON(http.StatusOK, resp)
}
