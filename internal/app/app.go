// Package app assembles the service: configuration, graph pool,
// repositories, use cases, and the HTTP tool surface.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ferreiralabs/soccergraph/internal/config"
	"github.com/ferreiralabs/soccergraph/internal/graph"
	"github.com/ferreiralabs/soccergraph/internal/infrastructure/repository/graphdb"
	"github.com/ferreiralabs/soccergraph/internal/interfaces/toolapi"
	"github.com/ferreiralabs/soccergraph/internal/platform/cache"
	"github.com/ferreiralabs/soccergraph/internal/platform/logging"
	"github.com/ferreiralabs/soccergraph/internal/usecase"
)

// NewGraphPool builds the shared connection pool from config. The caller
// owns the Connect/Close lifecycle.
func NewGraphPool(cfg config.Config, logger *logging.Logger) *graph.Pool {
	return graph.NewPool(graph.Config{
		URI:          cfg.Neo4jURI,
		User:         cfg.Neo4jUser,
		Password:     cfg.Neo4jPassword,
		Database:     cfg.Neo4jDatabase,
		QueryTimeout: cfg.Neo4jQueryTimeout,
		MaxPoolSize:  cfg.Neo4jMaxPoolSize,
	}, logger)
}

func NewHTTPServer(cfg config.Config, pool *graph.Pool, logger *logging.Logger) (*http.Server, error) {
	playerRepo := graphdb.NewPlayerRepository(pool)
	teamRepo := graphdb.NewTeamRepository(pool)
	matchRepo := graphdb.NewMatchRepository(pool)
	competitionRepo := graphdb.NewCompetitionRepository(pool)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	playerSvc := usecase.NewPlayerService(playerRepo, cfg.MaxResults)
	teamSvc := usecase.NewTeamService(teamRepo, cfg.MaxResults)
	matchSvc := usecase.NewMatchService(matchRepo, teamRepo, cfg.MaxResults)
	competitionSvc := usecase.NewCompetitionService(competitionRepo, store, cfg.MaxResults)
	analysisSvc := usecase.NewAnalysisService(playerRepo, teamRepo, matchRepo)

	handler := toolapi.NewHandler(playerSvc, teamSvc, matchSvc, competitionSvc, analysisSvc, pool, logger)
	router := toolapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// ConnectGraph connects the pool and logs the backend node count so a
// misconfigured database shows up at startup, not on the first query.
func ConnectGraph(ctx context.Context, pool *graph.Pool, logger *logging.Logger) error {
	if err := pool.Connect(ctx); err != nil {
		return fmt.Errorf("connect graph: %w", err)
	}

	health := pool.HealthCheck(ctx)
	if health.Status != graph.StatusHealthy {
		return fmt.Errorf("graph backend unhealthy: status=%s", health.Status)
	}
	logger.InfoContext(ctx, "graph backend connected", "total_nodes", health.TotalNodes)

	return nil
}
