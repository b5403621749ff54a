// Package graph owns the Neo4j driver lifecycle and executes parameterized
// Cypher statements on behalf of the repositories.
package graph

import (
	"context"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/ferreiralabs/soccergraph/internal/platform/logging"
)

// Config holds the connection settings for a Pool.
type Config struct {
	URI          string
	User         string
	Password     string
	Database     string
	QueryTimeout time.Duration
	MaxPoolSize  int
}

// Pool wraps a neo4j.DriverWithContext with explicit lifecycle management.
// Connect and Close are idempotent; every query runs in its own short-lived
// session against the configured database.
type Pool struct {
	cfg    Config
	logger *logging.Logger

	mu     sync.Mutex
	driver neo4j.DriverWithContext
}

func NewPool(cfg Config, logger *logging.Logger) *Pool {
	if logger == nil {
		logger = logging.Default()
	}

	return &Pool{
		cfg:    cfg,
		logger: logger,
	}
}

// Connect establishes and verifies the driver connection. Calling Connect on
// an already connected pool is a no-op.
func (p *Pool) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.driver != nil {
		p.logger.WarnContext(ctx, "graph pool already connected", "uri", p.cfg.URI)
		return nil
	}

	driver, err := neo4j.NewDriverWithContext(
		p.cfg.URI,
		neo4j.BasicAuth(p.cfg.User, p.cfg.Password, ""),
		func(c *neo4j.Config) {
			if p.cfg.MaxPoolSize > 0 {
				c.MaxConnectionPoolSize = p.cfg.MaxPoolSize
			}
		},
	)
	if err != nil {
		return classify(err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return classify(err)
	}

	p.driver = driver
	p.logger.InfoContext(ctx, "graph pool connected",
		"uri", p.cfg.URI,
		"database", p.cfg.Database,
	)

	return nil
}

// Close releases the driver. Calling Close on a disconnected pool is a no-op.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.driver == nil {
		return nil
	}

	err := p.driver.Close(ctx)
	p.driver = nil
	if err != nil {
		return classify(err)
	}
	p.logger.InfoContext(ctx, "graph pool closed")

	return nil
}

func (p *Pool) connection() (neo4j.DriverWithContext, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.driver == nil {
		return nil, ErrNotConnected
	}

	return p.driver, nil
}

// ExecuteRead runs a read statement and returns one map per record, keyed by
// the RETURN aliases.
func (p *Pool) ExecuteRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	driver, err := p.connection()
	if err != nil {
		return nil, err
	}

	ctx, cancel := p.queryContext(ctx)
	defer cancel()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: p.cfg.Database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		p.logQueryFailure(ctx, query, params, err)
		return nil, newQueryError(query, params, err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		p.logQueryFailure(ctx, query, params, err)
		return nil, newQueryError(query, params, err)
	}

	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.AsMap())
	}

	return rows, nil
}

// WriteSummary reports the counters of a completed write statement.
type WriteSummary struct {
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
}

// ExecuteWrite runs a write statement and returns the update counters.
func (p *Pool) ExecuteWrite(ctx context.Context, query string, params map[string]any) (WriteSummary, error) {
	driver, err := p.connection()
	if err != nil {
		return WriteSummary{}, err
	}

	ctx, cancel := p.queryContext(ctx)
	defer cancel()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: p.cfg.Database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		p.logQueryFailure(ctx, query, params, err)
		return WriteSummary{}, newQueryError(query, params, err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		p.logQueryFailure(ctx, query, params, err)
		return WriteSummary{}, newQueryError(query, params, err)
	}

	counters := summary.Counters()

	return WriteSummary{
		NodesCreated:         counters.NodesCreated(),
		NodesDeleted:         counters.NodesDeleted(),
		RelationshipsCreated: counters.RelationshipsCreated(),
		RelationshipsDeleted: counters.RelationshipsDeleted(),
		PropertiesSet:        counters.PropertiesSet(),
	}, nil
}

const (
	StatusHealthy      = "healthy"
	StatusUnhealthy    = "unhealthy"
	StatusDisconnected = "disconnected"
)

// Health describes the outcome of a connectivity probe.
type Health struct {
	Status     string `json:"status"`
	Connected  bool   `json:"connected"`
	TotalNodes int64  `json:"total_nodes"`
}

// HealthCheck probes the database with a cheap count query. It never returns
// an error; failures are folded into the status.
func (p *Pool) HealthCheck(ctx context.Context) Health {
	if _, err := p.connection(); err != nil {
		return Health{Status: StatusDisconnected}
	}

	rows, err := p.ExecuteRead(ctx, "MATCH (n) RETURN count(n) AS total_nodes", nil)
	if err != nil || len(rows) == 0 {
		p.logger.WarnContext(ctx, "graph health probe failed", "error", err)
		return Health{Status: StatusUnhealthy, Connected: true}
	}

	total, _ := rows[0]["total_nodes"].(int64)

	return Health{
		Status:     StatusHealthy,
		Connected:  true,
		TotalNodes: total,
	}
}

func (p *Pool) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.QueryTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, p.cfg.QueryTimeout)
}

func (p *Pool) logQueryFailure(ctx context.Context, query string, params map[string]any, err error) {
	p.logger.ErrorContext(ctx, "graph query failed",
		"query", query,
		"params", params,
		"error", err,
	)
}
