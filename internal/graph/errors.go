package graph

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var (
	// ErrNotConnected is returned when a query runs before Connect or after Close.
	ErrNotConnected = errors.New("graph: not connected")
	// ErrAuthentication is returned when the server rejects the configured credentials.
	ErrAuthentication = errors.New("graph: authentication failed")
	// ErrUnavailable is returned when the server cannot be reached.
	ErrUnavailable = errors.New("graph: server unavailable")
)

// QueryError wraps a driver failure together with the statement that caused
// it. The query and parameters are for logs only and must never reach an
// API response.
type QueryError struct {
	Query  string
	Params map[string]any
	cause  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("graph: query failed: %v", e.cause)
}

func (e *QueryError) Unwrap() error {
	return e.cause
}

func newQueryError(query string, params map[string]any, cause error) error {
	return errors.WithStack(&QueryError{
		Query:  query,
		Params: params,
		cause:  classify(cause),
	})
}

// classify maps driver errors onto the package sentinels so callers can
// branch without importing the driver.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == "Neo.ClientError.Security.Unauthorized" {
		return errors.Wrap(ErrAuthentication, neoErr.Msg)
	}
	if neo4j.IsConnectivityError(err) {
		return errors.Wrapf(ErrUnavailable, "%v", err)
	}

	return err
}
