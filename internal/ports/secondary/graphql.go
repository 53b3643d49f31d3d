package secondary

import (
	"context"
	"encoding/json"
	"iter"
)

// FetchPolicy controls how a watched query uses the local query cache.
type FetchPolicy int

const (
	// CacheAndNetwork yields the cached result, if any, then the network result.
	CacheAndNetwork FetchPolicy = iota
	// CacheFirst yields the cached result and only goes to the network on a miss.
	CacheFirst
	// NetworkOnly never reads the cache.
	NetworkOnly
)

// String returns the policy name used in logs and metrics.
func (p FetchPolicy) String() string {
	switch p {
	case CacheAndNetwork:
		return "cache-and-network"
	case CacheFirst:
		return "cache-first"
	case NetworkOnly:
		return "network-only"
	default:
		return "unknown"
	}
}

// Request is a single GraphQL operation.
type Request struct {
	// Name identifies the operation in logs, metrics and cache keys.
	Name      string
	Document  string
	Variables map[string]any
	// ResultPath selects the part of the response data that is returned,
	// as a dotted path such as "allQuestions.edges". Empty returns all data.
	ResultPath string
}

// WatchResult is one emission of a watched query.
type WatchResult struct {
	Data      json.RawMessage
	FromCache bool
}

// Executor defines the secondary port for running GraphQL operations.
type Executor interface {
	// WatchQuery yields the query result once per source allowed by policy,
	// cached result first. Iteration stops at the first error.
	WatchQuery(ctx context.Context, req Request, policy FetchPolicy) iter.Seq2[WatchResult, error]

	// Query runs a query against the network.
	Query(ctx context.Context, req Request) (json.RawMessage, error)

	// Mutate runs a mutation.
	Mutate(ctx context.Context, req Request) (json.RawMessage, error)
}
