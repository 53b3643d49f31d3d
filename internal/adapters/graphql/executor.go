// Package graphql implements the Executor port over HTTP.
package graphql

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"

	machinebox "github.com/machinebox/graphql"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/example/formbuilder/internal/ports/secondary"
)

// ErrNoData is returned when the response has nothing at the request's ResultPath.
var ErrNoData = errors.New("no data in response")

// Executor implements secondary.Executor with a GraphQL HTTP client and an
// optional query cache.
type Executor struct {
	client  *machinebox.Client
	cache   secondary.QueryCache
	headers map[string]string
	logger  *zap.Logger
}

// NewExecutor creates an Executor for endpoint. cache may be nil, in which
// case every watched query goes to the network. headers are sent with every
// request.
func NewExecutor(endpoint string, httpClient *http.Client, cache secondary.QueryCache, headers map[string]string, logger *zap.Logger) *Executor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("graphql")

	client := machinebox.NewClient(endpoint, machinebox.WithHTTPClient(httpClient))
	client.Log = func(s string) { logger.Debug(s) }

	return &Executor{
		client:  client,
		cache:   cache,
		headers: headers,
		logger:  logger,
	}
}

// WatchQuery yields the cached result first when policy allows it, then the
// network result, which is written back to the cache.
func (e *Executor) WatchQuery(ctx context.Context, req secondary.Request, policy secondary.FetchPolicy) iter.Seq2[secondary.WatchResult, error] {
	return func(yield func(secondary.WatchResult, error) bool) {
		key, err := CacheKey(req)
		if err != nil {
			yield(secondary.WatchResult{}, err)
			return
		}

		if e.cache != nil && policy != secondary.NetworkOnly {
			data, ok, err := e.cache.Get(ctx, key)
			switch {
			case err != nil:
				e.logger.Warn("cache read failed", zap.String("operation", req.Name), zap.Error(err))
			case ok:
				if !yield(secondary.WatchResult{Data: data, FromCache: true}, nil) {
					return
				}
				if policy == secondary.CacheFirst {
					return
				}
			}
		}

		data, err := e.run(ctx, req)
		if err != nil {
			yield(secondary.WatchResult{}, err)
			return
		}

		if e.cache != nil {
			if err := e.cache.Put(ctx, key, req.Name, data); err != nil {
				e.logger.Warn("cache write failed", zap.String("operation", req.Name), zap.Error(err))
			}
		}

		yield(secondary.WatchResult{Data: data}, nil)
	}
}

// Query runs a query against the network.
func (e *Executor) Query(ctx context.Context, req secondary.Request) (json.RawMessage, error) {
	return e.run(ctx, req)
}

// Mutate runs a mutation.
func (e *Executor) Mutate(ctx context.Context, req secondary.Request) (json.RawMessage, error) {
	return e.run(ctx, req)
}

func (e *Executor) run(ctx context.Context, req secondary.Request) (json.RawMessage, error) {
	gqlReq := machinebox.NewRequest(req.Document)
	for k, v := range req.Variables {
		gqlReq.Var(k, v)
	}
	for k, v := range e.headers {
		gqlReq.Header.Set(k, v)
	}

	var data json.RawMessage
	if err := e.client.Run(ctx, gqlReq, &data); err != nil {
		return nil, fmt.Errorf("%s: %w", req.Name, err)
	}

	out, err := extract(data, req.ResultPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Name, err)
	}
	return out, nil
}

func extract(data json.RawMessage, path string) (json.RawMessage, error) {
	if path == "" {
		return data, nil
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() || res.Type == gjson.Null {
		return nil, fmt.Errorf("%w at %s", ErrNoData, path)
	}
	return json.RawMessage(res.Raw), nil
}

// CacheKey identifies req in the query cache by operation, variables and
// result path.
func CacheKey(req secondary.Request) (string, error) {
	vars, err := json.Marshal(req.Variables)
	if err != nil {
		return "", fmt.Errorf("failed to encode variables for %s: %w", req.Name, err)
	}

	h := sha256.New()
	h.Write([]byte(req.Name))
	h.Write([]byte{0})
	h.Write(vars)
	h.Write([]byte{0})
	h.Write([]byte(req.ResultPath))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Ensure Executor implements the interface
var _ secondary.Executor = (*Executor)(nil)
