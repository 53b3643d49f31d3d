// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// AnonymousActor is reported when no actor was attached to a context.
const AnonymousActor = "anonymous"

// ActorKey is the context key for the editing actor.
type ActorKey struct{}

// WithActorID returns a context carrying the actor who edits questions.
func WithActorID(ctx context.Context, actorID string) context.Context {
	if actorID == "" {
		return ctx
	}
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the actor ID from context, or AnonymousActor if not set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ActorKey{}).(string); ok && v != "" {
		return v
	}
	return AnonymousActor
}
