package store

import "context"

// Store binds a Cache to a namespace so different record kinds can share one
// backend without key collisions.
type Store[S any] struct {
	core      Cache[S]
	namespace string
}

func NewStore[S any](core Cache[S], namespace string) Store[S] {
	return Store[S]{core: core, namespace: namespace}
}

func (s Store[S]) key(id string) string {
	return s.namespace + ":" + id
}

func (s Store[S]) Set(ctx context.Context, id string, val S) error {
	return s.core.Set(ctx, s.key(id), val)
}

func (s Store[S]) SetNX(ctx context.Context, id string, val S) (bool, error) {
	return s.core.SetNX(ctx, s.key(id), val)
}

func (s Store[S]) Get(ctx context.Context, id string) (S, bool, error) {
	return s.core.Get(ctx, s.key(id))
}

func (s Store[S]) Del(ctx context.Context, id string) error {
	return s.core.Del(ctx, s.key(id))
}

func (s Store[S]) Exists(ctx context.Context, id string) (bool, error) {
	return s.core.Exists(ctx, s.key(id))
}
