// Package dedupe collapses concurrent loads of the same key into one call.
// Callers waiting on an in-flight key receive the same result.
package dedupe

import "golang.org/x/sync/singleflight"

// Group is a typed singleflight.Group. The zero value is ready to use.
type Group[T any] struct {
	g singleflight.Group
}

// Do runs fn once per key among concurrent callers. shared reports whether
// the result was handed to more than one caller.
func (g *Group[T]) Do(key string, fn func() (T, error)) (v T, shared bool, err error) {
	res, err, shared := g.g.Do(key, func() (any, error) {
		return fn()
	})
	if res != nil {
		v = res.(T)
	}
	return v, shared, err
}

// Forget drops an in-flight key so the next call starts a new load.
func (g *Group[T]) Forget(key string) {
	g.g.Forget(key)
}
