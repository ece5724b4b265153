// Package registry maps contest identifiers to their constructors.
// Contests register themselves in init() functions, allowing the driver
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-duel/internal/contest"
)

// Factory builds a fresh contest instance from its injected services.
type Factory func(deps contest.Deps) contest.Contest

// Entry describes a registered contest type.
type Entry struct {
	Meta    contest.Meta
	Factory Factory
}

var (
	entries = make(map[contest.Kind]Entry)
	mu      sync.RWMutex
)

// Register adds a contest factory under meta.Kind.
// Panics on an invalid kind or when the kind is already registered.
func Register(meta contest.Meta, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if !meta.Kind.Valid() {
		panic(fmt.Sprintf("registry: invalid contest kind %d", meta.Kind))
	}
	if _, exists := entries[meta.Kind]; exists {
		panic(fmt.Sprintf("registry: contest %q already registered", meta.Kind))
	}
	entries[meta.Kind] = Entry{Meta: meta, Factory: f}
}

// List returns metadata for every registered contest in campaign order.
func List() []contest.Meta {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]contest.Meta, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Meta)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})
	return result
}

// Create instantiates a contest by identifier.
// An unknown identifier yields nil, false: the contest simply does not start.
func Create(id string, deps contest.Deps) (contest.Contest, bool) {
	kind, ok := contest.ParseKind(id)
	if !ok {
		return nil, false
	}
	return CreateKind(kind, deps)
}

// CreateKind instantiates a contest by kind.
func CreateKind(kind contest.Kind, deps contest.Deps) (contest.Contest, bool) {
	mu.RLock()
	e, ok := entries[kind]
	mu.RUnlock()
	if !ok {
		return nil, false
	}
	return e.Factory(deps.WithDefaults()), true
}

// Lookup returns the metadata of a registered contest.
func Lookup(id string) (contest.Meta, bool) {
	kind, ok := contest.ParseKind(id)
	if !ok {
		return contest.Meta{}, false
	}
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[kind]
	return e.Meta, ok
}

// Exists checks if a contest with the given identifier is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
