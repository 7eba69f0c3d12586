package polyomino

import (
	"errors"
	"fmt"
	"slices"

	"github.com/informatter/text-tetris-engine/grid"
)

// ErrNotImplemented is returned by Registry.Create for unknown shape codes.
var ErrNotImplemented = errors.New("shape is not implemented")

// Registry maps shape codes to kinds and hands out shapes with unique owner
// ids.
type Registry struct {
	kinds  map[string]Kind
	nextId grid.Owner
}

// NewRegistry creates a registry with every built-in kind registered under
// its letter.
func NewRegistry() *Registry {
	r := &Registry{
		kinds: make(map[string]Kind, len(Kinds)),
	}
	for _, k := range Kinds {
		r.Register(k.String(), k)
	}
	return r
}

// Register binds a code to a kind, replacing any previous binding.
func (r *Registry) Register(code string, kind Kind) {
	if !kind.Valid() {
		panic("polyomino: cannot register unknown kind " + kind.String())
	}
	r.kinds[code] = kind
}

// Lookup returns the kind registered under code.
func (r *Registry) Lookup(code string) (Kind, error) {
	kind, ok := r.kinds[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotImplemented, code)
	}
	return kind, nil
}

// Create returns a new, unplaced shape for code.
func (r *Registry) Create(code string) (*Shape, error) {
	kind, err := r.Lookup(code)
	if err != nil {
		return nil, err
	}

	r.nextId++
	return New(r.nextId, kind), nil
}

// Codes returns the registered codes in sorted order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.kinds))
	for code := range r.kinds {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
