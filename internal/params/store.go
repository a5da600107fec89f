// Package params provides the named-parameter lookup used to build models.
//
// A Store maps dotted names such as "e_conv1.weight" to tensors. Scope narrows
// a store to the sub-tree under a prefix, so a layer can ask for "weight"
// without knowing where it sits in the model.
package params

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/dehaze/internal/tensor"
)

// ErrMissingParameter is returned when a required name is absent from a Store.
var ErrMissingParameter = errors.New("missing parameter")

// MissingError reports the fully qualified name that could not be resolved.
// It unwraps to ErrMissingParameter.
type MissingError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingParameter, e.Name)
}

// Unwrap returns ErrMissingParameter so callers can use errors.Is.
func (e *MissingError) Unwrap() error {
	return ErrMissingParameter
}

// Store resolves parameter names to tensors.
type Store interface {
	// Get returns the tensor registered under name, or an error wrapping
	// ErrMissingParameter.
	Get(name string) (*tensor.RawTensor, error)
}

// MapStore is an in-memory Store.
type MapStore map[string]*tensor.RawTensor

// Get implements Store.
func (m MapStore) Get(name string) (*tensor.RawTensor, error) {
	t, ok := m[name]
	if !ok || t == nil {
		return nil, &MissingError{Name: name}
	}
	return t, nil
}

// Names returns the registered names in sorted order.
func (m MapStore) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Without returns a copy of m with every name under prefix removed.
func (m MapStore) Without(prefix string) MapStore {
	out := make(MapStore, len(m))
	for name, t := range m {
		if name == prefix || strings.HasPrefix(name, prefix+".") {
			continue
		}
		out[name] = t
	}
	return out
}

// scoped prefixes every lookup with a fixed path.
type scoped struct {
	parent Store
	prefix string
}

// Scope returns a Store that resolves name as prefix + "." + name in parent.
// Missing names are reported with their fully qualified path.
//
// Example:
//
//	conv1 := params.Scope(store, "e_conv1")
//	w, err := conv1.Get("weight") // looks up "e_conv1.weight"
func Scope(parent Store, prefix string) Store {
	if prefix == "" {
		return parent
	}
	return &scoped{parent: parent, prefix: prefix}
}

// Get implements Store.
func (s *scoped) Get(name string) (*tensor.RawTensor, error) {
	return s.parent.Get(s.prefix + "." + name)
}
