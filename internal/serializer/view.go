package serializer

import (
	"fmt"
	"slices"
	"sort"

	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

// ViewSet maps view names to flattened, ordered key lists
type ViewSet struct {
	views map[string][]string
}

// NewViewSet creates an empty view set
func NewViewSet() *ViewSet {
	return &ViewSet{views: make(map[string][]string)}
}

// Add declares or replaces a view. Keys of each included view come first, in
// their declared order, followed by keys; duplicates keep their first position.
// Included views must already be declared.
func (v *ViewSet) Add(name string, keys []string, includeFrom ...string) error {
	var flat []string
	seen := make(map[string]bool)
	appendKeys := func(ks []string) {
		for _, k := range ks {
			if !seen[k] {
				seen[k] = true
				flat = append(flat, k)
			}
		}
	}

	for _, base := range includeFrom {
		baseKeys, ok := v.views[base]
		if !ok {
			return apperrors.Configuration(fmt.Sprintf("view %q includes unknown view %q", name, base))
		}
		appendKeys(baseKeys)
	}
	appendKeys(keys)

	v.views[name] = flat
	return nil
}

// Keys returns a copy of the key list for a view
func (v *ViewSet) Keys(name string) ([]string, error) {
	keys, ok := v.views[name]
	if !ok {
		return nil, apperrors.Configuration(fmt.Sprintf("unknown view: %s", name)).
			WithDetail("view", name)
	}
	return slices.Clone(keys), nil
}

// Has reports whether a view is declared
func (v *ViewSet) Has(name string) bool {
	_, ok := v.views[name]
	return ok
}

// Names returns the declared view names, sorted
func (v *ViewSet) Names() []string {
	names := make([]string, 0, len(v.views))
	for name := range v.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
