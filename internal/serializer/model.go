package serializer

import (
	"fmt"
	"slices"
	"time"

	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

// Standard view names
const (
	ViewSummary  = "summary"
	ViewDetailed = "detailed"
)

const isoFormat = "2006-01-02T15:04:05.000000"

var errNoURLBuilder = apperrors.Configuration("url requested without a url builder in the serialization context")

// Model is an entity with an internal id
type Model interface {
	GetID() int64
}

// Timestamped is an entity with create and update times
type Timestamped interface {
	Created() time.Time
	Updated() time.Time
}

// FieldFunc produces the value of one key for an item
type FieldFunc[T any] func(item T, key string, sc *Context) (any, error)

// AttributeFunc is the default read of a plain attribute; ok is false when the
// type has no attribute named key
type AttributeFunc[T any] func(item T, key string) (value any, ok bool)

// ModelSerializer serializes one entity type into declared views
type ModelSerializer[T Model] struct {
	name        string
	encoder     IDEncoder
	fields      map[string]FieldFunc[T]
	attribute   AttributeFunc[T]
	views       *ViewSet
	defaultView string
}

// NewModelSerializer creates a serializer with the base fields every entity
// shares: id (encoded), model_class, create_time and update_time.
func NewModelSerializer[T Model](name, modelClass string, encoder IDEncoder, attribute AttributeFunc[T]) *ModelSerializer[T] {
	s := &ModelSerializer[T]{
		name:        name,
		encoder:     encoder,
		fields:      make(map[string]FieldFunc[T]),
		attribute:   attribute,
		views:       NewViewSet(),
		defaultView: ViewSummary,
	}

	s.Register("id", func(item T, _ string, _ *Context) (any, error) {
		return s.EncodeID(item.GetID()), nil
	})
	s.Register("model_class", Constant[T](modelClass))
	s.Register("create_time", serializeTimestamp[T])
	s.Register("update_time", serializeTimestamp[T])

	return s
}

// Name returns the serializer name used in errors and metrics
func (s *ModelSerializer[T]) Name() string { return s.name }

// Register sets the field function for key, replacing any earlier one
func (s *ModelSerializer[T]) Register(key string, fn FieldFunc[T]) {
	s.fields[key] = fn
}

// AddView declares a view; see ViewSet.Add
func (s *ModelSerializer[T]) AddView(name string, keys []string, includeFrom ...string) error {
	return s.views.Add(name, keys, includeFrom...)
}

func (s *ModelSerializer[T]) mustAddView(name string, keys []string, includeFrom ...string) {
	if err := s.AddView(name, keys, includeFrom...); err != nil {
		panic(fmt.Sprintf("%s: %v", s.name, err))
	}
}

// HasView reports whether a view is declared
func (s *ModelSerializer[T]) HasView(name string) bool { return s.views.Has(name) }

// HasKey reports whether key is a registered field or an attribute of item
func (s *ModelSerializer[T]) HasKey(item T, key string) bool {
	if _, ok := s.fields[key]; ok {
		return true
	}
	if s.attribute == nil {
		return false
	}
	_, ok := s.attribute(item, key)
	return ok
}

// Views returns the declared view names
func (s *ModelSerializer[T]) Views() []string { return s.views.Names() }

// ViewKeys returns the flattened keys of a view
func (s *ModelSerializer[T]) ViewKeys(name string) ([]string, error) { return s.views.Keys(name) }

// DefaultView returns the view used when a request names neither view nor keys
func (s *ModelSerializer[T]) DefaultView() string { return s.defaultView }

// EncodeID encodes an internal id for output
func (s *ModelSerializer[T]) EncodeID(id int64) string {
	return s.encoder.EncodeID(id)
}

// Serialize produces a document holding exactly the requested keys
func (s *ModelSerializer[T]) Serialize(item T, keys []string, sc *Context) (Document, error) {
	doc := make(Document, len(keys))
	for _, key := range keys {
		value, err := s.serializeKey(item, key, sc)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", s.name, key, err)
		}
		doc[key] = value
	}
	return doc, nil
}

// SerializeToView serializes the keys of a declared view
func (s *ModelSerializer[T]) SerializeToView(item T, view string, sc *Context) (Document, error) {
	keys, err := s.views.Keys(view)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return s.Serialize(item, keys, sc)
}

// SerializeRequested serializes the keys of view followed by any extra keys
// not already in it. With only keys, exactly those are serialized; with
// neither, the default view is used.
func (s *ModelSerializer[T]) SerializeRequested(item T, view string, keys []string, sc *Context) (Document, error) {
	switch {
	case view == "" && len(keys) == 0:
		return s.SerializeToView(item, s.defaultView, sc)
	case view == "":
		return s.Serialize(item, keys, sc)
	}

	all, err := s.views.Keys(view)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	for _, key := range keys {
		if !slices.Contains(all, key) {
			all = append(all, key)
		}
	}
	return s.Serialize(item, all, sc)
}

func (s *ModelSerializer[T]) serializeKey(item T, key string, sc *Context) (any, error) {
	if fn, ok := s.fields[key]; ok {
		return fn(item, key, sc)
	}
	if s.attribute != nil {
		if value, ok := s.attribute(item, key); ok {
			return value, nil
		}
	}
	return nil, apperrors.Configuration(fmt.Sprintf("no serializer or attribute for key %q", key)).
		WithDetail("key", key)
}

// Constant returns a field function that always yields value
func Constant[T any](value any) FieldFunc[T] {
	return func(T, string, *Context) (any, error) {
		return value, nil
	}
}

// TypeID joins a content type and an internal id, e.g. "dataset_collection-12"
func TypeID(contentType string, id int64) string {
	return fmt.Sprintf("%s-%d", contentType, id)
}

func serializeTimestamp[T any](item T, key string, _ *Context) (any, error) {
	ts, ok := any(item).(Timestamped)
	if !ok {
		return nil, apperrors.Configuration(fmt.Sprintf("%T has no timestamps", item))
	}
	t := ts.Created()
	if key == "update_time" {
		t = ts.Updated()
	}
	return formatTime(t), nil
}

func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(isoFormat)
}
