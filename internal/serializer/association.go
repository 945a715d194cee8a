package serializer

import (
	"fmt"

	"github.com/histcollect/histcollect/internal/domain"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

// CollectionAssociation is an entity wrapping exactly one dataset collection
type CollectionAssociation interface {
	Model
	GetCollection() *domain.DatasetCollection
}

// CollectionProxy resolves an association key against its collection. It is
// either a direct key on the collection serializer (ProxyKey) or a custom
// function over the collection (ProxyFunc), never both.
type CollectionProxy struct {
	key      string
	fn       FieldFunc[*domain.DatasetCollection]
	override string
}

// ProxyKey proxies to the collection serializer's own field for key
func ProxyKey(key string) CollectionProxy {
	return CollectionProxy{key: key}
}

// ProxyFunc proxies to fn applied to the collection. A non-empty override
// replaces the requested key passed to fn.
func ProxyFunc(fn FieldFunc[*domain.DatasetCollection], override string) CollectionProxy {
	return CollectionProxy{fn: fn, override: override}
}

// collectionKeys are the association keys resolved by the underlying collection
var collectionKeys = []string{
	"create_time",
	"update_time",
	"collection_type",
	"populated",
	"populated_state",
	"populated_state_message",
	"elements",
}

// DCASerializer is the base serializer for collection associations. Most of an
// association's descriptive fields live on its collection, so they are all
// answered by one shared DCSerializer.
type DCASerializer[T CollectionAssociation] struct {
	*ModelSerializer[T]

	dc *DCSerializer
}

// NewDCASerializer creates the association base serializer. A nil dce creates one.
func NewDCASerializer[T CollectionAssociation](name, modelClass string, encoder IDEncoder, attribute AttributeFunc[T], dce *DCESerializer) (*DCASerializer[T], error) {
	if dce == nil {
		dce = NewDCESerializer(encoder, nil)
	}

	s := &DCASerializer[T]{
		ModelSerializer: NewModelSerializer[T](name, modelClass, encoder, attribute),
		dc:              NewDCSerializer(encoder, dce),
	}

	table := make(map[string]CollectionProxy, len(collectionKeys))
	for _, key := range collectionKeys {
		table[key] = ProxyKey(key)
	}
	table["elements"] = ProxyFunc(s.dc.SerializeElements, "")

	for key, proxy := range table {
		fn, err := s.ProxyToCollection(proxy)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", name, key, err)
		}
		s.Register(key, fn)
	}

	if err := s.AddView(ViewSummary, []string{
		"id",
		"collection_type",
		"populated",
		"populated_state",
		"populated_state_message",
	}); err != nil {
		return nil, err
	}
	if err := s.AddView(ViewDetailed, []string{"elements"}, ViewSummary); err != nil {
		return nil, err
	}

	return s, nil
}

// Collections returns the shared collection serializer
func (s *DCASerializer[T]) Collections() *DCSerializer { return s.dc }

// ProxyToCollection binds a proxy into a field function over the association
func (s *DCASerializer[T]) ProxyToCollection(p CollectionProxy) (FieldFunc[T], error) {
	switch {
	case p.key != "" && p.fn == nil:
		key := p.key
		return func(item T, _ string, sc *Context) (any, error) {
			dc, err := collectionOf(item)
			if err != nil {
				return nil, err
			}
			doc, err := s.dc.Serialize(dc, []string{key}, sc)
			if err != nil {
				return nil, err
			}
			return doc[key], nil
		}, nil

	case p.fn != nil && p.key == "":
		fn, override := p.fn, p.override
		return func(item T, key string, sc *Context) (any, error) {
			dc, err := collectionOf(item)
			if err != nil {
				return nil, err
			}
			if override != "" {
				key = override
			}
			return fn(dc, key, sc)
		}, nil
	}

	return nil, apperrors.Configuration("collection proxy needs exactly one of a key or a serializer")
}

func collectionOf[T CollectionAssociation](item T) (*domain.DatasetCollection, error) {
	dc := item.GetCollection()
	if dc == nil {
		return nil, apperrors.Inconsistent(fmt.Sprintf("association %d has no collection loaded", item.GetID()))
	}
	return dc, nil
}
