package serializer

import (
	"fmt"

	"github.com/histcollect/histcollect/internal/domain"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

// LeafSerializer serializes the leaf datasets wrapped by collection elements
type LeafSerializer interface {
	SerializeToView(item *domain.HDA, view string, sc *Context) (Document, error)
}

// DCESerializer serializes collection elements, delegating the wrapped object
// to the leaf serializer or, for nested collections, to a DCSerializer
type DCESerializer struct {
	*ModelSerializer[*domain.CollectionElement]

	leaf LeafSerializer
	dc   *DCSerializer
}

// NewDCESerializer creates an element serializer. A nil leaf uses HDASerializer.
func NewDCESerializer(encoder IDEncoder, leaf LeafSerializer) *DCESerializer {
	if leaf == nil {
		leaf = NewHDASerializer(encoder)
	}

	s := &DCESerializer{
		ModelSerializer: NewModelSerializer[*domain.CollectionElement]("DCESerializer", "DatasetCollectionElement", encoder, elementAttribute),
		leaf:            leaf,
	}
	s.dc = NewDCSerializer(encoder, s)

	s.Register("object", s.serializeObject)

	s.mustAddView(ViewSummary, []string{
		"id", "model_class",
		"element_index",
		"element_identifier",
		"element_type",
		"object",
	})

	return s
}

// Collections returns the serializer used for nested collections
func (s *DCESerializer) Collections() *DCSerializer { return s.dc }

func (s *DCESerializer) serializeObject(item *domain.CollectionElement, _ string, sc *Context) (any, error) {
	switch obj := item.Object.(type) {
	case *domain.HDA:
		return s.leaf.SerializeToView(obj, ViewSummary, sc)
	case *domain.DatasetCollection:
		return s.dc.SerializeToView(obj, ViewDetailed, sc)
	default:
		return nil, apperrors.Inconsistent(fmt.Sprintf("collection element %d wraps no object", item.ID))
	}
}

func elementAttribute(item *domain.CollectionElement, key string) (any, bool) {
	switch key {
	case "element_index":
		return item.ElementIndex, true
	case "element_identifier":
		return item.ElementIdentifier, true
	case "element_type":
		return string(item.ElementType()), true
	}
	return nil, false
}
