package serializer

import (
	"slices"

	"github.com/histcollect/histcollect/internal/domain"
)

// DCSerializer serializes dataset collections and their elements
type DCSerializer struct {
	*ModelSerializer[*domain.DatasetCollection]

	dce *DCESerializer
}

// NewDCSerializer creates a collection serializer. A nil dce creates one,
// which in turn owns its own DCSerializer for nested collections.
func NewDCSerializer(encoder IDEncoder, dce *DCESerializer) *DCSerializer {
	if dce == nil {
		dce = NewDCESerializer(encoder, nil)
	}

	s := &DCSerializer{
		ModelSerializer: NewModelSerializer[*domain.DatasetCollection]("DCSerializer", "DatasetCollection", encoder, collectionAttribute),
		dce:             dce,
	}

	s.Register("populated_state_message", func(item *domain.DatasetCollection, _ string, _ *Context) (any, error) {
		if msg := item.StateMessage(); msg != nil {
			return *msg, nil
		}
		return nil, nil
	})
	s.Register("elements", s.SerializeElements)

	s.mustAddView(ViewSummary, []string{
		"id",
		"create_time",
		"update_time",
		"collection_type",
		"populated",
		"populated_state",
		"populated_state_message",
	})
	s.mustAddView(ViewDetailed, []string{
		"elements",
	}, ViewSummary)

	return s
}

// SerializeElements returns the element summaries ordered by element index
func (s *DCSerializer) SerializeElements(item *domain.DatasetCollection, _ string, sc *Context) (any, error) {
	elements := slices.Clone(item.Elements)
	slices.SortStableFunc(elements, domain.CompareElements)

	out := make([]Document, 0, len(elements))
	for _, el := range elements {
		doc, err := s.dce.SerializeToView(el, ViewSummary, sc)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func collectionAttribute(item *domain.DatasetCollection, key string) (any, bool) {
	switch key {
	case "collection_type":
		return item.CollectionType, true
	case "populated":
		return item.Populated, true
	case "populated_state":
		return string(item.PopulatedState), true
	case "element_count":
		return len(item.Elements), true
	}
	return nil, false
}
