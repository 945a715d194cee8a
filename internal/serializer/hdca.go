package serializer

import (
	"github.com/histcollect/histcollect/internal/domain"
)

// HDCASerializer serializes history dataset collection associations
type HDCASerializer struct {
	*DCASerializer[*domain.HDCA]

	tags        TaggableSerializer[*domain.HDCA]
	annotations AnnotatableSerializer[*domain.HDCA]
}

// NewHDCASerializer creates the HDCA serializer
func NewHDCASerializer(encoder IDEncoder) (*HDCASerializer, error) {
	base, err := NewDCASerializer[*domain.HDCA]("HDCASerializer", domain.HDCAModelClass, encoder, hdcaAttribute, nil)
	if err != nil {
		return nil, err
	}

	s := &HDCASerializer{DCASerializer: base}
	s.tags.AddSerializers(s.ModelSerializer)
	s.annotations.AddSerializers(s.ModelSerializer)

	s.Register("type", Constant[*domain.HDCA]("collection"))
	s.Register("history_id", func(item *domain.HDCA, _ string, _ *Context) (any, error) {
		return s.EncodeID(item.HistoryID), nil
	})
	s.Register("history_content_type", Constant[*domain.HDCA](domain.HDCAContentType))
	s.Register("type_id", func(item *domain.HDCA, _ string, _ *Context) (any, error) {
		return TypeID(domain.HDCAContentType, item.ID), nil
	})
	s.Register("url", func(item *domain.HDCA, _ string, sc *Context) (any, error) {
		return sc.urlFor(RouteHistoryContentTyped, map[string]string{
			"history_id": s.EncodeID(item.HistoryID),
			"id":         s.EncodeID(item.ID),
			"type":       domain.HDCAContentType,
		})
	})

	if err := s.AddView(ViewSummary, []string{
		"id", "name",
		"type_id",
		"history_id", "hid",
		"history_content_type",
		"collection_type",
		"populated",
		"populated_state",
		"populated_state_message",
		"deleted",
		"visible",
		"type",
		"url",
	}); err != nil {
		return nil, err
	}
	if err := s.AddView(ViewDetailed, []string{"elements"}, ViewSummary); err != nil {
		return nil, err
	}

	return s, nil
}

func hdcaAttribute(item *domain.HDCA, key string) (any, bool) {
	switch key {
	case "name":
		return item.Name, true
	case "hid":
		return item.HID, true
	case "deleted":
		return item.Deleted, true
	case "purged":
		return item.Purged, true
	case "visible":
		return item.Visible, true
	}
	return nil, false
}
