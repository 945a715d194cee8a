package serializer

import (
	"github.com/histcollect/histcollect/internal/domain"
)

// HDASerializer serializes leaf datasets
type HDASerializer struct {
	*ModelSerializer[*domain.HDA]
}

// NewHDASerializer creates the leaf dataset serializer
func NewHDASerializer(encoder IDEncoder) *HDASerializer {
	s := &HDASerializer{
		ModelSerializer: NewModelSerializer[*domain.HDA]("HDASerializer", "HistoryDatasetAssociation", encoder, hdaAttribute),
	}

	s.Register("history_id", func(item *domain.HDA, _ string, _ *Context) (any, error) {
		return s.EncodeID(item.HistoryID), nil
	})
	s.Register("history_content_type", Constant[*domain.HDA](domain.HDAContentType))
	s.Register("type", Constant[*domain.HDA]("file"))
	s.Register("type_id", func(item *domain.HDA, _ string, _ *Context) (any, error) {
		return TypeID(domain.HDAContentType, item.ID), nil
	})
	s.Register("url", func(item *domain.HDA, _ string, sc *Context) (any, error) {
		return sc.urlFor(RouteHistoryContentTyped, map[string]string{
			"history_id": s.EncodeID(item.HistoryID),
			"id":         s.EncodeID(item.ID),
			"type":       domain.HDAContentType,
		})
	})

	s.mustAddView(ViewSummary, []string{
		"id", "name",
		"history_id", "hid",
		"history_content_type",
		"extension", "state",
		"deleted", "purged", "visible",
		"type", "type_id",
		"url",
		"create_time", "update_time",
	})

	return s
}

func hdaAttribute(item *domain.HDA, key string) (any, bool) {
	switch key {
	case "name":
		return item.Name, true
	case "hid":
		return item.HID, true
	case "extension":
		return item.Extension, true
	case "state":
		return string(item.State), true
	case "deleted":
		return item.Deleted, true
	case "purged":
		return item.Purged, true
	case "visible":
		return item.Visible, true
	}
	return nil, false
}
