package serializer

import "github.com/histcollect/histcollect/internal/domain"

// Tagged is an entity carrying user tags
type Tagged interface {
	Model
	GetTags() []domain.Tag
}

// Annotated is an entity carrying a user annotation
type Annotated interface {
	Model
	GetAnnotation() *string
}

// TaggableSerializer contributes the tags field
type TaggableSerializer[T Tagged] struct{}

// AddSerializers registers tags as a list of "name" / "name:value" strings
func (TaggableSerializer[T]) AddSerializers(s *ModelSerializer[T]) {
	s.Register("tags", func(item T, _ string, _ *Context) (any, error) {
		tags := item.GetTags()
		out := make([]string, 0, len(tags))
		for _, tag := range tags {
			out = append(out, tag.String())
		}
		return out, nil
	})
}

// AnnotatableSerializer contributes the annotation field
type AnnotatableSerializer[T Annotated] struct{}

// AddSerializers registers annotation as a string or null
func (AnnotatableSerializer[T]) AddSerializers(s *ModelSerializer[T]) {
	s.Register("annotation", func(item T, _ string, _ *Context) (any, error) {
		if a := item.GetAnnotation(); a != nil {
			return *a, nil
		}
		return nil, nil
	})
}
