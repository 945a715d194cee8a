package serializer

import "github.com/histcollect/histcollect/internal/domain"

// Route names consumed by url fields
const (
	RouteHistoryContentTyped = "history_content_typed"
)

// Document is one serialized entity: string keys to JSON-compatible values
type Document = map[string]any

// IDEncoder turns internal ids into external tokens
type IDEncoder interface {
	EncodeID(id int64) string
}

// URLBuilder resolves a named route with parameters into a path
type URLBuilder interface {
	URLFor(route string, params map[string]string) (string, error)
}

// Context carries request-scoped collaborators into field functions
type Context struct {
	User *domain.User
	URLs URLBuilder
}

func (sc *Context) urlFor(route string, params map[string]string) (string, error) {
	if sc == nil || sc.URLs == nil {
		return "", errNoURLBuilder
	}
	return sc.URLs.URLFor(route, params)
}
