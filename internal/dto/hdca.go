package dto

import "strings"

// ShowQuery selects what a show request serializes
type ShowQuery struct {
	View string `query:"view" validate:"omitempty,max=64"`
	Keys string `query:"keys" validate:"omitempty,max=2048,keylist"`
}

// KeyList returns the requested keys in order, or nil
func (q ShowQuery) KeyList() []string {
	if q.Keys == "" {
		return nil
	}
	keys := strings.Split(q.Keys, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	return keys
}

// DeleteQuery controls deletion
type DeleteQuery struct {
	Purge bool `query:"purge"`
}

// SetTagsRequest replaces the tags of an item
type SetTagsRequest struct {
	Tags []string `json:"tags" validate:"max=100,dive,required,max=255,tag"`
}

// SetAnnotationRequest replaces the annotation of an item; empty removes it
type SetAnnotationRequest struct {
	Annotation string `json:"annotation" validate:"max=4096"`
}
