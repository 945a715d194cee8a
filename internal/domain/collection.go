package domain

import (
	"cmp"
	"slices"
	"time"
)

// PopulatedState is the materialization status of a collection
type PopulatedState string

const (
	PopulatedStateNew    PopulatedState = "new"
	PopulatedStateOK     PopulatedState = "ok"
	PopulatedStateFailed PopulatedState = "failed"
)

// IsValid checks if the populated state is valid
func (s PopulatedState) IsValid() bool {
	switch s {
	case PopulatedStateNew, PopulatedStateOK, PopulatedStateFailed:
		return true
	}
	return false
}

// ElementType names the kind of object a collection element wraps
type ElementType string

const (
	ElementTypeHDA        ElementType = "hda"
	ElementTypeCollection ElementType = "dataset_collection"
)

// DatasetCollection is an ordered set of elements sharing a collection type
type DatasetCollection struct {
	ID                    int64
	CollectionType        string
	Populated             bool
	PopulatedState        PopulatedState
	PopulatedStateMessage *string
	CreateTime            time.Time
	UpdateTime            time.Time

	Elements []*CollectionElement
}

// GetID returns the collection id
func (c *DatasetCollection) GetID() int64 { return c.ID }

// Created returns the creation time
func (c *DatasetCollection) Created() time.Time { return c.CreateTime }

// Updated returns the last update time
func (c *DatasetCollection) Updated() time.Time { return c.UpdateTime }

// ElementType implements ElementObject
func (c *DatasetCollection) ElementType() ElementType { return ElementTypeCollection }

func (*DatasetCollection) elementObject() {}

// StateMessage returns the populated state message, which is only meaningful
// when population failed
func (c *DatasetCollection) StateMessage() *string {
	if c.PopulatedState != PopulatedStateFailed {
		return nil
	}
	return c.PopulatedStateMessage
}

// MarkFailed records a population failure with its message
func (c *DatasetCollection) MarkFailed(message string) {
	c.PopulatedState = PopulatedStateFailed
	c.PopulatedStateMessage = &message
}

// MarkPopulated records a successful population
func (c *DatasetCollection) MarkPopulated() {
	c.Populated = true
	c.PopulatedState = PopulatedStateOK
	c.PopulatedStateMessage = nil
}

// SortElements orders elements by element index
func (c *DatasetCollection) SortElements() {
	slices.SortStableFunc(c.Elements, CompareElements)
}

// AddElement appends obj under identifier at the next element index
func (c *DatasetCollection) AddElement(identifier string, obj ElementObject) *CollectionElement {
	el := &CollectionElement{
		CollectionID:      c.ID,
		ElementIndex:      len(c.Elements),
		ElementIdentifier: identifier,
		Object:            obj,
	}
	c.Elements = append(c.Elements, el)
	return el
}

// ElementObject is what a collection element wraps: *HDA or *DatasetCollection
type ElementObject interface {
	ElementType() ElementType
	elementObject()
}

// CollectionElement is one position of a DatasetCollection
type CollectionElement struct {
	ID                int64
	CollectionID      int64
	ElementIndex      int
	ElementIdentifier string
	Object            ElementObject
}

// GetID returns the element id
func (e *CollectionElement) GetID() int64 { return e.ID }

// HDA returns the wrapped leaf dataset, if any
func (e *CollectionElement) HDA() (*HDA, bool) {
	hda, ok := e.Object.(*HDA)
	return hda, ok
}

// ChildCollection returns the wrapped nested collection, if any
func (e *CollectionElement) ChildCollection() (*DatasetCollection, bool) {
	dc, ok := e.Object.(*DatasetCollection)
	return dc, ok
}

// ElementType reports the kind of the wrapped object, empty when unset
func (e *CollectionElement) ElementType() ElementType {
	if e.Object == nil {
		return ""
	}
	return e.Object.ElementType()
}

// CompareElements orders elements by element index
func CompareElements(a, b *CollectionElement) int {
	return cmp.Compare(a.ElementIndex, b.ElementIndex)
}
