package domain

import "time"

const (
	// HDCAContentType is the history content type of a collection association
	HDCAContentType = "dataset_collection"
	// HDCAModelClass names the association entity kind
	HDCAModelClass = "HistoryDatasetCollectionAssociation"
)

// DeletionState is the soft-delete lifecycle of an association
type DeletionState string

const (
	DeletionStateActive  DeletionState = "active"
	DeletionStateDeleted DeletionState = "deleted"
	DeletionStatePurged  DeletionState = "purged"
)

// HDCA (history dataset collection association) binds one collection into a history.
// The collection may be shared by several associations.
type HDCA struct {
	ID           int64
	HistoryID    int64
	HID          int
	Name         string
	Deleted      bool
	Purged       bool
	Visible      bool
	CollectionID int64
	CreateTime   time.Time
	UpdateTime   time.Time

	History    *History
	Collection *DatasetCollection
	Tags       []Tag
	Annotation *string
}

// GetID returns the association id
func (h *HDCA) GetID() int64 { return h.ID }

// Created returns the creation time
func (h *HDCA) Created() time.Time { return h.CreateTime }

// Updated returns the last update time
func (h *HDCA) Updated() time.Time { return h.UpdateTime }

// GetCollection returns the underlying collection
func (h *HDCA) GetCollection() *DatasetCollection { return h.Collection }

// GetTags returns the association tags
func (h *HDCA) GetTags() []Tag { return h.Tags }

// GetAnnotation returns the association annotation
func (h *HDCA) GetAnnotation() *string { return h.Annotation }

// DeletionState derives the lifecycle state from the deleted and purged flags
func (h *HDCA) DeletionState() DeletionState {
	switch {
	case h.Purged:
		return DeletionStatePurged
	case h.Deleted:
		return DeletionStateDeleted
	default:
		return DeletionStateActive
	}
}
