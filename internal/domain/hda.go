package domain

import "time"

// HDAContentType is the history content type of a leaf dataset
const HDAContentType = "dataset"

// DatasetState is the job/materialization state of a dataset
type DatasetState string

const (
	DatasetStateNew    DatasetState = "new"
	DatasetStateQueued DatasetState = "queued"
	DatasetStateOK     DatasetState = "ok"
	DatasetStateError  DatasetState = "error"
)

// HDA (history dataset association) is a leaf dataset contained in a history
type HDA struct {
	ID         int64
	HistoryID  int64
	HID        int
	Name       string
	Extension  string
	State      DatasetState
	Deleted    bool
	Purged     bool
	Visible    bool
	CreateTime time.Time
	UpdateTime time.Time
}

// GetID returns the dataset id
func (h *HDA) GetID() int64 { return h.ID }

// Created returns the creation time
func (h *HDA) Created() time.Time { return h.CreateTime }

// Updated returns the last update time
func (h *HDA) Updated() time.Time { return h.UpdateTime }

// ElementType implements ElementObject
func (h *HDA) ElementType() ElementType { return ElementTypeHDA }

func (*HDA) elementObject() {}
