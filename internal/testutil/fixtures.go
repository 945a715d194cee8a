package testutil

import (
	"time"

	"github.com/histcollect/histcollect/internal/domain"
)

// FixtureTime is the create and update time of every fixture
var FixtureTime = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

// NewTestUser creates a test user with default values.
func NewTestUser(id int64) *domain.User {
	return &domain.User{
		ID:    id,
		Email: "test@example.com",
	}
}

// NewTestHistory creates a private history owned by ownerID.
func NewTestHistory(id, ownerID int64) *domain.History {
	return &domain.History{
		ID:     id,
		UserID: &ownerID,
		Name:   "test-history",
	}
}

// NewTestHDA creates an ok dataset in historyID.
func NewTestHDA(id, historyID int64, name string) *domain.HDA {
	return &domain.HDA{
		ID:         id,
		HistoryID:  historyID,
		HID:        int(id),
		Name:       name,
		Extension:  "fastqsanger",
		State:      domain.DatasetStateOK,
		Visible:    true,
		CreateTime: FixtureTime,
		UpdateTime: FixtureTime,
	}
}

// NewTestPairedCollection creates a populated paired collection of two
// datasets in historyID.
func NewTestPairedCollection(id, historyID int64) *domain.DatasetCollection {
	dc := &domain.DatasetCollection{
		ID:             id,
		CollectionType: "paired",
		Populated:      true,
		PopulatedState: domain.PopulatedStateOK,
		CreateTime:     FixtureTime,
		UpdateTime:     FixtureTime,
	}
	dc.AddElement("forward", NewTestHDA(id*10, historyID, "forward.fq")).ID = id*10 + 1
	dc.AddElement("reverse", NewTestHDA(id*10+1, historyID, "reverse.fq")).ID = id*10 + 2
	return dc
}

// NewTestHDCA creates an active HDCA in history wrapping a paired collection.
func NewTestHDCA(id int64, history *domain.History) *domain.HDCA {
	dc := NewTestPairedCollection(id+100, history.ID)
	return &domain.HDCA{
		ID:           id,
		HistoryID:    history.ID,
		HID:          3,
		Name:         "test-pairs",
		Visible:      true,
		CollectionID: dc.ID,
		CreateTime:   FixtureTime,
		UpdateTime:   FixtureTime,
		History:      history,
		Collection:   dc,
	}
}
