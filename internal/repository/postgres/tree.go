package postgres

import (
	"fmt"
	"time"

	"github.com/histcollect/histcollect/internal/domain"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

type collectionRow struct {
	ID                    int64     `db:"id"`
	CollectionType        string    `db:"collection_type"`
	Populated             bool      `db:"populated"`
	PopulatedState        string    `db:"populated_state"`
	PopulatedStateMessage *string   `db:"populated_state_message"`
	CreateTime            time.Time `db:"create_time"`
	UpdateTime            time.Time `db:"update_time"`
}

type elementRow struct {
	ID                int64  `db:"id"`
	CollectionID      int64  `db:"dataset_collection_id"`
	ElementIndex      int    `db:"element_index"`
	ElementIdentifier string `db:"element_identifier"`
	HDAID             *int64 `db:"hda_id"`
	ChildCollectionID *int64 `db:"child_collection_id"`
}

type hdaRow struct {
	ID         int64     `db:"id"`
	HistoryID  int64     `db:"history_id"`
	HID        int       `db:"hid"`
	Name       string    `db:"name"`
	Extension  string    `db:"extension"`
	State      string    `db:"state"`
	Deleted    bool      `db:"deleted"`
	Purged     bool      `db:"purged"`
	Visible    bool      `db:"visible"`
	CreateTime time.Time `db:"create_time"`
	UpdateTime time.Time `db:"update_time"`
}

type tagRow struct {
	Name  string  `db:"user_tname"`
	Value *string `db:"user_value"`
}

func (r collectionRow) toDomain() (*domain.DatasetCollection, error) {
	state := domain.PopulatedState(r.PopulatedState)
	if !state.IsValid() {
		return nil, apperrors.Inconsistent(fmt.Sprintf("collection %d has unknown populated state %q", r.ID, r.PopulatedState))
	}
	return &domain.DatasetCollection{
		ID:                    r.ID,
		CollectionType:        r.CollectionType,
		Populated:             r.Populated,
		PopulatedState:        state,
		PopulatedStateMessage: r.PopulatedStateMessage,
		CreateTime:            r.CreateTime,
		UpdateTime:            r.UpdateTime,
	}, nil
}

func (r hdaRow) toDomain() *domain.HDA {
	return &domain.HDA{
		ID:         r.ID,
		HistoryID:  r.HistoryID,
		HID:        r.HID,
		Name:       r.Name,
		Extension:  r.Extension,
		State:      domain.DatasetState(r.State),
		Deleted:    r.Deleted,
		Purged:     r.Purged,
		Visible:    r.Visible,
		CreateTime: r.CreateTime,
		UpdateTime: r.UpdateTime,
	}
}

// assembleTree links flat collection, element and dataset rows into the
// collection rooted at rootID. Elements of each collection end up ordered by
// element index.
func assembleTree(rootID int64, collections []collectionRow, elements []elementRow, hdas []hdaRow) (*domain.DatasetCollection, error) {
	byID := make(map[int64]*domain.DatasetCollection, len(collections))
	for _, row := range collections {
		dc, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		byID[row.ID] = dc
	}

	datasets := make(map[int64]*domain.HDA, len(hdas))
	for _, row := range hdas {
		datasets[row.ID] = row.toDomain()
	}

	for _, row := range elements {
		owner, ok := byID[row.CollectionID]
		if !ok {
			return nil, apperrors.Inconsistent(fmt.Sprintf("element %d belongs to unloaded collection %d", row.ID, row.CollectionID))
		}

		var obj domain.ElementObject
		switch {
		case row.HDAID != nil && row.ChildCollectionID == nil:
			hda, ok := datasets[*row.HDAID]
			if !ok {
				return nil, apperrors.Inconsistent(fmt.Sprintf("element %d references missing dataset %d", row.ID, *row.HDAID))
			}
			obj = hda
		case row.ChildCollectionID != nil && row.HDAID == nil:
			child, ok := byID[*row.ChildCollectionID]
			if !ok {
				return nil, apperrors.Inconsistent(fmt.Sprintf("element %d references missing collection %d", row.ID, *row.ChildCollectionID))
			}
			obj = child
		default:
			return nil, apperrors.Inconsistent(fmt.Sprintf("element %d must wrap exactly one dataset or collection", row.ID))
		}

		owner.Elements = append(owner.Elements, &domain.CollectionElement{
			ID:                row.ID,
			CollectionID:      row.CollectionID,
			ElementIndex:      row.ElementIndex,
			ElementIdentifier: row.ElementIdentifier,
			Object:            obj,
		})
	}

	root, ok := byID[rootID]
	if !ok {
		return nil, apperrors.NotFound("dataset collection")
	}
	if err := checkAcyclic(root, make(map[int64]bool), make(map[int64]bool)); err != nil {
		return nil, err
	}
	for _, dc := range byID {
		dc.SortElements()
	}
	return root, nil
}

// checkAcyclic fails when a collection contains itself through its children.
// A child shared by several parents is fine.
func checkAcyclic(dc *domain.DatasetCollection, onPath, done map[int64]bool) error {
	if done[dc.ID] {
		return nil
	}
	onPath[dc.ID] = true
	for _, el := range dc.Elements {
		child, ok := el.ChildCollection()
		if !ok {
			continue
		}
		if onPath[child.ID] {
			return apperrors.Inconsistent(fmt.Sprintf("collection %d contains itself through collection %d", child.ID, dc.ID))
		}
		if err := checkAcyclic(child, onPath, done); err != nil {
			return err
		}
	}
	onPath[dc.ID] = false
	done[dc.ID] = true
	return nil
}

func hdaIDs(elements []elementRow) []int64 {
	var ids []int64
	for _, row := range elements {
		if row.HDAID != nil {
			ids = append(ids, *row.HDAID)
		}
	}
	return ids
}
