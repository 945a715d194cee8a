package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/histcollect/histcollect/internal/domain"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func TestAssembleTree_NestedAndOrdered(t *testing.T) {
	collections := []collectionRow{
		{ID: 1, CollectionType: "list:paired", PopulatedState: "ok", Populated: true},
		{ID: 2, CollectionType: "paired", PopulatedState: "ok", Populated: true},
	}
	elements := []elementRow{
		{ID: 11, CollectionID: 2, ElementIndex: 1, ElementIdentifier: "reverse", HDAID: ptr(int64(101))},
		{ID: 10, CollectionID: 2, ElementIndex: 0, ElementIdentifier: "forward", HDAID: ptr(int64(100))},
		{ID: 20, CollectionID: 1, ElementIndex: 0, ElementIdentifier: "sample1", ChildCollectionID: ptr(int64(2))},
	}
	hdas := []hdaRow{
		{ID: 100, Name: "f.fq", State: "ok"},
		{ID: 101, Name: "r.fq", State: "ok"},
	}

	root, err := assembleTree(1, collections, elements, hdas)
	require.NoError(t, err)

	require.Len(t, root.Elements, 1)
	inner, ok := root.Elements[0].ChildCollection()
	require.True(t, ok)
	assert.Equal(t, "paired", inner.CollectionType)

	require.Len(t, inner.Elements, 2)
	assert.Equal(t, "forward", inner.Elements[0].ElementIdentifier)
	assert.Equal(t, "reverse", inner.Elements[1].ElementIdentifier)
	hda, ok := inner.Elements[0].HDA()
	require.True(t, ok)
	assert.Equal(t, "f.fq", hda.Name)
	assert.Equal(t, domain.DatasetStateOK, hda.State)
}

func TestAssembleTree_EmptyCollection(t *testing.T) {
	root, err := assembleTree(5, []collectionRow{{ID: 5, CollectionType: "list", PopulatedState: "new"}}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, root.Elements)
	assert.Equal(t, domain.PopulatedStateNew, root.PopulatedState)
}

func TestAssembleTree_Inconsistencies(t *testing.T) {
	base := []collectionRow{{ID: 1, CollectionType: "list", PopulatedState: "ok"}}

	tests := []struct {
		name        string
		collections []collectionRow
		elements    []elementRow
	}{
		{
			name:        "unknown populated state",
			collections: []collectionRow{{ID: 1, PopulatedState: "exploded"}},
		},
		{
			name:        "element with no object",
			collections: base,
			elements:    []elementRow{{ID: 9, CollectionID: 1}},
		},
		{
			name:        "element with both objects",
			collections: base,
			elements:    []elementRow{{ID: 9, CollectionID: 1, HDAID: ptr(int64(1)), ChildCollectionID: ptr(int64(1))}},
		},
		{
			name:        "missing dataset",
			collections: base,
			elements:    []elementRow{{ID: 9, CollectionID: 1, HDAID: ptr(int64(404))}},
		},
		{
			name:        "missing child collection",
			collections: base,
			elements:    []elementRow{{ID: 9, CollectionID: 1, ChildCollectionID: ptr(int64(404))}},
		},
		{
			name:        "collection containing itself",
			collections: base,
			elements:    []elementRow{{ID: 9, CollectionID: 1, ChildCollectionID: ptr(int64(1))}},
		},
		{
			name: "cycle through a child",
			collections: []collectionRow{
				{ID: 1, CollectionType: "list:list", PopulatedState: "ok"},
				{ID: 2, CollectionType: "list", PopulatedState: "ok"},
			},
			elements: []elementRow{
				{ID: 9, CollectionID: 1, ChildCollectionID: ptr(int64(2))},
				{ID: 10, CollectionID: 2, ChildCollectionID: ptr(int64(1))},
			},
		},
		{
			name:        "unloaded owner",
			collections: base,
			elements:    []elementRow{{ID: 9, CollectionID: 77, HDAID: ptr(int64(1))}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assembleTree(1, tt.collections, tt.elements, nil)
			require.Error(t, err)
			assert.True(t, apperrors.IsInconsistent(err))
		})
	}
}

func TestAssembleTree_SharedChild(t *testing.T) {
	collections := []collectionRow{
		{ID: 1, CollectionType: "list:list", PopulatedState: "ok"},
		{ID: 2, CollectionType: "list", PopulatedState: "ok"},
	}
	elements := []elementRow{
		{ID: 9, CollectionID: 1, ElementIndex: 0, ElementIdentifier: "a", ChildCollectionID: ptr(int64(2))},
		{ID: 10, CollectionID: 1, ElementIndex: 1, ElementIdentifier: "b", ChildCollectionID: ptr(int64(2))},
	}

	root, err := assembleTree(1, collections, elements, nil)
	require.NoError(t, err)
	require.Len(t, root.Elements, 2)
	first, _ := root.Elements[0].ChildCollection()
	second, _ := root.Elements[1].ChildCollection()
	assert.Same(t, first, second)
}

func TestAssembleTree_MissingRoot(t *testing.T) {
	_, err := assembleTree(3, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHDAIDs(t *testing.T) {
	ids := hdaIDs([]elementRow{
		{HDAID: ptr(int64(4))},
		{ChildCollectionID: ptr(int64(9))},
		{HDAID: ptr(int64(6))},
	})
	assert.Equal(t, []int64{4, 6}, ids)
}
