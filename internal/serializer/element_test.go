package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/histcollect/histcollect/internal/domain"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

// recordingLeaf records the views requested of it
type recordingLeaf struct {
	views []string
}

func (r *recordingLeaf) SerializeToView(item *domain.HDA, view string, _ *Context) (Document, error) {
	r.views = append(r.views, view)
	return Document{"leaf": item.ID}, nil
}

func TestDCESerializer_LeafObjectUsesLeafSummary(t *testing.T) {
	hdas := NewHDASerializer(fakeEncoder{})
	s := NewDCESerializer(fakeEncoder{}, hdas)
	hda := newHDA(10, "reads.fq")
	el := &domain.CollectionElement{ID: 1, ElementIdentifier: "reads", Object: hda}

	doc, err := s.SerializeToView(el, ViewSummary, testContext())
	require.NoError(t, err)

	want, err := hdas.SerializeToView(hda, ViewSummary, testContext())
	require.NoError(t, err)
	assert.Equal(t, want, doc["object"])
	assert.Equal(t, "hda", doc["element_type"])
	assert.Equal(t, "DatasetCollectionElement", doc["model_class"])
	assert.Equal(t, "enc1", doc["id"])
}

func TestDCESerializer_InjectedLeaf(t *testing.T) {
	leaf := &recordingLeaf{}
	s := NewDCESerializer(fakeEncoder{}, leaf)
	el := &domain.CollectionElement{Object: newHDA(10, "x")}

	doc, err := s.Serialize(el, []string{"object"}, nil)
	require.NoError(t, err)
	assert.Equal(t, Document{"leaf": int64(10)}, doc["object"])
	assert.Equal(t, []string{ViewSummary}, leaf.views)
}

func TestDCESerializer_NestedCollectionUsesDetailedView(t *testing.T) {
	s := NewDCESerializer(fakeEncoder{}, nil)
	inner := pairedCollection(8)
	el := &domain.CollectionElement{ID: 2, ElementIdentifier: "sample1", Object: inner}

	doc, err := s.SerializeToView(el, ViewSummary, testContext())
	require.NoError(t, err)

	want, err := s.Collections().SerializeToView(inner, ViewDetailed, testContext())
	require.NoError(t, err)
	assert.Equal(t, want, doc["object"])
	assert.Equal(t, "dataset_collection", doc["element_type"])

	nested := doc["object"].(Document)
	assert.Len(t, nested["elements"], 2)
}

func TestDCESerializer_EmptyElementIsInconsistent(t *testing.T) {
	s := NewDCESerializer(fakeEncoder{}, nil)

	_, err := s.Serialize(&domain.CollectionElement{ID: 4}, []string{"object"}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsInconsistent(err))
}
