package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

func TestViewSet_IncludeFlattensBaseFirst(t *testing.T) {
	v := NewViewSet()
	require.NoError(t, v.Add("summary", []string{"id", "name", "state"}))
	require.NoError(t, v.Add("detailed", []string{"state", "elements", "id", "url"}, "summary"))

	keys, err := v.Keys("detailed")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "state", "elements", "url"}, keys)
}

func TestViewSet_MultipleIncludes(t *testing.T) {
	v := NewViewSet()
	require.NoError(t, v.Add("a", []string{"id", "x"}))
	require.NoError(t, v.Add("b", []string{"y", "id"}))
	require.NoError(t, v.Add("c", []string{"z"}, "a", "b"))

	keys, err := v.Keys("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "x", "y", "z"}, keys)
}

func TestViewSet_UnknownInclude(t *testing.T) {
	v := NewViewSet()
	err := v.Add("detailed", []string{"elements"}, "summary")

	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
	assert.False(t, v.Has("detailed"))
}

func TestViewSet_UnknownView(t *testing.T) {
	v := NewViewSet()
	_, err := v.Keys("missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestViewSet_KeysReturnsCopy(t *testing.T) {
	v := NewViewSet()
	require.NoError(t, v.Add("summary", []string{"id", "name"}))

	keys, err := v.Keys("summary")
	require.NoError(t, err)
	keys[0] = "mutated"

	again, err := v.Keys("summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, again)
}

func TestViewSet_Names(t *testing.T) {
	v := NewViewSet()
	require.NoError(t, v.Add("summary", nil))
	require.NoError(t, v.Add("detailed", nil, "summary"))

	assert.Equal(t, []string{"detailed", "summary"}, v.Names())
}
