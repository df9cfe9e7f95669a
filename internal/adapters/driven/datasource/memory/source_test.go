package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotkit/spotkit/internal/core/domain"
)

func testSource() *Source {
	return New(
		domain.StaticItem{Key: "1", Name: "Open Settings"},
		domain.StaticItem{Key: "2", Name: "Open Terminal"},
		domain.StaticItem{Key: "3", Name: "Quit"},
	)
}

func TestSource_ListAll(t *testing.T) {
	items, err := testSource().ListAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestSource_Search_CaseInsensitive(t *testing.T) {
	items, err := testSource().Search(context.Background(), "OPEN")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Open Settings", items[0].Title())
	assert.Equal(t, "Open Terminal", items[1].Title())
}

func TestSource_Search_EmptyQuery(t *testing.T) {
	items, err := testSource().Search(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSource_Search_NoMatch(t *testing.T) {
	items, err := testSource().Search(context.Background(), "zzz")

	require.NoError(t, err)
	assert.Empty(t, items)
}
