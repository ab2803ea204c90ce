package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginationOffset(t *testing.T) {
	p := NewPagination(20)
	require.Equal(t, 0, p.Offset())

	p.Update(100, 5)
	p.SetPage(3)
	require.Equal(t, 40, p.Offset())
}

func TestPaginationClampsToRange(t *testing.T) {
	p := NewPagination(20)
	p.Update(100, 5)

	p.SetPage(99)
	require.Equal(t, 5, p.Page)

	p.SetPage(0)
	require.Equal(t, 1, p.Page)

	p.SetPage(-3)
	require.Equal(t, 1, p.Page)
}

func TestPaginationSetLimitResetsPage(t *testing.T) {
	p := NewPagination(20)
	p.Update(100, 5)
	p.SetPage(4)

	p.SetLimit(50)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 50, p.Limit)
}

func TestPaginationZeroLimitUsesDefault(t *testing.T) {
	p := NewPagination(0)
	require.Equal(t, DefaultLimit, p.Limit)
}

func TestPaginationShrinkingResultClampsCurrentPage(t *testing.T) {
	p := NewPagination(20)
	p.Update(100, 5)
	p.SetPage(5)

	// A refetch reporting fewer pages pulls the cursor back into range.
	p.Update(30, 2)
	require.Equal(t, 2, p.Page)
}
