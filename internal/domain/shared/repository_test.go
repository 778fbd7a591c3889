package shared

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		p := NewPageRequest(-1, 0)
		assert.Equal(t, 0, p.Page)
		assert.Equal(t, DefaultPageLimit, p.Limit)
	})

	t.Run("caps the limit", func(t *testing.T) {
		p := NewPageRequest(2, 1000)
		assert.Equal(t, MaxPageLimit, p.Limit)
		assert.Equal(t, 2*MaxPageLimit, p.Offset())
	})

	t.Run("fetches one extra row", func(t *testing.T) {
		p := NewPageRequest(3, 10)
		assert.Equal(t, 30, p.Offset())
		assert.Equal(t, 11, p.FetchLimit())
	})
}

func TestSkipTake(t *testing.T) {
	p := SkipTake(15, 5)
	assert.Equal(t, 15, p.Offset())
	assert.Equal(t, 6, p.FetchLimit())

	p = SkipTake(-3, 0)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, DefaultPageLimit, p.Limit)
}

func TestNewPage(t *testing.T) {
	t.Run("next is true when limit+1 rows came back", func(t *testing.T) {
		page := NewPage([]int{1, 2, 3, 4}, 3)
		assert.True(t, page.Next)
		assert.Equal(t, []int{1, 2, 3}, page.Data)
	})

	t.Run("next is false for an exactly full page", func(t *testing.T) {
		page := NewPage([]int{1, 2, 3}, 3)
		assert.False(t, page.Next)
		assert.Len(t, page.Data, 3)
	})

	t.Run("next is false for a short page", func(t *testing.T) {
		page := NewPage([]int{1}, 3)
		assert.False(t, page.Next)
		assert.Equal(t, []int{1}, page.Data)
	})

	t.Run("nil rows become an empty slice", func(t *testing.T) {
		page := NewPage[string](nil, 10)
		assert.NotNil(t, page.Data)
		assert.Empty(t, page.Data)
	})
}

func TestMapPage(t *testing.T) {
	page := MapPage(Page[int]{Data: []int{1, 2}, Next: true}, func(i int) string {
		return fmt.Sprintf("#%d", i)
	})
	assert.Equal(t, []string{"#1", "#2"}, page.Data)
	assert.True(t, page.Next)
}

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("User"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, "Invalid team id: abc", NewInvalidIDError("team", "abc").Error())
}

func TestSoftDeletable(t *testing.T) {
	var s SoftDeletable
	assert.False(t, s.IsDeleted())

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.MarkDeleted(first)
	s.MarkDeleted(first.Add(time.Hour))

	assert.True(t, s.IsDeleted())
	assert.Equal(t, first, *s.DeletedAt)
}
