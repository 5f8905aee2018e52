package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationStrip(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected []string
	}{
		{"no pages", 1, 0, []string{}},
		{"single page", 1, 1, []string{"1"}},
		{"seven pages shown in full", 4, 7, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"near the start", 2, 10, []string{"1", "2", "3", "...", "9", "10"}},
		{"third page", 3, 10, []string{"1", "2", "3", "...", "9", "10"}},
		{"near the end", 9, 10, []string{"1", "2", "...", "8", "9", "10"}},
		{"middle", 5, 10, []string{"1", "...", "4", "5", "6", "...", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PaginationStrip(tt.current, tt.total))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 13, 2, 6)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(13), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, []string{"1", "2", "3"}, resp.Meta.Pages)
}
