package models

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusApproved))
	assert.True(t, CanTransition(StatusPending, StatusDeclined))
	assert.False(t, CanTransition(StatusPending, StatusPending))
	assert.False(t, CanTransition(StatusApproved, StatusDeclined))
	assert.False(t, CanTransition(StatusDeclined, StatusApproved))
	assert.False(t, CanTransition(StatusApproved, StatusPending))
}

func TestNewPaginatedResult(t *testing.T) {
	r := NewPaginatedResult([]int{1, 2, 3}, 21, Page{Number: 2, Limit: 10})
	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, 2, r.Page)
	assert.Equal(t, 21, r.TotalItems)

	empty := NewPaginatedResult[int](nil, 0, Page{Number: 1, Limit: 10})
	assert.NotNil(t, empty.Documents)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Page{Number: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, Page{Number: 0, Limit: 10}.Offset())
	assert.Equal(t, 0, Page{Number: 5, Limit: 0}.Offset())
	assert.Equal(t, math.MaxInt, Page{Number: math.MaxInt, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, Page{Number: math.MaxInt/4 + 2, Limit: 4}.Offset())
}
