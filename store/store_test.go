package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_CommitNotifiesSubscribers(t *testing.T) {
	c := NewCollection[string]()

	var got [][]string
	cancel := c.Subscribe(func(items []string) { got = append(got, items) })

	ticket := c.Begin()
	assert.True(t, c.Loading())

	require.True(t, c.Commit(ticket, []string{"a", "b"}))
	assert.False(t, c.Loading())
	assert.Equal(t, []string{"a", "b"}, c.Items())
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", "b"}, got[0])

	cancel()
	c.Set([]string{"c"})
	assert.Len(t, got, 1, "cancelled subscriber must not be called")
	assert.Equal(t, []string{"c"}, c.Items())
}

func TestCollection_StaleTicketIsDropped(t *testing.T) {
	c := NewCollection[int]()

	slow := c.Begin()
	fast := c.Begin()

	require.True(t, c.Commit(fast, []int{2}))
	assert.False(t, c.Commit(slow, []int{1}))
	assert.Equal(t, []int{2}, c.Items())
}

func TestCollection_FailKeepsItems(t *testing.T) {
	c := NewCollection[int]()
	c.Set([]int{1, 2})

	ticket := c.Begin()
	c.Fail(ticket)

	assert.False(t, c.Loading())
	assert.Equal(t, []int{1, 2}, c.Items())
}

func TestCollection_SetInvalidatesInFlightLoad(t *testing.T) {
	c := NewCollection[int]()
	ticket := c.Begin()
	c.Set([]int{9})

	assert.False(t, c.Commit(ticket, []int{1}))
	assert.Equal(t, []int{9}, c.Items())
}

func TestCollection_ItemsIsACopy(t *testing.T) {
	c := NewCollection[int]()
	c.Set([]int{1, 2, 3})

	items := c.Items()
	items[0] = 100
	assert.Equal(t, 1, c.Items()[0])

	v, ok := c.Find(func(i int) bool { return i == 3 })
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = c.Find(func(i int) bool { return i == 4 })
	assert.False(t, ok)
}

func TestValue(t *testing.T) {
	v := NewValue[int64]()

	_, ok := v.Get()
	assert.False(t, ok)

	var events []bool
	cancel := v.Subscribe(func(_ int64, set bool) { events = append(events, set) })
	defer cancel()

	v.Set(4)
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(4), got)

	v.Clear()
	_, ok = v.Get()
	assert.False(t, ok)
	assert.Equal(t, []bool{true, false}, events)
}
