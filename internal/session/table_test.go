// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeanCording/node-red-contrib-google-action/internal/gaction"
)

type nopChannel struct{}

func (nopChannel) Reply(*gaction.AppResponse) error { return nil }
func (nopChannel) Abort(int, string) error          { return nil }

func TestTableOpenOrReplace(t *testing.T) {
	tbl := NewTable()

	first := NewDisposition(nopChannel{})
	prev := tbl.OpenOrReplace("abc", first)
	assert.Nil(t, prev, "first open must not displace anything")
	assert.Equal(t, 1, tbl.Len())

	second := NewDisposition(nopChannel{})
	prev = tbl.OpenOrReplace("abc", second)
	require.Same(t, first, prev, "replacement must return the displaced channel")
	assert.Equal(t, 1, tbl.Len(), "at most one entry per conversation id")

	got, ok := tbl.Lookup("abc")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestTableLookupMissing(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Lookup("nope")
	assert.False(t, ok)
}

func TestTableCloseIsIdempotent(t *testing.T) {
	tbl := NewTable()
	tbl.OpenOrReplace("abc", NewDisposition(nopChannel{}))

	tbl.Close("abc")
	assert.Equal(t, 0, tbl.Len())

	// Second close of the same id is a no-op.
	tbl.Close("abc")
	assert.Equal(t, 0, tbl.Len())

	// Closing an id that never existed is a no-op too.
	tbl.Close("never-seen")
	assert.Equal(t, 0, tbl.Len())
}

func TestTableEvictOnlyMatchingChannel(t *testing.T) {
	tbl := NewTable()
	stale := NewDisposition(nopChannel{})
	tbl.OpenOrReplace("abc", stale)

	fresh := NewDisposition(nopChannel{})
	tbl.OpenOrReplace("abc", fresh)

	// A stale evict must not tear down the rebound session.
	assert.False(t, tbl.Evict("abc", stale))
	assert.Equal(t, 1, tbl.Len())

	assert.True(t, tbl.Evict("abc", fresh))
	assert.Equal(t, 0, tbl.Len())
	assert.False(t, tbl.Evict("abc", fresh))
}

func TestTableClear(t *testing.T) {
	tbl := NewTable()
	tbl.OpenOrReplace("a", NewDisposition(nopChannel{}))
	tbl.OpenOrReplace("b", NewDisposition(nopChannel{}))
	tbl.OpenOrReplace("c", NewDisposition(nopChannel{}))

	tbl.Clear()
	assert.Equal(t, 0, tbl.Len())
	_, ok := tbl.Lookup("a")
	assert.False(t, ok)
}

func TestTableConcurrentOpenOrReplace(t *testing.T) {
	tbl := NewTable()

	const writers = 32
	var wg sync.WaitGroup
	displaced := make(chan *Disposition, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if prev := tbl.OpenOrReplace("abc", NewDisposition(nopChannel{})); prev != nil {
				displaced <- prev
			}
		}()
	}
	wg.Wait()
	close(displaced)

	// Exactly one channel remains pending; every other write observed a
	// distinct displaced predecessor.
	assert.Equal(t, 1, tbl.Len())
	count := 0
	seen := make(map[*Disposition]bool)
	for d := range displaced {
		require.False(t, seen[d], "a channel must be displaced at most once")
		seen[d] = true
		count++
	}
	assert.Equal(t, writers-1, count)
}
