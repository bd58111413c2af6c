package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherdb/pagecache/common"
	"github.com/gopherdb/pagecache/types"
)

func TestVirtualManager_WriteCountsPerPage(t *testing.T) {
	d := NewVirtualManager()

	id := d.AllocatePage()
	var buf [common.PageSize]byte
	require.NoError(t, d.WritePage(id, buf[:]))
	require.NoError(t, d.WritePage(id, buf[:]))

	assert.Equal(t, 2, d.WriteCount(id))
	assert.Equal(t, uint64(2), d.NumWrites())
}

func TestVirtualManager_ReadUnwrittenIsZeroed(t *testing.T) {
	d := NewVirtualManager()
	var buf [common.PageSize]byte
	for i := range buf {
		buf[i] = 0xFF
	}
	require.NoError(t, d.ReadPage(types.PageID(3), buf[:]))
	for _, b := range buf {
		assert.Equal(t, byte(0), b)
	}
}
