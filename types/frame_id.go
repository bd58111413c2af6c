package types

import "github.com/gopherdb/pagecache/common"

// FrameID indexes the buffer pool manager's fixed frame array:
// 0 <= f < pool_size.
type FrameID int32

// InvalidFrameID represents an invalid/absent frame id.
const InvalidFrameID = FrameID(common.InvalidFrameID)
