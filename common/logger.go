// this code is adapted from github.com/ryogrid/SamehadaDB's common/logger.go

package common

import "fmt"

type LogLevel int32

const (
	DebugDetail LogLevel = 1
	Debug       LogLevel = 2
	Info        LogLevel = 4
	Warn        LogLevel = 8
	Error       LogLevel = 16
)

// LogLevelSetting is a bitmask of the levels ShPrintf should actually emit.
// It defaults to Info|Warn|Error; setting it to zero silences ShPrintf.
var LogLevelSetting LogLevel = Info | Warn | Error

// ShPrintf prints fmtStr/a if logLevel is enabled by LogLevelSetting.
// DebugDetail output additionally requires EnableDebug.
func ShPrintf(logLevel LogLevel, fmtStr string, a ...interface{}) {
	if logLevel == DebugDetail && !EnableDebug {
		return
	}
	if logLevel&LogLevelSetting > 0 {
		fmt.Printf(fmtStr, a...)
	}
}
