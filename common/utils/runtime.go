package utils

import (
	"runtime"
	"strings"
)

// GetCallerFunctionName retrieves the name of the calling function.
// skip determines how many stack frames to ascend.
func GetCallerFunctionName(skip int) string {
	pc := make([]uintptr, 1)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return "<unknown>"
	}
	fn := runtime.FuncForPC(pc[0])
	if fn == nil {
		return "<unknown>"
	}
	fullFuncName := fn.Name()
	operationName := fullFuncName
	if lastDotIndex := strings.LastIndexByte(fullFuncName, '.'); lastDotIndex != -1 {
		operationName = fullFuncName[lastDotIndex+1:]
	}
	return operationName
}
