package utils

import (
	"path/filepath"
	"strings"
)

// IsSafeFileComponent reports whether s can be used as part of a file name
// without escaping its directory.
func IsSafeFileComponent(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.ContainsRune(s, 0)
}

// ArrivalFileName builds the output file name for a destination code,
// e.g. JFK + "_arrival" + ".json".
func ArrivalFileName(code, suffix, ext string) string {
	return code + suffix + ext
}

// ArrivalFilePath joins dir with the output file name for code.
func ArrivalFilePath(dir, code, suffix, ext string) string {
	return filepath.Join(dir, ArrivalFileName(code, suffix, ext))
}
