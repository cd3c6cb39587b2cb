package env

import "path/filepath"

const logFileName = "rr.log"

// RR_LOG_PATH is the debug log file. It lives in the batch store root and
// is only written when logging is enabled in the config file.
var RR_LOG_PATH string

// Init derives the file locations from the batch store root
func Init(root string) {
	RR_LOG_PATH = filepath.Join(root, logFileName)
}
