package utils

import "strconv"

// ParseID parses a positive int64 path/query id.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ParseBoolFlag reads the 1/0 (or true/false) query flags.
// Returns set=false when the value is absent or unrecognised.
func ParseBoolFlag(s string) (value bool, set bool) {
	switch s {
	case "1", "true", "True":
		return true, true
	case "0", "false", "False":
		return false, true
	default:
		return false, false
	}
}
