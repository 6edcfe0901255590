package handler

import "strconv"

// parseIntParam parses an integer query parameter
func parseIntParam(raw string) (int, error) {
	return strconv.Atoi(raw)
}
