package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBytes parses a byte size string like "4MB", "500KB", "2GB".
// An empty string parses to 0 (no limit).
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	num := s
	unit := ""
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			num = s[:i]
			unit = strings.ToLower(strings.TrimSpace(s[i:]))
			break
		}
	}

	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %s", s)
	}

	multiplier := int64(1)
	switch unit {
	case "", "b":
	case "k", "kb":
		multiplier = 1 << 10
	case "m", "mb":
		multiplier = 1 << 20
	case "g", "gb":
		multiplier = 1 << 30
	case "t", "tb":
		multiplier = 1 << 40
	default:
		return 0, fmt.Errorf("invalid size unit: %s", s)
	}

	return int64(val * float64(multiplier)), nil
}

// HumanBytes converts bytes to human-readable format
func HumanBytes(n int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := 0
	val := float64(n)

	for val >= 1024 && i < len(units)-1 {
		val /= 1024
		i++
	}

	return fmt.Sprintf("%.2f%s", val, units[i])
}

// IsTorrentLike checks if source is a torrent (magnet or .torrent file)
func IsTorrentLike(src string) bool {
	if strings.HasPrefix(src, "magnet:") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(src), ".torrent")
}
