package library

import (
	"strconv"
	"strings"
)

// ParseDuration converts a raw duration value to whole seconds. Accepted
// forms: plain seconds ("215"), millisecond exports larger than 1000
// ("215000"), "MM:SS" and "HH:MM:SS". Unparsable input returns (0, false),
// never an error.
func ParseDuration(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		nums := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 {
				return 0, false
			}
			nums = append(nums, n)
		}
		switch len(nums) {
		case 2:
			return nums[0]*60 + nums[1], true
		case 3:
			return nums[0]*3600 + nums[1]*60 + nums[2], true
		default:
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	v := int(f)
	if v > 1000 {
		// Spotify-style millisecond export.
		return v / 1000, true
	}
	return v, true
}
