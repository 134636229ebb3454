package transcriber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var reSrtTiming = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})[,.](\d{1,3})\s*-->\s*(\d{1,2}):(\d{2}):(\d{2})[,.](\d{1,3})`)

// ParseSRT converts SubRip text into segments. Cue numbers are ignored;
// multi-line cue text is joined with a single space.
func ParseSRT(content string) ([]Segment, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var segments []Segment
	var current *Segment
	var text []string

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(text, " "))
			segments = append(segments, *current)
		}
		current = nil
		text = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		if m := reSrtTiming.FindStringSubmatch(trimmed); m != nil {
			flush()
			start, err := srtSeconds(m[1:5])
			if err != nil {
				return nil, err
			}
			end, err := srtSeconds(m[5:9])
			if err != nil {
				return nil, err
			}
			current = &Segment{Start: start, End: end}
			continue
		}

		if current == nil {
			// cue index or stray line before a timing row
			continue
		}
		text = append(text, trimmed)
	}
	flush()

	return segments, nil
}

func srtSeconds(parts []string) (float64, error) {
	var nums [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid srt timestamp %q: %w", strings.Join(parts, ":"), err)
		}
		nums[i] = n
	}
	millis := nums[3]
	switch len(parts[3]) {
	case 1:
		millis *= 100
	case 2:
		millis *= 10
	}
	return float64(nums[0]*3600+nums[1]*60+nums[2]) + float64(millis)/1000, nil
}
