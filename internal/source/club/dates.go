package club

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoLayout = "2006-01-02T15:04:05"

// "25.12.2025", "PRIDANÉ: 25. 12. 2025", "so 10.01.2025 18:00"
var dayFirstRe = regexp.MustCompile(`(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{4})(?:\D{1,12}?(\d{1,2}):(\d{2}))?`)

// ParseDate turns a display date into a zone-less ISO datetime. Day-first
// texts are read explicitly; anything else goes through dateparse.
// It returns nil when nothing can be recognised.
func ParseDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		var hour, minute int
		if m[4] != "" {
			hour, _ = strconv.Atoi(m[4])
			minute, _ = strconv.Atoi(m[5])
		}
		t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
		if t.Day() != day || int(t.Month()) != month || hour > 23 || minute > 59 {
			return nil
		}
		iso := t.Format(isoLayout)
		return &iso
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	iso := t.Format(isoLayout)
	return &iso
}

