package dbug

import (
	"strconv"
	"time"
)

// appendElapsed appends "+" and d in the largest readable unit. Below a
// second the value is whole milliseconds; above it d is rounded to seconds,
// minutes or hours, moving up a unit when rounding reaches the next one.
func appendElapsed(buf []byte, d time.Duration) []byte {
	buf = append(buf, '+')
	if d <= 0 {
		return append(buf, '0', 'm', 's')
	}
	if d < time.Second {
		buf = strconv.AppendInt(buf, int64(d/time.Millisecond), 10)
		return append(buf, 'm', 's')
	}
	if s := d.Round(time.Second); s < time.Minute {
		buf = strconv.AppendInt(buf, int64(s/time.Second), 10)
		return append(buf, 's')
	}
	if m := d.Round(time.Minute); m < time.Hour {
		buf = strconv.AppendInt(buf, int64(m/time.Minute), 10)
		return append(buf, 'm')
	}
	buf = strconv.AppendInt(buf, int64(d.Round(time.Hour)/time.Hour), 10)
	return append(buf, 'h')
}
