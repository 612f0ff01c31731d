package dbug

import (
	"time"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// appendTimestamp appends t in UTC as 2006-01-02T15:04:05.000Z without going
// through time.Format for the common four-digit-year case.
func appendTimestamp(buf []byte, t time.Time) []byte {
	t = t.UTC()
	year, month, day := t.Date()
	if year < 0 || year > 9999 {
		return t.AppendFormat(buf, timestampLayout)
	}
	hour, min, sec := t.Clock()
	buf = appendFourDigits(buf, year)
	buf = append(buf, '-')
	buf = appendTwoDigits(buf, int(month))
	buf = append(buf, '-')
	buf = appendTwoDigits(buf, day)
	buf = append(buf, 'T')
	buf = appendTwoDigits(buf, hour)
	buf = append(buf, ':')
	buf = appendTwoDigits(buf, min)
	buf = append(buf, ':')
	buf = appendTwoDigits(buf, sec)
	buf = append(buf, '.')
	buf = appendThreeDigits(buf, t.Nanosecond()/int(time.Millisecond))
	return append(buf, 'Z')
}

func appendFourDigits(buf []byte, v int) []byte {
	buf = appendTwoDigits(buf, v/100)
	buf = appendTwoDigits(buf, v%100)
	return buf
}

func appendThreeDigits(buf []byte, v int) []byte {
	buf = append(buf, byte('0'+v/100))
	return appendTwoDigits(buf, v%100)
}

func appendTwoDigits(buf []byte, value int) []byte {
	buf = append(buf, byte('0'+value/10))
	buf = append(buf, byte('0'+value%10))
	return buf
}
