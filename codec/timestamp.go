package codec

import (
	"strconv"
	"time"
)

//
// EncodeTime renders a point in time as the whole number of seconds since the Unix epoch. Any
// sub-second part is truncated.
//
func EncodeTime(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

//
// DecodeTime turns an integer number of seconds since the Unix epoch back into a UTC time.
//
func DecodeTime(token string) (time.Time, error) {
	secs, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return time.Time{}, &MalformedNumberError{Token: token, Err: err}
	}

	return time.Unix(secs, 0).UTC(), nil
}
