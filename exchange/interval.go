package exchange

import (
	"fmt"
	"strconv"
	"time"
)

//
// Interval is an enum that represents the candle timeframes that can be requested from the candles
// endpoint. Its value is the timeframe length in seconds, which is what goes on the wire.
//
type Interval int

const (
	OneMinute     Interval = 60
	FiveMinute    Interval = 5 * 60
	FifteenMinute Interval = 15 * 60
	ThirtyMinute  Interval = 30 * 60
	OneHour       Interval = 60 * 60
	FourHour      Interval = 4 * 60 * 60
	OneDay        Interval = 24 * 60 * 60
	OneWeek       Interval = 7 * 24 * 60 * 60
)

var intervalNames = map[Interval]string{
	OneMinute:     "1m",
	FiveMinute:    "5m",
	FifteenMinute: "15m",
	ThirtyMinute:  "30m",
	OneHour:       "1h",
	FourHour:      "4h",
	OneDay:        "1d",
	OneWeek:       "1w",
}

func (o Interval) String() string {
	if name, ok := intervalNames[o]; ok {
		return name
	}

	return fmt.Sprintf("%ds", int(o))
}

// Seconds returns the length of the timeframe in seconds.
func (o Interval) Seconds() int {
	return int(o)
}

// Duration returns the length of the timeframe.
func (o Interval) Duration() time.Duration {
	return time.Duration(o) * time.Second
}

//
// ParseInterval accepts a plain number of seconds ("300"), one of the short names ("5m", "1d") or
// anything time.ParseDuration understands as long as it is a positive whole number of seconds.
//
func ParseInterval(s string) (Interval, error) {
	if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
		return Interval(secs), nil
	}

	for interval, name := range intervalNames {
		if name == s {
			return interval, nil
		}
	}

	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 || d%time.Second != 0 {
		return 0, fmt.Errorf("invalid candle interval %q", s)
	}

	return Interval(d / time.Second), nil
}
