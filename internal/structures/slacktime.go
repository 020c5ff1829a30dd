package structures

// in this file: slack timestamp parsing functions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSlackTS parses the slack timestamp (i.e. "1638494510.037400").
func ParseSlackTS(timestamp string) (time.Time, error) {
	const (
		base = 10
		bit  = 64
	)
	sSec, sMicro, found := strings.Cut(timestamp, ".")
	if sSec == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	var t int64
	var err error
	if !found {
		t, err = strconv.ParseInt(sSec+"000000", base, bit)
	} else {
		t, err = strconv.ParseInt(sSec+sMicro, base, bit)
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMicro(t).UTC(), nil
}

// FormatSlackTS formats the time as a slack timestamp string.
func FormatSlackTS(ts time.Time) string {
	if ts.IsZero() || ts.Before(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return ""
	}
	hi := ts.Unix()
	lo := ts.UnixMicro() % 1_000_000
	return fmt.Sprintf("%d.%06d", hi, lo)
}
