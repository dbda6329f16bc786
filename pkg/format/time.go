// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"strconv"
	"time"
)

// dateLen is the length of an RFC3339 full-date, e.g. "2024-01-02".
const dateLen = 10

// isValidDateTime reports whether s is a valid RFC3339 date-time.
func isValidDateTime(s string) bool {
	if len(s) < dateLen || !isValidDate(s[:dateLen]) {
		return false
	}
	s = s[dateLen:]
	if len(s) == 0 || (s[0] != 'T' && s[0] != 't') {
		return false
	}
	return isValidTime(s[1:])
}

// isValidDate reports whether s is a valid RFC3339 full-date
// (YYYY-MM-DD).
func isValidDate(s string) bool {
	if len(s) != dateLen || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return false
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil {
		return false
	}
	mday, err := strconv.Atoi(s[8:])
	if err != nil {
		return false
	}
	if year < 0 || month < 1 || month > 12 || mday < 1 || mday > 31 {
		return false
	}
	dy, dm, dd := time.Date(year, time.Month(month), mday, 0, 0, 0, 0, time.UTC).Date()
	return dy == year && dm == time.Month(month) && dd == mday
}

// isValidTime reports whether s is a valid RFC3339 full-time
// (HH:MM:SS[frac]offset).
func isValidTime(s string) bool {
	if len(s) < 8 || s[2] != ':' || s[5] != ':' {
		return false
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return false
	}
	minute, err := strconv.Atoi(s[3:5])
	if err != nil {
		return false
	}
	second, err := strconv.Atoi(s[6:8])
	if err != nil {
		return false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 60 {
		return false
	}

	s = s[8:]
	if len(s) > 0 && s[0] == '.' {
		s = s[1:]
		if len(s) == 0 {
			return false
		}
		for len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
			s = s[1:]
		}
	}
	if len(s) == 0 {
		return false
	}

	switch s[0] {
	case 'Z', 'z':
		return len(s) == 1
	case '+', '-':
		s = s[1:]
	default:
		return false
	}
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hourOffset, err := strconv.Atoi(s[:2])
	if err != nil {
		return false
	}
	minuteOffset, err := strconv.Atoi(s[3:])
	if err != nil {
		return false
	}
	return hourOffset >= 0 && hourOffset <= 23 && minuteOffset >= 0 && minuteOffset <= 59
}
