package util

import (
	"strconv"
	"strings"
	"time"
)

// StringToInt64 converts string to int64
func StringToInt64(str string) (int64, error) {
	i64, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return i64, nil
}

// StringsToInt64s converts every item, failing on the first bad one.
func StringsToInt64s(strs []string) ([]int64, error) {
	res := make([]int64, 0, len(strs))
	for _, s := range strs {
		i, err := StringToInt64(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		res = append(res, i)
	}
	return res, nil
}

// Int64ToString coverts int64 to string
func Int64ToString(u int64) string {
	return strconv.FormatInt(u, 10)
}

func SplitByComma(str string) []string {
	str = strings.TrimSpace(str)
	strArr := strings.Split(str, ",")
	var trimStr []string
	for _, item := range strArr {
		if len(strings.TrimSpace(item)) > 0 {
			trimStr = append(trimStr, strings.TrimSpace(item))
		}
	}
	return trimStr
}

func JoinWithComma(slice []string) string {
	return strings.Join(slice, ",")
}

// DateParts splits t into the zero padded year, month and day used in upload paths.
func DateParts(t time.Time) (year, month, day string) {
	return t.Format("2006"), t.Format("01"), t.Format("02")
}
