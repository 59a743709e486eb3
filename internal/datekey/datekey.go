// Package datekey 將使用者輸入的日期轉成月曆用的 day-of-month key
package datekey

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	apperrors "gin-event-calendar/pkg/app_errors"
)

const Layout = "2006-01-02"

var (
	isoPattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayTokenPattern = regexp.MustCompile(`^\d{1,2}$`)
)

type Key struct {
	ISODate    string
	DayOfMonth int
}

// Normalize 解析 YYYY-MM-DD，回傳標準化日期與日
func Normalize(s string) (Key, error) {
	if !isoPattern.MatchString(s) {
		return Key{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDateFormat, s)
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		// 格式正確但日期不存在，例如 2025-02-30
		return Key{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDateFormat, s)
	}
	if t.Year() < 1 {
		// 西元 0 年在 Postgres DATE 會變成 1 BC
		return Key{}, fmt.Errorf("%w: year %q", apperrors.ErrInvalidDateFormat, s)
	}
	return Key{
		ISODate:    t.Format(Layout),
		DayOfMonth: t.Day(),
	}, nil
}

// DayFromRouteParam 用路由上的日（"5"、"05"、"15"）組出參考年月的完整日期
func DayFromRouteParam(dayToken string, referenceMonth time.Month, referenceYear int) (string, error) {
	if !dayTokenPattern.MatchString(dayToken) {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidDay, dayToken)
	}
	day, err := strconv.Atoi(dayToken)
	if err != nil {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidDay, dayToken)
	}
	if referenceMonth < time.January || referenceMonth > time.December {
		return "", fmt.Errorf("%w: month %d", apperrors.ErrInvalidDay, referenceMonth)
	}
	if day < 1 || day > DaysIn(referenceYear, referenceMonth) {
		return "", fmt.Errorf("%w: %d not in %s %d", apperrors.ErrInvalidDay, day, referenceMonth, referenceYear)
	}
	return time.Date(referenceYear, referenceMonth, day, 0, 0, 0, 0, time.UTC).Format(Layout), nil
}

// DaysIn 該月天數（含閏年）
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
