package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("custom period requires date_from and date_to")
	ErrUnknownPeriod    = errors.New("unknown asset watch period")
)

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

type AssetWatchPeriod string

const (
	PeriodLast7Days    AssetWatchPeriod = "Last7Days"
	PeriodLastMonth    AssetWatchPeriod = "LastMonth"
	PeriodLast3Months  AssetWatchPeriod = "Last3Months"
	PeriodLast6Months  AssetWatchPeriod = "Last6Months"
	PeriodLast12Months AssetWatchPeriod = "Last12Months"
	PeriodCustom       AssetWatchPeriod = "Custom"
)

var assetWatchPeriods = []AssetWatchPeriod{PeriodLast7Days, PeriodLastMonth, PeriodLast3Months, PeriodLast6Months, PeriodLast12Months, PeriodCustom}

// ParseAssetWatchPeriod matches a period name case-insensitively. An empty
// value is the default Last7Days.
func ParseAssetWatchPeriod(raw string) (AssetWatchPeriod, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return PeriodLast7Days, nil
	}
	for _, p := range assetWatchPeriods {
		if strings.EqualFold(string(p), value) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownPeriod, raw)
}

// ResolveRange turns a period into concrete day-aligned bounds. Custom periods
// must carry both dates.
func ResolveRange(period AssetWatchPeriod, from, to *time.Time, now time.Time) (DateRange, error) {
	period, err := ParseAssetWatchPeriod(string(period))
	if err != nil {
		return DateRange{}, err
	}
	today := startOfDay(now)

	switch period {
	case PeriodCustom:
		if from == nil || to == nil || from.IsZero() || to.IsZero() {
			return DateRange{}, ErrInvalidDateRange
		}
		rng := DateRange{From: startOfDay(*from), To: startOfDay(*to)}
		if rng.To.Before(rng.From) {
			return DateRange{}, ErrInvalidDateRange
		}
		return rng, nil
	case PeriodLastMonth:
		return DateRange{From: today.AddDate(0, -1, 0), To: today}, nil
	case PeriodLast3Months:
		return DateRange{From: today.AddDate(0, -3, 0), To: today}, nil
	case PeriodLast6Months:
		return DateRange{From: today.AddDate(0, -6, 0), To: today}, nil
	case PeriodLast12Months:
		return DateRange{From: today.AddDate(0, -12, 0), To: today}, nil
	default:
		return DateRange{From: today.AddDate(0, 0, -7), To: today}, nil
	}
}

// MonthRange aligns a range to whole months, the granularity of the
// utilization tables.
func MonthRange(r DateRange) DateRange {
	return DateRange{
		From: time.Date(r.From.Year(), r.From.Month(), 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(r.To.Year(), r.To.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
