package services

import (
	"delivery-route-optimizer/internal/domain"
	"fmt"
	"math"
	"time"
)

const (
	DefaultMinutesPerStop = 15.0
	// Assumed average city driving speed for arrival estimates.
	DefaultAverageSpeedKmh = 30.0
)

// Schedule holds the assumptions behind estimated arrival times.
// A zero MinutesPerStop means DefaultMinutesPerStop; a zero AverageSpeedKmh
// means DefaultAverageSpeedKmh.
type Schedule struct {
	StartHour       float64
	MinutesPerStop  float64
	AverageSpeedKmh float64
}

func (s Schedule) minutesPerStop() float64 {
	if s.MinutesPerStop <= 0 {
		return DefaultMinutesPerStop
	}
	return s.MinutesPerStop
}

// EstimateTime returns the "HH:MM" arrival estimate for the stop at the given
// 1-based order: startHour plus (order-1) stops of minutesPerStop each.
// Hours are not wrapped, so long tours may read past "23:59".
func EstimateTime(order int, startHour float64, minutesPerStop float64) string {
	if order < 1 {
		order = 1
	}
	total := int(math.Round(startHour*60 + float64(order-1)*minutesPerStop))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ApplyEstimates sets EstimatedTime on every stop from its order.
func ApplyEstimates(stops []domain.DeliveryPoint, sched Schedule) {
	for i := range stops {
		stops[i].EstimatedTime = EstimateTime(stops[i].Order, sched.StartHour, sched.minutesPerStop())
	}
}

// EstimateArrivals is the per-leg variant: each stop is reached after driving
// its leg distance at speedKmh, and the driver dwells at every stop.
// Returns copies with EstimatedTime set.
func EstimateArrivals(stops []domain.DeliveryPoint, start time.Time, speedKmh float64, dwell time.Duration) []domain.DeliveryPoint {
	if speedKmh <= 0 {
		speedKmh = DefaultAverageSpeedKmh
	}

	out := cloneStops(stops)
	elapsed := time.Duration(0)
	for i := range out {
		if i > 0 {
			elapsed += dwell
		}
		elapsed += time.Duration(out[i].Distance / speedKmh * float64(time.Hour))

		at := start.Add(elapsed)
		minutes := int(at.Sub(startOfDay(start)).Round(time.Minute) / time.Minute)
		out[i].EstimatedTime = fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
	}
	return out
}

// TravelEstimates applies EstimateArrivals from the schedule's start hour on
// day, dwelling MinutesPerStop at each stop.
func (s Schedule) TravelEstimates(stops []domain.DeliveryPoint, day time.Time) []domain.DeliveryPoint {
	start := startOfDay(day).Add(time.Duration(s.StartHour * float64(time.Hour)))
	dwell := time.Duration(s.minutesPerStop() * float64(time.Minute))
	return EstimateArrivals(stops, start, s.AverageSpeedKmh, dwell)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
