package journal

import (
	"fmt"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/metrics"
)

// All disables the instrument, direction or performance predicate.
const All = "ALL"

type Performance string

const (
	PerformanceAll     Performance = All
	PerformanceWinners Performance = "WINNERS"
	PerformanceLosers  Performance = "LOSERS"
)

const dayLayout = "2006-01-02"

// Filter narrows the trade list. Every predicate is independent of the
// others, so applying several is their intersection. From and To are
// calendar days (inclusive); a zero value leaves that side open.
type Filter struct {
	From        time.Time
	To          time.Time
	Instrument  string
	Direction   string
	Performance Performance
	Text        string
}

// DefaultFilter spans the creation days of trades and lets everything
// else through.
func DefaultFilter(trades []domain.Trade, loc *time.Location) Filter {
	f := Filter{Instrument: All, Direction: All, Performance: PerformanceAll}
	for i, t := range trades {
		day := Day(t.CreatedAt, loc)
		if i == 0 || day.Before(f.From) {
			f.From = day
		}
		if i == 0 || day.After(f.To) {
			f.To = day
		}
	}
	return f
}

// Day truncates t to midnight of its calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (f Filter) Match(t domain.Trade, loc *time.Location) bool {
	return f.matchDate(t, loc) &&
		f.matchInstrument(t) &&
		f.matchDirection(t) &&
		f.matchPerformance(t) &&
		f.matchText(t)
}

func (f Filter) matchDate(t domain.Trade, loc *time.Location) bool {
	day := Day(t.CreatedAt, loc)
	if !f.From.IsZero() && day.Before(Day(f.From, loc)) {
		return false
	}
	if !f.To.IsZero() && day.After(Day(f.To, loc)) {
		return false
	}
	return true
}

func (f Filter) matchInstrument(t domain.Trade) bool {
	return isAll(f.Instrument) || t.Instrument == f.Instrument
}

func (f Filter) matchDirection(t domain.Trade) bool {
	return isAll(f.Direction) || string(t.Direction) == f.Direction
}

func (f Filter) matchPerformance(t domain.Trade) bool {
	switch f.Performance {
	case PerformanceWinners:
		return metrics.IsWinner(t)
	case PerformanceLosers:
		return !metrics.IsWinner(t)
	default:
		return true
	}
}

func (f Filter) matchText(t domain.Trade) bool {
	q := strings.ToLower(f.Text)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(domain.Deref(t.Notes)), q) ||
		strings.Contains(strings.ToLower(domain.Deref(t.AIFeedback)), q)
}

// Apply keeps the trades matching f, preserving order.
func Apply(trades []domain.Trade, f Filter, loc *time.Location) []domain.Trade {
	out := make([]domain.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t, loc) {
			out = append(out, t)
		}
	}
	return out
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

// ParseFilter builds a Filter from string parameters (query string, tool
// arguments, CLI flags): from, to (YYYY-MM-DD), instrument, direction,
// performance and q.
func ParseFilter(get func(key string) string, loc *time.Location) (Filter, error) {
	if loc == nil {
		loc = time.Local
	}
	f := Filter{
		Instrument:  strings.ToUpper(strings.TrimSpace(get("instrument"))),
		Direction:   strings.ToUpper(strings.TrimSpace(get("direction"))),
		Performance: Performance(strings.ToUpper(strings.TrimSpace(get("performance")))),
		Text:        get("q"),
	}
	if f.Instrument == "" {
		f.Instrument = All
	}
	if f.Direction == "" {
		f.Direction = All
	}
	if f.Performance == "" {
		f.Performance = PerformanceAll
	}

	switch f.Direction {
	case All, string(domain.DirectionLong), string(domain.DirectionShort):
	default:
		return f, &domain.ValidationError{Field: "direction", Message: "Invalid direction. Must be ALL, LONG or SHORT"}
	}
	switch f.Performance {
	case PerformanceAll, PerformanceWinners, PerformanceLosers:
	default:
		return f, &domain.ValidationError{Field: "performance", Message: "Invalid performance. Must be ALL, WINNERS or LOSERS"}
	}

	for _, bound := range []struct {
		key string
		dst *time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := strings.TrimSpace(get(bound.key))
		if raw == "" {
			continue
		}
		day, err := time.ParseInLocation(dayLayout, raw, loc)
		if err != nil {
			return f, &domain.ValidationError{
				Field:   bound.key,
				Message: fmt.Sprintf("Invalid %s. Must be a date (YYYY-MM-DD)", bound.key),
			}
		}
		*bound.dst = day
	}
	return f, nil
}

// Active reports whether f narrows anything beyond def.
func (f Filter) Active(def Filter) bool {
	return !f.From.Equal(def.From) || !f.To.Equal(def.To) ||
		!isAll(f.Instrument) || !isAll(f.Direction) ||
		(f.Performance != "" && f.Performance != PerformanceAll) ||
		f.Text != ""
}
