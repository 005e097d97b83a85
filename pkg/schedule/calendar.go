// Package schedule tells whether a day is a working day and which shift
// hours apply.
package schedule

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/teambition/rrule-go"

	"Presensi-QR-Karyawan/models"
)

const layout = "2006-01-02"

// HolidaySource returns the national holidays of a year.
type HolidaySource interface {
	FetchHolidays(ctx context.Context, year string) ([]models.Holiday, error)
}

type Calendar struct {
	rule     *rrule.ROption
	start    string
	end      string
	location *time.Location
	holidays HolidaySource

	mu       sync.Mutex
	cache    map[string]map[string]string // year -> date -> holiday name
	inflight map[string]chan struct{}
}

// NewCalendar parses recurrence (an RRULE without DTSTART) describing the
// working days. holidays may be nil.
func NewCalendar(recurrence, start, end string, location *time.Location, holidays HolidaySource) (*Calendar, error) {
	opt, err := rrule.StrToROption(recurrence)
	if err != nil {
		return nil, fmt.Errorf("aturan perulangan tidak valid: %w", err)
	}
	if location == nil {
		location = time.Local
	}
	return &Calendar{
		rule:     opt,
		start:    start,
		end:      end,
		location: location,
		holidays: holidays,
		cache:    make(map[string]map[string]string),
		inflight: make(map[string]chan struct{}),
	}, nil
}

// Today returns the shift for the current day in the calendar's location.
func (c *Calendar) Today(ctx context.Context, now time.Time) (*models.Shift, error) {
	return c.Day(ctx, now.In(c.location).Format(layout))
}

// Day returns the shift for date (YYYY-MM-DD).
func (c *Calendar) Day(ctx context.Context, date string) (*models.Shift, error) {
	day, err := time.ParseInLocation(layout, date, c.location)
	if err != nil {
		return nil, fmt.Errorf("format tanggal tidak valid: %w", err)
	}

	opt := *c.rule
	opt.Dtstart = day
	rr, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("gagal membuat rrule: %w", err)
	}

	shift := &models.Shift{Date: date, StartTime: c.start, EndTime: c.end}
	occurrences := rr.Between(day, day.AddDate(0, 0, 1), true)
	for _, o := range occurrences {
		if o.Format(layout) == date {
			shift.IsWorkday = true
			break
		}
	}

	if name, ok := c.holidayMap(ctx, day.Format("2006"))[date]; ok {
		shift.IsWorkday = false
		shift.HolidayName = name
	}
	return shift, nil
}

// Holidays returns the national holidays of year with normalised dates.
func (c *Calendar) Holidays(ctx context.Context, year string) []models.Holiday {
	holidays := []models.Holiday{}
	for date, name := range c.holidayMap(ctx, year) {
		holidays = append(holidays, models.Holiday{Date: date, Name: name})
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date < holidays[j].Date })
	return holidays
}

// holidayMap fetches a year at most once at a time; concurrent callers for
// the same year wait for that fetch instead of issuing their own.
func (c *Calendar) holidayMap(ctx context.Context, year string) map[string]string {
	if c.holidays == nil {
		return nil
	}

	c.mu.Lock()
	if m, ok := c.cache[year]; ok {
		c.mu.Unlock()
		return m
	}
	if wait, ok := c.inflight[year]; ok {
		c.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return nil
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.cache[year]
	}
	done := make(chan struct{})
	c.inflight[year] = done
	c.mu.Unlock()

	m := c.fetch(ctx, year)

	c.mu.Lock()
	if m != nil {
		c.cache[year] = m
	}
	delete(c.inflight, year)
	c.mu.Unlock()
	close(done)
	return m
}

func (c *Calendar) fetch(ctx context.Context, year string) map[string]string {
	list, err := c.holidays.FetchHolidays(ctx, year)
	if err != nil {
		// Lanjut tanpa data hari libur; dicoba lagi pada permintaan berikutnya.
		log.Printf("Warning: gagal mengambil hari libur %s: %v", year, err)
		return nil
	}

	m := make(map[string]string, len(list))
	for _, h := range list {
		// API hari libur tidak selalu memakai nol di depan (2026-1-1).
		d, err := time.Parse("2006-1-2", h.Date)
		if err != nil {
			continue
		}
		m[d.Format(layout)] = h.Name
	}
	return m
}
