// Package ticket generates synthetic travel tickets and booking numbers.
//
// The randomness here is cosmetic flavor (train number, wagon, seat), not
// a pricing-critical computation: the price is drawn from a fixed bounded
// range and callers must treat it as "in-range", never exact. The random
// source is injectable for reproducible tests.
package ticket

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrMissingPrerequisite is returned when a ticket is requested before
// both destination and travel date are known.
var ErrMissingPrerequisite = errors.New("destination and travel date are required")

// Price bounds in currency units.
const (
	PriceMin = 1500
	PriceMax = 4500
)

// Ticket is a generated travel ticket.
type Ticket struct {
	BookingNumber string
	Destination   string
	DateText      string
	Passenger     string
	TrainNumber   string
	DepartureTime string
	ArrivalTime   string
	Wagon         int
	Seat          int
	Price         float64
	CreatedAt     time.Time
}

type schedule struct {
	trains     []string
	departures []string
	arrivals   []string
}

// Schedules for the destinations the original service ran to. Unknown
// destinations fall back to a generic schedule.
var schedules = map[string]schedule{
	"Москва": {
		trains:     []string{"001А", "034С", "078Ф", "105В"},
		departures: []string{"08:30", "12:45", "16:20", "20:15"},
		arrivals:   []string{"14:25", "18:40", "22:15", "02:00+1"},
	},
	"Санкт-Петербург": {
		trains:     []string{"012Д", "045М", "089Р", "112Т"},
		departures: []string{"09:15", "13:30", "17:45", "21:00"},
		arrivals:   []string{"15:45", "20:00", "00:15+1", "03:30+1"},
	},
	"Сочи": {
		trains:     []string{"023К", "067Н", "098П"},
		departures: []string{"07:00", "14:20", "19:10"},
		arrivals:   []string{"23:40", "07:00+1", "11:50+1"},
	},
}

var genericSchedule = schedule{
	trains:     []string{"201Щ", "245Е", "288Л"},
	departures: []string{"08:00", "13:00", "18:00"},
	arrivals:   []string{"16:30", "21:30", "02:30+1"},
}

// Generator produces tickets and booking numbers.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator seeded from the clock.
func NewGenerator() *Generator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator creates a deterministic generator for tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// BookingNumber produces a booking number of the form AAA-999999.
func (g *Generator) BookingNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, 0, 10)
	for i := 0; i < 3; i++ {
		buf = append(buf, letters[g.rng.Intn(len(letters))])
	}
	buf = append(buf, '-')
	for i := 0; i < 6; i++ {
		buf = append(buf, byte('0'+g.rng.Intn(10)))
	}
	return string(buf)
}

// Generate produces a ticket for the destination/date pair. Both must be
// non-empty; the booking number is supplied by the caller so repeated
// generation within one session reuses the same number.
func (g *Generator) Generate(destination, dateText, bookingNumber, passenger string) (*Ticket, error) {
	if destination == "" || dateText == "" {
		return nil, ErrMissingPrerequisite
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	sched, ok := schedules[destination]
	if !ok {
		sched = genericSchedule
	}
	idx := g.rng.Intn(len(sched.trains))

	return &Ticket{
		BookingNumber: bookingNumber,
		Destination:   destination,
		DateText:      dateText,
		Passenger:     passenger,
		TrainNumber:   sched.trains[idx],
		DepartureTime: sched.departures[idx],
		ArrivalTime:   sched.arrivals[idx],
		Wagon:         1 + g.rng.Intn(15),
		Seat:          1 + g.rng.Intn(36),
		Price:         float64(PriceMin + g.rng.Intn(PriceMax-PriceMin+1)),
		CreatedAt:     g.now(),
	}, nil
}
