package ticket

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingNumberFormat(t *testing.T) {
	g := NewSeededGenerator(1)
	re := regexp.MustCompile(`^[A-Z]{3}-\d{6}$`)

	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, g.BookingNumber())
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewSeededGenerator(42)
	b := NewSeededGenerator(42)

	assert.Equal(t, a.BookingNumber(), b.BookingNumber())

	ta, err := a.Generate("Москва", "завтра", "AAA-000001", "Миша Лукин")
	assert.NoError(t, err)
	tb, err := b.Generate("Москва", "завтра", "AAA-000001", "Миша Лукин")
	assert.NoError(t, err)

	assert.Equal(t, ta.TrainNumber, tb.TrainNumber)
	assert.Equal(t, ta.Wagon, tb.Wagon)
	assert.Equal(t, ta.Seat, tb.Seat)
	assert.Equal(t, ta.Price, tb.Price)
}

func TestGenerateFieldsInRange(t *testing.T) {
	g := NewSeededGenerator(7)

	for i := 0; i < 100; i++ {
		tk, err := g.Generate("Сочи", "25 декабря", "BBB-123456", "Миша Лукин")
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, tk.Price, float64(PriceMin))
		assert.LessOrEqual(t, tk.Price, float64(PriceMax))
		assert.GreaterOrEqual(t, tk.Wagon, 1)
		assert.LessOrEqual(t, tk.Wagon, 15)
		assert.GreaterOrEqual(t, tk.Seat, 1)
		assert.LessOrEqual(t, tk.Seat, 36)
		assert.NotEmpty(t, tk.TrainNumber)
		assert.NotEmpty(t, tk.DepartureTime)
		assert.NotEmpty(t, tk.ArrivalTime)
	}
}

func TestGenerateUsesDestinationSchedule(t *testing.T) {
	g := NewSeededGenerator(3)

	tk, err := g.Generate("Москва", "завтра", "CCC-000001", "Миша Лукин")
	assert.NoError(t, err)
	assert.Contains(t, schedules["Москва"].trains, tk.TrainNumber)
}

func TestGenerateUnknownDestinationFallsBack(t *testing.T) {
	g := NewSeededGenerator(3)

	tk, err := g.Generate("Казань", "завтра", "DDD-000001", "Миша Лукин")
	assert.NoError(t, err)
	assert.Contains(t, genericSchedule.trains, tk.TrainNumber)
}

func TestGenerateMissingPrerequisite(t *testing.T) {
	g := NewSeededGenerator(3)

	_, err := g.Generate("", "завтра", "EEE-000001", "Миша Лукин")
	assert.ErrorIs(t, err, ErrMissingPrerequisite)

	_, err = g.Generate("Москва", "", "EEE-000001", "Миша Лукин")
	assert.ErrorIs(t, err, ErrMissingPrerequisite)
}

func TestFormatContainsTicketFields(t *testing.T) {
	g := NewSeededGenerator(9)
	tk, err := g.Generate("Санкт-Петербург", "на выходные", "FFF-654321", "Миша Лукин")
	assert.NoError(t, err)

	out := Format(tk)
	assert.Contains(t, out, "Санкт-Петербург")
	assert.Contains(t, out, "FFF-654321")
	assert.Contains(t, out, "Миша Лукин")
	assert.Contains(t, out, tk.TrainNumber)
}
