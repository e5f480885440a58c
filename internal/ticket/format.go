package ticket

import "fmt"

// Format renders the e-ticket the way the service prints it in chat.
func Format(t *Ticket) string {
	return fmt.Sprintf(`╔══════════════════════════════════════╗
║      ЭЛЕКТРОННЫЙ БИЛЕТ НА ПОЕЗД      ║
╠══════════════════════════════════════╣
║ 📍 Направление: %s
║ 🎫 Номер брони: %s
║ 👤 Пассажир: %s
║ 📅 Дата: %s
║ 🚂 Поезд: №%s
║ 🕗 Отправление: %s
║ 🕓 Прибытие: %s
║ 💺 Вагон: %d Место: %d
║ 💰 Стоимость: %.0f руб.
╠══════════════════════════════════════╣
║  Предъявите этот билет при посадке!  ║
╚══════════════════════════════════════╝`,
		t.Destination,
		t.BookingNumber,
		t.Passenger,
		t.DateText,
		t.TrainNumber,
		t.DepartureTime,
		t.ArrivalTime,
		t.Wagon,
		t.Seat,
		t.Price,
	)
}
