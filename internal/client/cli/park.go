package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/natman/internal/client/catalog"
	"github.com/dmitrijs2005/natman/internal/client/models"
)

// Map lists the park's points of interest, or shows one of them when
// markerID is given.
func (a *App) Map(_ context.Context, markerID string) error {
	if markerID == "" {
		r := catalog.ParkRegion
		fmt.Fprintf(a.out, "Карта парка (%.4f, %.4f)\n", r.Latitude, r.Longitude)
		for _, m := range catalog.Markers() {
			fmt.Fprintf(a.out, "#%d %s (%s)\n", m.ID, m.Title, catalog.MarkerLabel(m.Type))
		}
		return nil
	}

	m, err := a.marker(markerID)
	if err != nil {
		return err
	}
	a.alert(m.Title, fmt.Sprintf("%s\n\nТип: %s\nКоординаты: %.4f, %.4f",
		m.Description, catalog.MarkerLabel(m.Type), m.Latitude, m.Longitude))
	a.alert("Подробнее: "+m.Title, catalog.MarkerDetails(m))
	return nil
}

// Route announces directions to a marker.
func (a *App) Route(_ context.Context, markerID string) error {
	m, err := a.marker(markerID)
	if err != nil {
		return err
	}
	a.alert("Навигация", fmt.Sprintf("Маршрут до \"%s\" будет построен. Следуйте указателям в парке.", m.Title))
	return nil
}

func (a *App) marker(markerID string) (models.Marker, error) {
	id, err := strconv.Atoi(markerID)
	if err == nil {
		if m, ok := catalog.Marker(id); ok {
			return m, nil
		}
		err = fmt.Errorf("no marker %d", id)
	}
	a.alert("Карта", "Объект не найден: "+markerID)
	return models.Marker{}, err
}

// Tickets lists the active (default) or past tickets.
func (a *App) Tickets(_ context.Context, tab string) error {
	var tickets []models.Ticket
	switch tab {
	case "", "active":
		tickets = catalog.ActiveTickets()
	case "past":
		tickets = catalog.PastTickets()
	default:
		fmt.Fprintln(a.out, "Usage: tickets [active|past]")
		return fmt.Errorf("unknown ticket tab %q", tab)
	}

	if len(tickets) == 0 {
		fmt.Fprintln(a.out, "Нет билетов")
		return nil
	}
	for _, t := range tickets {
		fmt.Fprintf(a.out, "#%d %s | %s | %s | %s\n    %s\n", t.ID, t.Type, t.Date, t.Price, t.Status, t.Description)
	}
	return nil
}

// Buy offers the ticket types and confirms the chosen one. Nothing is
// charged or stored.
func (a *App) Buy(_ context.Context) error {
	fmt.Fprintln(a.out, "Покупка билета: Выберите тип билета:")
	for i, o := range catalog.Offers {
		fmt.Fprintf(a.out, "%d. %s (%s)\n", i+1, o.Type, o.Price)
	}
	answer, err := a.ask(fmt.Sprintf("Номер (1-%d, Enter для отмены)", len(catalog.Offers)))
	if err != nil {
		return err
	}
	if answer == "" {
		fmt.Fprintln(a.out, "Отмена")
		return nil
	}

	n, _ := strconv.Atoi(answer)
	msg, err := catalog.Purchase(n)
	if err != nil {
		a.alert("Покупка билета", "Неизвестный тип билета: "+answer)
		return err
	}
	a.alert("Успешно!", msg)
	return nil
}

// QR shows the entry code of an active ticket.
func (a *App) QR(_ context.Context, ticketID string) error {
	id, err := strconv.Atoi(ticketID)
	if err != nil {
		a.alert("QR-код", "Билет не найден: "+ticketID)
		return err
	}
	t, ok := catalog.Ticket(id)
	if !ok {
		a.alert("QR-код", "Билет не найден: "+ticketID)
		return fmt.Errorf("no ticket %d", id)
	}
	code, err := catalog.QRCode(t)
	if err != nil {
		a.alert("QR-код", "Билет уже использован")
		return err
	}
	a.alert("QR-код: "+t.Type, code)
	return nil
}
