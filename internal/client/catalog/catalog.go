// Package catalog holds the park's built-in sample content: tickets, map
// markers and the demo statues shown when recognition is unreachable.
//
// Purchases and QR codes are presentation only; nothing here is persisted.
package catalog

import (
	"fmt"

	"github.com/dmitrijs2005/natman/internal/client/models"
)

// ParkRegion is the initial map window over Лукоморье.
var ParkRegion = models.MapRegion{
	Latitude:       55.7558,
	Longitude:      37.6173,
	LatitudeDelta:  0.005,
	LongitudeDelta: 0.005,
}

var markers = []models.Marker{
	{ID: 1, Title: "Главный вход", Type: models.MarkerEntrance, Latitude: 55.7558, Longitude: 37.6173,
		Description: "Основной вход в парк Лукоморье. Здесь начинается ваше путешествие!",
		Details:     "Время работы: 9:00 - 22:00\nКассы работают до 20:00"},
	{ID: 2, Title: "Аттракцион 'Мореход'", Type: models.MarkerAttraction, Latitude: 55.7562, Longitude: 37.6178,
		Description: "Захватывающий водный аттракцион для всей семьи. Подходит для детей от 6 лет.",
		Details:     "Высота ограничения: 120 см\nВремя аттракциона: 10 минут"},
	{ID: 3, Title: "Кафе 'У Дуба'", Type: models.MarkerCafe, Latitude: 55.7553, Longitude: 37.6168,
		Description: "Уютное кафе с домашней кухней. Попробуйте фирменный чай с травами!",
		Details:     "Кухня: русская, европейская\nСредний чек: 800 руб."},
	{ID: 4, Title: "Великий Дуб", Type: models.MarkerLandmark, Latitude: 55.7560, Longitude: 37.6172,
		Description: "Легендарный дуб из сказок Пушкина. Возраст более 200 лет.",
		Details:     "Высота дерева: 25 метров\nОбхват ствола: 4.5 метра"},
	{ID: 5, Title: "Озеро Русалочки", Type: models.MarkerAttraction, Latitude: 55.7555, Longitude: 37.6175,
		Description: "Живописное озеро с фонтаном в виде русалки. Отличное место для фото.",
		Details:     "Глубина: 1.5 метра\nФонтан работает с 10:00 до 20:00"},
	{ID: 6, Title: "Детская площадка 'Богатыри'", Type: models.MarkerPlayground, Latitude: 55.7550, Longitude: 37.6165,
		Description: "Безопасная игровая зона для детей с тематическими горками.",
		Details:     "Возраст: 3-12 лет\nВремя работы: 9:00 - 21:00"},
	{ID: 7, Title: "Сувенирная лавка", Type: models.MarkerShop, Latitude: 55.7557, Longitude: 37.6163,
		Description: "Магазин с памятными подарками и сувенирами Лукоморья.",
		Details:     "Часы работы: 10:00 - 20:00\nПринимаем карты и наличные"},
	{ID: 8, Title: "Сцена 'Лукоморье'", Type: models.MarkerEntertainment, Latitude: 55.7559, Longitude: 37.6160,
		Description: "Место проведения спектаклей и музыкальных представлений.",
		Details:     "Расписание: среда-воскресенье\nНачало представлений: 12:00, 15:00, 18:00"},
}

var markerLabels = map[models.MarkerType]string{
	models.MarkerEntrance:      "Вход",
	models.MarkerAttraction:    "Аттракцион",
	models.MarkerCafe:          "Кафе",
	models.MarkerLandmark:      "Достопримечательность",
	models.MarkerPlayground:    "Детская площадка",
	models.MarkerShop:          "Магазин",
	models.MarkerEntertainment: "Развлечения",
}

// Markers returns a copy of the park's points of interest.
func Markers() []models.Marker {
	return append([]models.Marker(nil), markers...)
}

// Marker looks a point of interest up by id.
func Marker(id int) (models.Marker, bool) {
	for _, m := range markers {
		if m.ID == id {
			return m, true
		}
	}
	return models.Marker{}, false
}

// MarkerLabel is the human label of a marker type.
func MarkerLabel(t models.MarkerType) string {
	if l, ok := markerLabels[t]; ok {
		return l
	}
	return "Объект"
}

// MarkerDetails returns extra info for a marker, with a placeholder when
// none is known.
func MarkerDetails(m models.Marker) string {
	if m.Details == "" {
		return "Информация будет дополнена"
	}
	return m.Details
}

var activeTickets = []models.Ticket{
	{ID: 1, Type: "Единый билет", Date: "15 Декабря 2024", Price: "1500 ₽", Status: models.TicketActive,
		QRCode: "QR_CODE_12345", Description: "Доступ ко всем зонам парка"},
	{ID: 2, Type: "Семейный билет", Date: "20 Декабря 2024", Price: "4000 ₽", Status: models.TicketActive,
		QRCode: "QR_CODE_67890", Description: "Для 2 взрослых и 2 детей"},
}

var pastTickets = []models.Ticket{
	{ID: 3, Type: "Детский билет", Date: "10 Ноября 2024", Price: "800 ₽", Status: models.TicketUsed,
		Description: "Для детей до 12 лет"},
	{ID: 4, Type: "Взрослый билет", Date: "5 Ноября 2024", Price: "1200 ₽", Status: models.TicketUsed,
		Description: "Стандартный билет"},
}

// Offers lists what the purchase dialog sells.
var Offers = []models.TicketOffer{
	{Type: "Взрослый билет", Price: "1500 ₽"},
	{Type: "Детский билет", Price: "800 ₽"},
	{Type: "Семейный билет", Price: "4000 ₽"},
}

func ActiveTickets() []models.Ticket {
	return append([]models.Ticket(nil), activeTickets...)
}

func PastTickets() []models.Ticket {
	return append([]models.Ticket(nil), pastTickets...)
}

// Ticket finds a ticket in either tab.
func Ticket(id int) (models.Ticket, bool) {
	for _, list := range [][]models.Ticket{activeTickets, pastTickets} {
		for _, t := range list {
			if t.ID == id {
				return t, true
			}
		}
	}
	return models.Ticket{}, false
}

// Purchase confirms the n-th offer (1-based). It has no persisted effect.
func Purchase(n int) (string, error) {
	if n < 1 || n > len(Offers) {
		return "", fmt.Errorf("no ticket offer #%d", n)
	}
	o := Offers[n-1]
	return fmt.Sprintf("Вы приобрели %s за %s", o.Type, o.Price), nil
}

// QRCode renders the entry code of an active ticket.
func QRCode(t models.Ticket) (string, error) {
	if t.Status != models.TicketActive || t.QRCode == "" {
		return "", fmt.Errorf("ticket %d has no QR code", t.ID)
	}
	return fmt.Sprintf("Код: %s\n\nПокажите этот код на входе в парк", t.QRCode), nil
}

var demoStatues = []models.RecognizedObject{
	{
		Name:            "Перун",
		Confidence:      0.92,
		Description:     "Бог-громовержец, верховное божество славянского пантеона. Изображается с секирой или молотом.",
		InterestingFact: "День Перуна отмечался 20 июля. Его символ - громовой знак, защищающий от злых сил.",
	},
	{
		Name:            "Велес",
		Confidence:      0.88,
		Description:     "Бог скота, богатства и подземного мира. Покровительствует искусствам и торговле.",
		InterestingFact: "Велес считался противником Перуна. Его день - 24 февраля, праздник скота.",
	},
	{
		Name:            "Макошь",
		Confidence:      0.85,
		Description:     "Богиня плодородия, судьбы и ремёсел. Покровительница женщин и урожая.",
		InterestingFact: "Мокошь - единственное женское божество в княжеском пантеоне Владимира.",
	},
}

// DemoStatues returns the placeholder recognition results.
func DemoStatues() []models.RecognizedObject {
	return append([]models.RecognizedObject(nil), demoStatues...)
}
