package clock

import (
	"fmt"
	"log"
	"time"
)

const (
	// TimezoneName is the civil timezone every business window is evaluated in.
	TimezoneName = "America/Sao_Paulo"

	ChatOpeningHour = 8
	ChatClosingHour = 17
)

var brasilia = loadBrasilia()

func loadBrasilia() *time.Location {
	loc, err := time.LoadLocation(TimezoneName)
	if err != nil {
		log.Printf("[clock] failed loading %s, falling back to UTC-3 err=%v", TimezoneName, err)
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

// Location returns the civil timezone used by the window policy.
func Location() *time.Location { return brasilia }

// InCivilTime converts t to the civil timezone.
func InCivilTime(t time.Time) time.Time { return t.In(brasilia) }

// ChatWindow is the outcome of evaluating the daily conversation window.
type ChatWindow struct {
	Allowed  bool
	Hour     int
	Timezone string
	Message  string
}

// EvaluateChatWindow reports whether now falls in [08:00, 17:00) civil time.
func EvaluateChatWindow(now time.Time) ChatWindow {
	local := InCivilTime(now)
	hour := local.Hour()
	allowed := hour >= ChatOpeningHour && hour < ChatClosingHour

	w := ChatWindow{Allowed: allowed, Hour: hour, Timezone: TimezoneName, Message: "Chat disponível"}
	if !allowed {
		w.Message = fmt.Sprintf(
			"Chat indisponível. Horário de funcionamento: %02d:00-%02d:00 (Brasília). Hora atual: %02d:%02d",
			ChatOpeningHour, ChatClosingHour, hour, local.Minute(),
		)
	}
	return w
}

// EndOfCivilDay returns 23:59:59.999 of the civil day containing t.
func EndOfCivilDay(t time.Time) time.Time {
	local := InCivilTime(t)
	y, m, d := local.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), brasilia)
}

// CivilMonth returns the month and year of t in the civil timezone.
func CivilMonth(t time.Time) (month int, year int) {
	local := InCivilTime(t)
	return int(local.Month()), local.Year()
}
