package analytics

import (
	"strings"
	"time"
)

// frenchMonths французские сокращения месяцев -> английские
var frenchMonths = map[string]string{
	"janv": "Jan",
	"fev":  "Feb",
	"mars": "Mar",
	"avr":  "Apr",
	"mai":  "May",
	"juin": "Jun",
	"juil": "Jul",
	"aout": "Aug",
	"sept": "Sep",
	"oct":  "Oct",
	"nov":  "Nov",
	"dec":  "Dec",
}

// monthAliases варианты, которые пишет выгрузка и встречаются в файлах, правленных вручную
var monthAliases = map[string]string{
	"aou":   "Aug",
	"fév":   "Feb",
	"févr":  "Feb",
	"avril": "Apr",
	"août":  "Aug",
	"déc":   "Dec",
}

// outputMonths сокращения для вывода, индекс = time.Month - 1
var outputMonths = [12]string{
	"Janv", "Fev", "Mars", "Avr", "Mai", "Juin",
	"Juil", "Aout", "Sept", "Oct", "Nov", "Dec",
}

const monthLayout = "Jan 2006"

// ParseMonth разбирает метку вида "Juil 2025" в первое число месяца (UTC)
func ParseMonth(label string) (time.Time, error) {
	parts := strings.Fields(label)
	if len(parts) != 2 {
		return time.Time{}, &FormatError{Label: label, Reason: "expected \"<month> <year>\""}
	}

	month, year := parts[0], parts[1]
	key := strings.ToLower(month)
	if en, ok := frenchMonths[key]; ok {
		month = en
	} else if en, ok := monthAliases[key]; ok {
		month = en
	}

	t, err := time.Parse(monthLayout, month+" "+year)
	if err != nil {
		return time.Time{}, &FormatError{Label: label, Reason: "unknown month or year"}
	}
	return t, nil
}

// FormatMonth форматирует дату тем же словарем, что и входные метки
func FormatMonth(t time.Time) string {
	return outputMonths[t.Month()-1] + " " + t.Format("2006")
}

// firstOfMonth обрезает дату до первого дня месяца
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
