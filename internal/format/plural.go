// Package format renders numbers, dates and durations for a Russian-speaking
// moderation team.
package format

// Plural picks the Russian plural form for n: one (1, 21, 101...), few
// (2-4, 22-24...) or many (everything else, including 11-14).
func Plural(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return one
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return few
	default:
		return many
	}
}

func YearsText(years int) string {
	return Plural(years, "год", "года", "лет")
}

func MonthsText(months int) string {
	return Plural(months, "месяц", "месяца", "месяцев")
}

func AdsCountText(count int) string {
	return Plural(count, "объявление", "объявления", "объявлений")
}
