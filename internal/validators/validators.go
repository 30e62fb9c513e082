package validators

import "regexp"

// формат трек-номера перевозчика: латиница и цифры, без пробелов
var trackingCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,32}$`)

// CheckTrackingCode проверяет формат трек-номера отправления
func CheckTrackingCode(code string) bool {
	return trackingCodePattern.MatchString(code)
}
