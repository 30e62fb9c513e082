package notify

import (
	"fmt"
	"strings"
)

// Поддерживаемые перевозчики
const (
	CarrierPostNL = "postnl"
	CarrierDHL    = "dhl"
)

// шаблоны ссылок отслеживания по перевозчикам
var trackingTemplates = map[string]string{
	CarrierPostNL: "https://jouw.postnl.nl/track-and-trace/%s-NL",
	CarrierDHL:    "https://www.dhl.com/nl-en/home/tracking/tracking-parcel.html?submit=1&tracking-id=%s",
}

// SupportedCarrier проверяет, известен ли перевозчик
func SupportedCarrier(carrier string) bool {
	_, ok := trackingTemplates[strings.ToLower(carrier)]
	return ok
}

// TrackingURL - собирает ссылку отслеживания отправления для перевозчика
func TrackingURL(carrier string, trackingCode string) (string, error) {
	template, ok := trackingTemplates[strings.ToLower(carrier)]
	if !ok {
		return "", fmt.Errorf("unsupported carrier %s", carrier)
	}
	return fmt.Sprintf(template, trackingCode), nil
}
