package utils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts aceitos para timestamps ISO-8601. Sem fuso explícito, assume UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp interpreta um timestamp ISO-8601 nos formatos usados pelo banco
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp vazio")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("timestamp inválido: %q", value)
}

// MonthKey formata o mês do timestamp no fuso informado (yyyy-mm)
func MonthKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return fmt.Sprintf("%04d-%02d", local.Year(), int(local.Month()))
}
