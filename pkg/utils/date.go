package utils

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts são os formatos aceitos nas colunas de data, na ordem de tentativa
var dateLayouts = []string{
	time.DateOnly,
	"2006-01",
	"2006",
	time.DateTime,
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"Jan 2006",
	"January 2006",
}

// ParseDate interpreta uma data em qualquer um dos formatos conhecidos
func ParseDate(dateStr string) (time.Time, error) {
	value := strings.TrimSpace(dateStr)
	if value == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	for _, layout := range dateLayouts {
		date, err := time.Parse(layout, value)
		if err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("formato de data não reconhecido: %q", value)
}

// FirstDayOfMonth normaliza a data para o primeiro dia do mês em UTC
func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FirstDayOfYear normaliza a data para 1º de janeiro em UTC
func FirstDayOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}
