package http

import (
	"time"

	"gastos/internal/core"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, err
	}
	return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
}
