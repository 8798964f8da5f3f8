package list_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/reservations/models"
)

// ParseQuery собирает запрос сервиса из query параметров
// from/to в формате YYYY-MM-DD, includeCancelled — bool
func ParseQuery(domainName string, query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{Domain: domainName}

	if v := query.Get("resourceId"); v != "" {
		req.ResourceID = &v
	}

	from, err := parseOptionalDate(query.Get("from"))
	if err != nil {
		return nil, err
	}
	req.From = from

	to, err := parseOptionalDate(query.Get("to"))
	if err != nil {
		return nil, err
	}
	req.To = to

	if v := query.Get("includeCancelled"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = include
	}

	return req, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
