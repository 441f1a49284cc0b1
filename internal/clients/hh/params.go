package hh

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	maxResults     = 2000
	defaultPerPage = 20
)

// SearchParameters narrows the vacancies index. Zero values are omitted from
// the request, so an empty value walks the whole index.
type SearchParameters struct {
	Text    string
	AreaID  string
	PerPage int
}

func (s SearchParameters) Validate(page int) error {

	if page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if s.PerPage < 0 || s.PerPage > 100 {
		return fmt.Errorf("per page must be between 0 and 100")
	}

	perPage := s.PerPage
	if perPage == 0 {
		perPage = defaultPerPage
	}

	maxPage := maxResults / perPage
	if page >= maxPage {
		return ErrTooDeepPagination
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	if s.Text != "" {
		params.Add("text", s.Text)
	}

	if s.AreaID != "" {
		params.Add("area", s.AreaID)
	}

	if s.PerPage != 0 {
		params.Add("per_page", strconv.Itoa(s.PerPage))
	}

	return params
}

func (s SearchParameters) ToPageUrlParams(page int) url.Values {
	params := s.ToUrlParams()
	params.Add("page", strconv.Itoa(page))
	return params
}
