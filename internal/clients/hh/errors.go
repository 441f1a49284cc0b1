package hh

import "github.com/pkg/errors"

var (
	ErrNetwork           = errors.New("hh api is unreachable")
	ErrMalformedResponse = errors.New("malformed hh api response")
	ErrTooDeepPagination = errors.New("too deep pagination")
)
