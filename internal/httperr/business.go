package httperr

import (
	"errors"
	"strings"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsNotFound matches any business error coded "<entity>_not_found".
func IsNotFound(err error) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return strings.HasSuffix(be.Code, "_not_found")
	}
	return false
}
