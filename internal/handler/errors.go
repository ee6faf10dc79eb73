package handler

import (
	"github.com/deppfellow/rpos-gateway/internal/errs"
)

func validationFailure(field, message string) error {
	return errs.NewBadRequestError(message, true, nil, []errs.FieldError{
		{Field: field, Error: message},
	}, nil)
}
