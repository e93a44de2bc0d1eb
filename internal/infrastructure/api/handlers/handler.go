package handlers

import (
	"encoding/json"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	http2 "github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/http"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
	"github.com/rs/zerolog"
	"net/http"
)

// decode reads a JSON body into dto and runs its validate tags.
func decode(r *http.Request, dto interface{}, logger *zerolog.Logger) error {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		logger.Debug().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		return errors.NewValidationError(errors.ErrInvalidRequestBody)
	}
	return dtos.Validate(dto)
}

// fail writes err and logs it; 5xx at error level, the rest at debug.
func fail(w http.ResponseWriter, err error, msg string, logger *zerolog.Logger) {
	if errors.StatusCode(err) >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg(msg)
	} else {
		logger.Debug().Err(err).Msg(msg)
	}
	errors.HandleHTTPError(w, err)
}

// page reads ?page= and ?limit= and rejects out-of-range values.
func page(r *http.Request) (dtos.PageDTO, error) {
	p := http2.PageFromQuery(r)
	if err := dtos.Validate(&p); err != nil {
		return dtos.PageDTO{}, err
	}
	return p, nil
}
