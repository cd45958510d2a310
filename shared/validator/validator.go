package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"

	"todos/shared/failure"
)

var validate *val.Validate

func registerNotBlankValidation(field val.FieldLevel) bool {
	return strings.TrimSpace(field.Field().String()) != ""
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Error messages use the wire-level field names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	err := validate.RegisterValidation("notblank", registerNotBlankValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("notempty", registerNotBlankValidation)
	if err != nil {
		panic(err)
	}
}

// ReadBody drains the request body up to limit bytes. Crossing the limit
// aborts the read, leaves the connection marked for closure and reports a
// payload-too-large failure distinguishable from other I/O errors.
func ReadBody(writer http.ResponseWriter, request *http.Request, limit int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, limit))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, failure.PayloadTooLarge(fmt.Sprintf("request body exceeds %d bytes", limit)) //nolint:wrapcheck
		}

		return nil, failure.InternalError(fmt.Errorf("failed to read request body: %w", err)) //nolint:wrapcheck
	}

	return body, nil
}

// DecodeBody parses the body as JSON into a loosely structured payload so
// callers can project and validate individual fields. Valid JSON that is not
// an object yields an empty payload rather than a decode failure.
func DecodeBody(body []byte) (map[string]any, error) {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, failure.InvalidJSON
	}

	payload, _ := value.(map[string]any)

	return payload, nil
}

// ValidateStruct performs validation on the struct using the validator
// package. If the struct is invalid according to the validation rules, an
// unprocessable-entity failure is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.UnprocessableEntity(msg) //nolint:wrapcheck
	}

	return nil
}
