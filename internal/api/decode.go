package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}

		return tag
	})

	return v
}

// decodeJSON reads a request body into dest, rejecting unknown fields
// and oversized bodies, then runs struct validation on the result.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	//nolint:errcheck
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dest)
	if err != nil {
		return fmt.Errorf("decode body: %w", err)
	}

	err = validate.Struct(dest)
	if err != nil {
		return fmt.Errorf("validate body: %w", err)
	}

	return nil
}
