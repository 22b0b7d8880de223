package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dimfeld/httptreemux/v5"
	en "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// validate holds the settings and caches for validating request struct
// values.
var validate = validator.New()

// translator is a cache of locale and translation information.
var translator *ut.UniversalTranslator

func init() {
	translator = ut.New(en.New(), en.New())
	trans, _ := translator.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)
}

// Decode reads the body of an HTTP request looking for a JSON document.
// The body is decoded into the provided value, which is then run
// through struct-tag validation.
func Decode(r *http.Request, val any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(val); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if err := validate.Struct(val); err != nil {
		var invalid validator.ValidationErrors
		if !errors.As(err, &invalid) {
			return err
		}

		trans, _ := translator.GetTranslator("en")
		fields := make(map[string]string)
		for _, verror := range invalid {
			field := strings.ToLower(verror.Field())
			fields[field] = verror.Translate(trans)
		}
		return &ValidationError{Fields: fields}
	}

	return nil
}

// ValidationError is returned by Decode when struct-tag validation
// rejects the decoded value.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	return "field validation failed"
}

// Param returns the web call parameters from the request context.
func Param(r *http.Request, key string) string {
	m := httptreemux.ContextParams(r.Context())
	return m[key]
}
