package forms

import (
	"math"
	"net/url"
	"strings"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// Field values are read from form data; messages leave out the location so
// they read like "label is required".
const in = ""

func rawValue(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}

func cleanString(values url.Values, name string, maxLength int64) (*string, *errors.Validation) {
	v := rawValue(values, name)
	if err := validate.RequiredString(name, in, v); err != nil {
		return nil, err
	}
	if err := validate.MaxLength(name, in, v, maxLength); err != nil {
		return nil, err
	}
	return &v, nil
}

func cleanOptionalInt64(values url.Values, name string) (*int64, *errors.Validation) {
	v := rawValue(values, name)
	if v == "" {
		return nil, nil
	}
	i, err := swag.ConvertInt64(v)
	if err != nil {
		return nil, errors.InvalidType(name, in, "integer", v)
	}
	return &i, nil
}

func cleanInt(values url.Values, name string, min, max int64) (*int, *errors.Validation) {
	v := rawValue(values, name)
	if v == "" {
		return nil, validate.Required(name, in, v)
	}
	i, err := swag.ConvertInt64(v)
	if err != nil {
		return nil, errors.InvalidType(name, in, "integer", v)
	}
	if err := validate.MinimumInt(name, in, i, min, false); err != nil {
		return nil, err
	}
	if err := validate.MaximumInt(name, in, i, max, false); err != nil {
		return nil, err
	}
	n := int(i)
	return &n, nil
}

func cleanFloat(values url.Values, name string) (*float64, *errors.Validation) {
	v := rawValue(values, name)
	if v == "" {
		return nil, validate.Required(name, in, v)
	}
	f, err := swag.ConvertFloat64(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.InvalidType(name, in, "number", v)
	}
	return &f, nil
}

// cleanBool treats anything that is not a recognised true value as false.
func cleanBool(values url.Values, name string) bool {
	b, err := swag.ConvertBool(rawValue(values, name))
	return err == nil && b
}
