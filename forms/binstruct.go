package forms

import (
	"net/url"

	"github.com/go-openapi/errors"

	"github.com/binplot/binplot/db"
)

// BinStructForm binds the label of a BinStruct.
type BinStructForm struct {
	raw url.Values

	Label *string

	validated bool
	errs      errorList
}

func NewBinStructForm(values url.Values) *BinStructForm {
	if values == nil {
		values = url.Values{}
	}
	return &BinStructForm{raw: values}
}

func (f *BinStructForm) full() {
	if f.validated {
		return
	}
	f.validated = true
	var err *errors.Validation
	f.Label, err = cleanString(f.raw, "label", db.MaxLabelLength)
	f.errs.add(err)
}

// AddError attaches an error found outside of field parsing, e.g. a
// uniqueness conflict.
func (f *BinStructForm) AddError(err error) {
	f.full()
	if err != nil {
		f.errs = append(f.errs, err)
	}
}

func (f *BinStructForm) IsValid() bool {
	f.full()
	return len(f.errs) == 0
}

func (f *BinStructForm) Errors() error {
	f.full()
	return f.errs.err()
}

func (f *BinStructForm) ErrorMessages() []string {
	return ErrorMessages(f.Errors())
}
