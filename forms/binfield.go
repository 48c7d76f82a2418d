package forms

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/swag"

	"github.com/binplot/binplot/db"
	"github.com/binplot/binplot/layout"
)

const (
	DefaultPrefix = "form"
	TotalFormsKey = "TOTAL_FORMS"

	// MaxNumForms bounds how many rows a posted formset may declare.
	MaxNumForms = 1000
)

var ErrManagementForm = errors.New(400, "ManagementForm data is missing or has been tampered with")

// BinFieldRow is the editable value of one field row. Id is zero for rows that
// have not been saved yet.
type BinFieldRow struct {
	Id      int64   `json:"id,omitempty"`
	Label   string  `json:"label"`
	Bits    int     `json:"bits"`
	TfCoef0 float64 `json:"tf_coef0"`
	TfCoef1 float64 `json:"tf_coef1"`
}

// BlankBinFieldRow is a new row carrying the declared field defaults.
func BlankBinFieldRow() BinFieldRow {
	return BinFieldRow{
		Label:   db.DefaultFieldLabel,
		Bits:    db.DefaultFieldBits,
		TfCoef0: db.DefaultFieldTfCoef0,
		TfCoef1: db.DefaultFieldTfCoef1,
	}
}

func RowFromBinField(bf *db.BinField) BinFieldRow {
	return BinFieldRow{
		Id:      bf.Id,
		Label:   bf.Label,
		Bits:    bf.Bits,
		TfCoef0: bf.TfCoef0,
		TfCoef1: bf.TfCoef1,
	}
}

// BinFieldForm is one row of a field formset. Cleaned values are nil when the
// submitted value is missing or invalid.
type BinFieldForm struct {
	prefix string
	raw    url.Values

	Id      *int64
	Bs      *int64
	Label   *string
	Bits    *int
	TfCoef0 *float64
	TfCoef1 *float64
	Delete  bool

	validated bool
	errs      errorList
}

func newBinFieldForm(prefix string, raw url.Values) *BinFieldForm {
	return &BinFieldForm{prefix: prefix, raw: raw}
}

func (f *BinFieldForm) name(field string) string {
	return f.prefix + "-" + field
}

func (f *BinFieldForm) full() {
	if f.validated {
		return
	}
	f.validated = true

	var err *errors.Validation
	f.Id, err = cleanOptionalInt64(f.raw, f.name("id"))
	f.errs.add(err)
	f.Bs, err = cleanOptionalInt64(f.raw, f.name("bs"))
	f.errs.add(err)
	f.Label, err = cleanString(f.raw, f.name("label"), db.MaxLabelLength)
	f.errs.add(err)
	f.Bits, err = cleanInt(f.raw, f.name("bits"), 1, layout.MaxFieldBits)
	f.errs.add(err)
	f.TfCoef0, err = cleanFloat(f.raw, f.name("tf_coef0"))
	f.errs.add(err)
	f.TfCoef1, err = cleanFloat(f.raw, f.name("tf_coef1"))
	f.errs.add(err)
	f.Delete = cleanBool(f.raw, f.name("delete"))
}

func (f *BinFieldForm) AddError(err error) {
	f.full()
	if err != nil {
		f.errs = append(f.errs, err)
	}
}

func (f *BinFieldForm) IsValid() bool {
	f.full()
	return len(f.errs) == 0
}

func (f *BinFieldForm) Errors() error {
	f.full()
	return f.errs.err()
}

func (f *BinFieldForm) Prefix() string {
	return f.prefix
}

// Row returns the cleaned values, taking the declared default for every
// value that did not clean.
func (f *BinFieldForm) Row() BinFieldRow {
	f.full()
	row := BlankBinFieldRow()
	if f.Id != nil {
		row.Id = *f.Id
	}
	if f.Label != nil {
		row.Label = *f.Label
	}
	if f.Bits != nil {
		row.Bits = *f.Bits
	}
	if f.TfCoef0 != nil {
		row.TfCoef0 = *f.TfCoef0
	}
	if f.TfCoef1 != nil {
		row.TfCoef1 = *f.TfCoef1
	}
	return row
}

// BitsOrZero is the cleaned width, or 0 when it did not clean.
func (f *BinFieldForm) BitsOrZero() int {
	f.full()
	if f.Bits == nil {
		return 0
	}
	return *f.Bits
}

// BinFieldFormset is a bound, variable length list of field rows posted with
// the form-TOTAL_FORMS / form-<i>-<field> layout.
type BinFieldFormset struct {
	Forms []*BinFieldForm

	raw          url.Values
	nonFormError error
}

// BindBinFieldFormset binds the rows of a posted formset without validating them.
func BindBinFieldFormset(values url.Values) *BinFieldFormset {
	if values == nil {
		values = url.Values{}
	}
	fs := &BinFieldFormset{raw: values}
	total, err := strconv.Atoi(rawValue(values, DefaultPrefix+"-"+TotalFormsKey))
	if err != nil || total < 0 || total > MaxNumForms {
		fs.nonFormError = ErrManagementForm
		return fs
	}
	fs.Forms = make([]*BinFieldForm, 0, total)
	for i := 0; i < total; i++ {
		fs.Forms = append(fs.Forms, newBinFieldForm(fmt.Sprintf("%s-%d", DefaultPrefix, i), values))
	}
	return fs
}

// IsValid validates every row; it does not stop at the first invalid one.
func (fs *BinFieldFormset) IsValid() bool {
	valid := fs.nonFormError == nil
	for _, f := range fs.Forms {
		if !f.IsValid() {
			valid = false
		}
	}
	return valid
}

func (fs *BinFieldFormset) NonFormError() error {
	return fs.nonFormError
}

// ErrorMessages lists the management error and then each row's messages in
// row order.
func (fs *BinFieldFormset) ErrorMessages() []string {
	msgs := ErrorMessages(fs.nonFormError)
	for _, f := range fs.Forms {
		msgs = append(msgs, ErrorMessages(f.Errors())...)
	}
	return msgs
}

// Values is the raw data the formset was bound with.
func (fs *BinFieldFormset) Values() url.Values {
	return fs.raw
}

// EncodeBinFieldRows renders rows into the posted formset layout, so that a
// client can send them back unchanged.
func EncodeBinFieldRows(rows []BinFieldRow) url.Values {
	values := url.Values{}
	values.Set(DefaultPrefix+"-"+TotalFormsKey, strconv.Itoa(len(rows)))
	for i, row := range rows {
		p := fmt.Sprintf("%s-%d-", DefaultPrefix, i)
		if row.Id != 0 {
			values.Set(p+"id", swag.FormatInt64(row.Id))
		}
		values.Set(p+"label", row.Label)
		values.Set(p+"bits", strconv.Itoa(row.Bits))
		values.Set(p+"tf_coef0", swag.FormatFloat64(row.TfCoef0))
		values.Set(p+"tf_coef1", swag.FormatFloat64(row.TfCoef1))
	}
	return values
}
