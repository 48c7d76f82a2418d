package forms

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binplot/binplot/db"
	"github.com/binplot/binplot/layout"
)

func TestBinStructForm(t *testing.T) {
	f := NewBinStructForm(url.Values{"label": {" header "}})
	require.True(t, f.IsValid())
	assert.Equal(t, "header", *f.Label)

	f = NewBinStructForm(url.Values{})
	assert.False(t, f.IsValid())
	assert.Equal(t, []string{"label is required"}, f.ErrorMessages())

	f = NewBinStructForm(url.Values{"label": {strings.Repeat("x", db.MaxLabelLength+1)}})
	assert.False(t, f.IsValid())
	assert.Len(t, f.ErrorMessages(), 1)
}

func TestBinFieldFormsetRoundTrip(t *testing.T) {
	rows := []BinFieldRow{
		{Id: 3, Label: "a", Bits: 4, TfCoef0: 0, TfCoef1: 1},
		{Label: "b", Bits: 12, TfCoef0: -1.5, TfCoef1: 0.25},
	}
	fs := BindBinFieldFormset(EncodeBinFieldRows(rows))
	require.True(t, fs.IsValid(), fs.ErrorMessages())
	require.Len(t, fs.Forms, 2)
	assert.Equal(t, rows[0], fs.Forms[0].Row())
	assert.Equal(t, rows[1], fs.Forms[1].Row())
	assert.Equal(t, 12, fs.Forms[1].BitsOrZero())
}

func TestBinFieldFormDefaultsPerField(t *testing.T) {
	values := url.Values{
		"form-TOTAL_FORMS": {"1"},
		"form-0-label":     {"x"},
		"form-0-bits":      {"abc"},
		"form-0-tf_coef0":  {"2.5"},
	}
	fs := BindBinFieldFormset(values)
	assert.False(t, fs.IsValid())

	row := fs.Forms[0].Row()
	assert.Equal(t, "x", row.Label)
	assert.Equal(t, db.DefaultFieldBits, row.Bits)
	assert.Equal(t, 2.5, row.TfCoef0)
	assert.Equal(t, db.DefaultFieldTfCoef1, row.TfCoef1)
	assert.Equal(t, 0, fs.Forms[0].BitsOrZero())

	msgs := fs.ErrorMessages()
	assert.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "form-0-bits")
	assert.Contains(t, msgs[1], "form-0-tf_coef1")
}

func TestBinFieldFormRejectsZeroBits(t *testing.T) {
	values := EncodeBinFieldRows([]BinFieldRow{{Label: "z", Bits: 0, TfCoef1: 1}})
	fs := BindBinFieldFormset(values)
	assert.False(t, fs.IsValid())
	assert.Nil(t, fs.Forms[0].Bits)
}

func TestBinFieldFormsetDeleteFlag(t *testing.T) {
	values := EncodeBinFieldRows([]BinFieldRow{BlankBinFieldRow(), BlankBinFieldRow()})
	values.Set("form-1-delete", "on")
	fs := BindBinFieldFormset(values)
	fs.IsValid()
	assert.False(t, fs.Forms[0].Delete)
	assert.True(t, fs.Forms[1].Delete)
}

func TestBinFieldFormsetManagementForm(t *testing.T) {
	fs := BindBinFieldFormset(url.Values{"form-0-label": {"a"}})
	assert.False(t, fs.IsValid())
	assert.Empty(t, fs.Forms)
	assert.Equal(t, []string{ErrManagementForm.Error()}, fs.ErrorMessages())

	fs = BindBinFieldFormset(url.Values{"form-TOTAL_FORMS": {"100000"}})
	assert.Equal(t, ErrManagementForm, fs.NonFormError())
}

func TestDeleteFormset(t *testing.T) {
	values := url.Values{
		"form-TOTAL_FORMS": {"3"},
		"form-0-id":        {"1"},
		"form-1-id":        {"2"},
		"form-1-DELETE":    {"true"},
		"form-2-id":        {"5"},
		"form-2-DELETE":    {"on"},
	}
	fs := BindDeleteFormset(values)
	require.True(t, fs.IsValid())
	assert.Equal(t, []int64{2, 5}, fs.FlaggedIDs())

	fs = BindDeleteFormset(url.Values{"form-TOTAL_FORMS": {"1"}})
	assert.False(t, fs.IsValid())
	assert.Empty(t, fs.FlaggedIDs())
}

func TestFileForm(t *testing.T) {
	f := NewFileForm([]UploadedFile{
		&MemoryFile{Filename: "empty.bin"},
		&MemoryFile{Filename: "full.bin", Content: make([]byte, 10)},
	})
	assert.False(t, f.IsValid())
	assert.Equal(t, []string{"The submitted file is empty."}, f.ErrorMessages())

	f = NewFileForm([]UploadedFile{&MemoryFile{Filename: "a", Content: []byte{1}}})
	assert.True(t, f.IsValid())

	assert.True(t, NewFileForm(nil).IsValid())
	assert.True(t, FileFormFromMultipart(nil).IsValid())
}

func TestSelectBinFieldForm(t *testing.T) {
	choices := BinFieldChoices([]*db.BinField{{Id: 7, Label: "temp"}})
	assert.Equal(t, []Choice{{Value: "index", Label: "index"}, {Value: "7", Label: "temp"}}, choices)

	f := NewSelectBinFieldForm(choices).Bind(url.Values{"bf": {"7"}})
	v, ok := f.Value()
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	f = NewSelectBinFieldForm(choices).Bind(url.Values{"bf": {"8"}})
	assert.False(t, f.IsValid())
	assert.NotEmpty(t, f.ErrorMessages())

	assert.False(t, NewSelectBinFieldForm(choices).IsValid())
}

func TestSelectGraphForm(t *testing.T) {
	assert.Equal(t, 2, RequiredNum(GraphScatter))
	assert.Equal(t, 3, RequiredNum(GraphLine3D))
	assert.Equal(t, 0, RequiredNum("id_pie"))

	f := NewSelectGraphForm().Bind(url.Values{"graph": {GraphScatter3D}})
	assert.True(t, f.IsValid())
	assert.Len(t, f.Choices, len(GraphTypes))
}

func TestSelectModelForms(t *testing.T) {
	bs := NewSelectBinStructForm([]*db.BinStruct{{Id: 1, Label: "S"}})
	assert.Equal(t, []Choice{{Value: "1", Label: "S"}}, bs.Choices)

	bd := NewSelectBinDataForm([]*db.BinData{{Id: 2, Fname: "d.bin"}})
	assert.True(t, bd.Bind(url.Values{"bd": {"2"}}).IsValid())
}

func TestGraphOption(t *testing.T) {
	o := NewGraphOption(nil)
	w, ok := o.Get("width")
	assert.True(t, ok)
	assert.Equal(t, float64(DefaultGraphWidth), w)
	h, _ := o.Get("height")
	assert.Equal(t, float64(DefaultGraphHeight), h)

	o = NewGraphOption(url.Values{"width": {"5"}, "height": {"300"}})
	assert.False(t, o.IsValid())
	_, ok = o.Get("width")
	assert.False(t, ok)
	h, ok = o.Get("height")
	assert.True(t, ok)
	assert.Equal(t, 300.0, h)
	assert.Len(t, o.ErrorMessages(), 1)
}

func TestBinFieldFormBitsUpperBound(t *testing.T) {
	values := EncodeBinFieldRows([]BinFieldRow{{Label: "w", Bits: layout.MaxFieldBits, TfCoef1: 1}})
	fs := BindBinFieldFormset(values)
	require.True(t, fs.IsValid(), fs.ErrorMessages())
	assert.Equal(t, layout.MaxFieldBits, fs.Forms[0].BitsOrZero())

	for _, bits := range []string{"65", "9223372036854775807", "9223372036854775808"} {
		values.Set("form-0-bits", bits)
		fs = BindBinFieldFormset(values)
		assert.False(t, fs.IsValid(), bits)
		assert.Zero(t, fs.Forms[0].BitsOrZero(), bits)
		msgs := fs.ErrorMessages()
		require.Len(t, msgs, 1, bits)
		assert.Contains(t, msgs[0], "form-0-bits")
	}
}

func TestBinFieldFormRejectsNonFiniteNumbers(t *testing.T) {
	for _, v := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "1e400"} {
		values := EncodeBinFieldRows([]BinFieldRow{{Label: "c", Bits: 8, TfCoef1: 1}})
		values.Set("form-0-tf_coef0", v)
		fs := BindBinFieldFormset(values)
		assert.False(t, fs.IsValid(), v)
		assert.Nil(t, fs.Forms[0].TfCoef0, v)
		assert.Equal(t, db.DefaultFieldTfCoef0, fs.Forms[0].Row().TfCoef0, v)
	}
}

func TestGraphOptionRejectsNonFiniteSizes(t *testing.T) {
	o := NewGraphOption(url.Values{"width": {"NaN"}, "height": {"+Inf"}})
	assert.False(t, o.IsValid())
	assert.Len(t, o.ErrorMessages(), 2)
	_, ok := o.Get("width")
	assert.False(t, ok)
	_, ok = o.Get("height")
	assert.False(t, ok)
}
