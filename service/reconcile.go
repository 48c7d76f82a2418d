package service

import (
	"net/url"

	"github.com/binplot/binplot/forms"
)

// The Reconcile* functions compute the rows to render next for a field
// formset. Only ReconcileFromStruct (a BinStructService method) reads storage.

// ReconcileEmpty is a formset with one blank row.
func ReconcileEmpty() []forms.BinFieldRow {
	return []forms.BinFieldRow{forms.BlankBinFieldRow()}
}

// ReconcileAppend keeps the current rows, defaulting values that do not
// clean, and appends a blank row.
func ReconcileAppend(fs *forms.BinFieldFormset) []forms.BinFieldRow {
	fs.IsValid()
	rows := make([]forms.BinFieldRow, 0, len(fs.Forms)+1)
	for _, f := range fs.Forms {
		rows = append(rows, f.Row())
	}
	return append(rows, forms.BlankBinFieldRow())
}

// ReconcileDelete keeps the rows not flagged for deletion, in order.
func ReconcileDelete(fs *forms.BinFieldFormset) []forms.BinFieldRow {
	fs.IsValid()
	rows := make([]forms.BinFieldRow, 0, len(fs.Forms))
	for _, f := range fs.Forms {
		if f.Delete {
			continue
		}
		rows = append(rows, f.Row())
	}
	return rows
}

// ReconcileFromRaw binds posted rows as they are, ready for SaveBinStruct.
func ReconcileFromRaw(values url.Values) *forms.BinFieldFormset {
	return forms.BindBinFieldFormset(values)
}
