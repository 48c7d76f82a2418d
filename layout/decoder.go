package layout

import (
	"errors"
	"fmt"

	"github.com/binplot/binplot/db"
)

const MaxFieldBits = 64

var ErrNoRecord = errors.New("data is shorter than one record")

// Decoder unpacks fixed size records into transformed field values. Fields
// are packed most significant bit first, in field order.
type Decoder struct {
	fields     []*db.BinField
	recordSize int
}

func NewDecoder(fields []*db.BinField) (*Decoder, error) {
	total := 0
	for _, f := range fields {
		if f.Bits <= 0 || f.Bits > MaxFieldBits {
			return nil, fmt.Errorf("field %q has unsupported width %d", f.Label, f.Bits)
		}
		total += f.Bits
	}
	if ok, msg := CheckMakable(total); !ok {
		return nil, errors.New(msg)
	}
	return &Decoder{
		fields:     fields,
		recordSize: total / 8,
	}, nil
}

// RecordSize is the size of one record in bytes.
func (d *Decoder) RecordSize() int {
	return d.recordSize
}

// Decode returns one row of field values per whole record in data. A trailing
// partial record is ignored.
func (d *Decoder) Decode(data []byte) ([][]float64, error) {
	n := len(data) / d.recordSize
	if n == 0 {
		return nil, ErrNoRecord
	}
	records := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		rec := data[i*d.recordSize : (i+1)*d.recordSize]
		row := make([]float64, len(d.fields))
		offset := 0
		for j, f := range d.fields {
			raw := readBits(rec, offset, f.Bits)
			row[j] = float64(raw)*f.TfCoef1 + f.TfCoef0
			offset += f.Bits
		}
		records = append(records, row)
	}
	return records, nil
}

// FieldIndex returns the position of the field with the id, or -1.
func (d *Decoder) FieldIndex(id int64) int {
	for i, f := range d.fields {
		if f.Id == id {
			return i
		}
	}
	return -1
}

func readBits(rec []byte, offset, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		bit := offset + i
		b := rec[bit/8] >> (7 - uint(bit%8)) & 1
		v = v<<1 | uint64(b)
	}
	return v
}

// Column extracts the idx-th value of every record.
func Column(records [][]float64, idx int) []float64 {
	col := make([]float64, len(records))
	for i, r := range records {
		col[i] = r[idx]
	}
	return col
}

// IndexColumn is the record number series 0..n-1.
func IndexColumn(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = float64(i)
	}
	return col
}
