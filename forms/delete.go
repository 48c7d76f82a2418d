package forms

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-openapi/validate"
)

// DeleteRow is one row of a list formset where rows can be flagged DELETE.
type DeleteRow struct {
	Id     int64
	Delete bool
}

// DeleteFormset binds a list of persisted rows posted with per-row DELETE flags.
type DeleteFormset struct {
	Rows []DeleteRow

	validated bool
	errs      errorList
	raw       url.Values
}

func BindDeleteFormset(values url.Values) *DeleteFormset {
	if values == nil {
		values = url.Values{}
	}
	return &DeleteFormset{raw: values}
}

func (fs *DeleteFormset) full() {
	if fs.validated {
		return
	}
	fs.validated = true
	total, err := strconv.Atoi(rawValue(fs.raw, DefaultPrefix+"-"+TotalFormsKey))
	if err != nil || total < 0 || total > MaxNumForms {
		fs.errs = append(fs.errs, ErrManagementForm)
		return
	}
	for i := 0; i < total; i++ {
		p := fmt.Sprintf("%s-%d-", DefaultPrefix, i)
		id, verr := cleanOptionalInt64(fs.raw, p+"id")
		if verr != nil {
			fs.errs.add(verr)
			continue
		}
		if id == nil {
			fs.errs.add(validate.Required(p+"id", in, ""))
			continue
		}
		fs.Rows = append(fs.Rows, DeleteRow{Id: *id, Delete: cleanBool(fs.raw, p+"DELETE")})
	}
}

func (fs *DeleteFormset) IsValid() bool {
	fs.full()
	return len(fs.errs) == 0
}

func (fs *DeleteFormset) ErrorMessages() []string {
	fs.full()
	return ErrorMessages(fs.errs.err())
}

// FlaggedIDs returns the ids of the rows flagged for deletion, in row order.
func (fs *DeleteFormset) FlaggedIDs() []int64 {
	fs.full()
	ids := make([]int64, 0)
	for _, r := range fs.Rows {
		if r.Delete {
			ids = append(ids, r.Id)
		}
	}
	return ids
}
