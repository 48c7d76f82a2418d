package forms

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/go-openapi/errors"
)

const UploadsField = "uploads"

var ErrEmptyFile = errors.New(400, "The submitted file is empty.")

// UploadedFile is one file of a multipart upload.
type UploadedFile interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type multipartFile struct {
	fh *multipart.FileHeader
}

func (m multipartFile) Name() string { return m.fh.Filename }

func (m multipartFile) Size() int64 { return m.fh.Size }

func (m multipartFile) Open() (io.ReadCloser, error) { return m.fh.Open() }

// MemoryFile is an UploadedFile held in memory.
type MemoryFile struct {
	Filename string
	Content  []byte
}

func (m *MemoryFile) Name() string { return m.Filename }

func (m *MemoryFile) Size() int64 { return int64(len(m.Content)) }

func (m *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.Content)), nil
}

// FileForm accepts any number of files under the uploads field. An empty
// batch is valid.
type FileForm struct {
	Uploads []UploadedFile

	validated bool
	err       error
}

func NewFileForm(files []UploadedFile) *FileForm {
	return &FileForm{Uploads: files}
}

// FileFormFromMultipart collects the uploads field of a parsed multipart form.
func FileFormFromMultipart(form *multipart.Form) *FileForm {
	files := make([]UploadedFile, 0)
	if form != nil {
		for _, fh := range form.File[UploadsField] {
			files = append(files, multipartFile{fh: fh})
		}
	}
	return NewFileForm(files)
}

func (f *FileForm) full() {
	if f.validated {
		return
	}
	f.validated = true
	for _, u := range f.Uploads {
		if u.Size() == 0 {
			f.err = ErrEmptyFile
			return
		}
	}
}

func (f *FileForm) IsValid() bool {
	f.full()
	return f.err == nil
}

func (f *FileForm) ErrorMessages() []string {
	f.full()
	return ErrorMessages(f.err)
}
