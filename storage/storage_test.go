package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBinDataPath(t *testing.T) {
	assert.Equal(t, "/srv/media/bindata/2024/01/05/ab.bin",
		MakeBinDataPath("/srv/media", "bindata", "2024", "01", "05", "a/b.bin"))
	assert.Equal(t, "C:/media/up/2024/12/31/x.bin",
		MakeBinDataPath("C:\\media", "up", "2024", "12", "31", "x.bin"))
	assert.Equal(t, "bindata/2024/01/05/_..",
		MakeBinDataKey("bindata", "2024", "01", "05", ".."))
	assert.Equal(t, "up/2024/01/05/ab.bin",
		MakeBinDataKey("/up", "2024", "01", "05", "a\\b.bin"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "....etcpasswd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "_", SanitizeFilename(""))
	assert.Equal(t, "data.bin", SanitizeFilename("data.bin"))
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	key, err := s.Save(ctx, "bindata/2024/01/05/a.bin", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, "bindata/2024/01/05/a.bin", key)

	key2, err := s.Save(ctx, "bindata/2024/01/05/a.bin", strings.NewReader("second"))
	require.NoError(t, err)
	assert.Equal(t, "bindata/2024/01/05/a_1.bin", key2)

	rc, err := s.Open(ctx, key2)
	require.NoError(t, err)
	bz, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "second", string(bz))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(ctx, key)
	assert.Error(t, err)
}

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func (f *fakeS3) HeadObjectWithContext(_ aws.Context, in *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Key]; ok {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, awserr.NewRequestFailure(awserr.New("NotFound", "not found", nil), http.StatusNotFound, "req")
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	bz, ok := f.objects[*in.Key]
	if !ok {
		return nil, awserr.NewRequestFailure(awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil), http.StatusNotFound, "req")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(bz))}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

type fakeUploader struct {
	store *fakeS3
}

func (u *fakeUploader) Upload(in *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return u.UploadWithContext(context.Background(), in, opts...)
}

func (u *fakeUploader) UploadWithContext(_ aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	bz, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	u.store.objects[*in.Key] = bz
	return &s3manager.UploadOutput{Location: *in.Key}, nil
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{}}
	s := NewS3Store(client, &fakeUploader{store: client}, "bucket", "media")

	key, err := s.Save(ctx, "bindata/2024/01/05/a.bin", strings.NewReader("one"))
	require.NoError(t, err)
	assert.Equal(t, "bindata/2024/01/05/a.bin", key)
	assert.Contains(t, client.objects, "media/bindata/2024/01/05/a.bin")

	key2, err := s.Save(ctx, key, strings.NewReader("two"))
	require.NoError(t, err)
	assert.Equal(t, "bindata/2024/01/05/a_1.bin", key2)
	assert.Equal(t, "s3://bucket/media/bindata/2024/01/05/a_1.bin", s.Location(key2))

	rc, err := s.Open(ctx, key2)
	require.NoError(t, err)
	bz, _ := io.ReadAll(rc)
	assert.Equal(t, "two", string(bz))

	require.NoError(t, s.Delete(ctx, key))
	assert.NotContains(t, client.objects, "media/bindata/2024/01/05/a.bin")
}
