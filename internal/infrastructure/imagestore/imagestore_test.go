package imagestore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := objectName("../../etc/passwd")
	assert.True(t, strings.HasSuffix(name, "-passwd"))
	assert.NotContains(t, name, "/")

	name = objectName(`C:\photos\my lamp.jpg`)
	assert.True(t, strings.HasSuffix(name, "-my_lamp.jpg"))
	assert.True(t, validObjectName(name))

	for _, original := range []string{"???", "..", "", "/"} {
		name := objectName(original)
		assert.Len(t, name, 36, original)
		require.NoError(t, uuid.Validate(name), original)
	}
}

func TestLocalStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewLocalStore(dir, "/images")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "lamp.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/images/"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStore_Delete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewLocalStore(dir, "/images")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "???", "", strings.NewReader("x"), 1)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, filepath.Base(ref)))

	require.NoError(t, store.Delete(context.Background(), ref))
	assert.NoFileExists(t, filepath.Join(dir, filepath.Base(ref)))

	// already gone
	assert.NoError(t, store.Delete(context.Background(), ref))

	for _, ref := range []string{"/images/..", "/other/x.png", "/images/../secret", "../images/a"} {
		assert.Error(t, store.Delete(context.Background(), ref), ref)
	}
}

type fakeS3 struct {
	in      *s3.PutObjectInput
	body    string
	deleted []string
	err     error
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	if f.err != nil {
		return nil, f.err
	}
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Save(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Store{client: fake, bucket: "photos"}

	ref, err := store.Save(context.Background(), "sofa.jpg", "image/jpeg", strings.NewReader("jpeg"), 4)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "s3://photos/items/"))
	assert.Equal(t, "photos", aws.ToString(fake.in.Bucket))
	assert.True(t, strings.HasSuffix(aws.ToString(fake.in.Key), "-sofa.jpg"))
	assert.Equal(t, "image/jpeg", aws.ToString(fake.in.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(fake.in.ContentLength))
	assert.Equal(t, "jpeg", fake.body)
}

func TestS3Store_SaveError(t *testing.T) {
	store := &S3Store{client: &fakeS3{err: errors.New("access denied")}, bucket: "photos"}
	_, err := store.Save(context.Background(), "sofa.jpg", "", strings.NewReader("x"), 1)
	assert.ErrorContains(t, err, "failed to upload image")
}

func TestS3Store_Delete(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Store{client: fake, bucket: "photos"}

	ref, err := store.Save(context.Background(), "sofa.jpg", "", strings.NewReader("x"), 1)
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), ref))
	require.Len(t, fake.deleted, 1)
	assert.Equal(t, strings.TrimPrefix(ref, "s3://photos/"), fake.deleted[0])

	assert.Error(t, store.Delete(context.Background(), "s3://other/items/x.jpg"))
	assert.Error(t, store.Delete(context.Background(), "s3://photos/items/../x"))
	assert.Len(t, fake.deleted, 1)

	fake.err = errors.New("access denied")
	assert.ErrorContains(t, store.Delete(context.Background(), ref), "failed to delete image")
}
