package publish

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type putCall struct {
	bucket       string
	key          string
	contentType  string
	cacheControl string
	body         string
}

type fakeS3 struct {
	calls  []putCall
	failOn string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(in.Key)
	if key == f.failOn {
		return nil, errors.New("access denied")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, putCall{
		bucket:       aws.ToString(in.Bucket),
		key:          key,
		contentType:  aws.ToString(in.ContentType),
		cacheControl: aws.ToString(in.CacheControl),
		body:         string(body),
	})
	return &s3.PutObjectOutput{}, nil
}

func outputTree(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	files := map[string]string{
		"manifest.json":               `{"version": "1.0.0", "components": []}` + "\n",
		"footer/v1/fragment.html":     "<!-- Fragment: Footer -->\n<footer></footer>\n",
		"footer/v1/styles.css":        ".footer__footer{}\n",
		"footer/v1/manifest.json":     `{"id": "footer"}` + "\n",
		"button/v1/fragment.html.tmp": "partial",
		"button/v1/manifest.json":     `{"id": "button"}` + "\n",
	}
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestPublishUploadsTree(t *testing.T) {
	t.Parallel()

	client := &fakeS3{}
	uploader, err := NewUploader(client, Options{Bucket: "cms-fragments", Prefix: "/marketing/"})
	require.NoError(t, err)

	objects, err := uploader.Publish(context.Background(), outputTree(t))
	require.NoError(t, err)
	require.Len(t, objects, 5)

	keys := make([]string, 0, len(client.calls))
	for _, call := range client.calls {
		keys = append(keys, call.key)
		assert.Equal(t, "cms-fragments", call.bucket)
		assert.Equal(t, DefaultCacheControl, call.cacheControl)
	}
	assert.Equal(t, []string{
		"marketing/button/v1/manifest.json",
		"marketing/footer/v1/fragment.html",
		"marketing/footer/v1/manifest.json",
		"marketing/footer/v1/styles.css",
		"marketing/manifest.json",
	}, keys)

	byKey := map[string]putCall{}
	for _, call := range client.calls {
		byKey[call.key] = call
	}
	assert.Equal(t, "text/css; charset=utf-8", byKey["marketing/footer/v1/styles.css"].contentType)
	assert.Equal(t, "text/html; charset=utf-8", byKey["marketing/footer/v1/fragment.html"].contentType)
	assert.Equal(t, "application/json", byKey["marketing/manifest.json"].contentType)
	assert.Equal(t, ".footer__footer{}\n", byKey["marketing/footer/v1/styles.css"].body)
}

func TestPublishStopsOnUploadError(t *testing.T) {
	t.Parallel()

	client := &fakeS3{failOn: "footer/v1/fragment.html"}
	uploader, err := NewUploader(client, Options{Bucket: "cms-fragments"})
	require.NoError(t, err)

	objects, err := uploader.Publish(context.Background(), outputTree(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://cms-fragments/footer/v1/fragment.html")
	assert.Len(t, objects, 1)
	for _, call := range client.calls {
		assert.NotEqual(t, "manifest.json", call.key)
	}
}

func TestPublishEmptyTree(t *testing.T) {
	t.Parallel()

	uploader, err := NewUploader(&fakeS3{}, Options{Bucket: "b"})
	require.NoError(t, err)
	_, err = uploader.Publish(context.Background(), memfs.New())
	require.Error(t, err)
}

func TestNewUploaderValidates(t *testing.T) {
	t.Parallel()

	_, err := NewUploader(nil, Options{Bucket: "b"})
	require.Error(t, err)
	_, err = NewUploader(&fakeS3{}, Options{})
	require.Error(t, err)
}

func TestContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text/css; charset=utf-8", ContentType("a/styles.css", []byte(":root{}")))
	assert.Equal(t, "application/json", ContentType("manifest.json", []byte(`{"a": 1}`)))
}
