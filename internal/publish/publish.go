// Package publish uploads a generated fragment tree to S3.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/alexisbeaulieu97/fragments/internal/fragment"
	"github.com/alexisbeaulieu97/fragments/internal/logger"
)

// DefaultCacheControl keeps CDN copies short-lived; fragment paths are not
// content addressed.
const DefaultCacheControl = "public, max-age=300"

// PutObjectAPI is the part of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ PutObjectAPI = (*s3.Client)(nil)

// ClientOptions configures NewClient.
type ClientOptions struct {
	Region string
	// Endpoint points the client at an S3 compatible service. Path style
	// addressing is used when it is set.
	Endpoint string
}

// NewClient builds an S3 client from the default AWS credential chain.
func NewClient(ctx context.Context, opts ClientOptions) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	var s3Opts []func(*s3.Options)
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(cfg, s3Opts...), nil
}

// Options configures an Uploader.
type Options struct {
	Bucket       string
	Prefix       string
	CacheControl string
	Logger       *logger.Logger
}

// Object is one uploaded file.
type Object struct {
	Key         string
	ContentType string
	Size        int
}

// Uploader copies an output tree into a bucket.
type Uploader struct {
	client PutObjectAPI
	opts   Options
}

// NewUploader validates opts.
func NewUploader(client PutObjectAPI, opts Options) (*Uploader, error) {
	if client == nil {
		return nil, errors.New("publish: client is required")
	}
	if opts.Bucket == "" {
		return nil, errors.New("publish: bucket is required")
	}
	opts.Prefix = strings.Trim(opts.Prefix, "/")
	if opts.CacheControl == "" {
		opts.CacheControl = DefaultCacheControl
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Uploader{client: client, opts: opts}, nil
}

// Publish uploads every file of the tree rooted at fs. The root manifest
// goes last so readers never see an index pointing at missing fragments.
// Staging files left by an interrupted write are skipped.
func (u *Uploader) Publish(ctx context.Context, fs billy.Filesystem) ([]Object, error) {
	names, err := collect(fs)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New("publish: output tree is empty, run generate first")
	}

	objects := make([]Object, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return objects, err
		}
		obj, err := u.upload(ctx, fs, name)
		if err != nil {
			return objects, err
		}
		u.opts.Logger.WithFields(map[string]any{
			"key":          obj.Key,
			"content_type": obj.ContentType,
			"bytes":        obj.Size,
		}).Debug("object uploaded")
		objects = append(objects, obj)
	}
	u.opts.Logger.WithFields(map[string]any{"bucket": u.opts.Bucket, "objects": len(objects)}).Info("publish finished")
	return objects, nil
}

func (u *Uploader) upload(ctx context.Context, fs billy.Filesystem, name string) (Object, error) {
	data, err := util.ReadFile(fs, name)
	if err != nil {
		return Object{}, fmt.Errorf("read %s: %w", name, err)
	}
	obj := Object{Key: u.key(name), ContentType: ContentType(name, data), Size: len(data)}
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.opts.Bucket),
		Key:          aws.String(obj.Key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(obj.ContentType),
		CacheControl: aws.String(u.opts.CacheControl),
	})
	if err != nil {
		return Object{}, fmt.Errorf("upload s3://%s/%s: %w", u.opts.Bucket, obj.Key, err)
	}
	return obj, nil
}

func (u *Uploader) key(name string) string {
	if u.opts.Prefix == "" {
		return name
	}
	return path.Join(u.opts.Prefix, name)
}

// collect lists the files of the tree in upload order.
func collect(fs billy.Filesystem) ([]string, error) {
	var names []string
	err := util.Walk(fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.HasSuffix(p, ".tmp") {
			return nil
		}
		names = append(names, strings.TrimPrefix(filepath.ToSlash(p), "/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk output tree: %w", err)
	}

	sort.SliceStable(names, func(i, j int) bool {
		iRoot, jRoot := names[i] == fragment.ManifestFile, names[j] == fragment.ManifestFile
		if iRoot != jRoot {
			return jRoot
		}
		return names[i] < names[j]
	})
	return names, nil
}

// ContentType sniffs data with mimetype. Stylesheets are recognised by
// extension since they carry no magic bytes.
func ContentType(name string, data []byte) string {
	if path.Ext(name) == ".css" {
		return "text/css; charset=utf-8"
	}
	return mimetype.Detect(data).String()
}
