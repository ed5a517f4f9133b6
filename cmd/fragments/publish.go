package main

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/fragments/internal/config"
	"github.com/alexisbeaulieu97/fragments/internal/publish"
)

type publishOptions struct {
	output   string
	bucket   string
	prefix   string
	region   string
	endpoint string
}

var newPublishClient = func(ctx context.Context, opts publish.ClientOptions) (publish.PutObjectAPI, error) {
	return publish.NewClient(ctx, opts)
}

func newPublishCmd(root *rootFlags) *cobra.Command {
	opts := &publishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the generated output tree to S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, root, opts.applyTo)
			if err != nil {
				return err
			}
			target := env.cfg.Publish
			if target.Bucket == "" {
				return newCommandError("publish fragments", env.cfg.OutputDir, fmt.Errorf("no bucket configured"), "set publish.bucket in the configuration or pass --bucket")
			}

			client, err := newPublishClient(cmd.Context(), publish.ClientOptions{Region: target.Region, Endpoint: target.Endpoint})
			if err != nil {
				return newCommandError("publish fragments", target.Bucket, err, "check the AWS credentials and region")
			}
			uploader, err := publish.NewUploader(client, publish.Options{
				Bucket: target.Bucket,
				Prefix: target.Prefix,
				Logger: env.log,
			})
			if err != nil {
				return err
			}

			objects, err := uploader.Publish(cmd.Context(), osfs.New(env.cfg.OutputDir))
			if err != nil {
				return newCommandError("publish fragments", env.cfg.OutputDir, err, "run 'fragments generate' and check bucket permissions")
			}
			out := cmd.OutOrStdout()
			for _, obj := range objects {
				fmt.Fprintf(out, "uploaded s3://%s/%s (%s)\n", target.Bucket, obj.Key, obj.ContentType)
			}
			fmt.Fprintf(out, "Published %d objects\n", len(objects))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory to upload (overrides output_dir)")
	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "Destination bucket (overrides publish.bucket)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "Key prefix (overrides publish.prefix)")
	cmd.Flags().StringVar(&opts.region, "region", "", "AWS region (overrides publish.region)")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "S3 compatible endpoint URL (overrides publish.endpoint)")

	return cmd
}

func (o *publishOptions) applyTo(cfg *config.Config) error {
	if o.output != "" {
		cfg.OutputDir = o.output
	}
	if o.bucket != "" {
		cfg.Publish.Bucket = o.bucket
	}
	if o.prefix != "" {
		cfg.Publish.Prefix = o.prefix
	}
	if o.region != "" {
		cfg.Publish.Region = o.region
	}
	if o.endpoint != "" {
		cfg.Publish.Endpoint = o.endpoint
	}
	return nil
}
