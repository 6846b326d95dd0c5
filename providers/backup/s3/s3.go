// Package s3 provides an encset.BackupSink that mirrors backups to Amazon S3.
//
// Each Sync uploads the fresh backup as prefix + file name, replacing the
// previous object. Enable bucket versioning to keep a history.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hengadev/encset"
)

// PutObjectAPI is the subset of the S3 client used by Uploader.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds configuration for the S3 uploader.
type Config struct {
	// Bucket receives the backups. Required.
	Bucket string

	// Prefix is prepended to the backup file name to form the object key.
	Prefix string

	// Region is the AWS region of the bucket.
	// If empty, uses AWS_REGION or the AWS config file.
	Region string

	// AWSConfig is an optional pre-configured AWS config.
	// If provided, Region is ignored.
	AWSConfig *aws.Config
}

// Uploader implements encset.BackupSink with S3 PutObject.
type Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// New creates an Uploader with an S3 client built from the default AWS
// credential chain.
//
// Usage:
//
//	sink, err := s3.New(ctx, s3.Config{Bucket: "my-backups", Prefix: "desktop/"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store, err := encset.New(ctx, backend, keys, encset.WithBackupSink(sink))
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: backup bucket is required", encset.ErrInvalidConfiguration)
	}

	var awsCfg aws.Config
	if cfg.AWSConfig != nil {
		awsCfg = *cfg.AWSConfig
	} else {
		var opts []func(*config.LoadOptions) error
		if cfg.Region != "" {
			opts = append(opts, config.WithRegion(cfg.Region))
		}
		loaded, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load AWS config: %w", encset.ErrInvalidConfiguration, err)
		}
		awsCfg = loaded
	}

	return NewWithClient(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient creates an Uploader over an existing client.
func NewWithClient(client PutObjectAPI, bucket, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: prefix}
}

// ObjectKey returns the object key a backup called name is uploaded to.
func (u *Uploader) ObjectKey(name string) string {
	return u.prefix + name
}

// Upload stores the backup read from r under ObjectKey(name). The body is
// buffered so the SDK can compute its length and checksum.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: failed to read backup: %w", encset.ErrBackupFailed, err)
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(u.bucket),
		Key:                  aws.String(u.ObjectKey(name)),
		Body:                 bytes.NewReader(data),
		ContentLength:        aws.Int64(int64(len(data))),
		ContentType:          aws.String("application/octet-stream"),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to upload backup to s3://%s/%s: %w",
			encset.ErrBackupFailed, u.bucket, u.ObjectKey(name), err)
	}
	return nil
}
