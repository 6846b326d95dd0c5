package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hengadev/encset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockS3Client implements PutObjectAPI for testing
type mockS3Client struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.input = params
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.body = string(data)
	return &s3.PutObjectOutput{}, nil
}

func TestUploader_Upload(t *testing.T) {
	mock := &mockS3Client{}
	u := NewWithClient(mock, "backups", "desktop/")

	err := u.Upload(context.Background(), "settings.ini.bak", strings.NewReader("[General]\n"))
	require.NoError(t, err)

	assert.Equal(t, "backups", aws.ToString(mock.input.Bucket))
	assert.Equal(t, "desktop/settings.ini.bak", aws.ToString(mock.input.Key))
	assert.Equal(t, int64(len("[General]\n")), aws.ToInt64(mock.input.ContentLength))
	assert.Equal(t, types.ServerSideEncryptionAes256, mock.input.ServerSideEncryption)
	assert.Equal(t, "[General]\n", mock.body)
}

func TestUploader_UploadError(t *testing.T) {
	mock := &mockS3Client{err: errors.New("access denied")}
	u := NewWithClient(mock, "backups", "")

	err := u.Upload(context.Background(), "settings.ini.bak", strings.NewReader("x"))
	assert.ErrorIs(t, err, encset.ErrBackupFailed)
	assert.Contains(t, err.Error(), "s3://backups/settings.ini.bak")
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, encset.ErrInvalidConfiguration)
}

func TestNew_WithAWSConfig(t *testing.T) {
	u, err := New(context.Background(), Config{
		Bucket:    "backups",
		Prefix:    "p/",
		AWSConfig: &aws.Config{Region: "eu-west-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "p/x.bak", u.ObjectKey("x.bak"))
}
