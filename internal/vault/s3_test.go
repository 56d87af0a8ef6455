package vault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3IsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no such key", &types.NoSuchKey{}, true},
		{"head not found", &types.NotFound{}, true},
		{"generic NotFound code", &smithy.GenericAPIError{Code: "NotFound"}, true},
		{"wrapped", fmt.Errorf("query: %w", &types.NoSuchKey{}), true},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{"plain error", errors.New("dial tcp"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3IsNotFound(tt.err))
		})
	}
}

func TestS3BackendErrPreservesCode(t *testing.T) {
	err := s3BackendErr(&smithy.GenericAPIError{Code: "SlowDown", Message: "reduce request rate"})
	assert.Equal(t, "SlowDown", err.Code)
	assert.Equal(t, "s3", err.Backend)

	err = s3BackendErr(errors.New("dial tcp"))
	assert.Equal(t, "", err.Code)
}

func TestS3ObjectKeyPrefix(t *testing.T) {
	s := &S3{bucket: "b", prefix: "team-a"}
	assert.Equal(t, "team-a/session", s.objectKey("session"))

	s = &S3{bucket: "b"}
	assert.Equal(t, "session", s.objectKey("session"))
}

func TestNewS3(t *testing.T) {
	v, err := NewS3(t.Context(), S3Config{
		Region:          "us-east-1",
		BaseEndpoint:    "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		Bucket:          "lockbox",
		Prefix:          "test",
	})
	require.NoError(t, err)
	assert.NotNil(t, v.client)
}
