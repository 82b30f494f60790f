package emulator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/dmitrijs2005/trowebseed/internal/emulator/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageKey(t *testing.T) {
	k1 := StorageKey(collection, "logo.png")
	k2 := StorageKey(collection, "logo.png")

	assert.True(t, strings.HasPrefix(k1, "collections/"+collection+"/"))
	assert.True(t, strings.HasSuffix(k1, "/logo.png"))
	assert.NotEqual(t, k1, k2)
}

func TestLocalSigner_SignAndVerify(t *testing.T) {
	s := NewLocalSigner("http://emu.local/", []byte("secret"), time.Minute)

	g, err := s.Sign(context.Background(), "k", models.FileDescriptor{FileName: "report.txt"})
	require.NoError(t, err)

	assert.Equal(t, "http://emu.local/uploads", g.URL)
	assert.Equal(t, "k", g.Fields["key"])
	require.NoError(t, s.Verify(g.Fields["key"], g.Fields["expires"], g.Fields["signature"]))

	t.Run("tampered key", func(t *testing.T) {
		err := s.Verify("other", g.Fields["expires"], g.Fields["signature"])
		assert.ErrorIs(t, err, ErrInvalidGrant)
	})

	t.Run("tampered expiry", func(t *testing.T) {
		err := s.Verify("k", "99999999999", g.Fields["signature"])
		assert.ErrorIs(t, err, ErrInvalidGrant)
	})

	t.Run("missing fields", func(t *testing.T) {
		assert.ErrorIs(t, s.Verify("", "", ""), ErrInvalidGrant)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewLocalSigner("http://emu.local", []byte("different"), time.Minute)
		err := other.Verify(g.Fields["key"], g.Fields["expires"], g.Fields["signature"])
		assert.ErrorIs(t, err, ErrInvalidGrant)
	})
}

func TestLocalSigner_Expired(t *testing.T) {
	s := NewLocalSigner("http://emu.local", []byte("secret"), time.Minute)
	issued := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return issued }

	g, err := s.Sign(context.Background(), "k", models.FileDescriptor{})
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	err = s.Verify(g.Fields["key"], g.Fields["expires"], g.Fields["signature"])
	assert.ErrorIs(t, err, ErrGrantExpired)
}

func testS3Config() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.Signer = config.SignerS3
	c.GrantValidity = 5 * time.Minute
	return c
}

func TestS3Signer_PassesBucketKeyAndExpiry(t *testing.T) {
	orig := presignPostObject
	t.Cleanup(func() { presignPostObject = orig })

	var (
		gotBucket, gotKey string
		gotExpires        time.Duration
	)
	presignPostObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignPostOptions)) (*s3.PresignedPostRequest, error) {
		gotBucket, gotKey = *in.Bucket, *in.Key
		var o s3.PresignPostOptions
		for _, fn := range optFns {
			fn(&o)
		}
		gotExpires = o.Expires
		return &s3.PresignedPostRequest{
			URL:    "http://127.0.0.1:9000/vault",
			Values: map[string]string{"key": *in.Key, "policy": "p", "x-amz-signature": "sig"},
		}, nil
	}

	s, err := NewS3Signer(context.Background(), testS3Config())
	require.NoError(t, err)

	g, err := s.Sign(context.Background(), "collections/x/logo.png", models.FileDescriptor{FileName: "logo.png"})
	require.NoError(t, err)

	assert.Equal(t, "vault", gotBucket)
	assert.Equal(t, "collections/x/logo.png", gotKey)
	assert.Equal(t, 5*time.Minute, gotExpires)
	assert.Equal(t, "http://127.0.0.1:9000/vault", g.URL)
	assert.Equal(t, "p", g.Fields["policy"])
}

func TestS3Signer_PresignError(t *testing.T) {
	orig := presignPostObject
	t.Cleanup(func() { presignPostObject = orig })

	boom := errors.New("boom")
	presignPostObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignPostOptions)) (*s3.PresignedPostRequest, error) {
		return nil, boom
	}

	s, err := NewS3Signer(context.Background(), testS3Config())
	require.NoError(t, err)

	_, err = s.Sign(context.Background(), "k", models.FileDescriptor{})
	assert.ErrorIs(t, err, boom)
}

func TestS3Signer_RealPresign(t *testing.T) {
	s, err := NewS3Signer(context.Background(), testS3Config())
	require.NoError(t, err)

	g, err := s.Sign(context.Background(), "collections/x/report.txt", models.FileDescriptor{FileName: "report.txt"})
	require.NoError(t, err)

	assert.Contains(t, g.URL, "127.0.0.1:9000")
	assert.Contains(t, g.URL, "vault")
	assert.NotEmpty(t, g.Fields)
}

func TestNewS3Signer_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	boom := errors.New("no config")
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, boom
	}

	_, err := NewS3Signer(context.Background(), testS3Config())
	assert.ErrorIs(t, err, boom)
}
