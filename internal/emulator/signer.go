package emulator

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/dmitrijs2005/trowebseed/internal/emulator/config"
	"github.com/google/uuid"
)

// UploadPath is where local grants point uploads to.
const UploadPath = "/uploads"

var (
	ErrInvalidGrant = errors.New("invalid upload grant")
	ErrGrantExpired = errors.New("upload grant expired")
)

// Grant is a signed upload target: POST the file to URL as multipart form
// data together with Fields.
type Grant struct {
	URL    string
	Fields map[string]string
}

// Signer issues upload grants for storage keys.
type Signer interface {
	Sign(ctx context.Context, key string, blob models.FileDescriptor) (Grant, error)
}

// StorageKey builds a unique object key for a blob within a collection.
func StorageKey(collectionID, fileName string) string {
	return fmt.Sprintf("collections/%s/%v/%s", collectionID, uuid.New(), fileName)
}

// LocalSigner hands out grants that point back at the emulator itself.
// The grant is an HMAC over the key and expiry time.
type LocalSigner struct {
	baseURL  string
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewLocalSigner(baseURL string, secret []byte, validity time.Duration) *LocalSigner {
	return &LocalSigner{
		baseURL:  strings.TrimRight(baseURL, "/"),
		secret:   secret,
		validity: validity,
		now:      time.Now,
	}
}

func (s *LocalSigner) Sign(_ context.Context, key string, _ models.FileDescriptor) (Grant, error) {
	expires := strconv.FormatInt(s.now().Add(s.validity).Unix(), 10)

	return Grant{
		URL: s.baseURL + UploadPath,
		Fields: map[string]string{
			"key":       key,
			"expires":   expires,
			"signature": s.signature(key, expires),
		},
	}, nil
}

// Verify checks the form fields of an incoming upload against the grant
// that was issued for them.
func (s *LocalSigner) Verify(key, expires, signature string) error {
	if key == "" || expires == "" || signature == "" {
		return ErrInvalidGrant
	}

	if !hmac.Equal([]byte(signature), []byte(s.signature(key, expires))) {
		return ErrInvalidGrant
	}

	ts, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return ErrInvalidGrant
	}
	if s.now().Unix() > ts {
		return ErrGrantExpired
	}

	return nil
}

func (s *LocalSigner) signature(key, expires string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(key + "\n" + expires))
	return hex.EncodeToString(mac.Sum(nil))
}

var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	presignPostObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignPostOptions)) (*s3.PresignedPostRequest, error) {
		return pc.PresignPostObject(ctx, in, optFns...)
	}
)

// S3Signer issues presigned POST policies against an S3-compatible bucket.
type S3Signer struct {
	presign  *s3.PresignClient
	bucket   string
	validity time.Duration
}

func NewS3Signer(ctx context.Context, cfg *config.Config) (*S3Signer, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,     // MINIO_ROOT_USER
			cfg.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Signer{
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.S3Bucket,
		validity: cfg.GrantValidity,
	}, nil
}

func (s *S3Signer) Sign(ctx context.Context, key string, _ models.FileDescriptor) (Grant, error) {
	req, err := presignPostObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignPostOptions) {
		o.Expires = s.validity
	})
	if err != nil {
		return Grant{}, err
	}

	return Grant{URL: req.URL, Fields: req.Values}, nil
}
