package utils

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// ImageStorage talks to an S3-compatible object store that hosts listing
// images. The object key is kept next to the public URL so the asset can be
// deleted when its listing goes away.
type ImageStorage struct {
	client   *s3.S3
	bucket   string
	endpoint string
}

type StorageConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
}

func NewImageStorage(cfg StorageConfig) *ImageStorage {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(cfg.Region),
		Endpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey, cfg.SecretKey, "",
		),
	}))
	return &ImageStorage{client: s3.New(sess), bucket: cfg.Bucket, endpoint: cfg.Endpoint}
}

// ObjectKey builds a unique key for an uploaded file, keeping the original
// extension.
func ObjectKey(folder, originalName string) string {
	return fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(originalName))
}

// Upload stores the file publicly and returns its URL.
func (s *ImageStorage) Upload(file []byte, key, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to storage: %v", err)
	}
	return s.PublicURL(key), nil
}

// Delete removes an object by key. Deleting a missing object is not an
// error on S3.
func (s *ImageStorage) Delete(key string) error {
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("unable to delete file from storage: %v", err)
	}
	return nil
}

// PublicURL returns the browser-facing URL for an object key.
func (s *ImageStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}
