package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/port"
	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage wraps a MinIO client scoped to the single configured bucket.
// Credentials, endpoint and bucket come from the immutable startup config;
// nothing here reads ambient environment.
type MinioStorage struct {
	client     minioClient
	bucketName string
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewStorage(endpoint, accessKey, secretKey, region, bucket string, useSSL bool) (*MinioStorage, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Region: region,
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client, bucketName: bucket}, nil
}

func (s *MinioStorage) InitBucket() error {
	ok, err := s.client.BucketExists(context.Background(), s.bucketName)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", s.bucketName)
		if err := s.client.MakeBucket(context.Background(), s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) FileExists(ctx context.Context, fileKey string) (bool, error) {
	log.Printf("checking if file %q exists in bucket %q...", fileKey, s.bucketName)

	_, err := s.StatFile(ctx, fileKey)
	if errors.Is(err, catalog.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	log.Printf("getting stats on file %q in bucket %q...", fileKey, s.bucketName)

	info, err := s.client.StatObject(ctx, s.bucketName, fileKey, minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

// RemoveFile deletes an object best-effort. A blank key or a key that is
// already gone is a no-op reporting false, not an error.
func (s *MinioStorage) RemoveFile(ctx context.Context, fileKey string) (bool, error) {
	if fileKey == "" {
		return false, nil
	}
	log.Printf("removing file %q from bucket %q...", fileKey, s.bucketName)

	exists, err := s.FileExists(ctx, fileKey)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.client.RemoveObject(ctx, s.bucketName, fileKey, minio.RemoveObjectOptions{}); err != nil {
		return false, mapMinioErr(err)
	}
	return true, nil
}

func (s *MinioStorage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error {
	log.Printf("saving file %q into bucket %q...", fileKey, s.bucketName)

	putOpts := minio.PutObjectOptions{}
	if contentType != "" {
		putOpts.ContentType = contentType
	}

	if _, err := s.client.PutObject(ctx, s.bucketName, fileKey, reader, fileSize, putOpts); err != nil {
		return mapMinioErr(err)
	}
	return nil
}

// PresignDownload mints a time-boxed GET URL for an object. The ttl is always
// clamped to the signing bounds; the response content-type (and optionally
// disposition) overrides ride along as signed query parameters.
func (s *MinioStorage) PresignDownload(ctx context.Context, fileKey string, ttl time.Duration, opts port.DownloadOptions) (string, error) {
	ttl = catalog.ClampTTL(ttl)
	log.Printf("generating a presigned download link for file %q in bucket %q (ttl %s)...", fileKey, s.bucketName, ttl)

	reqParams := url.Values{}
	if opts.ContentType != "" {
		reqParams.Set("response-content-type", opts.ContentType)
	}
	if opts.ContentDisposition != "" {
		reqParams.Set("response-content-disposition", opts.ContentDisposition)
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucketName, fileKey, ttl, reqParams)
	if err != nil {
		return "", mapMinioErr(err)
	}
	if presignedURL == nil {
		return "", fmt.Errorf("%w: presigner returned no URL for %q", catalog.ErrStorageInternal, fileKey)
	}

	return presignedURL.String(), nil
}

// PresignUpload mints a time-boxed PUT URL. The declared content type is
// enforced by the uploader's Content-Type header on the signed request.
// Upload TTLs are caller-bounded, not clamped to the read window.
func (s *MinioStorage) PresignUpload(ctx context.Context, fileKey string, ttl time.Duration, contentType string) (string, error) {
	log.Printf("generating a presigned upload link for file %q (%s) in bucket %q...", fileKey, contentType, s.bucketName)

	var extraHeaders http.Header
	if contentType != "" {
		extraHeaders = http.Header{"Content-Type": []string{contentType}}
	}

	presignedURL, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucketName, fileKey, ttl, nil, extraHeaders)
	if err != nil {
		return "", mapMinioErr(err)
	}
	if presignedURL == nil {
		return "", fmt.Errorf("%w: presigner returned no URL for %q", catalog.ErrStorageInternal, fileKey)
	}

	return presignedURL.String(), nil
}
