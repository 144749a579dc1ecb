package storage

import (
	"fmt"

	"github.com/fiveflix/videos-ms-go/internal/usecase/catalog"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return catalog.ErrObjectNotFound
	case "NoSuchBucket":
		return catalog.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return catalog.ErrStorageForbidden
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", catalog.ErrStorageInternal, err)
	}
}
