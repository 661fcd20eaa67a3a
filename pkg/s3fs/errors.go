package s3fs

import (
	"errors"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// pathError maps S3 errors onto the io/fs sentinels.
func pathError(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: translate(err)}
}

func translate(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return errors.Join(fs.ErrNotExist, err)
		case "AccessDenied", "Forbidden":
			return errors.Join(fs.ErrPermission, err)
		}
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return errors.Join(fs.ErrNotExist, err)
	}

	return err
}

func isNotExist(err error) bool {
	return errors.Is(translate(err), fs.ErrNotExist)
}
