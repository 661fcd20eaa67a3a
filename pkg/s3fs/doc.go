// Package s3fs exposes an S3 bucket (or a prefix inside one) as a read-only
// fs.FS, so a website can be served straight from object storage.
//
// Object keys map to slash-separated paths. Directories are implied by keys
// that share a prefix or by an empty "dir/" marker object.
//
//	fsys, err := s3fs.New(s3fs.Config{
//	    Bucket:    "my-site",
//	    Prefix:    "www",
//	    AccessKey: os.Getenv("S3_ACCESS_KEY"),
//	    SecretKey: os.Getenv("S3_SECRET_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//
//	app, err := pando.New(pando.WithFS(fsys))
//
// Works with any S3-compatible service; set Endpoint and PathStyle for MinIO.
//
// # Errors
//
// NoSuchKey and NotFound responses become fs.ErrNotExist, AccessDenied and
// Forbidden become fs.ErrPermission, all wrapped in *fs.PathError.
package s3fs
