package s3fs

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// API is the subset of the S3 client used by FS.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// FS is a read-only file system over the objects of a bucket.
type FS struct {
	client  API
	bucket  string
	prefix  string
	timeout time.Duration
}

// New creates an FS talking to S3 with static credentials.
func New(cfg Config) (*FS, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return NewWithClient(s3.New(s3.Options{}, opts...), cfg), nil
}

// NewWithClient creates an FS over an existing client. Credentials and
// endpoint fields of cfg are ignored.
func NewWithClient(client API, cfg Config) *FS {
	cfg.applyDefaults()
	return &FS{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		timeout: cfg.Timeout,
	}
}

// Open opens the named file or directory.
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	if name != "." {
		data, info, err := f.get(name)
		if err == nil {
			return &file{Reader: bytes.NewReader(data), info: info}, nil
		}
		if !isNotExist(err) {
			return nil, pathError("open", name, err)
		}
	}

	info, err := f.statDir(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return &dir{fsys: f, name: name, info: info}, nil
}

// Stat returns file info without downloading the object.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	if name != "." {
		ctx, cancel := f.context()
		defer cancel()

		out, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(f.bucket),
			Key:    aws.String(f.key(name)),
		})
		if err == nil {
			return &fileInfo{
				name:    path.Base(name),
				size:    aws.ToInt64(out.ContentLength),
				modTime: aws.ToTime(out.LastModified),
			}, nil
		}
		if !isNotExist(err) {
			return nil, pathError("stat", name, err)
		}
	}

	info, err := f.statDir(name)
	if err != nil {
		return nil, pathError("stat", name, err)
	}
	return info, nil
}

// ReadFile reads the whole object.
func (f *FS) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}

	data, _, err := f.get(name)
	if err != nil {
		return nil, pathError("readfile", name, err)
	}
	return data, nil
}

// ReadDir lists a directory sorted by name.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	entries, marker, err := f.list(name, 0)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}
	if len(entries) == 0 && !marker && name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (f *FS) get(name string) ([]byte, *fileInfo, error) {
	ctx, cancel := f.context()
	defer cancel()

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(name)),
	})
	if err != nil {
		return nil, nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, nil, err
	}

	return data, &fileInfo{
		name:    path.Base(name),
		size:    int64(len(data)),
		modTime: aws.ToTime(out.LastModified),
	}, nil
}

// statDir reports name as a directory when a key lives under it or a
// "name/" marker object exists.
func (f *FS) statDir(name string) (*fileInfo, error) {
	info := &fileInfo{name: path.Base(name), dir: true}
	if name == "." {
		return info, nil
	}

	entries, marker, err := f.list(name, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 && !marker {
		return nil, fs.ErrNotExist
	}
	return info, nil
}

// list returns the direct children of dir and whether a marker object for
// dir itself exists. A positive limit stops early.
func (f *FS) list(dir string, limit int) ([]fs.DirEntry, bool, error) {
	ctx, cancel := f.context()
	defer cancel()

	prefix := f.dirPrefix(dir)
	in := &s3.ListObjectsV2Input{
		Bucket:    aws.String(f.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}
	if limit > 0 {
		in.MaxKeys = aws.Int32(int32(limit) + 1)
	}

	var entries []fs.DirEntry
	var marker bool
	for {
		out, err := f.client.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, false, err
		}

		for _, cp := range out.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			entries = append(entries, &fileInfo{name: name, dir: true})
		}
		for _, obj := range out.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name == "" {
				marker = true
				continue
			}
			entries = append(entries, &fileInfo{
				name:    name,
				size:    aws.ToInt64(obj.Size),
				modTime: aws.ToTime(obj.LastModified),
			})
		}

		if limit > 0 && len(entries) >= limit {
			return entries[:limit], marker, nil
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			return entries, marker, nil
		}
		in.ContinuationToken = out.NextContinuationToken
	}
}

func (f *FS) key(name string) string {
	if f.prefix == "" {
		return name
	}
	return f.prefix + "/" + name
}

func (f *FS) dirPrefix(name string) string {
	if name == "." {
		if f.prefix == "" {
			return ""
		}
		return f.prefix + "/"
	}
	return f.key(name) + "/"
}

func (f *FS) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), f.timeout)
}

var (
	_ fs.StatFS     = (*FS)(nil)
	_ fs.ReadFileFS = (*FS)(nil)
	_ fs.ReadDirFS  = (*FS)(nil)
)
