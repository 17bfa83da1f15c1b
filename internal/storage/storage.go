package storage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/config"
)

// Bucket names served by this store.
const (
	BucketVideo = "video"
	BucketImage = "products_img"
)

var (
	ErrUnknownBucket = errors.New("unknown storage bucket")
	ErrFileTooLarge  = errors.New("file exceeds bucket size limit")
)

// Service is a disk-backed object store with the two media buckets the
// site uses. Objects are addressed by generated filename and exposed
// through public URLs built from the configured base.
type Service struct {
	root     string
	baseURL  string
	maxVideo int64
	maxImage int64
}

func NewService(cfg *config.AppConfig) (*Service, error) {
	s := &Service{
		root:     cfg.GetStorageDir(),
		baseURL:  strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
		maxVideo: cfg.Storage.MaxVideoSize,
		maxImage: cfg.Storage.MaxImageSize,
	}
	for _, bucket := range []string{BucketVideo, BucketImage} {
		if err := os.MkdirAll(filepath.Join(s.root, bucket), 0o755); err != nil {
			return nil, errors.Wrap(err, "create storage bucket dir")
		}
	}
	return s, nil
}

// Root returns the on-disk directory objects are stored under.
func (s *Service) Root() string {
	return s.root
}

// MaxSize returns the upload ceiling for a bucket in bytes.
func (s *Service) MaxSize(bucket string) (int64, error) {
	switch bucket {
	case BucketVideo:
		return s.maxVideo, nil
	case BucketImage:
		return s.maxImage, nil
	}
	return 0, errors.Wrap(ErrUnknownBucket, bucket)
}

// GenerateFilename builds a collision-resistant stored name from the
// original upload name: unix millis, a random suffix and the original
// extension.
func GenerateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := random.String(9, random.Lowercase, random.Numeric)
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), suffix, ext)
}

// PublicURL builds the public URL for a stored object. The filename is
// percent-encoded since operators upload files with arbitrary names.
func (s *Service) PublicURL(bucket, filename string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, url.PathEscape(filename))
}

// Save streams an upload into a bucket under a freshly generated
// filename, enforcing the bucket ceiling before anything touches disk.
// The declared size comes from the multipart header.
func (s *Service) Save(bucket, originalName string, size int64, r io.Reader) (string, error) {
	limit, err := s.MaxSize(bucket)
	if err != nil {
		return "", err
	}
	if size > limit {
		return "", errors.Wrapf(ErrFileTooLarge, "%s: %d > %d", originalName, size, limit)
	}

	filename := GenerateFilename(originalName)
	path := filepath.Join(s.root, bucket, filename)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "create storage object")
	}
	defer dst.Close()

	// the declared size is client data; cap the copy as well
	written, err := io.Copy(dst, io.LimitReader(r, limit+1))
	if err != nil {
		_ = os.Remove(path)
		return "", errors.Wrap(err, "write storage object")
	}
	if written > limit {
		_ = os.Remove(path)
		return "", errors.Wrapf(ErrFileTooLarge, "%s: stream exceeded %d", originalName, limit)
	}
	return filename, nil
}

// Remove deletes a stored object. Removing a missing object is not an
// error; the row it backed may have outlived a manual cleanup.
func (s *Service) Remove(bucket, filename string) error {
	if _, err := s.MaxSize(bucket); err != nil {
		return err
	}
	if filename == "" || strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		return errors.Errorf("refusing to remove suspicious filename %q", filename)
	}
	err := os.Remove(filepath.Join(s.root, bucket, filename))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove storage object")
	}
	return nil
}

// List returns the filenames currently present in a bucket.
func (s *Service) List(bucket string) ([]string, error) {
	if _, err := s.MaxSize(bucket); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, bucket))
	if err != nil {
		return nil, errors.Wrap(err, "list storage bucket")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// SweepOrphans logs bucket objects referenced by no database row. The
// referenced set is supplied by the caller; the sweep only reports, it
// never deletes, so a half-written upload cannot be destroyed by a
// racing cron run.
func (s *Service) SweepOrphans(bucket string, referenced map[string]bool) []string {
	names, err := s.List(bucket)
	if err != nil {
		zap.L().Error("orphan sweep failed", zap.String("bucket", bucket), zap.Error(err))
		return nil
	}
	var orphans []string
	for _, name := range names {
		if !referenced[name] {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) > 0 {
		zap.L().Warn("storage objects referenced by no row",
			zap.String("bucket", bucket), zap.Strings("files", orphans))
	}
	return orphans
}
