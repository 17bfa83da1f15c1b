package storage

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cran-montage/cranweb/config"
)

func testService(t *testing.T) *Service {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Storage.PublicBaseURL = "https://cdn.test/storage/"
	cfg.Storage.MaxVideoSize = 1 << 20
	cfg.Storage.MaxImageSize = 1 << 10
	svc, err := NewService(&cfg)
	require.NoError(t, err)
	return svc
}

func TestGenerateFilename_Shape(t *testing.T) {
	name := GenerateFilename("Видео Проекта.MP4")
	assert.Regexp(t, regexp.MustCompile(`^\d{13}_[a-z0-9]{9}\.mp4$`), name)
}

func TestSaveAndList(t *testing.T) {
	svc := testService(t)

	name, err := svc.Save(BucketImage, "photo.jpg", 5, strings.NewReader("hello"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	names, err := svc.List(BucketImage)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)
}

func TestSave_RejectsOversizedDeclaredSize(t *testing.T) {
	svc := testService(t)

	_, err := svc.Save(BucketImage, "big.jpg", 2<<10, strings.NewReader("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// nothing may reach disk when the declared size is over the ceiling
	names, err := svc.List(BucketImage)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSave_RejectsOversizedStream(t *testing.T) {
	svc := testService(t)

	body := strings.Repeat("a", 2<<10)
	_, err := svc.Save(BucketImage, "lied.jpg", 10, strings.NewReader(body))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	names, err := svc.List(BucketImage)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSave_UnknownBucket(t *testing.T) {
	svc := testService(t)
	_, err := svc.Save("documents", "a.pdf", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnknownBucket)
}

func TestPublicURL_PercentEncodesFilename(t *testing.T) {
	svc := testService(t)
	got := svc.PublicURL(BucketVideo, "проект 1.mp4")
	assert.Equal(t, "https://cdn.test/storage/video/%D0%BF%D1%80%D0%BE%D0%B5%D0%BA%D1%82%201.mp4", got)
}

func TestRemove(t *testing.T) {
	svc := testService(t)
	name, err := svc.Save(BucketVideo, "clip.mp4", 4, strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(BucketVideo, name))
	// idempotent
	require.NoError(t, svc.Remove(BucketVideo, name))

	assert.Error(t, svc.Remove(BucketVideo, "../"+name))
	assert.Error(t, svc.Remove(BucketVideo, filepath.Join("x", name)))
}

func TestSweepOrphans(t *testing.T) {
	svc := testService(t)
	kept, err := svc.Save(BucketImage, "kept.jpg", 1, strings.NewReader("k"))
	require.NoError(t, err)
	orphan, err := svc.Save(BucketImage, "orphan.jpg", 1, strings.NewReader("o"))
	require.NoError(t, err)

	got := svc.SweepOrphans(BucketImage, map[string]bool{kept: true})
	require.Len(t, got, 1)
	assert.Equal(t, orphan, got[0])
}
