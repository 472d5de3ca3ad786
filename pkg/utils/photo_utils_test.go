package utils

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberPhotoRelPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("assets", "member_photos", "member_9876543210.jpg"),
		MemberPhotoRelPath(" 98765 432-10"))
}

func TestResizeImageFitsSquare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	out := ResizeImage(src, 200)
	assert.Equal(t, 200, out.Bounds().Dx())
	assert.Equal(t, 200, out.Bounds().Dy())
}

func TestBadgeOverlayKeepsDimensions(t *testing.T) {
	src := DefaultAvatar(200)

	pending := BadgeOverlay(src, 700)
	assert.Equal(t, src.Bounds(), pending.Bounds())

	paid := BadgeOverlay(src, 0)
	assert.Equal(t, src.Bounds(), paid.Bounds())
}

func TestSaveMemberPhotoWritesFile(t *testing.T) {
	baseDir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 300, 300))

	relPath, err := SaveMemberPhoto(src, "9876543210", baseDir)
	require.NoError(t, err)
	assert.Equal(t, MemberPhotoRelPath("9876543210"), relPath)

	loaded := LoadMemberPhotoWithBadge(&relPath, 0, baseDir)
	assert.Equal(t, 200, loaded.Bounds().Dx())
}

func TestLoadMemberPhotoFallsBackToAvatar(t *testing.T) {
	img := LoadMemberPhotoWithBadge(nil, 500, t.TempDir())
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}
