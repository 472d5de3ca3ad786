package utils

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

const (
	photoSize      = 200
	photosDirName  = "member_photos"
	assetsDirName  = "assets"
	jpegQuality    = 90
)

// MemberPhotosDir returns the photo directory under baseDir, creating it
// if needed.
func MemberPhotosDir(baseDir string) (string, error) {
	dir := filepath.Join(baseDir, assetsDirName, photosDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create photos directory: %w", err)
	}
	return dir, nil
}

// MemberPhotoRelPath is the DB-stored relative path for a member's photo.
func MemberPhotoRelPath(phone string) string {
	return filepath.Join(assetsDirName, photosDirName, fmt.Sprintf("member_%s.jpg", NormalizePhone(phone)))
}

// ResizeImage fits an image into a square of the given size, centered on
// a dark gray background, preserving aspect ratio.
func ResizeImage(src image.Image, size int) image.Image {
	dc := gg.NewContext(size, size)
	dc.SetRGB255(45, 45, 45)
	dc.Clear()

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	ratio := float64(size) / float64(srcW)
	if r := float64(size) / float64(srcH); r < ratio {
		ratio = r
	}
	newW := int(float64(srcW) * ratio)
	newH := int(float64(srcH) * ratio)

	scaled := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Over, nil)

	dc.DrawImage(scaled, (size-newW)/2, (size-newH)/2)
	return dc.Image()
}

// BadgeOverlay stamps the payment status banner across the bottom of a
// member photo. A pending balance darkens the photo and shows a red
// "FEE PENDING" banner; a clear balance keeps the photo bright with a
// green "PAID" banner.
func BadgeOverlay(src image.Image, pendingAmount float64) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	dc := gg.NewContext(w, h)
	dc.DrawImage(src, 0, 0)

	badgeText := "PAID"
	if pendingAmount > 0 {
		dc.SetRGBA255(0, 0, 0, 120)
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		dc.Fill()
		badgeText = "FEE PENDING"
	}

	badgeHeight := float64(h) / 5
	if badgeHeight < 36 {
		badgeHeight = 36
	}
	badgeX := 8.0
	badgeY := float64(h) - badgeHeight - 8
	badgeWidth := float64(w) - 16
	radius := badgeHeight / 3

	if pendingAmount > 0 {
		dc.SetRGBA255(231, 76, 60, 240)
	} else {
		dc.SetRGBA255(46, 204, 113, 240)
	}
	dc.DrawRoundedRectangle(badgeX, badgeY, badgeWidth, badgeHeight, radius)
	dc.FillPreserve()
	dc.SetRGBA255(255, 255, 255, 255)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetRGBA255(255, 255, 255, 255)
	dc.DrawStringAnchored(badgeText, badgeX+badgeWidth/2, badgeY+badgeHeight/2, 0.5, 0.5)

	if pendingAmount > 0 {
		warnSize := badgeHeight - 12
		drawWarningTriangle(dc, badgeX+10, badgeY+6, warnSize)
		drawWarningTriangle(dc, badgeX+badgeWidth-warnSize-10, badgeY+6, warnSize)
	}

	return dc.Image()
}

func drawWarningTriangle(dc *gg.Context, x, y, size float64) {
	dc.MoveTo(x+size/2, y)
	dc.LineTo(x, y+size)
	dc.LineTo(x+size, y+size)
	dc.ClosePath()
	dc.SetRGBA255(241, 196, 15, 255)
	dc.FillPreserve()
	dc.SetRGBA255(243, 156, 18, 255)
	dc.SetLineWidth(1)
	dc.Stroke()

	// Exclamation mark
	dc.SetRGBA255(0, 0, 0, 255)
	dc.SetLineWidth(2)
	dc.DrawLine(x+size/2, y+size/4, x+size/2, y+size*3/4-4)
	dc.Stroke()
	dc.DrawCircle(x+size/2, y+size*3/4, 2)
	dc.Fill()
}

// MiniBadgeOverlay stamps a small status dot in the top-right corner of
// a thumbnail: red with an exclamation mark when a fee is pending, green
// with a checkmark when paid up.
func MiniBadgeOverlay(src image.Image, pendingAmount float64) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	dc := gg.NewContext(w, h)
	dc.DrawImage(src, 0, 0)

	badgeSize := float64(w) / 3
	if badgeSize < 12 {
		badgeSize = 12
	}
	cx := float64(w) - badgeSize/2 - 2
	cy := badgeSize/2 + 2

	if pendingAmount > 0 {
		dc.SetRGBA255(231, 76, 60, 255)
	} else {
		dc.SetRGBA255(46, 204, 113, 255)
	}
	dc.DrawCircle(cx, cy, badgeSize/2)
	dc.FillPreserve()
	dc.SetRGBA255(255, 255, 255, 255)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetRGBA255(255, 255, 255, 255)
	dc.SetLineWidth(2)
	if pendingAmount > 0 {
		dc.DrawLine(cx, cy-badgeSize/4, cx, cy+badgeSize/8)
		dc.Stroke()
		dc.DrawCircle(cx, cy+badgeSize/4, 1.5)
		dc.Fill()
	} else {
		dc.DrawLine(cx-badgeSize/4, cy, cx-badgeSize/10, cy+badgeSize/6)
		dc.DrawLine(cx-badgeSize/10, cy+badgeSize/6, cx+badgeSize/4, cy-badgeSize/6)
		dc.Stroke()
	}

	return dc.Image()
}

// DefaultAvatar renders the gray placeholder shown when a member has no
// photo on file.
func DefaultAvatar(size int) image.Image {
	dc := gg.NewContext(size, size)
	dc.SetRGB255(60, 60, 60)
	dc.Clear()

	cx, cy := float64(size)/2, float64(size)/2
	radius := float64(size)/2 - 10

	dc.SetRGB255(80, 80, 80)
	dc.DrawCircle(cx, cy, radius)
	dc.FillPreserve()
	dc.SetRGB255(100, 100, 100)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetRGB255(150, 150, 150)
	headRadius := radius / 3
	dc.DrawCircle(cx, cy-radius/2, headRadius)
	dc.Fill()
	bodyTop := cy - radius/2 + headRadius + 5
	bodyRadius := radius / 2
	dc.DrawEllipse(cx, bodyTop+bodyRadius, bodyRadius, bodyRadius)
	dc.Fill()

	return dc.Image()
}

// SaveMemberPhoto resizes and stores a member's photo under baseDir,
// returning the relative path for database storage.
func SaveMemberPhoto(src image.Image, phone, baseDir string) (string, error) {
	if _, err := MemberPhotosDir(baseDir); err != nil {
		return "", err
	}

	resized := ResizeImage(src, photoSize)
	relPath := MemberPhotoRelPath(phone)
	fullPath := filepath.Join(baseDir, relPath)

	if err := gg.SaveJPG(fullPath, resized, jpegQuality); err != nil {
		return "", fmt.Errorf("failed to save member photo: %w", err)
	}
	return relPath, nil
}

// LoadMemberPhotoWithBadge loads a member's stored photo, falling back
// to the default avatar, and applies the payment status banner.
func LoadMemberPhotoWithBadge(photoPath *string, pendingAmount float64, baseDir string) image.Image {
	var img image.Image
	if photoPath != nil && *photoPath != "" {
		loaded, err := gg.LoadImage(filepath.Join(baseDir, *photoPath))
		if err == nil {
			img = ResizeImage(loaded, photoSize)
		}
	}
	if img == nil {
		img = DefaultAvatar(photoSize)
	}
	return BadgeOverlay(img, pendingAmount)
}
