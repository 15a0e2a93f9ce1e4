package util

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	maxPhotoWidth   = 1200
	maxPhotoHeight  = 800
	thumbnailWidth  = 300
	thumbnailHeight = 200
	watermarkText   = "© Seangkatan"
)

// ProcessPhoto resizes the source image to fit the display bounds,
// stamps the watermark and writes it to destPath. Returns the final
// dimensions of the processed image.
func ProcessPhoto(srcPath, destPath string) (width, height int, err error) {
	src, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, err
	}

	resized := imaging.Fit(src, maxPhotoWidth, maxPhotoHeight, imaging.Lanczos)
	stamped := stampWatermark(resized)

	if err := imaging.Save(stamped, destPath, imaging.JPEGQuality(85)); err != nil {
		return 0, 0, err
	}

	bounds := stamped.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// MakeThumbnail writes a cover-cropped thumbnail of srcPath to destPath.
func MakeThumbnail(srcPath, destPath string) error {
	src, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	thumb := imaging.Fill(src, thumbnailWidth, thumbnailHeight, imaging.Center, imaging.Lanczos)
	return imaging.Save(thumb, destPath, imaging.JPEGQuality(80))
}

// IsImageFile reports whether the filename has an image extension we process.
func IsImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

func stampWatermark(img image.Image) image.Image {
	canvas := imaging.Clone(img)
	bounds := canvas.Bounds()

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, watermarkText).Ceil()

	// bottom-right corner with a small margin
	x := bounds.Dx() - textWidth - 12
	y := bounds.Dy() - 12
	if x < 0 {
		x = 0
	}

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.NRGBA{255, 255, 255, 180}),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(watermarkText)

	return canvas
}
