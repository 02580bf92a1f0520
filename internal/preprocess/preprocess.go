// Package preprocess turns uploaded image bytes into the flat grayscale
// tensor the classifier expects.
package preprocess

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

type Options struct {
	// Size is the width and height of the square model input.
	Size int
	// Invert maps v to 1-v after scaling, for models trained on white
	// strokes over a black background.
	Invert bool
}

// FromBytes decodes data and returns a row-major tensor of Size*Size values
// in [0,1].
func FromBytes(data []byte, opts Options) ([]float32, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return FromImage(img, opts), nil
}

// Decode reads any registered image format and applies EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	return img, nil
}

func FromImage(img image.Image, opts Options) []float32 {
	gray := Grayscale(img)
	resized := resize.Resize(uint(opts.Size), uint(opts.Size), gray, resize.Bicubic)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	tensor := make([]float32, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := color.GrayModel.Convert(resized.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			v := float32(px.Y) / 255.0
			if opts.Invert {
				v = 1 - v
			}
			tensor[y*width+x] = v
		}
	}

	return tensor
}

// Grayscale converts img to a single 8-bit channel using luma weights.
func Grayscale(img image.Image) *image.Gray {
	luma := imaging.Grayscale(img)
	bounds := luma.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), luma, bounds.Min, draw.Src)
	return gray
}
