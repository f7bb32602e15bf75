// Package imagearray loads and saves the 2-D array of real samples the
// smoother operates on, backed by OpenCV's Mat via gocv. The core exchanges
// float32 samples, not pixels, so images are converted to single-precision
// float Mats on the way in and out.
package imagearray

import (
	"fmt"

	"gocv.io/x/gocv"

	"quantsmooth/internal/arrayguard"
	"quantsmooth/internal/smoother"
)

// Load reads an image file and returns it as a smoother.Image of float32
// samples. 8-bit formats (PNG, JPEG, ...) are read as grayscale and widened
// to float32 without rescaling; 32-bit float TIFFs round-trip exactly.
func Load(path string) (*smoother.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadAnyColor|gocv.IMReadAnyDepth)
	if mat.Empty() {
		return nil, fmt.Errorf("imagearray: failed to read %q", path)
	}
	defer mat.Close()

	gray := mat
	if mat.Channels() > 1 {
		gray = gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	}

	floatMat := gocv.NewMat()
	defer floatMat.Close()
	gray.ConvertTo(&floatMat, gocv.MatTypeCV32FC1)

	rows, cols := floatMat.Rows(), floatMat.Cols()
	img := &smoother.Image{W: cols, H: rows, Data: arrayguard.AlignedFloat32s(rows * cols)}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.Data[y*cols+x] = floatMat.GetFloatAt(y, x)
		}
	}
	return img, nil
}

// Save writes a smoother.Image out as a single-channel 32-bit float Mat via
// gocv.IMWrite, which picks the file format from the path's extension. Save
// does not check that the extension is a TIFF one; TIFF is the common
// container that carries float32 samples without lossy conversion to 8 bits.
func Save(path string, img *smoother.Image) error {
	if img == nil {
		return fmt.Errorf("imagearray: nil image")
	}
	mat := gocv.NewMatWithSize(img.H, img.W, gocv.MatTypeCV32FC1)
	defer mat.Close()

	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			mat.SetFloatAt(y, x, img.Data[y*img.W+x])
		}
	}

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("imagearray: failed to write %q", path)
	}
	return nil
}
