package vision

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ekisa-team/visionkit/predictor"
)

// Annotator draws a result onto a copy of the image it was produced from.
type Annotator interface {
	Annotate(img image.Image, res *predictor.Result) image.Image
}

var (
	// classColors is the palette used to paint detected objects, one color
	// per class index, wrapping around.
	classColors = []color.RGBA{
		{R: 255, G: 56, B: 56, A: 255},   // #FF3838
		{R: 255, G: 112, B: 31, A: 255},  // #FF701F
		{R: 255, G: 178, B: 29, A: 255},  // #FFB21D
		{R: 207, G: 210, B: 49, A: 255},  // #CFD231
		{R: 72, G: 249, B: 10, A: 255},   // #48F90A
		{R: 26, G: 147, B: 52, A: 255},   // #1A9334
		{R: 0, G: 212, B: 187, A: 255},   // #00D4BB
		{R: 0, G: 194, B: 255, A: 255},   // #00C2FF
		{R: 52, G: 69, B: 147, A: 255},   // #344593
		{R: 100, G: 115, B: 255, A: 255}, // #6473FF
		{R: 0, G: 24, B: 236, A: 255},    // #0018EC
		{R: 132, G: 56, B: 255, A: 255},  // #8438FF
		{R: 82, G: 0, B: 133, A: 255},    // #520085
		{R: 255, G: 149, B: 200, A: 255}, // #FF95C8
		{R: 255, G: 55, B: 199, A: 255},  // #FF37C7
		{R: 255, G: 157, B: 151, A: 255}, // #FF9D97
		{R: 44, G: 153, B: 168, A: 255},  // #2C99A8
		{R: 61, G: 219, B: 134, A: 255},  // #3DDB86
		{R: 203, G: 56, B: 255, A: 255},  // #CB38FF
		{R: 146, G: 204, B: 23, A: 255},  // #92CC17
	}

	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// skeleton pairs keypoint indices to draw limb lines between, COCO
	// 17-keypoint layout.
	skeleton = [...][2]int{
		{15, 13}, {13, 11}, {16, 14}, {14, 12}, {11, 12},
		{5, 11}, {6, 12}, {5, 6}, {5, 7}, {6, 8}, {7, 9}, {8, 10},
		{1, 2}, {0, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 5}, {4, 6},
	}
)

// DrawAnnotator is the default annotator: class-colored boxes with score
// labels, pose skeletons and oriented boxes drawn onto an RGBA copy.
type DrawAnnotator struct {
	LineThickness int
}

// NewDrawAnnotator returns an annotator with default settings.
func NewDrawAnnotator() *DrawAnnotator {
	return &DrawAnnotator{LineThickness: 2}
}

// Annotate draws every detection onto a copy of img and returns the copy.
func (a *DrawAnnotator) Annotate(img image.Image, res *predictor.Result) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for i, det := range res.Detections {
		clr := classColors[i%len(classColors)]

		if det.Oriented != nil {
			a.drawOriented(out, det.Oriented, clr)
		} else {
			a.drawRect(out, det.Box, clr)
		}

		if len(det.Keypoints) > 0 {
			a.drawKeypoints(out, det.Keypoints, clr)
		}

		a.drawLabel(out, det, res.Names, clr)
	}

	return out
}

// drawRect draws the outline of rect with the annotator's line thickness.
func (a *DrawAnnotator) drawRect(img *image.RGBA, rect image.Rectangle, clr color.RGBA) {
	t := a.LineThickness
	src := &image.Uniform{C: clr}

	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+t, rect.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-t, rect.Min.Y, rect.Max.X, rect.Max.Y), src, image.Point{}, draw.Src)
}

// drawOriented draws the four edges of a rotated box.
func (a *DrawAnnotator) drawOriented(img *image.RGBA, obb *predictor.OrientedBox, clr color.RGBA) {
	cos := math.Cos(obb.Angle)
	sin := math.Sin(obb.Angle)
	hw := obb.W / 2
	hh := obb.H / 2

	corners := [4]image.Point{}
	for i, c := range [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}} {
		x := obb.CX + c[0]*cos - c[1]*sin
		y := obb.CY + c[0]*sin + c[1]*cos
		corners[i] = image.Pt(int(math.Round(x)), int(math.Round(y)))
	}

	for i := range corners {
		drawLine(img, corners[i], corners[(i+1)%4], clr)
	}
}

// drawKeypoints draws limb lines and joint dots for one pose skeleton.
func (a *DrawAnnotator) drawKeypoints(img *image.RGBA, kps []predictor.Keypoint, clr color.RGBA) {
	for _, pair := range skeleton {
		if pair[0] >= len(kps) || pair[1] >= len(kps) {
			continue
		}

		p1 := image.Pt(int(kps[pair[0]].X), int(kps[pair[0]].Y))
		p2 := image.Pt(int(kps[pair[1]].X), int(kps[pair[1]].Y))
		drawLine(img, p1, p2, clr)
	}

	src := &image.Uniform{C: white}
	for _, kp := range kps {
		x, y := int(kp.X), int(kp.Y)
		draw.Draw(img, image.Rect(x-2, y-2, x+2, y+2), src, image.Point{}, draw.Src)
	}
}

// drawLabel paints a filled label box above the detection with the class
// name and score.
func (a *DrawAnnotator) drawLabel(img *image.RGBA, det predictor.Detection, names map[int]string, clr color.RGBA) {
	name, ok := names[det.Class]
	if !ok {
		name = fmt.Sprintf("class %d", det.Class)
	}

	text := fmt.Sprintf("%s %.2f", name, det.Score)
	face := basicfont.Face7x13

	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	anchor := det.Box.Min
	if det.Oriented != nil {
		anchor = image.Pt(
			int(det.Oriented.CX-det.Oriented.W/2),
			int(det.Oriented.CY-det.Oriented.H/2),
		)
	}

	top := anchor.Y - height - 4
	if top < img.Bounds().Min.Y {
		top = anchor.Y
	}

	bg := image.Rect(anchor.X, top, anchor.X+width+8, top+height+4)
	draw.Draw(img, bg, &image.Uniform{C: clr}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: white},
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(anchor.X + 4),
			Y: fixed.I(top + height),
		},
	}
	drawer.DrawString(text)
}

// drawLine draws a one pixel line between two points.
func drawLine(img *image.RGBA, p1, p2 image.Point, clr color.RGBA) {
	dx := abs(p2.X - p1.X)
	dy := -abs(p2.Y - p1.Y)

	sx := -1
	if p1.X < p2.X {
		sx = 1
	}

	sy := -1
	if p1.Y < p2.Y {
		sy = 1
	}

	err := dx + dy
	x, y := p1.X, p1.Y

	for {
		img.SetRGBA(x, y, clr)
		if x == p2.X && y == p2.Y {
			return
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
