package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/orbitrig/rig"
)

var (
	groundColor  = color.RGBA{0x88, 0x88, 0x88, 0xff}
	subjectColor = color.RGBA{0xad, 0xd8, 0xe6, 0xff}
	centerColor  = color.RGBA{0xff, 0xb3, 0xba, 0xff}
)

// ground slab: 10x10, top face at y=0.25
const (
	groundHalf = 5
	groundTop  = 0.25
	subjectTop = 0.65
)

type projector struct {
	viewProj mgl32.Mat4
	w, h     float32
}

func newProjector(camera rig.Transform, w, h int) projector {
	eye := camera.Translation
	view := mgl32.LookAtV(eye, eye.Add(camera.Forward()), camera.Up())
	proj := mgl32.Perspective(mgl32.DegToRad(45), float32(w)/float32(h), 0.1, 1000)
	return projector{viewProj: proj.Mul4(view), w: float32(w), h: float32(h)}
}

// project maps a world point to screen pixels. ok is false for points behind the camera.
func (p projector) project(v mgl32.Vec3) (x, y float32, ok bool) {
	clip := p.viewProj.Mul4x1(v.Vec4(1))
	if clip.W() <= 0.01 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return (ndc.X() + 1) / 2 * p.w, (1 - ndc.Y()) / 2 * p.h, true
}

func (p projector) line(dst *ebiten.Image, a, b mgl32.Vec3, width float32, clr color.Color) {
	x0, y0, ok0 := p.project(a)
	x1, y1, ok1 := p.project(b)
	if ok0 && ok1 {
		vector.StrokeLine(dst, x0, y0, x1, y1, width, clr, true)
	}
}

// drawScene draws the ground outline, the subject as a vertical stroke and a cross
// at the orbit center.
func drawScene(dst *ebiten.Image, camera rig.Transform, subject mgl32.Vec3, center mgl32.Vec3) {
	b := dst.Bounds()
	p := newProjector(camera, b.Dx(), b.Dy())

	corners := []mgl32.Vec3{
		{-groundHalf, groundTop, -groundHalf},
		{groundHalf, groundTop, -groundHalf},
		{groundHalf, groundTop, groundHalf},
		{-groundHalf, groundTop, groundHalf},
	}
	for i := range corners {
		p.line(dst, corners[i], corners[(i+1)%len(corners)], 2, groundColor)
	}
	for i := -groundHalf + 1; i < groundHalf; i++ {
		f := float32(i)
		p.line(dst, mgl32.Vec3{f, groundTop, -groundHalf}, mgl32.Vec3{f, groundTop, groundHalf}, 1, groundColor)
		p.line(dst, mgl32.Vec3{-groundHalf, groundTop, f}, mgl32.Vec3{groundHalf, groundTop, f}, 1, groundColor)
	}

	up := mgl32.Vec3{0, subjectTop, 0}
	p.line(dst, subject.Sub(up), subject.Add(up), 6, subjectColor)

	const arm = 0.3
	p.line(dst, center.Sub(mgl32.Vec3{arm, 0, 0}), center.Add(mgl32.Vec3{arm, 0, 0}), 1, centerColor)
	p.line(dst, center.Sub(mgl32.Vec3{0, 0, arm}), center.Add(mgl32.Vec3{0, 0, arm}), 1, centerColor)
}
