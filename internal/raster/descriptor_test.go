package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseDescriptor() Descriptor {
	return Descriptor{
		Width:      100,
		Height:     80,
		Transform:  [6]float64{600000, 10, 0, 7300000, 0, -10},
		Projection: "PROJCS[\"WGS 84 / UTM zone 22S\"]",
	}
}

func TestDescriptorEqual(t *testing.T) {
	a := baseDescriptor()
	b := baseDescriptor()
	assert.True(t, a.Equal(b))
}

func TestDescriptorEqualWithinTolerance(t *testing.T) {
	a := baseDescriptor()
	b := baseDescriptor()
	b.Transform[0] += 1e-9
	assert.True(t, a.Equal(b), "sub-tolerance transform jitter must not trigger reprojection")

	b.Transform[0] = a.Transform[0] + 1e-3
	assert.False(t, a.Equal(b))
}

func TestDescriptorNotEqual(t *testing.T) {
	a := baseDescriptor()

	b := baseDescriptor()
	b.Width = 99
	assert.False(t, a.Equal(b))

	c := baseDescriptor()
	c.Projection = "PROJCS[\"WGS 84 / UTM zone 23S\"]"
	assert.False(t, a.Equal(c))

	d := baseDescriptor()
	d.Transform[5] = -20
	assert.False(t, a.Equal(d))
}

func TestPixelSizeIsAbsolute(t *testing.T) {
	d := baseDescriptor()
	xRes, yRes := d.PixelSize()
	assert.Equal(t, 10.0, xRes)
	assert.Equal(t, 10.0, yRes)
}

func TestBounds(t *testing.T) {
	d := baseDescriptor()
	xMin, yMin, xMax, yMax := d.Bounds()
	assert.Equal(t, 600000.0, xMin)
	assert.Equal(t, 601000.0, xMax)
	assert.Equal(t, 7299200.0, yMin)
	assert.Equal(t, 7300000.0, yMax)
}
