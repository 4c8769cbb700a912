package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/tessera/pkg/shapes"
)

func TestAttributes(t *testing.T) {
	tests := []struct {
		layout shapes.Layout
		want   []Attribute
		stride int32
	}{
		{shapes.LayoutPN, []Attribute{
			{LocPosition, 3, 0},
			{LocNormal, 3, 12},
		}, 24},
		{shapes.LayoutPNT, []Attribute{
			{LocPosition, 3, 0},
			{LocNormal, 3, 12},
			{LocUV, 2, 24},
		}, 32},
		{shapes.LayoutPNTT, []Attribute{
			{LocPosition, 3, 0},
			{LocNormal, 3, 12},
			{LocUV, 2, 24},
			{LocTangent, 3, 32},
		}, 44},
	}

	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Attributes(tt.layout))
			assert.Equal(t, tt.stride, StrideBytes(tt.layout))
		})
	}
}

func TestAttributesFitStride(t *testing.T) {
	for _, layout := range []shapes.Layout{shapes.LayoutPN, shapes.LayoutPNT, shapes.LayoutPNTT} {
		attrs := Attributes(layout)
		last := attrs[len(attrs)-1]
		assert.Equal(t, int(StrideBytes(layout)), last.Offset+int(last.Size)*4, layout.String())
	}
}
