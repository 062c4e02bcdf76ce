package coords

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/geom"
)

func TestXYEmbedsIntoXYPlaneAtZeroZ(t *testing.T) {
	v := XY.ToInternal(geom.Vec2{X: 3, Y: 4})
	require.Equal(t, geom.Vec3{X: 3, Y: 4, Z: 0}, v)

	p := XY.FromInternal(geom.Vec3{X: 3, Y: 4, Z: 9})
	require.Equal(t, geom.Vec2{X: 3, Y: 4}, p)
}

func TestXYZIsIdentity(t *testing.T) {
	v := geom.Vec3{X: 1, Y: 2, Z: 3}
	require.Equal(t, v, XYZ.ToInternal(v))
	require.Equal(t, v, XYZ.FromInternal(v))
}
