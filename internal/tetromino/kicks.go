package tetromino

// KickTable lists the candidate displacements to try, in order, when a
// rotation would otherwise collide. It is indexed per orientation
// transition: 2*orientation for clockwise, 2*orientation+1 for
// counter-clockwise. Substituting a standard kick table (SRS etc.) does
// not change the rotation control flow.
type KickTable [8][4]Offset

// NoKicks only ever tries the in-place rotation.
var NoKicks = KickTable{}

// Offsets returns the candidate displacements for rotating away from the
// given orientation in the given direction.
func (t KickTable) Offsets(from Orientation, cw bool) [4]Offset {
	direction := 0
	if !cw {
		direction = 1
	}
	return t[2*int(from)+direction]
}
