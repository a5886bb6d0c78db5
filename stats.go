package chainmap

// Stats is a point-in-time snapshot of the table shape. The rebuild
// policy keeps LoadFactor within [0.25, 1.0] whenever Capacity is above
// the minimum.
type Stats struct {
	Size       int
	Capacity   int
	LoadFactor float64
}
