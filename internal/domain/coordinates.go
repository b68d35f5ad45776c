package domain

// Immutable WGS84 coordinate in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return coordinates as [lng, lat] for external API compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

// Driver's current location. It acts as the virtual origin of a tour and is
// never part of a DistanceMatrix.
type UserPosition = Coordinate
