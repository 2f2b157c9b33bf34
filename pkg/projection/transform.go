package projection

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// MaxMercatorLat is the latitude limit of EPSG:3857.
const MaxMercatorLat = 85.05112878

func mercator(lng, lat float64) (x, y float64) {
	lat = math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, lat))
	p := project.Point(orb.Point{lng, lat}, project.WGS84.ToMercator)
	return p[0], p[1]
}

// robinsonTable holds the (X, Y) coefficients for every 5° of latitude
// from 0° to 90°.
var robinsonTable = [...][2]float64{
	{1.0000, 0.0000},
	{0.9986, 0.0620},
	{0.9954, 0.1240},
	{0.9900, 0.1860},
	{0.9822, 0.2480},
	{0.9730, 0.3100},
	{0.9600, 0.3720},
	{0.9427, 0.4340},
	{0.9216, 0.4958},
	{0.8962, 0.5571},
	{0.8679, 0.6176},
	{0.8350, 0.6769},
	{0.7986, 0.7346},
	{0.7597, 0.7903},
	{0.7186, 0.8435},
	{0.6732, 0.8936},
	{0.6213, 0.9394},
	{0.5722, 0.9761},
	{0.5322, 1.0000},
}

func robinson(lng, lat float64) (x, y float64) {
	abs := math.Min(math.Abs(lat), 90)
	i := int(abs / 5)
	if i >= len(robinsonTable)-1 {
		i = len(robinsonTable) - 2
	}
	f := (abs - float64(i)*5) / 5
	lo, hi := robinsonTable[i], robinsonTable[i+1]
	X := lo[0] + (hi[0]-lo[0])*f
	Y := lo[1] + (hi[1]-lo[1])*f

	x = 0.8487 * EarthRadius * X * lng * math.Pi / 180
	y = 1.3523 * EarthRadius * Y
	if lat < 0 {
		y = -y
	}
	return x, y
}

const (
	eeA1 = 1.340264
	eeA2 = -0.081106
	eeA3 = 0.000893
	eeA4 = 0.003796
)

func equalEarth(lng, lat float64) (x, y float64) {
	lambda := lng * math.Pi / 180
	phi := math.Max(-90, math.Min(90, lat)) * math.Pi / 180

	m := math.Sqrt(3) / 2
	theta := math.Asin(m * math.Sin(phi))
	t2 := theta * theta
	t6 := t2 * t2 * t2

	x = EarthRadius * 2 * math.Sqrt(3) * lambda * math.Cos(theta) /
		(3 * (9*eeA4*t6*t2 + 7*eeA3*t6 + 3*eeA2*t2 + eeA1))
	y = EarthRadius * theta * (eeA4*t6*t2 + eeA3*t6 + eeA2*t2 + eeA1)
	return x, y
}
