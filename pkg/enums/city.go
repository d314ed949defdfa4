package enums

import "strings"

// City enumerates the locations FixNest serves. Location pages are scoped to
// exactly one of these values.
type City string

const (
	CityMumbai    City = "mumbai"
	CityPune      City = "pune"
	CityDelhi     City = "delhi"
	CityBengaluru City = "bengaluru"
	CityHyderabad City = "hyderabad"
	CityChennai   City = "chennai"
)

var allCities = []City{
	CityMumbai,
	CityPune,
	CityDelhi,
	CityBengaluru,
	CityHyderabad,
	CityChennai,
}

// Cities returns every supported city in display order.
func Cities() []City {
	out := make([]City, len(allCities))
	copy(out, allCities)
	return out
}

func (c City) String() string {
	return string(c)
}

func (c City) IsValid() bool {
	for _, city := range allCities {
		if c == city {
			return true
		}
	}
	return false
}

// ParseCity normalizes and validates a city value from user input.
func ParseCity(value string) (City, bool) {
	city := City(strings.ToLower(strings.TrimSpace(value)))
	if city.IsValid() {
		return city, true
	}
	return "", false
}
