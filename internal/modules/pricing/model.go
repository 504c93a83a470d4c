// README: Pricing configuration: hub address tables and rate tables.
package pricing

// AirportRate couples a known airport's address variants with its flat base
// fee and per-mile multiplier applied to the home-base distance.
type AirportRate struct {
	Name      string
	Base      float64
	PerMile   float64
	Addresses []string
}

// Station is a known train station and its address variants. Station trips
// are priced per mile with no base fee.
type Station struct {
	Name      string
	Addresses []string
}

// Config carries every table the classifier and fare rules read. It is built
// once at startup and passed by value; nothing mutates it after construction.
type Config struct {
	// Airports and Stations are slices, not maps: matching walks them in
	// declaration order and the first hit wins.
	Airports []AirportRate
	Stations []Station

	// HubKeywords feed the permissive IsTransportLocation predicate only,
	// never rate selection.
	HubKeywords []string

	RoundTripPerMile  float64
	StationPerMile    float64
	ShortTripPerMile  float64
	LongTripPerMile   float64
	ShortTripMaxMiles float64
}

// DefaultConfig returns the production tables.
func DefaultConfig() Config {
	return Config{
		Airports: []AirportRate{
			{
				Name:    "JFK",
				Base:    185,
				PerMile: 1.5,
				Addresses: []string{
					"John F. Kennedy International Airport, Queens, NY 11430",
					"JFK Airport, Queens, NY 11430",
				},
			},
			{
				Name:    "Newark",
				Base:    165,
				PerMile: 1.5,
				Addresses: []string{
					"Newark Liberty International Airport, 3 Brewster Rd, Newark, NJ 07114",
					"Newark Liberty International Airport, Newark, NJ 07114",
				},
			},
			{
				Name:    "Albany",
				Base:    100,
				PerMile: 1.5,
				Addresses: []string{
					"Albany International Airport, 737 Albany Shaker Rd, Albany, NY 12211",
					"Albany International Airport, Albany, NY 12211",
				},
			},
			{
				Name:    "Stewart",
				Base:    100,
				PerMile: 1.5,
				Addresses: []string{
					"New York Stewart International Airport, 1180 1st St, New Windsor, NY 12553",
					"Stewart International Airport, New Windsor, NY 12553",
				},
			},
			{
				Name:    "Westchester",
				Base:    140,
				PerMile: 1.5,
				Addresses: []string{
					"Westchester County Airport, 240 Airport Rd, White Plains, NY 10604",
					"Westchester County Airport, White Plains, NY 10604",
				},
			},
			{
				Name:    "Laguardia",
				Base:    165,
				PerMile: 1.5,
				Addresses: []string{
					"LaGuardia Airport, Queens, NY 11371",
					"LaGuardia Airport, East Elmhurst, NY 11371",
				},
			},
		},
		Stations: []Station{
			{
				Name: "Rhinecliff",
				Addresses: []string{
					"Rhinecliff-Kingston Station, 455 Rhinecliff Rd, Rhinecliff, NY 12574",
					"Rhinecliff Amtrak Station, Rhinecliff, NY",
				},
			},
			{
				Name: "Poughkeepsie",
				Addresses: []string{
					"Poughkeepsie Station, 41 Main St, Poughkeepsie, NY 12601",
					"Poughkeepsie Metro-North Station, Poughkeepsie, NY",
				},
			},
		},
		HubKeywords: []string{
			"airport",
			"train station",
			"bus station",
			"railway",
			"depot",
			"terminal",
			"port",
			"transit",
			"metro",
			"subway",
			"station",
			"bus terminal",
			"transportation hub",
			"transit center",
		},
		RoundTripPerMile:  2.3,
		StationPerMile:    1.75,
		ShortTripPerMile:  1.8,
		LongTripPerMile:   2.3,
		ShortTripMaxMiles: 40,
	}
}

// Kind is the pricing class a trip resolves to.
type Kind int

const (
	KindGeneric Kind = iota
	KindAirport
	KindTrainStation
)

func (k Kind) String() string {
	switch k {
	case KindAirport:
		return "airport"
	case KindTrainStation:
		return "train_station"
	default:
		return "generic"
	}
}

// TripClass is the classification of a pickup/dropoff pair for rate selection.
// For airport and station trips, HubEndpoint is the endpoint that matched the
// table and OtherEndpoint is the one that did not.
type TripClass struct {
	Kind          Kind
	Airport       *AirportRate
	Station       *Station
	HubEndpoint   string
	OtherEndpoint string
}
