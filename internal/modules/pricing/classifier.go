// README: Location classification against the hub address tables.
package pricing

import "strings"

// ClassifyTrip decides which pricing class a pickup/dropoff pair falls in.
// Airports are checked before stations, pickup before dropoff, tables in
// declaration order; the first exact address match wins.
func (c Config) ClassifyTrip(pickup, dropoff string) TripClass {
	for i := range c.Airports {
		a := &c.Airports[i]
		if containsAddress(a.Addresses, pickup) {
			return TripClass{Kind: KindAirport, Airport: a, HubEndpoint: pickup, OtherEndpoint: dropoff}
		}
		if containsAddress(a.Addresses, dropoff) {
			return TripClass{Kind: KindAirport, Airport: a, HubEndpoint: dropoff, OtherEndpoint: pickup}
		}
	}
	for i := range c.Stations {
		st := &c.Stations[i]
		if containsAddress(st.Addresses, pickup) {
			return TripClass{Kind: KindTrainStation, Station: st, HubEndpoint: pickup, OtherEndpoint: dropoff}
		}
		if containsAddress(st.Addresses, dropoff) {
			return TripClass{Kind: KindTrainStation, Station: st, HubEndpoint: dropoff, OtherEndpoint: pickup}
		}
	}
	return TripClass{Kind: KindGeneric}
}

// IsTransportLocation reports whether an address looks like a transport hub.
// It is deliberately looser than ClassifyTrip: besides the address tables it
// matches a keyword list as a plain substring, so "Random Depot Rd" and
// anything containing "port" count. Callers use it only for booking-flow
// branching, never for rate selection, so the false positives are accepted.
func (c Config) IsTransportLocation(address string) bool {
	in := strings.ToLower(strings.TrimSpace(address))
	if in == "" {
		return false
	}
	for _, a := range c.Airports {
		if matchesKnownAddress(a.Addresses, in) {
			return true
		}
	}
	for _, st := range c.Stations {
		if matchesKnownAddress(st.Addresses, in) {
			return true
		}
	}
	for _, kw := range c.HubKeywords {
		if strings.Contains(in, kw) {
			return true
		}
	}
	return false
}

// containsAddress is the strict membership test used for rate selection.
func containsAddress(known []string, address string) bool {
	for _, k := range known {
		if k == address {
			return true
		}
	}
	return false
}

// matchesKnownAddress checks a lowercased input against known addresses as a
// substring in either direction.
func matchesKnownAddress(known []string, in string) bool {
	for _, k := range known {
		lk := strings.ToLower(k)
		if strings.Contains(lk, in) || strings.Contains(in, lk) {
			return true
		}
	}
	return false
}
