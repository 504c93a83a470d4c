// README: Classifier tests: rate-class selection and hub detection.
package pricing

import "testing"

const (
	jfkAddr         = "John F. Kennedy International Airport, Queens, NY 11430"
	newarkAddr      = "Newark Liberty International Airport, Newark, NJ 07114"
	westchesterAddr = "Westchester County Airport, 240 Airport Rd, White Plains, NY 10604"
	rhinecliffAddr  = "Rhinecliff-Kingston Station, 455 Rhinecliff Rd, Rhinecliff, NY 12574"
	homeAddr        = "12 Tinker St, Woodstock, NY 12498"
)

func TestClassifyTrip(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name        string
		pickup      string
		dropoff     string
		wantKind    Kind
		wantHubName string
		wantOther   string
	}{
		{
			name:        "airport pickup",
			pickup:      jfkAddr,
			dropoff:     homeAddr,
			wantKind:    KindAirport,
			wantHubName: "JFK",
			wantOther:   homeAddr,
		},
		{
			name:        "airport dropoff",
			pickup:      homeAddr,
			dropoff:     newarkAddr,
			wantKind:    KindAirport,
			wantHubName: "Newark",
			wantOther:   homeAddr,
		},
		{
			name:        "station pickup",
			pickup:      rhinecliffAddr,
			dropoff:     homeAddr,
			wantKind:    KindTrainStation,
			wantHubName: "Rhinecliff",
			wantOther:   homeAddr,
		},
		{
			name:        "airport beats station",
			pickup:      rhinecliffAddr,
			dropoff:     westchesterAddr,
			wantKind:    KindAirport,
			wantHubName: "Westchester",
			wantOther:   rhinecliffAddr,
		},
		{
			name:     "generic both ends",
			pickup:   homeAddr,
			dropoff:  "42 Pine St, Anytown",
			wantKind: KindGeneric,
		},
		{
			name:     "near miss is not a match",
			pickup:   "John F. Kennedy International Airport",
			dropoff:  homeAddr,
			wantKind: KindGeneric,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cfg.ClassifyTrip(tc.pickup, tc.dropoff)
			if got.Kind != tc.wantKind {
				t.Fatalf("kind = %v, want %v", got.Kind, tc.wantKind)
			}
			switch got.Kind {
			case KindAirport:
				if got.Airport.Name != tc.wantHubName {
					t.Errorf("airport = %s, want %s", got.Airport.Name, tc.wantHubName)
				}
			case KindTrainStation:
				if got.Station.Name != tc.wantHubName {
					t.Errorf("station = %s, want %s", got.Station.Name, tc.wantHubName)
				}
			}
			if tc.wantOther != "" && got.OtherEndpoint != tc.wantOther {
				t.Errorf("other endpoint = %q, want %q", got.OtherEndpoint, tc.wantOther)
			}
		})
	}
}

func TestClassifyTripPickupPrecedence(t *testing.T) {
	// When both endpoints are listed airports, the pickup decides the rate.
	cfg := DefaultConfig()
	got := cfg.ClassifyTrip(jfkAddr, newarkAddr)
	if got.Kind != KindAirport || got.Airport.Name != "JFK" {
		t.Fatalf("got %v/%v, want airport JFK", got.Kind, got.Airport)
	}
	if got.OtherEndpoint != newarkAddr {
		t.Errorf("other endpoint = %q, want newark address", got.OtherEndpoint)
	}
}

func TestIsTransportLocation(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		address string
		want    bool
	}{
		{"123 Main St, Anytown", false},
		{"Newark Liberty International Airport", true}, // partial table address
		{"Random Depot Rd", true},                      // keyword "depot"
		{"Portland Ave", true},                         // known quirk: contains "port"
		{"Grand Central Terminal, New York, NY", true},
		{"poughkeepsie station", true},
		{"", false},
		{"14 Maple Ln", false},
	}

	for _, tc := range cases {
		if got := cfg.IsTransportLocation(tc.address); got != tc.want {
			t.Errorf("IsTransportLocation(%q) = %v, want %v", tc.address, got, tc.want)
		}
	}
}
