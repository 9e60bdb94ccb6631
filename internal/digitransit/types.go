package digitransit

import (
	"strings"
	"time"
)

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Candidate is one geocoding match.
type Candidate struct {
	Coordinates Coordinates
	Label       string
}

// Mode is the transport mode of a leg.
type Mode string

const (
	ModeWalk    Mode = "WALK"
	ModeBus     Mode = "BUS"
	ModeTram    Mode = "TRAM"
	ModeRail    Mode = "RAIL"
	ModeSubway  Mode = "SUBWAY"
	ModeFerry   Mode = "FERRY"
	ModeBicycle Mode = "BICYCLE"
)

// Normalize upper-cases and trims the mode as returned by the API.
func (m Mode) Normalize() Mode {
	return Mode(strings.ToUpper(strings.TrimSpace(string(m))))
}

// IsWalk reports whether the leg is on foot.
func (m Mode) IsWalk() bool {
	return m.Normalize() == ModeWalk
}

// Leg is one segment of an itinerary.
type Leg struct {
	Mode           Mode
	Duration       time.Duration
	From           string // stop name, empty when the leg does not start at a stop
	To             string
	RouteShortName string
}

// Itinerary is one suggested journey.
type Itinerary struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Legs      []Leg
}

// PlanQuery is the fixed input of a route request.
type PlanQuery struct {
	From Candidate
	To   Candidate
}

// geocoding wire format (GeoJSON FeatureCollection)

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Label string `json:"label"`
	} `json:"properties"`
}

// routing wire format (GraphQL)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type inputCoordinates struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type planResponse struct {
	Data *struct {
		Plan *struct {
			Itineraries []*wireItinerary `json:"itineraries"`
		} `json:"plan"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type wireItinerary struct {
	StartTime *int64     `json:"startTime"`
	EndTime   *int64     `json:"endTime"`
	Duration  *int64     `json:"duration"`
	Legs      []*wireLeg `json:"legs"`
}

type wirePlace struct {
	Name string `json:"name"`
	Stop *struct {
		Name string `json:"name"`
	} `json:"stop"`
}

type wireLeg struct {
	Mode     string   `json:"mode"`
	Duration *float64 `json:"duration"`
	Route    *struct {
		ShortName string `json:"shortName"`
	} `json:"route"`
	From wirePlace `json:"from"`
	To   wirePlace `json:"to"`
}

const planQueryDocument = `query Plan($from: InputCoordinates!, $to: InputCoordinates!, $numItineraries: Int) {
  plan(from: $from, to: $to, numItineraries: $numItineraries) {
    itineraries {
      startTime
      endTime
      duration
      legs {
        mode
        duration
        route { shortName }
        from { name stop { name } }
        to { name stop { name } }
      }
    }
  }
}`

func (w *wireItinerary) toItinerary() Itinerary {
	it := Itinerary{}
	if w.StartTime != nil {
		it.StartTime = time.UnixMilli(*w.StartTime)
	}
	if w.EndTime != nil {
		it.EndTime = time.UnixMilli(*w.EndTime)
	}
	if w.Duration != nil {
		it.Duration = time.Duration(*w.Duration) * time.Second
	}
	for _, leg := range w.Legs {
		if leg == nil {
			continue
		}
		it.Legs = append(it.Legs, leg.toLeg())
	}
	return it
}

func (w *wireLeg) toLeg() Leg {
	leg := Leg{Mode: Mode(w.Mode).Normalize()}
	if w.Duration != nil {
		leg.Duration = time.Duration(*w.Duration * float64(time.Second))
	}
	if w.Route != nil {
		leg.RouteShortName = w.Route.ShortName
	}
	if w.From.Stop != nil {
		leg.From = w.From.Stop.Name
	}
	if w.To.Stop != nil {
		leg.To = w.To.Stop.Name
	}
	return leg
}
