// Package mockdata holds canned Amadeus-shaped fixtures so the frontend can
// be developed without provider credentials.
package mockdata

import (
	"strings"
)

// MinKeywordLength is the shortest keyword Locations accepts.
const MinKeywordLength = 2

type Address struct {
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Location mirrors an Amadeus reference-data location.
type Location struct {
	Type     string  `json:"type"`
	SubType  string  `json:"subType"`
	Name     string  `json:"name"`
	IATACode string  `json:"iataCode"`
	Address  Address `json:"address"`
}

var locations = []Location{
	city("Brooklyn", "BKL", "Brooklyn", "United States"),
	city("Bronx", "BRX", "Bronx", "United States"),
	city("Brisbane", "BNE", "Brisbane", "Australia"),
	airport("Brisbane Airport", "BNE", "Brisbane", "Australia"),
	city("Broomfield", "BFD", "Broomfield", "United States"),
	city("Sydney", "SYD", "Sydney", "Australia"),
	airport("Sydney Kingsford Smith Airport", "SYD", "Sydney", "Australia"),
	city("New York", "NYC", "New York", "United States"),
	airport("John F. Kennedy International Airport", "JFK", "New York", "United States"),
	city("London", "LON", "London", "United Kingdom"),
	airport("Heathrow Airport", "LHR", "London", "United Kingdom"),
}

func city(name, iata, cityName, country string) Location {
	return Location{Type: "location", SubType: "CITY", Name: name, IATACode: iata, Address: Address{CityName: cityName, CountryName: country}}
}

func airport(name, iata, cityName, country string) Location {
	l := city(name, iata, cityName, country)
	l.SubType = "AIRPORT"
	return l
}

// Locations returns the fixtures whose name, IATA code, city or country
// contains keyword, case-insensitively. The caller enforces MinKeywordLength.
func Locations(keyword string) []Location {
	term := strings.ToLower(strings.TrimSpace(keyword))
	out := []Location{}
	for _, l := range locations {
		if containsFold(l.Name, term) || containsFold(l.IATACode, term) ||
			containsFold(l.Address.CityName, term) || containsFold(l.Address.CountryName, term) {
			out = append(out, l)
		}
	}
	return out
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

type Hotel struct {
	Name     string  `json:"name"`
	CityCode string  `json:"cityCode"`
	Address  Address `json:"address"`
	Rating   string  `json:"rating"`
}

type OfferPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type Offer struct {
	ID              string     `json:"id"`
	CheckInDate     string     `json:"checkInDate,omitempty"`
	CheckOutDate    string     `json:"checkOutDate,omitempty"`
	RoomDescription string     `json:"roomDescription"`
	Price           OfferPrice `json:"price"`
}

// HotelOffer mirrors one entry of an Amadeus hotel-offers response.
type HotelOffer struct {
	Hotel  Hotel   `json:"hotel"`
	Offers []Offer `json:"offers"`
}

type hotelFixture struct {
	name, rating, offerID, room, total, currency string
}

type cityFixture struct {
	code, cityName, countryCode string
	hotels                      []hotelFixture
}

var hotelsByCity = map[string]cityFixture{
	"nyc": {"NYC", "New York", "US", []hotelFixture{
		{"Grand Hotel Downtown", "4", "NYC1001", "Deluxe King Room", "299.00", "USD"},
		{"Park Avenue Suites", "5", "NYC1002", "Executive Suite", "459.00", "USD"},
	}},
	"lon": {"LON", "London", "GB", []hotelFixture{
		{"Riverside Luxury Hotel", "5", "LON2001", "Premium Room with Thames View", "279.00", "GBP"},
		{"Historic City Hotel", "4", "LON2002", "Standard Double Room", "189.00", "GBP"},
	}},
	"syd": {"SYD", "Sydney", "AU", []hotelFixture{
		{"Harbour View Hotel", "5", "SYD3001", "Deluxe Suite with Opera House View", "389.00", "AUD"},
		{"Bondi Beach Resort", "4", "SYD3002", "Oceanfront Room", "259.00", "AUD"},
	}},
	"par": {"PAR", "Paris", "FR", []hotelFixture{
		{"Eiffel View Hotel", "5", "PAR4001", "Luxury Suite with Eiffel Tower View", "459.00", "EUR"},
		{"Left Bank Boutique Hotel", "4", "PAR4002", "Classic Double Room", "219.00", "EUR"},
	}},
}

var defaultHotels = []hotelFixture{
	{"International Grand Hotel", "4", "DEF5001", "Standard Room", "199.00", "USD"},
	{"Downtown Plaza Hotel", "3", "DEF5002", "Budget Room", "129.00", "USD"},
}

// Hotels returns the offers for cityCode (NYC, LON, SYD or PAR, any case).
// Other codes get the default hotels labelled with the code as given; an
// empty code gets them labelled "---" in "Unknown City".
func Hotels(cityCode, checkIn, checkOut string) []HotelOffer {
	fx, ok := hotelsByCity[strings.ToLower(cityCode)]
	if !ok {
		fx = cityFixture{code: cityCode, cityName: cityCode, countryCode: "US", hotels: defaultHotels}
		if cityCode == "" {
			fx.code, fx.cityName = "---", "Unknown City"
		}
	}

	out := make([]HotelOffer, 0, len(fx.hotels))
	for _, h := range fx.hotels {
		out = append(out, HotelOffer{
			Hotel: Hotel{
				Name:     h.name,
				CityCode: fx.code,
				Address:  Address{CityName: fx.cityName, CountryCode: fx.countryCode},
				Rating:   h.rating,
			},
			Offers: []Offer{{
				ID:              h.offerID,
				CheckInDate:     checkIn,
				CheckOutDate:    checkOut,
				RoomDescription: h.room,
				Price:           OfferPrice{Total: h.total, Currency: h.currency},
			}},
		})
	}
	return out
}
