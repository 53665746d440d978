package mockdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guy32807/travel-recommentation/internal/mockdata"
)

func TestLocations(t *testing.T) {
	tests := []struct {
		keyword string
		want    []string
	}{
		{"br", []string{"Brooklyn", "Bronx", "Brisbane", "Brisbane Airport", "Broomfield"}},
		{"SYD", []string{"Sydney", "Sydney Kingsford Smith Airport"}},
		{"jfk", []string{"John F. Kennedy International Airport"}},
		{"kingdom", []string{"London", "Heathrow Airport"}},
		{"new york", []string{"New York", "John F. Kennedy International Airport"}},
		{"zz", nil},
	}
	for _, tc := range tests {
		t.Run(tc.keyword, func(t *testing.T) {
			got := mockdata.Locations(tc.keyword)

			require.NotNil(t, got)
			names := make([]string, 0, len(got))
			for _, l := range got {
				names = append(names, l.Name)
			}
			if tc.want == nil {
				assert.Empty(t, names)
				return
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestLocations_AirportShape(t *testing.T) {
	got := mockdata.Locations("heathrow")

	require.Len(t, got, 1)
	assert.Equal(t, mockdata.Location{
		Type:     "location",
		SubType:  "AIRPORT",
		Name:     "Heathrow Airport",
		IATACode: "LHR",
		Address:  mockdata.Address{CityName: "London", CountryName: "United Kingdom"},
	}, got[0])
}

func TestHotels_KnownCity(t *testing.T) {
	got := mockdata.Hotels("lon", "2026-06-01", "2026-06-03")

	require.Len(t, got, 2)
	assert.Equal(t, "Riverside Luxury Hotel", got[0].Hotel.Name)
	assert.Equal(t, "LON", got[0].Hotel.CityCode)
	assert.Equal(t, "London", got[0].Hotel.Address.CityName)
	assert.Equal(t, "GB", got[0].Hotel.Address.CountryCode)
	require.Len(t, got[0].Offers, 1)
	assert.Equal(t, mockdata.Offer{
		ID:              "LON2001",
		CheckInDate:     "2026-06-01",
		CheckOutDate:    "2026-06-03",
		RoomDescription: "Premium Room with Thames View",
		Price:           mockdata.OfferPrice{Total: "279.00", Currency: "GBP"},
	}, got[0].Offers[0])
	assert.Equal(t, "LON2002", got[1].Offers[0].ID)
}

func TestHotels_EveryFixtureCity(t *testing.T) {
	for code, first := range map[string]string{"NYC": "NYC1001", "SYD": "SYD3001", "PAR": "PAR4001"} {
		got := mockdata.Hotels(code, "", "")
		require.Len(t, got, 2, code)
		assert.Equal(t, first, got[0].Offers[0].ID, code)
		assert.Equal(t, code, got[0].Hotel.CityCode)
	}
}

func TestHotels_UnknownCityRelabelsDefaults(t *testing.T) {
	got := mockdata.Hotels("Rome", "", "")

	require.Len(t, got, 2)
	assert.Equal(t, "International Grand Hotel", got[0].Hotel.Name)
	assert.Equal(t, "Rome", got[0].Hotel.CityCode)
	assert.Equal(t, "Rome", got[0].Hotel.Address.CityName)
	assert.Equal(t, "DEF5002", got[1].Offers[0].ID)
	assert.Equal(t, "129.00", got[1].Offers[0].Price.Total)
}

func TestHotels_NoCityCode(t *testing.T) {
	got := mockdata.Hotels("", "", "")

	require.Len(t, got, 2)
	assert.Equal(t, "---", got[0].Hotel.CityCode)
	assert.Equal(t, "Unknown City", got[0].Hotel.Address.CityName)
}
