package booking

// Price is a nightly rate. Original is above Current when the hotel shows a
// discount, otherwise equal.
type Price struct {
	Current  float64 `json:"current"`
	Original float64 `json:"original"`
	Currency string  `json:"currency"`
}

// Links are partner booking URLs carrying our affiliate ids.
type Links struct {
	Booking string `json:"booking,omitempty"`
	Expedia string `json:"expedia,omitempty"`
}

// Hotel is one search result.
type Hotel struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Address          string   `json:"address"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"reviewCount"`
	Price            Price    `json:"price"`
	Images           []string `json:"images"`
	Amenities        []string `json:"amenities"`
	FreeCancellation bool     `json:"freeCancellation"`
	Distance         string   `json:"distance"`
	Links            *Links   `json:"links,omitempty"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RoomType struct {
	Name  string `json:"name"`
	Beds  string `json:"beds"`
	Size  string `json:"size"`
	Price int    `json:"price"`
}

type Policies struct {
	CheckIn            string `json:"checkIn"`
	CheckOut           string `json:"checkOut"`
	FreeCancellation   bool   `json:"freeCancellation"`
	CancellationPolicy string `json:"cancellationPolicy"`
	ChildrenPolicy     string `json:"childrenPolicy"`
	PetPolicy          string `json:"petPolicy"`
}

type Attraction struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// HotelDetail is the full record behind a search result.
type HotelDetail struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Address           Address      `json:"address"`
	Coordinates       Coordinates  `json:"coordinates"`
	Rating            float64      `json:"rating"`
	ReviewCount       int          `json:"reviewCount"`
	StarRating        int          `json:"starRating"`
	Images            []string     `json:"images"`
	Amenities         []string     `json:"amenities"`
	RoomTypes         []RoomType   `json:"roomTypes"`
	Policies          Policies     `json:"policies"`
	NearbyAttractions []Attraction `json:"nearbyAttractions"`
}

type Reviewer struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	TripType string `json:"tripType"`
}

// Review is a guest review. Pros and Cons are often absent.
type Review struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Rating          int            `json:"rating"`
	Date            string         `json:"date"`
	Reviewer        Reviewer       `json:"reviewer"`
	StayDuration    string         `json:"stayDuration"`
	Room            string         `json:"room"`
	CategoryRatings map[string]int `json:"categoryRatings"`
	Text            string         `json:"text"`
	Pros            string         `json:"pros,omitempty"`
	Cons            string         `json:"cons,omitempty"`
}

// ReviewPage is one page of a hotel's reviews.
type ReviewPage struct {
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int      `json:"total"`
	Reviews []Review `json:"reviews"`
}
