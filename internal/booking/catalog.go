// Package booking simulates the Booking.com hotel API. Results are generated
// rather than fetched, but they are stable: the same inputs always produce
// the same hotels, details and reviews.
package booking

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

const (
	// ResultsPerSearch is how many hotels a search generates before filtering.
	ResultsPerSearch = 15
	// ReviewsPerHotel is the size of every hotel's review history.
	ReviewsPerHotel = 50
)

var (
	hotelTypes = []string{"Hotel", "Resort", "Apartment", "Villa", "Boutique Hotel", "Hostel"}

	searchAmenities = []string{"Free WiFi", "Pool", "Spa", "Fitness Center", "Restaurant", "Room Service", "Airport Shuttle", "Parking"}

	detailAmenities = []string{
		"Free WiFi", "Swimming Pool", "Spa", "Fitness Center", "Restaurant",
		"Room Service", "Airport Shuttle", "Parking", "Air Conditioning",
		"Bar", "Breakfast Available", "Business Center", "Concierge",
		"Pet Friendly", "24-Hour Front Desk", "Non-smoking Rooms",
	}

	roomTypes = []RoomType{
		{Name: "Standard Double", Beds: "1 Queen Bed", Size: "25m²", Price: 120},
		{Name: "Deluxe Double", Beds: "1 King Bed", Size: "30m²", Price: 150},
		{Name: "Twin Room", Beds: "2 Single Beds", Size: "28m²", Price: 130},
		{Name: "Family Suite", Beds: "1 King Bed & 2 Single Beds", Size: "40m²", Price: 200},
		{Name: "Executive Suite", Beds: "1 King Bed", Size: "45m²", Price: 250},
	}

	reviewTitles = []string{
		"Great stay!", "Wonderful experience", "Excellent service",
		"Will come back", "Loved this hotel", "Perfect location",
		"Disappointing", "Not as advertised", "Good value for money",
		"Average stay", "Very clean", "Friendly staff",
	}

	reviewCategories = []string{"Cleanliness", "Comfort", "Location", "Facilities", "Staff", "Value for money"}

	nonSlug    = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	hotelIDRe  = regexp.MustCompile(`^([^\s/-]+(?:-[^\s/-]+)*)-([0-9]+)$`)
)

// Options configures a Catalog.
type Options struct {
	// BookingAffiliateID and ExpediaAffiliateID enable the matching partner
	// link on each search result. Empty disables it.
	BookingAffiliateID string
	ExpediaAffiliateID string
	// Now dates generated reviews. Defaults to time.Now.
	Now func() time.Time
}

// Catalog is the simulated hotel inventory.
type Catalog struct {
	bookingAID string
	expediaAID string
	now        func() time.Time
}

// NewCatalog returns a Catalog configured by opts.
func NewCatalog(opts Options) *Catalog {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Catalog{bookingAID: opts.BookingAffiliateID, expediaAID: opts.ExpediaAffiliateID, now: now}
}

// SearchParams are the hotel search inputs. Destination, CheckIn and
// CheckOut are required by the HTTP layer; the filters are optional and
// combine with AND.
type SearchParams struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Adults      int
	Rooms       int
	MinRating   float64
	MaxPrice    float64
	Amenities   []string
}

// Search returns up to ResultsPerSearch hotels in p.Destination.
func (c *Catalog) Search(_ context.Context, p SearchParams) []Hotel {
	destination := strings.TrimSpace(p.Destination)
	slug := slugify(destination)
	rng := seeded("search", slug)

	hotels := make([]Hotel, 0, ResultsPerSearch)
	for i := range ResultsPerSearch {
		h := generateHotel(rng, destination, slug, i+1)
		if !matches(h, p) {
			continue
		}
		h.Links = c.links(h.ID, p.CheckIn, p.CheckOut)
		hotels = append(hotels, h)
	}
	return hotels
}

// Hotel returns the detail record for hotelID, which must have the
// "<destination-slug>-<n>" shape produced by Search.
func (c *Catalog) Hotel(_ context.Context, hotelID string) (HotelDetail, error) {
	city, ok := cityFromID(hotelID)
	if !ok {
		return HotelDetail{}, fmt.Errorf("booking.Catalog.Hotel: %w", domain.ErrNotFound)
	}
	rng := seeded("detail", hotelID)

	amenities := slices.Clone(detailAmenities)
	rng.Shuffle(len(amenities), func(i, j int) { amenities[i], amenities[j] = amenities[j], amenities[i] })
	rooms := slices.Clone(roomTypes)
	rng.Shuffle(len(rooms), func(i, j int) { rooms[i], rooms[j] = rooms[j], rooms[i] })

	petPolicy := "No pets allowed"
	if rng.Float64() > 0.7 {
		petPolicy = "Pets allowed on request"
	}

	return HotelDetail{
		ID:   hotelID,
		Name: city + " Premium Hotel",
		Description: fmt.Sprintf("Experience luxury and comfort at our hotel in the heart of %s. "+
			"Our hotel offers modern amenities, spacious rooms, and exceptional service to make your stay memorable. "+
			"Located near major attractions and business districts, it's perfect for both leisure and business travelers.", city),
		Address: Address{
			Street:     fmt.Sprintf("%d Main Avenue", rng.IntN(999)+1),
			City:       city,
			PostalCode: fmt.Sprintf("%d", rng.IntN(90000)+10000),
			Country:    "United States",
		},
		Coordinates: Coordinates{
			Latitude:  round(rng.Float64()*180-90, 6),
			Longitude: round(rng.Float64()*360-180, 6),
		},
		Rating:      round(rng.Float64()*3+2, 1),
		ReviewCount: rng.IntN(500) + 50,
		StarRating:  rng.IntN(3) + 3,
		Images: []string{
			picsum(hotelID + "-main"),
			picsum(hotelID + "-room"),
			picsum(hotelID + "-lobby"),
			picsum(hotelID + "-pool"),
			picsum(hotelID + "-restaurant"),
		},
		Amenities: amenities[:10],
		RoomTypes: rooms[:3],
		Policies: Policies{
			CheckIn:            "14:00",
			CheckOut:           "11:00",
			FreeCancellation:   rng.Float64() > 0.5,
			CancellationPolicy: "Free cancellation up to 48 hours before check-in. After that, the first night is non-refundable.",
			ChildrenPolicy:     "Children of all ages are welcome.",
			PetPolicy:          petPolicy,
		},
		NearbyAttractions: []Attraction{
			{Name: city + " Central Park", Distance: "0.5 km"},
			{Name: city + " Museum of Art", Distance: "1.2 km"},
			{Name: city + " Shopping Center", Distance: "0.8 km"},
		},
	}, nil
}

// Reviews returns one page of hotelID's ReviewsPerHotel reviews. Pages past
// the end are empty. Each review is stable across pages and requests made
// on the same day.
func (c *Catalog) Reviews(_ context.Context, hotelID string, page domain.PaginationParams) (ReviewPage, error) {
	if _, ok := cityFromID(hotelID); !ok {
		return ReviewPage{}, fmt.Errorf("booking.Catalog.Reviews: %w", domain.ErrNotFound)
	}

	out := ReviewPage{Page: page.Page, Limit: page.Limit, Total: ReviewsPerHotel, Reviews: []Review{}}
	today := c.now().UTC()
	start := max(min(page.Offset(), ReviewsPerHotel), 0)
	end := ReviewsPerHotel
	if page.Limit < end-start {
		end = start + max(page.Limit, 0)
	}
	for i := start; i < end; i++ {
		out.Reviews = append(out.Reviews, generateReview(hotelID, i, today))
	}
	return out, nil
}

func generateHotel(rng *rand.Rand, destination, slug string, n int) Hotel {
	id := fmt.Sprintf("%s-%d", slug, n)
	kind := hotelTypes[(n-1)%len(hotelTypes)]
	price := float64(rng.IntN(300) + 50)
	original := price
	if rng.Float64() < 0.3 {
		original = round(price*1.2, 2)
	}

	return Hotel{
		ID:          id,
		Name:        fmt.Sprintf("%s %s %d", destination, kind, n),
		Type:        kind,
		Address:     fmt.Sprintf("%d Main Street, %s", rng.IntN(999)+1, destination),
		Rating:      round(rng.Float64()*3+2, 1),
		ReviewCount: rng.IntN(500) + 50,
		Price:       Price{Current: price, Original: original, Currency: "USD"},
		Images: []string{
			picsum(id + "-1"),
			picsum(id + "-2"),
			picsum(id + "-3"),
		},
		Amenities:        slices.Clone(searchAmenities[:rng.IntN(5)+3]),
		FreeCancellation: rng.Float64() > 0.5,
		Distance:         fmt.Sprintf("%.1f km from center", rng.Float64()*5),
	}
}

func generateReview(hotelID string, i int, today time.Time) Review {
	rng := seeded("review", hotelID, fmt.Sprint(i))

	date := today.AddDate(0, 0, -rng.IntN(60))
	overall := rng.IntN(5) + 1

	categories := make(map[string]int, len(reviewCategories))
	for _, name := range reviewCategories {
		categories[name] = max(1, min(5, overall+rng.IntN(3)-1))
	}

	tripType := "Leisure"
	if rng.Float64() > 0.5 {
		tripType = "Business"
	}
	room := "Deluxe Room"
	if rng.Float64() > 0.5 {
		room = "Standard Room"
	}

	var text strings.Builder
	for _, s := range []struct {
		threshold float64
		sentence  string
	}{
		{0.7, "I really enjoyed my stay at this hotel. "},
		{0.5, "The location was perfect for my needs. "},
		{0.6, "The staff was very helpful and friendly. "},
		{0.5, "The room was clean and comfortable. "},
		{0.8, "I would definitely stay here again. "},
	} {
		if rng.Float64() > s.threshold {
			text.WriteString(s.sentence)
		}
	}

	r := Review{
		ID:     fmt.Sprintf("review-%s-%d", hotelID, i),
		Title:  reviewTitles[rng.IntN(len(reviewTitles))],
		Rating: overall,
		Date:   date.Format(time.DateOnly),
		Reviewer: Reviewer{
			Name:     "Guest " + string(rune('A'+i%26)),
			Country:  "United States",
			TripType: tripType,
		},
		StayDuration:    fmt.Sprintf("%d nights", rng.IntN(7)+1),
		Room:            room,
		CategoryRatings: categories,
		Text:            strings.TrimSpace(text.String()),
	}
	if rng.Float64() > 0.3 {
		r.Pros = "Great location, friendly staff"
	}
	if rng.Float64() > 0.7 {
		r.Cons = "Bathroom could be cleaner"
	}
	return r
}

// matches applies the optional search filters.
func matches(h Hotel, p SearchParams) bool {
	if p.MinRating > 0 && h.Rating < p.MinRating {
		return false
	}
	if p.MaxPrice > 0 && h.Price.Current > p.MaxPrice {
		return false
	}
	for _, want := range p.Amenities {
		if !slices.ContainsFunc(h.Amenities, func(have string) bool { return strings.EqualFold(have, want) }) {
			return false
		}
	}
	return true
}

// links builds the partner URLs for a hotel, or nil when no affiliate id is set.
func (c *Catalog) links(hotelID, checkIn, checkOut string) *Links {
	if c.bookingAID == "" && c.expediaAID == "" {
		return nil
	}
	l := &Links{}
	if c.bookingAID != "" {
		l.Booking = fmt.Sprintf("https://www.booking.com/hotel.html?aid=%s&hotelid=%s&checkin=%s&checkout=%s",
			url.QueryEscape(c.bookingAID), url.QueryEscape(hotelID), url.QueryEscape(checkIn), url.QueryEscape(checkOut))
	}
	if c.expediaAID != "" {
		l.Expedia = fmt.Sprintf("https://www.expedia.com/hotel?hotelID=%s&checkIn=%s&checkOut=%s&affid=%s",
			url.QueryEscape(hotelID), url.QueryEscape(checkIn), url.QueryEscape(checkOut), url.QueryEscape(c.expediaAID))
	}
	return l
}

// seeded returns a generator whose sequence depends only on parts.
func seeded(parts ...string) *rand.Rand {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	sum := h.Sum64()
	return rand.New(rand.NewPCG(sum, sum^0x9e3779b97f4a7c15))
}

// fallbackSlug names destinations that contain no letters or digits.
const fallbackSlug = "hotel"

// slugify lowercases s and joins its letter and digit runs with single
// hyphens, so every slug matches hotelIDRe once "-<n>" is appended.
func slugify(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// cityFromID recovers a display name from "<slug>-<n>": "new-york-3"
// becomes "New York".
func cityFromID(hotelID string) (string, bool) {
	m := hotelIDRe.FindStringSubmatch(hotelID)
	if m == nil {
		return "", false
	}
	words := strings.Split(m[1], "-")
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[:1])) + string(r[1:])
	}
	return strings.Join(words, " "), true
}

func picsum(seed string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(seed) + "/800/600"
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
