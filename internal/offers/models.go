package offers

import "time"

// Offer is a time-bounded discounted product listing from a retail chain.
type Offer struct {
	ID            int64     `json:"id"`
	Product       string    `json:"product"`
	Chain         string    `json:"chain"`
	OfferPrice    float64   `json:"offer_price"`
	OriginalPrice float64   `json:"original_price"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
}

// Active reports whether the offer window contains the given instant.
func (o Offer) Active(at time.Time) bool {
	return !at.Before(o.ValidFrom) && !at.After(o.ValidUntil)
}
