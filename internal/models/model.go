package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus is the lifecycle state of a sellable listing.
type ListingStatus string

const (
	ListingDraft   ListingStatus = "DRAFT"
	ListingActive  ListingStatus = "ACTIVE"
	ListingSold    ListingStatus = "SOLD"
	ListingClosed  ListingStatus = "CLOSED"
	ListingRemoved ListingStatus = "REMOVED"
)

// ListingType distinguishes auction listings from fixed-price ones.
type ListingType string

const (
	ListingTypeAuction    ListingType = "AUCTION"
	ListingTypeFixedPrice ListingType = "FIXED_PRICE"
)

// AuctionStatus is the lifecycle state of an auction epoch.
type AuctionStatus string

const (
	AuctionScheduled AuctionStatus = "SCHEDULED"
	AuctionLive      AuctionStatus = "LIVE"
	AuctionEnded     AuctionStatus = "ENDED"
	AuctionCanceled  AuctionStatus = "CANCELED"
)

// DealStatus is the settlement state of a sale.
type DealStatus string

const (
	DealSold             DealStatus = "SOLD"
	DealPaymentConfirmed DealStatus = "PAYMENT_CONFIRMED"
	DealShipped          DealStatus = "SHIPPED"
	DealDelivered        DealStatus = "DELIVERED"
	DealCompleted        DealStatus = "COMPLETED"
	DealDisputed         DealStatus = "DISPUTED"
	DealCanceled         DealStatus = "CANCELED"
	DealUnpaidRelisted   DealStatus = "UNPAID_RELISTED"
)

// ActiveDealStatuses are the states in which a deal still counts as the
// listing's one in-flight sale. At most one deal per listing may be in any
// of these states at a time.
var ActiveDealStatuses = []DealStatus{
	DealSold,
	DealPaymentConfirmed,
	DealShipped,
	DealDelivered,
	DealCompleted,
}

// DefaultPaymentWindowHours applies when a listing does not set its own
// payment window.
const DefaultPaymentWindowHours = 48

// User is the slice of the account record the engine needs; identity
// verification is maintained outside the engine and only consumed here.
type User struct {
	UserID    string    `db:"id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Verified  bool      `db:"verified" json:"verified"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Listing is the sellable unit. The engine never creates listings; it only
// flips their status during settlement.
type Listing struct {
	ListingID          string        `db:"id" json:"listing_id"`
	SellerID           string        `db:"seller_id" json:"seller_id"`
	Type               ListingType   `db:"type" json:"type"`
	Status             ListingStatus `db:"status" json:"status"`
	PaymentWindowHours int           `db:"payment_window_hours" json:"payment_window_hours"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
}

// PaymentWindow returns the listing's payment deadline window, falling back
// to the 48h default when unset.
func (l *Listing) PaymentWindow() time.Duration {
	hours := l.PaymentWindowHours
	if hours <= 0 {
		hours = DefaultPaymentWindowHours
	}
	return time.Duration(hours) * time.Hour
}

// Auction is 1:1 with an auction-type listing. A relist resets the row in
// place to a new epoch; the row itself is never deleted.
type Auction struct {
	AuctionID            string              `db:"id" json:"auction_id"`
	ListingID            string              `db:"listing_id" json:"listing_id"`
	Status               AuctionStatus       `db:"status" json:"status"`
	StartAt              time.Time           `db:"start_at" json:"start_at"`
	EndAt                time.Time           `db:"end_at" json:"end_at"`
	StartPrice           decimal.Decimal     `db:"start_price" json:"start_price"`
	Increment            decimal.Decimal     `db:"increment" json:"increment"`
	ReservePrice         decimal.NullDecimal `db:"reserve_price" json:"reserve_price"`
	BuyNowPrice          decimal.NullDecimal `db:"buy_now_price" json:"buy_now_price"`
	TopBidID             *string             `db:"top_bid_id" json:"top_bid_id"`
	TopAmount            decimal.NullDecimal `db:"top_amount" json:"top_amount"`
	AutoRelistOnUnpaid   bool                `db:"auto_relist_on_unpaid" json:"auto_relist_on_unpaid"`
	AutoRelistAfterHours *int                `db:"auto_relist_after_hours" json:"auto_relist_after_hours"`
	CreatedAt            time.Time           `db:"created_at" json:"created_at"`
}

// MinimumBid is the smallest acceptable next bid: the start price until a
// top bid exists, then max(startPrice, topAmount+increment).
func (a *Auction) MinimumBid() decimal.Decimal {
	if !a.TopAmount.Valid {
		return a.StartPrice
	}
	next := a.TopAmount.Decimal.Add(a.Increment)
	if next.LessThan(a.StartPrice) {
		return a.StartPrice
	}
	return next
}

// Bid is an append-only record scoped to one auction epoch. Bids are removed
// only when a relist resets the epoch.
type Bid struct {
	BidID     string          `db:"id" json:"bid_id"`
	AuctionID string          `db:"auction_id" json:"auction_id"`
	BidderID  string          `db:"bidder_id" json:"bidder_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Deal is a sale in settlement. Deals are never deleted; a failed sale stays
// behind as UNPAID_RELISTED while a fresh epoch begins on the same listing.
type Deal struct {
	DealID           string          `db:"id" json:"deal_id"`
	ListingID        string          `db:"listing_id" json:"listing_id"`
	SellerID         string          `db:"seller_id" json:"seller_id"`
	BuyerID          string          `db:"buyer_id" json:"buyer_id"`
	Status           DealStatus      `db:"status" json:"status"`
	Amount           decimal.Decimal `db:"amount" json:"amount"`
	PaymentDueAt     time.Time       `db:"payment_due_at" json:"payment_due_at"`
	UnpaidRelistedAt *time.Time      `db:"unpaid_relisted_at" json:"unpaid_relisted_at"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// Review is a rating left on a user after a sale. Ratings >= 4 count as
// positive and <= 2 as negative in reputation scoring.
type Review struct {
	ReviewID   string    `db:"id" json:"review_id"`
	DealID     string    `db:"deal_id" json:"deal_id"`
	ReviewerID string    `db:"reviewer_id" json:"reviewer_id"`
	TargetID   string    `db:"target_id" json:"target_id"`
	Rating     int       `db:"rating" json:"rating"`
	Comment    string    `db:"comment" json:"comment"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// UserReputation is fully derived state, owned and overwritten by the
// reputation recompute and never mutated anywhere else.
type UserReputation struct {
	UserID           string    `db:"user_id" json:"user_id"`
	Score            int       `db:"score" json:"score"`
	SellerScore      int       `db:"seller_score" json:"seller_score"`
	BuyerScore       int       `db:"buyer_score" json:"buyer_score"`
	ReviewCount      int       `db:"review_count" json:"review_count"`
	PositiveCount    int       `db:"positive_count" json:"positive_count"`
	NegativeCount    int       `db:"negative_count" json:"negative_count"`
	CompletedSales   int       `db:"completed_sales" json:"completed_sales"`
	CompletedBuys    int       `db:"completed_buys" json:"completed_buys"`
	UnpaidCount      int       `db:"unpaid_count" json:"unpaid_count"`
	DisputeCount     int       `db:"dispute_count" json:"dispute_count"`
	SellerRank       int       `db:"seller_rank" json:"seller_rank"`
	BuyerRank        int       `db:"buyer_rank" json:"buyer_rank"`
	LastCalculatedAt time.Time `db:"last_calculated_at" json:"last_calculated_at"`
}
