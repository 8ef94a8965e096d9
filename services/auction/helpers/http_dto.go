package helpers

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type CreateAuctionRequest struct {
	ListingID            string           `json:"listing_id" binding:"required"`
	SellerID             string           `json:"seller_id" binding:"required"`
	StartAt              time.Time        `json:"start_at" binding:"required"`
	EndAt                time.Time        `json:"end_at" binding:"required"`
	StartPrice           decimal.Decimal  `json:"start_price" binding:"required"`
	Increment            decimal.Decimal  `json:"increment" binding:"required"`
	ReservePrice         *decimal.Decimal `json:"reserve_price"`
	BuyNowPrice          *decimal.Decimal `json:"buy_now_price"`
	AutoRelistOnUnpaid   bool             `json:"auto_relist_on_unpaid"`
	AutoRelistAfterHours *int             `json:"auto_relist_after_hours"`
}

type PlaceBidRequest struct {
	AuctionID string          `json:"auction_id" binding:"required"`
	BidderID  string          `json:"bidder_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

type BidResponse struct {
	BidID     string          `json:"bid_id"`
	AuctionID string          `json:"auction_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

type AuctionResponse struct {
	AuctionID    string           `json:"auction_id"`
	ListingID    string           `json:"listing_id"`
	Status       string           `json:"status"`
	StartAt      string           `json:"start_at"`
	EndAt        string           `json:"end_at"`
	StartPrice   decimal.Decimal  `json:"start_price"`
	Increment    decimal.Decimal  `json:"increment"`
	ReservePrice *decimal.Decimal `json:"reserve_price,omitempty"`
	BuyNowPrice  *decimal.Decimal `json:"buy_now_price,omitempty"`
	TopBidID     *string          `json:"top_bid_id,omitempty"`
	TopAmount    *decimal.Decimal `json:"top_amount,omitempty"`
}
