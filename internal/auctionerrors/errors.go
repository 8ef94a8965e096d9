package auctionerrors

import "errors"

// Validation errors (malformed input)
var (
	ErrInvalidBid     = errors.New("invalid bid")
	ErrInvalidAuction = errors.New("invalid auction parameters")
)

// Not-found errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrDealNotFound    = errors.New("deal not found")
	ErrNoBids          = errors.New("no bids found for auction")
	ErrNoReputation    = errors.New("no reputation calculated for user")
)

// Authorization errors
var (
	ErrNotVerified = errors.New("bidder identity is not verified")
	ErrSelfBid     = errors.New("seller cannot bid on own listing")
	ErrNotSeller   = errors.New("caller is not the seller of the listing")
)

// Conflict errors (valid request, state forbids it)
var (
	ErrBidTooLow        = errors.New("bid amount below minimum")
	ErrAuctionNotLive   = errors.New("auction is not live")
	ErrAuctionExists    = errors.New("listing already has an auction")
	ErrActiveDealExists = errors.New("listing already has an active deal")
	ErrNotAuctionType   = errors.New("listing is not an auction listing")
)
