package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"card-auction/internal/auctionerrors"
	model "card-auction/internal/models"
)

// AuctionTx is one atomic unit of work scoped to a single locked auction row.
// Listing, bid and deal writes made through it commit or discard together
// with the auction update; no independent locking is needed on them.
type AuctionTx interface {
	// Auction returns the locked row. Mutations made to it are persisted by
	// UpdateAuction.
	Auction() *model.Auction
	GetListing(ctx context.Context, listingID string) (*model.Listing, error)
	GetDeal(ctx context.Context, dealID string) (*model.Deal, error)
	GetBid(ctx context.Context, bidID string) (*model.Bid, error)
	InsertBid(ctx context.Context, bid *model.Bid) error
	DeleteBidsForAuction(ctx context.Context, auctionID string) error
	UpdateAuction(ctx context.Context, auction *model.Auction) error
	UpdateListingStatus(ctx context.Context, listingID string, status model.ListingStatus) error
	HasActiveDeal(ctx context.Context, listingID string) (bool, error)
	InsertDeal(ctx context.Context, deal *model.Deal) error
	UpdateDeal(ctx context.Context, deal *model.Deal) error
}

// OverdueDeal identifies a SOLD deal past its payment deadline whose auction
// has opted into auto-relist, together with the auction to lock.
type OverdueDeal struct {
	DealID    string `db:"deal_id"`
	AuctionID string `db:"auction_id"`
}

// AuctionDB is the persistence boundary for the bidding and settlement
// engine. WithAuction serializes competing writers on one auction row while
// leaving unrelated auctions fully parallel.
type AuctionDB interface {
	GetAuction(ctx context.Context, auctionID string) (*model.Auction, error)
	GetAuctionByListing(ctx context.Context, listingID string) (*model.Auction, error)
	GetListing(ctx context.Context, listingID string) (*model.Listing, error)
	GetBid(ctx context.Context, bidID string) (*model.Bid, error)
	GetBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	CreateAuction(ctx context.Context, auction *model.Auction) error
	WithAuction(ctx context.Context, auctionID string, fn func(ctx context.Context, tx AuctionTx) error) error
	ActivateScheduledAuctions(ctx context.Context, now time.Time) (int64, error)
	ListExpiredLiveAuctionIDs(ctx context.Context, now time.Time) ([]string, error)
	ListOverdueUnpaidDeals(ctx context.Context, now time.Time) ([]OverdueDeal, error)
}

// ReviewAggregate is the typed shape of one user's review statistics at the
// store boundary.
type ReviewAggregate struct {
	UserID        string `db:"user_id"`
	ReviewCount   int    `db:"review_count"`
	PositiveCount int    `db:"positive_count"`
	NegativeCount int    `db:"negative_count"`
}

// DealAggregate is the typed shape of one user's settlement statistics at
// the store boundary.
type DealAggregate struct {
	UserID         string `db:"user_id"`
	CompletedSales int    `db:"completed_sales"`
	CompletedBuys  int    `db:"completed_buys"`
	UnpaidCount    int    `db:"unpaid_count"`
	DisputeCount   int    `db:"dispute_count"`
}

// ReputationDB is the read/write surface of the reputation recompute. It
// reads review and deal history and owns the user_reputations rows.
type ReputationDB interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	AggregateReviewStats(ctx context.Context) ([]ReviewAggregate, error)
	AggregateDealStats(ctx context.Context) ([]DealAggregate, error)
	UpsertReputation(ctx context.Context, rep *model.UserReputation) error
	GetReputation(ctx context.Context, userID string) (*model.UserReputation, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB and
// ReputationDB, used by tests and local runs without Postgres.
type MemoryRepo struct {
	mu          sync.RWMutex
	users       map[string]model.User
	listings    map[string]model.Listing
	auctions    map[string]model.Auction
	bids        map[string][]model.Bid // key: auctionID
	deals       map[string]model.Deal
	reviews     []model.Review
	reputations map[string]model.UserReputation
}

// NewMemoryRepo creates a new in-memory repository instance.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:       make(map[string]model.User),
		listings:    make(map[string]model.Listing),
		auctions:    make(map[string]model.Auction),
		bids:        make(map[string][]model.Bid),
		deals:       make(map[string]model.Deal),
		reputations: make(map[string]model.UserReputation),
	}
}

func copyAuction(a model.Auction) model.Auction {
	cp := a
	if a.TopBidID != nil {
		id := *a.TopBidID
		cp.TopBidID = &id
	}
	if a.AutoRelistAfterHours != nil {
		h := *a.AutoRelistAfterHours
		cp.AutoRelistAfterHours = &h
	}
	return cp
}

func copyDeal(d model.Deal) model.Deal {
	cp := d
	if d.UnpaidRelistedAt != nil {
		t := *d.UnpaidRelistedAt
		cp.UnpaidRelistedAt = &t
	}
	return cp
}

// GetAuction returns the auction with the given id.
func (r *MemoryRepo) GetAuction(ctx context.Context, auctionID string) (*model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return nil, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	cp := copyAuction(a)
	return &cp, nil
}

// GetAuctionByListing returns the auction attached to a listing, if any.
func (r *MemoryRepo) GetAuctionByListing(ctx context.Context, listingID string) (*model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.auctions {
		if a.ListingID == listingID {
			cp := copyAuction(a)
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get auction for listing %s: %w", listingID, auctionerrors.ErrAuctionNotFound)
}

// GetListing returns the listing with the given id.
func (r *MemoryRepo) GetListing(ctx context.Context, listingID string) (*model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	cp := l
	return &cp, nil
}

// GetBid returns a single bid by id.
func (r *MemoryRepo) GetBid(ctx context.Context, bidID string) (*model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, bids := range r.bids {
		for _, b := range bids {
			if b.BidID == bidID {
				cp := b
				return &cp, nil
			}
		}
	}
	return nil, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrNoBids)
}

// GetBidsByAuction returns all bids of the auction's current epoch, newest
// last.
func (r *MemoryRepo) GetBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := append([]model.Bid(nil), r.bids[auctionID]...)
	sort.Slice(bids, func(i, j int) bool {
		if bids[i].CreatedAt.Equal(bids[j].CreatedAt) {
			return bids[i].BidID < bids[j].BidID
		}
		return bids[i].CreatedAt.Before(bids[j].CreatedAt)
	})
	return bids, nil
}

// CreateAuction inserts a new auction. A listing can carry at most one.
func (r *MemoryRepo) CreateAuction(ctx context.Context, auction *model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[auction.ListingID]; !ok {
		return fmt.Errorf("create auction for listing %s: %w", auction.ListingID, auctionerrors.ErrListingNotFound)
	}
	for _, a := range r.auctions {
		if a.ListingID == auction.ListingID {
			return fmt.Errorf("create auction for listing %s: %w", auction.ListingID, auctionerrors.ErrAuctionExists)
		}
	}
	r.auctions[auction.AuctionID] = copyAuction(*auction)
	return nil
}

// memTx stages writes against copies of the live maps; nothing becomes
// visible until the whole unit commits.
type memTx struct {
	repo            *MemoryRepo
	auction         *model.Auction
	listingStatuses map[string]model.ListingStatus
	insertedBids    []model.Bid
	clearedBids     map[string]bool
	insertedDeals   []model.Deal
	updatedDeals    map[string]model.Deal
}

func (t *memTx) Auction() *model.Auction { return t.auction }

func (t *memTx) GetListing(ctx context.Context, listingID string) (*model.Listing, error) {
	l, ok := t.repo.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	cp := l
	if status, ok := t.listingStatuses[listingID]; ok {
		cp.Status = status
	}
	return &cp, nil
}

func (t *memTx) GetDeal(ctx context.Context, dealID string) (*model.Deal, error) {
	if d, ok := t.updatedDeals[dealID]; ok {
		cp := copyDeal(d)
		return &cp, nil
	}
	for _, d := range t.insertedDeals {
		if d.DealID == dealID {
			cp := copyDeal(d)
			return &cp, nil
		}
	}
	d, ok := t.repo.deals[dealID]
	if !ok {
		return nil, fmt.Errorf("get deal %s: %w", dealID, auctionerrors.ErrDealNotFound)
	}
	cp := copyDeal(d)
	return &cp, nil
}

func (t *memTx) GetBid(ctx context.Context, bidID string) (*model.Bid, error) {
	for _, b := range t.insertedBids {
		if b.BidID == bidID {
			cp := b
			return &cp, nil
		}
	}
	if !t.clearedBids[t.auction.AuctionID] {
		for _, b := range t.repo.bids[t.auction.AuctionID] {
			if b.BidID == bidID {
				cp := b
				return &cp, nil
			}
		}
	}
	return nil, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrNoBids)
}

func (t *memTx) InsertBid(ctx context.Context, bid *model.Bid) error {
	t.insertedBids = append(t.insertedBids, *bid)
	return nil
}

func (t *memTx) DeleteBidsForAuction(ctx context.Context, auctionID string) error {
	t.clearedBids[auctionID] = true
	t.insertedBids = nil
	return nil
}

func (t *memTx) UpdateAuction(ctx context.Context, auction *model.Auction) error {
	cp := copyAuction(*auction)
	t.auction = &cp
	return nil
}

func (t *memTx) UpdateListingStatus(ctx context.Context, listingID string, status model.ListingStatus) error {
	if _, ok := t.repo.listings[listingID]; !ok {
		return fmt.Errorf("update listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	t.listingStatuses[listingID] = status
	return nil
}

func (t *memTx) HasActiveDeal(ctx context.Context, listingID string) (bool, error) {
	active := func(s model.DealStatus) bool {
		for _, as := range model.ActiveDealStatuses {
			if s == as {
				return true
			}
		}
		return false
	}
	for _, d := range t.insertedDeals {
		if d.ListingID == listingID && active(d.Status) {
			return true, nil
		}
	}
	for id, d := range t.repo.deals {
		if upd, ok := t.updatedDeals[id]; ok {
			d = upd
		}
		if d.ListingID == listingID && active(d.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertDeal(ctx context.Context, deal *model.Deal) error {
	t.insertedDeals = append(t.insertedDeals, copyDeal(*deal))
	return nil
}

func (t *memTx) UpdateDeal(ctx context.Context, deal *model.Deal) error {
	if _, ok := t.repo.deals[deal.DealID]; !ok {
		return fmt.Errorf("update deal %s: %w", deal.DealID, auctionerrors.ErrDealNotFound)
	}
	t.updatedDeals[deal.DealID] = copyDeal(*deal)
	return nil
}

func (t *memTx) commit() {
	r := t.repo
	r.auctions[t.auction.AuctionID] = copyAuction(*t.auction)
	for id, status := range t.listingStatuses {
		l := r.listings[id]
		l.Status = status
		r.listings[id] = l
	}
	for id := range t.clearedBids {
		delete(r.bids, id)
	}
	for _, b := range t.insertedBids {
		r.bids[b.AuctionID] = append(r.bids[b.AuctionID], b)
	}
	for _, d := range t.insertedDeals {
		r.deals[d.DealID] = d
	}
	for id, d := range t.updatedDeals {
		r.deals[id] = d
	}
}

// WithAuction runs fn as one atomic unit holding the exclusive lock for the
// given auction. When fn returns an error nothing is written.
func (r *MemoryRepo) WithAuction(ctx context.Context, auctionID string, fn func(ctx context.Context, tx AuctionTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("lock auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	cp := copyAuction(a)
	tx := &memTx{
		repo:            r,
		auction:         &cp,
		listingStatuses: make(map[string]model.ListingStatus),
		clearedBids:     make(map[string]bool),
		updatedDeals:    make(map[string]model.Deal),
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	tx.commit()
	return nil
}

// ActivateScheduledAuctions flips every SCHEDULED auction whose start time
// has passed to LIVE and reports how many rows changed.
func (r *MemoryRepo) ActivateScheduledAuctions(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, a := range r.auctions {
		if a.Status == model.AuctionScheduled && !a.StartAt.After(now) {
			a.Status = model.AuctionLive
			r.auctions[id] = a
			n++
		}
	}
	return n, nil
}

// ListExpiredLiveAuctionIDs returns the auctions due for closing, in a
// stable order.
func (r *MemoryRepo) ListExpiredLiveAuctionIDs(ctx context.Context, now time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, a := range r.auctions {
		if a.Status == model.AuctionLive && !a.EndAt.After(now) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ListOverdueUnpaidDeals returns SOLD deals past their payment deadline
// whose auction has auto-relist enabled.
func (r *MemoryRepo) ListOverdueUnpaidDeals(ctx context.Context, now time.Time) ([]OverdueDeal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []OverdueDeal
	for _, d := range r.deals {
		if d.Status != model.DealSold || !d.PaymentDueAt.Before(now) {
			continue
		}
		for _, a := range r.auctions {
			if a.ListingID == d.ListingID && a.AutoRelistOnUnpaid {
				out = append(out, OverdueDeal{DealID: d.DealID, AuctionID: a.AuctionID})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DealID < out[j].DealID })
	return out, nil
}

// IsVerified reports whether the user's identity has been verified.
func (r *MemoryRepo) IsVerified(ctx context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	return u.Verified, nil
}

// ListUserIDs returns every user id in a stable order.
func (r *MemoryRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// AggregateReviewStats aggregates review counts per review target.
func (r *MemoryRepo) AggregateReviewStats(ctx context.Context) ([]ReviewAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := make(map[string]*ReviewAggregate)
	for _, rev := range r.reviews {
		agg, ok := byUser[rev.TargetID]
		if !ok {
			agg = &ReviewAggregate{UserID: rev.TargetID}
			byUser[rev.TargetID] = agg
		}
		agg.ReviewCount++
		if rev.Rating >= 4 {
			agg.PositiveCount++
		}
		if rev.Rating <= 2 {
			agg.NegativeCount++
		}
	}
	return sortedReviewAggregates(byUser), nil
}

func sortedReviewAggregates(byUser map[string]*ReviewAggregate) []ReviewAggregate {
	out := make([]ReviewAggregate, 0, len(byUser))
	for _, agg := range byUser {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// AggregateDealStats aggregates settlement outcomes per user, counting each
// deal once for the side the user was on.
func (r *MemoryRepo) AggregateDealStats(ctx context.Context) ([]DealAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := make(map[string]*DealAggregate)
	get := func(userID string) *DealAggregate {
		agg, ok := byUser[userID]
		if !ok {
			agg = &DealAggregate{UserID: userID}
			byUser[userID] = agg
		}
		return agg
	}
	for _, d := range r.deals {
		switch d.Status {
		case model.DealCompleted:
			get(d.SellerID).CompletedSales++
			get(d.BuyerID).CompletedBuys++
		case model.DealUnpaidRelisted:
			get(d.BuyerID).UnpaidCount++
		case model.DealDisputed:
			get(d.SellerID).DisputeCount++
			get(d.BuyerID).DisputeCount++
		}
	}
	out := make([]DealAggregate, 0, len(byUser))
	for _, agg := range byUser {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// UpsertReputation overwrites the derived reputation row for a user.
func (r *MemoryRepo) UpsertReputation(ctx context.Context, rep *model.UserReputation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reputations[rep.UserID] = *rep
	return nil
}

// GetReputation returns the derived reputation row for a user.
func (r *MemoryRepo) GetReputation(ctx context.Context, userID string) (*model.UserReputation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.reputations[userID]
	if !ok {
		return nil, fmt.Errorf("get reputation for user %s: %w", userID, auctionerrors.ErrNoReputation)
	}
	cp := rep
	return &cp, nil
}

// Seed helpers below are intended for tests and local runs only.

// AddUser adds a user to the repository.
func (r *MemoryRepo) AddUser(u model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.UserID] = u
}

// AddListing adds a listing to the repository.
func (r *MemoryRepo) AddListing(l model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[l.ListingID] = l
}

// AddAuction adds an auction to the repository without uniqueness checks.
func (r *MemoryRepo) AddAuction(a model.Auction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[a.AuctionID] = copyAuction(a)
}

// AddDeal adds a deal to the repository.
func (r *MemoryRepo) AddDeal(d model.Deal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deals[d.DealID] = copyDeal(d)
}

// AddReview adds a review to the repository.
func (r *MemoryRepo) AddReview(rev model.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, rev)
}
