package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"card-auction/internal/auctionerrors"
	model "card-auction/internal/models"
)

// PostgresRepo implements AuctionDB and ReputationDB on top of Postgres.
// Per-auction serialization comes from SELECT ... FOR UPDATE on the auction
// row; every atomic unit is one database transaction.
type PostgresRepo struct {
	db *sqlx.DB
}

// NewPostgresRepo creates a Postgres-backed repository.
func NewPostgresRepo(db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// GetAuction returns the auction with the given id.
func (r *PostgresRepo) GetAuction(ctx context.Context, auctionID string) (*model.Auction, error) {
	a := &model.Auction{}
	err := r.db.GetContext(ctx, a, `SELECT * FROM auctions WHERE id=$1`, auctionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// GetAuctionByListing returns the auction attached to a listing, if any.
func (r *PostgresRepo) GetAuctionByListing(ctx context.Context, listingID string) (*model.Auction, error) {
	a := &model.Auction{}
	err := r.db.GetContext(ctx, a, `SELECT * FROM auctions WHERE listing_id=$1`, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get auction for listing %s: %w", listingID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get auction for listing %s: %w", listingID, err)
	}
	return a, nil
}

// GetListing returns the listing with the given id.
func (r *PostgresRepo) GetListing(ctx context.Context, listingID string) (*model.Listing, error) {
	l := &model.Listing{}
	err := r.db.GetContext(ctx, l, `SELECT * FROM listings WHERE id=$1`, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return l, nil
}

// GetBid returns a single bid by id.
func (r *PostgresRepo) GetBid(ctx context.Context, bidID string) (*model.Bid, error) {
	b := &model.Bid{}
	err := r.db.GetContext(ctx, b, `SELECT * FROM bids WHERE id=$1`, bidID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return nil, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return b, nil
}

// GetBidsByAuction returns all bids of the auction's current epoch, oldest
// first.
func (r *PostgresRepo) GetBidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	bids := []model.Bid{}
	err := r.db.SelectContext(ctx, &bids,
		`SELECT * FROM bids WHERE auction_id=$1 ORDER BY created_at ASC, id ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// CreateAuction inserts a new auction row.
func (r *PostgresRepo) CreateAuction(ctx context.Context, auction *model.Auction) error {
	query := `
        INSERT INTO auctions
            (id, listing_id, status, start_at, end_at, start_price, increment,
             reserve_price, buy_now_price, auto_relist_on_unpaid, auto_relist_after_hours)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		auction.AuctionID, auction.ListingID, auction.Status, auction.StartAt, auction.EndAt,
		auction.StartPrice, auction.Increment, auction.ReservePrice, auction.BuyNowPrice,
		auction.AutoRelistOnUnpaid, auction.AutoRelistAfterHours).
		Scan(&auction.CreatedAt)
	if err != nil {
		return fmt.Errorf("create auction for listing %s: %w", auction.ListingID, err)
	}
	return nil
}

// pgTx is one transaction holding the FOR UPDATE lock on a single auction.
type pgTx struct {
	tx      *sqlx.Tx
	auction *model.Auction
}

func (t *pgTx) Auction() *model.Auction { return t.auction }

func (t *pgTx) GetListing(ctx context.Context, listingID string) (*model.Listing, error) {
	l := &model.Listing{}
	err := t.tx.GetContext(ctx, l, `SELECT * FROM listings WHERE id=$1`, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return l, nil
}

func (t *pgTx) GetDeal(ctx context.Context, dealID string) (*model.Deal, error) {
	d := &model.Deal{}
	err := t.tx.GetContext(ctx, d, `SELECT * FROM deals WHERE id=$1`, dealID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get deal %s: %w", dealID, auctionerrors.ErrDealNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get deal %s: %w", dealID, err)
	}
	return d, nil
}

func (t *pgTx) GetBid(ctx context.Context, bidID string) (*model.Bid, error) {
	b := &model.Bid{}
	err := t.tx.GetContext(ctx, b, `SELECT * FROM bids WHERE id=$1`, bidID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return nil, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return b, nil
}

func (t *pgTx) InsertBid(ctx context.Context, bid *model.Bid) error {
	query := `
        INSERT INTO bids (id, auction_id, bidder_id, amount, created_at)
        VALUES ($1, $2, $3, $4, $5)`
	_, err := t.tx.ExecContext(ctx, query,
		bid.BidID, bid.AuctionID, bid.BidderID, bid.Amount, bid.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bid for auction %s: %w", bid.AuctionID, err)
	}
	return nil
}

func (t *pgTx) DeleteBidsForAuction(ctx context.Context, auctionID string) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM bids WHERE auction_id=$1`, auctionID)
	if err != nil {
		return fmt.Errorf("delete bids for auction %s: %w", auctionID, err)
	}
	return nil
}

func (t *pgTx) UpdateAuction(ctx context.Context, auction *model.Auction) error {
	query := `
        UPDATE auctions
        SET status=$1, start_at=$2, end_at=$3, top_bid_id=$4, top_amount=$5
        WHERE id=$6`
	_, err := t.tx.ExecContext(ctx, query,
		auction.Status, auction.StartAt, auction.EndAt, auction.TopBidID, auction.TopAmount,
		auction.AuctionID)
	if err != nil {
		return fmt.Errorf("update auction %s: %w", auction.AuctionID, err)
	}
	t.auction = auction
	return nil
}

func (t *pgTx) UpdateListingStatus(ctx context.Context, listingID string, status model.ListingStatus) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE listings SET status=$1 WHERE id=$2`, status, listingID)
	if err != nil {
		return fmt.Errorf("update listing %s: %w", listingID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return nil
}

func (t *pgTx) HasActiveDeal(ctx context.Context, listingID string) (bool, error) {
	query, args, err := sqlx.In(
		`SELECT COUNT(1) FROM deals WHERE listing_id=? AND status IN (?)`,
		listingID, model.ActiveDealStatuses)
	if err != nil {
		return false, fmt.Errorf("active deal query for listing %s: %w", listingID, err)
	}
	var count int
	if err := t.tx.GetContext(ctx, &count, t.tx.Rebind(query), args...); err != nil {
		return false, fmt.Errorf("active deal query for listing %s: %w", listingID, err)
	}
	return count > 0, nil
}

func (t *pgTx) InsertDeal(ctx context.Context, deal *model.Deal) error {
	query := `
        INSERT INTO deals (id, listing_id, seller_id, buyer_id, status, amount, payment_due_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`
	err := t.tx.QueryRowContext(ctx, query,
		deal.DealID, deal.ListingID, deal.SellerID, deal.BuyerID,
		deal.Status, deal.Amount, deal.PaymentDueAt).
		Scan(&deal.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert deal for listing %s: %w", deal.ListingID, err)
	}
	return nil
}

func (t *pgTx) UpdateDeal(ctx context.Context, deal *model.Deal) error {
	query := `
        UPDATE deals
        SET status=$1, payment_due_at=$2, unpaid_relisted_at=$3
        WHERE id=$4`
	_, err := t.tx.ExecContext(ctx, query,
		deal.Status, deal.PaymentDueAt, deal.UnpaidRelistedAt, deal.DealID)
	if err != nil {
		return fmt.Errorf("update deal %s: %w", deal.DealID, err)
	}
	return nil
}

// WithAuction begins a transaction, locks the auction row exclusively and
// runs fn against it. Any error from fn rolls the whole unit back.
func (r *PostgresRepo) WithAuction(ctx context.Context, auctionID string, fn func(ctx context.Context, tx AuctionTx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unit for auction %s: %w", auctionID, err)
	}
	defer tx.Rollback()

	a := &model.Auction{}
	err = tx.GetContext(ctx, a, `SELECT * FROM auctions WHERE id=$1 FOR UPDATE`, auctionID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lock auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock auction %s: %w", auctionID, err)
	}

	if err := fn(ctx, &pgTx{tx: tx, auction: a}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit unit for auction %s: %w", auctionID, err)
	}
	return nil
}

// ActivateScheduledAuctions bulk-flips due SCHEDULED auctions to LIVE.
func (r *PostgresRepo) ActivateScheduledAuctions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET status=$1 WHERE status=$2 AND start_at<=$3`,
		model.AuctionLive, model.AuctionScheduled, now)
	if err != nil {
		return 0, fmt.Errorf("activate scheduled auctions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("activate scheduled auctions: %w", err)
	}
	return n, nil
}

// ListExpiredLiveAuctionIDs returns auctions due for closing.
func (r *PostgresRepo) ListExpiredLiveAuctionIDs(ctx context.Context, now time.Time) ([]string, error) {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT id FROM auctions WHERE status=$1 AND end_at<=$2 ORDER BY id`,
		model.AuctionLive, now)
	if err != nil {
		return nil, fmt.Errorf("list expired auctions: %w", err)
	}
	return ids, nil
}

// ListOverdueUnpaidDeals returns SOLD deals past their payment deadline
// whose auction has auto-relist enabled.
func (r *PostgresRepo) ListOverdueUnpaidDeals(ctx context.Context, now time.Time) ([]OverdueDeal, error) {
	out := []OverdueDeal{}
	query := `
        SELECT d.id AS deal_id, a.id AS auction_id
        FROM deals d
        JOIN listings l ON l.id = d.listing_id
        JOIN auctions a ON a.listing_id = l.id
        WHERE d.status = $1
          AND d.payment_due_at < $2
          AND a.auto_relist_on_unpaid = true
        ORDER BY d.id`
	err := r.db.SelectContext(ctx, &out, query, model.DealSold, now)
	if err != nil {
		return nil, fmt.Errorf("list overdue unpaid deals: %w", err)
	}
	return out, nil
}

// IsVerified reports whether the user's identity has been verified.
func (r *PostgresRepo) IsVerified(ctx context.Context, userID string) (bool, error) {
	var verified bool
	err := r.db.GetContext(ctx, &verified, `SELECT verified FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("verification lookup for user %s: %w", userID, err)
	}
	return verified, nil
}

// ListUserIDs returns every user id in a stable order.
func (r *PostgresRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

// AggregateReviewStats aggregates review counts per review target.
func (r *PostgresRepo) AggregateReviewStats(ctx context.Context) ([]ReviewAggregate, error) {
	out := []ReviewAggregate{}
	query := `
        SELECT target_id AS user_id,
               COUNT(*) AS review_count,
               COUNT(*) FILTER (WHERE rating >= 4) AS positive_count,
               COUNT(*) FILTER (WHERE rating <= 2) AS negative_count
        FROM reviews
        GROUP BY target_id
        ORDER BY target_id`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("aggregate review stats: %w", err)
	}
	return out, nil
}

// AggregateDealStats aggregates settlement outcomes per user. A user appears
// on exactly one side of any deal, so the union cannot double-count.
func (r *PostgresRepo) AggregateDealStats(ctx context.Context) ([]DealAggregate, error) {
	out := []DealAggregate{}
	query := `
        SELECT user_id,
               SUM(completed_sales)::int AS completed_sales,
               SUM(completed_buys)::int  AS completed_buys,
               SUM(unpaid_count)::int    AS unpaid_count,
               SUM(dispute_count)::int   AS dispute_count
        FROM (
            SELECT seller_id AS user_id,
                   CASE WHEN status = 'COMPLETED' THEN 1 ELSE 0 END AS completed_sales,
                   0 AS completed_buys,
                   0 AS unpaid_count,
                   CASE WHEN status = 'DISPUTED' THEN 1 ELSE 0 END AS dispute_count
            FROM deals
            UNION ALL
            SELECT buyer_id,
                   0,
                   CASE WHEN status = 'COMPLETED' THEN 1 ELSE 0 END,
                   CASE WHEN status = 'UNPAID_RELISTED' THEN 1 ELSE 0 END,
                   CASE WHEN status = 'DISPUTED' THEN 1 ELSE 0 END
            FROM deals
        ) sides
        GROUP BY user_id
        ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("aggregate deal stats: %w", err)
	}
	return out, nil
}

// UpsertReputation overwrites the derived reputation row for a user.
func (r *PostgresRepo) UpsertReputation(ctx context.Context, rep *model.UserReputation) error {
	query := `
        INSERT INTO user_reputations
            (user_id, score, seller_score, buyer_score, review_count, positive_count,
             negative_count, completed_sales, completed_buys, unpaid_count, dispute_count,
             seller_rank, buyer_rank, last_calculated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        ON CONFLICT (user_id) DO UPDATE SET
            score = EXCLUDED.score,
            seller_score = EXCLUDED.seller_score,
            buyer_score = EXCLUDED.buyer_score,
            review_count = EXCLUDED.review_count,
            positive_count = EXCLUDED.positive_count,
            negative_count = EXCLUDED.negative_count,
            completed_sales = EXCLUDED.completed_sales,
            completed_buys = EXCLUDED.completed_buys,
            unpaid_count = EXCLUDED.unpaid_count,
            dispute_count = EXCLUDED.dispute_count,
            seller_rank = EXCLUDED.seller_rank,
            buyer_rank = EXCLUDED.buyer_rank,
            last_calculated_at = EXCLUDED.last_calculated_at`
	_, err := r.db.ExecContext(ctx, query,
		rep.UserID, rep.Score, rep.SellerScore, rep.BuyerScore, rep.ReviewCount,
		rep.PositiveCount, rep.NegativeCount, rep.CompletedSales, rep.CompletedBuys,
		rep.UnpaidCount, rep.DisputeCount, rep.SellerRank, rep.BuyerRank, rep.LastCalculatedAt)
	if err != nil {
		return fmt.Errorf("upsert reputation for user %s: %w", rep.UserID, err)
	}
	return nil
}

// GetReputation returns the derived reputation row for a user.
func (r *PostgresRepo) GetReputation(ctx context.Context, userID string) (*model.UserReputation, error) {
	rep := &model.UserReputation{}
	err := r.db.GetContext(ctx, rep, `SELECT * FROM user_reputations WHERE user_id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get reputation for user %s: %w", userID, auctionerrors.ErrNoReputation)
	}
	if err != nil {
		return nil, fmt.Errorf("get reputation for user %s: %w", userID, err)
	}
	return rep, nil
}
