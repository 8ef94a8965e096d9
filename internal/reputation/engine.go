package reputation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"card-auction/internal/models"
	"card-auction/internal/repository"
)

// Engine recomputes every user's derived reputation from review and deal
// history. The recompute is a pure function of that snapshot: re-running it
// against unchanged history reproduces identical scores and ranks. A mutex
// serializes the recompute against concurrent runs of itself; it needs no
// coordination with the bidding and settlement lock domain.
type Engine struct {
	mu   sync.Mutex
	repo repository.ReputationDB
}

// NewEngine creates a reputation Engine.
func NewEngine(repo repository.ReputationDB) *Engine {
	return &Engine{repo: repo}
}

// Recalculate rebuilds all reputation rows and returns how many users were
// scored.
func (e *Engine) Recalculate(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	userIDs, err := e.repo.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("reputation: list users: %w", err)
	}
	reviewAggs, err := e.repo.AggregateReviewStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("reputation: aggregate reviews: %w", err)
	}
	dealAggs, err := e.repo.AggregateDealStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("reputation: aggregate deals: %w", err)
	}

	reviewByUser := make(map[string]repository.ReviewAggregate, len(reviewAggs))
	for _, agg := range reviewAggs {
		reviewByUser[agg.UserID] = agg
	}
	dealByUser := make(map[string]repository.DealAggregate, len(dealAggs))
	for _, agg := range dealAggs {
		dealByUser[agg.UserID] = agg
	}

	now := time.Now().UTC()
	reps := make([]*models.UserReputation, 0, len(userIDs))
	for _, userID := range userIDs {
		reps = append(reps, score(userID, reviewByUser[userID], dealByUser[userID], now))
	}

	assignDenseRanks(reps, func(r *models.UserReputation) int { return r.SellerScore },
		func(r *models.UserReputation, rank int) { r.SellerRank = rank })
	assignDenseRanks(reps, func(r *models.UserReputation) int { return r.BuyerScore },
		func(r *models.UserReputation, rank int) { r.BuyerRank = rank })

	for _, rep := range reps {
		if err := e.repo.UpsertReputation(ctx, rep); err != nil {
			return 0, fmt.Errorf("reputation: write row for user %s: %w", rep.UserID, err)
		}
	}
	return len(reps), nil
}

// Get returns a user's reputation row.
func (e *Engine) Get(ctx context.Context, userID string) (*models.UserReputation, error) {
	rep, err := e.repo.GetReputation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reputation: %w", err)
	}
	return rep, nil
}

func score(userID string, rev repository.ReviewAggregate, deal repository.DealAggregate, now time.Time) *models.UserReputation {
	return &models.UserReputation{
		UserID:         userID,
		ReviewCount:    rev.ReviewCount,
		PositiveCount:  rev.PositiveCount,
		NegativeCount:  rev.NegativeCount,
		CompletedSales: deal.CompletedSales,
		CompletedBuys:  deal.CompletedBuys,
		UnpaidCount:    deal.UnpaidCount,
		DisputeCount:   deal.DisputeCount,
		Score: rev.PositiveCount*10 - rev.NegativeCount*15 +
			deal.CompletedSales*2 + deal.CompletedBuys*1 -
			deal.UnpaidCount*20 - deal.DisputeCount*10,
		SellerScore: rev.PositiveCount*8 + deal.CompletedSales*2 -
			deal.UnpaidCount*20 - deal.DisputeCount*10,
		BuyerScore: rev.PositiveCount*4 + deal.CompletedBuys*1 -
			deal.DisputeCount*8,
		LastCalculatedAt: now,
	}
}

// assignDenseRanks gives rank 1 to the highest score with no gaps; equal
// scores share a rank. Assignment iterates by (score desc, userID asc) so
// ties resolve the same way on every run.
func assignDenseRanks(reps []*models.UserReputation, scoreOf func(*models.UserReputation) int, setRank func(*models.UserReputation, int)) {
	ordered := append([]*models.UserReputation(nil), reps...)
	sort.Slice(ordered, func(i, j int) bool {
		si, sj := scoreOf(ordered[i]), scoreOf(ordered[j])
		if si != sj {
			return si > sj
		}
		return ordered[i].UserID < ordered[j].UserID
	})

	rank := 0
	prev := 0
	for i, rep := range ordered {
		s := scoreOf(rep)
		if i == 0 || s != prev {
			rank++
			prev = s
		}
		setRank(rep, rank)
	}
}
