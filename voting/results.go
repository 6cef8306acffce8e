// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-poll/models"
)

// Aggregator reduces a poll's votes to per-option tallies.
type Aggregator struct {
	repo PollRepository
}

func NewAggregator(repo PollRepository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Aggregate returns one row per option in position order, zero-vote options
// included, with the total vote count. A missing poll is ErrPollNotFound,
// never an empty result.
func (a *Aggregator) Aggregate(ctx context.Context, pollID string) (*models.Results, error) {
	poll, err := a.repo.FindPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("%w: find poll: %w", ErrPersistence, err)
	}
	if poll == nil {
		return nil, ErrPollNotFound
	}

	options, err := a.repo.FindOptionsByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("%w: find options: %w", ErrPersistence, err)
	}
	counts, err := a.repo.CountVotesByOption(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("%w: count votes: %w", ErrPersistence, err)
	}

	rows, total := tally(options, counts)
	return &models.Results{
		Poll:       *poll,
		Results:    rows,
		TotalVotes: total,
	}, nil
}

// tally keeps the order of options. Counts for ids not among options are ignored.
func tally(options []models.Option, counts map[string]int) ([]models.ResultRow, int) {
	rows := make([]models.ResultRow, 0, len(options))
	total := 0
	for _, opt := range options {
		count := counts[opt.ID]
		total += count
		rows = append(rows, models.ResultRow{
			OptionID:   opt.ID,
			OptionText: opt.Text,
			VoteCount:  count,
		})
	}
	for i := range rows {
		rows[i].Percentage = Percentage(rows[i].VoteCount, total)
	}
	return rows, total
}

// Percentage rounds count/total*100 half-up to an integer, or 0 when total is 0.
// Each option is rounded on its own, so a poll's percentages need not sum to 100.
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return (count*200 + total) / (2 * total)
}
