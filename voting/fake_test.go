// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
)

// memRepo is an in-memory PollRepository with per-method fault injection.
type memRepo struct {
	mu      sync.Mutex
	polls   map[string]models.Poll
	options map[string]models.Option
	votes   map[string]*models.Vote
	nextID  int

	errFindPoll    error
	errFindOptions error
	errBelongs     error
	errFindVote    error
	errInsert      error
	errUpdate      error
	errCount       error

	// beforeInsert runs inside InsertVote before the uniqueness check,
	// standing in for a concurrent request that wins the race.
	beforeInsert func(r *memRepo)
	// hideVotes makes FindVote miss rows that exist.
	hideVotes bool

	inserts int
	updates int
}

func newMemRepo() *memRepo {
	return &memRepo{
		polls:   map[string]models.Poll{},
		options: map[string]models.Option{},
		votes:   map[string]*models.Vote{},
	}
}

func (r *memRepo) addPoll(id string, optionTexts ...string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polls[id] = models.Poll{ID: id, Title: "Poll " + id, IsPublic: true, CreatedAt: time.Now()}
	ids := make([]string, 0, len(optionTexts))
	for i, text := range optionTexts {
		optID := fmt.Sprintf("%s-opt-%d", id, i+1)
		r.options[optID] = models.Option{ID: optID, PollID: id, Text: text, Position: i + 1}
		ids = append(ids, optID)
	}
	return ids
}

// storeVote adds a row without any checks. Caller holds no lock.
func (r *memRepo) storeVote(pollID, optionID string, identity models.Identity) *models.Vote {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.storeVoteLocked(pollID, optionID, identity)
}

func (r *memRepo) storeVoteLocked(pollID, optionID string, identity models.Identity) *models.Vote {
	r.nextID++
	v := &models.Vote{
		ID:        fmt.Sprintf("vote-%d", r.nextID),
		PollID:    pollID,
		OptionID:  optionID,
		CreatedAt: time.Now(),
	}
	if identity.IsAnonymous() {
		ip := identity.IPAddress
		v.IPAddress = &ip
	} else {
		user := identity.UserID
		v.UserID = &user
	}
	r.votes[v.ID] = v
	return v
}

func (r *memRepo) findLocked(pollID string, identity models.Identity) *models.Vote {
	for _, v := range r.votes {
		if v.PollID == pollID && v.Identity() == identity {
			return v
		}
	}
	return nil
}

func (r *memRepo) voteCount(pollID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.votes {
		if v.PollID == pollID {
			n++
		}
	}
	return n
}

func (r *memRepo) FindPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	if r.errFindPoll != nil {
		return nil, r.errFindPoll
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[pollID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memRepo) FindOptionsByPoll(ctx context.Context, pollID string) ([]models.Option, error) {
	if r.errFindOptions != nil {
		return nil, r.errFindOptions
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	opts := make([]models.Option, 0)
	for pos := 1; ; pos++ {
		found := false
		for _, o := range r.options {
			if o.PollID == pollID && o.Position == pos {
				opts = append(opts, o)
				found = true
			}
		}
		if !found {
			return opts, nil
		}
	}
}

func (r *memRepo) OptionBelongsToPoll(ctx context.Context, optionID, pollID string) (bool, error) {
	if r.errBelongs != nil {
		return false, r.errBelongs
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.options[optionID]
	return ok && o.PollID == pollID, nil
}

func (r *memRepo) FindVote(ctx context.Context, pollID string, identity models.Identity) (*models.Vote, error) {
	if r.errFindVote != nil {
		return nil, r.errFindVote
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hideVotes {
		return nil, nil
	}
	if v := r.findLocked(pollID, identity); v != nil {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) InsertVote(ctx context.Context, pollID, optionID string, identity models.Identity) (*models.Vote, error) {
	if r.errInsert != nil {
		return nil, r.errInsert
	}
	if r.beforeInsert != nil {
		hook := r.beforeInsert
		r.beforeInsert = nil
		hook(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findLocked(pollID, identity) != nil {
		return nil, models.ErrDuplicateVote
	}
	r.inserts++
	cp := *r.storeVoteLocked(pollID, optionID, identity)
	return &cp, nil
}

func (r *memRepo) UpdateVoteOption(ctx context.Context, voteID, optionID string) error {
	if r.errUpdate != nil {
		return r.errUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.votes[voteID]
	if !ok {
		return models.ErrVoteNotFound
	}
	v.OptionID = optionID
	r.updates++
	return nil
}

func (r *memRepo) CountVotesByOption(ctx context.Context, pollID string) (map[string]int, error) {
	if r.errCount != nil {
		return nil, r.errCount
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int{}
	for _, v := range r.votes {
		if v.PollID == pollID {
			counts[v.OptionID]++
		}
	}
	return counts, nil
}
