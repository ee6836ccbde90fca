package store

import (
	"context"

	"github.com/noah-isme/elitebuilders-client/internal/dto"
	"github.com/noah-isme/elitebuilders-client/internal/models"
)

// ChallengeFilters narrows the next challenge listing.
type ChallengeFilters struct {
	ActiveOnly  bool    `json:"active_only"`
	SponsorID   *string `json:"sponsor_id"`
	SeasonID    *string `json:"season_id"`
	SearchQuery string  `json:"search_query"`
}

// DefaultChallengeFilters lists active challenges only.
func DefaultChallengeFilters() ChallengeFilters {
	return ChallengeFilters{ActiveOnly: true}
}

func (f ChallengeFilters) query() dto.ChallengeQuery {
	return dto.ChallengeQuery{
		ActiveOnly:  f.ActiveOnly,
		SponsorID:   f.SponsorID,
		SeasonID:    f.SeasonID,
		SearchQuery: f.SearchQuery,
	}
}

// FilterChange sets one filter field.
type FilterChange interface {
	apply(ChallengeFilters) ChallengeFilters
}

// ActiveOnly sets the active-only flag.
type ActiveOnly bool

// SponsorID sets the sponsor filter. An empty value clears it.
type SponsorID string

// SeasonID sets the season filter. An empty value clears it.
type SeasonID string

// SearchQuery sets the free-text search.
type SearchQuery string

func (v ActiveOnly) apply(f ChallengeFilters) ChallengeFilters {
	f.ActiveOnly = bool(v)
	return f
}

func (v SponsorID) apply(f ChallengeFilters) ChallengeFilters {
	f.SponsorID = optionalString(string(v))
	return f
}

func (v SeasonID) apply(f ChallengeFilters) ChallengeFilters {
	f.SeasonID = optionalString(string(v))
	return f
}

func (v SearchQuery) apply(f ChallengeFilters) ChallengeFilters {
	f.SearchQuery = string(v)
	return f
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// ChallengeState holds the challenge listings.
type ChallengeState struct {
	Challenges            []models.Challenge `json:"challenges"`
	CurrentChallenge      *models.Challenge  `json:"current_challenge"`
	RecommendedChallenges []models.Challenge `json:"recommended_challenges"`
	Loading               bool               `json:"loading"`
	Error                 string             `json:"error,omitempty"`
	Filters               ChallengeFilters   `json:"filters"`

	inFlight int
}

var fetchChallengesThunk = AsyncThunk[struct{}, []models.Challenge]{
	TypePrefix:     PrefixFetchChallenges,
	DefaultMessage: "Failed to fetch challenges",
	Run: func(ctx context.Context, _ struct{}, api ThunkAPI) ([]models.Challenge, error) {
		filters := api.GetState().Challenges.Filters
		return api.Services.Challenges.GetChallenges(ctx, filters.query())
	},
}

var fetchChallengeByIDThunk = AsyncThunk[string, models.Challenge]{
	TypePrefix:     PrefixFetchChallengeByID,
	DefaultMessage: "Failed to fetch challenge",
	Run: func(ctx context.Context, id string, api ThunkAPI) (models.Challenge, error) {
		return api.Services.Challenges.GetChallengeByID(ctx, id)
	},
}

var fetchRecommendedChallengesThunk = AsyncThunk[struct{}, []models.Challenge]{
	TypePrefix:     PrefixFetchRecommendedChallenges,
	DefaultMessage: "Failed to fetch recommended challenges",
	Run: func(ctx context.Context, _ struct{}, api ThunkAPI) ([]models.Challenge, error) {
		return api.Services.Challenges.GetRecommendedChallenges(ctx)
	},
}

// FetchChallenges lists challenges using the filters held when the request is sent.
func (s *Store) FetchChallenges(ctx context.Context) *Task[[]models.Challenge] {
	return fetchChallengesThunk.Start(ctx, s, struct{}{})
}

// FetchChallengeByID loads one challenge into currentChallenge.
func (s *Store) FetchChallengeByID(ctx context.Context, id string) *Task[models.Challenge] {
	return fetchChallengeByIDThunk.Start(ctx, s, id)
}

// FetchRecommendedChallenges expects a signed-in session; the store does not check it.
func (s *Store) FetchRecommendedChallenges(ctx context.Context) *Task[[]models.Challenge] {
	return fetchRecommendedChallengesThunk.Start(ctx, s, struct{}{})
}

// SetFilter changes one filter field without fetching.
func (s *Store) SetFilter(change FilterChange) {
	s.Dispatch(Action{Type: ActionChallengesSetFilter, Payload: change})
}

// ClearFilters restores the default filters (active only).
func (s *Store) ClearFilters() {
	s.Dispatch(Action{Type: ActionChallengesClearFilters})
}

// ClearChallenges empties the list and the current challenge.
func (s *Store) ClearChallenges() {
	s.Dispatch(Action{Type: ActionChallengesClear})
}

func challengeReducer(state ChallengeState, action Action) ChallengeState {
	switch action.Type {
	case ActionChallengesSetFilter:
		if change, ok := action.Payload.(FilterChange); ok && change != nil {
			state.Filters = change.apply(state.Filters)
		}
		return state
	case ActionChallengesClearFilters:
		state.Filters = DefaultChallengeFilters()
		return state
	case ActionChallengesClear:
		state.Challenges = nil
		state.CurrentChallenge = nil
		return state
	}

	for _, prefix := range []string{PrefixFetchChallenges, PrefixFetchChallengeByID, PrefixFetchRecommendedChallenges} {
		phase, ok := hasPrefix(action, prefix)
		if !ok {
			continue
		}

		switch phase {
		case phasePending:
			state.inFlight = begin(state.inFlight)
			state.Error = ""
		case phaseFulfilled:
			state.inFlight = end(state.inFlight)
			switch payload := action.Payload.(type) {
			case []models.Challenge:
				if prefix == PrefixFetchChallenges {
					state.Challenges = payload
				} else {
					state.RecommendedChallenges = payload
				}
			case models.Challenge:
				state.CurrentChallenge = &payload
			}
		case phaseRejected:
			state.inFlight = end(state.inFlight)
			state.Error = action.Error
		}
		state.Loading = state.inFlight > 0
		return state
	}
	return state
}

// SelectChallenges returns the fetched challenge list.
func SelectChallenges(state RootState) []models.Challenge { return state.Challenges.Challenges }

// SelectCurrentChallenge returns the challenge being viewed.
func SelectCurrentChallenge(state RootState) *models.Challenge {
	return state.Challenges.CurrentChallenge
}

// SelectRecommendedChallenges returns the recommended list.
func SelectRecommendedChallenges(state RootState) []models.Challenge {
	return state.Challenges.RecommendedChallenges
}

// SelectChallengeLoading reports whether a challenge fetch is in flight.
func SelectChallengeLoading(state RootState) bool { return state.Challenges.Loading }

// SelectChallengeError returns the last challenge rejection message.
func SelectChallengeError(state RootState) string { return state.Challenges.Error }

// SelectChallengeFilters returns the active filters.
func SelectChallengeFilters(state RootState) ChallengeFilters { return state.Challenges.Filters }
