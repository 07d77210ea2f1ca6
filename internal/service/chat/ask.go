package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

const needsLocationMessage = "Which area are you interested in? Name a city, harbor or club."

// ResolveIntent classifies text. It never fails.
func (s *Service) ResolveIntent(ctx context.Context, text string) domain.Intent {
	return s.classifier.Classify(ctx, text)
}

// Ask classifies the question and runs the matching query. A sailor search
// with no results is re-resolved as a club, boat or regatta. Unknown questions
// answer with the database status.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, domain.NewValidationError("query", "required")
	}

	in := s.ResolveIntent(ctx, question)
	in, data, err := s.answer(ctx, in)
	if err != nil {
		return Answer{}, err
	}

	s.log.InfoContext(ctx, "question answered",
		slog.String("query_type", in.Type.String()),
	)

	return Answer{
		Success:   true,
		QueryType: in.Type,
		Intent:    in,
		Data:      data,
	}, nil
}

// answer runs in and returns the intent that was finally answered.
func (s *Service) answer(ctx context.Context, in domain.Intent) (domain.Intent, any, error) {
	switch in.Type {
	case domain.IntentSailorSearch:
		return s.answerSailor(ctx, in)
	case domain.IntentBoatSearch:
		results, err := s.search.Search(ctx, domain.SearchCriteria{BoatName: in.Name})
		if err != nil {
			return in, nil, fmt.Errorf("boat search: %w", err)
		}
		return in, BoatData{BoatName: in.Name, Results: results}, nil
	case domain.IntentClubSkippers:
		data, err := s.clubData(ctx, in.ClubName, nil)
		return in, data, err
	case domain.IntentTopSailors:
		limit := s.limitOr(in.Limit)
		results, err := s.reports.TopSailors(ctx, in.YachtClub, limit)
		if err != nil {
			return in, nil, err
		}
		return in, TopSailorsData{YachtClub: in.YachtClub, Limit: limit, Results: results}, nil
	case domain.IntentRegattaResults:
		results, err := s.reports.RegattaResults(ctx, in.RegattaName)
		if err != nil {
			return in, nil, err
		}
		return in, RegattaData{RegattaName: in.RegattaName, Results: results}, nil
	case domain.IntentRegattaCount:
		results, err := s.reports.RegattaCount(ctx, in.Year)
		if err != nil {
			return in, nil, err
		}
		return in, RegattaCountData{Year: in.Year, Count: len(results), Results: results}, nil
	case domain.IntentRegattaStats:
		report, err := s.reports.RegattaStats(ctx, in.Metric)
		return in, report, err
	case domain.IntentRegattaSearch:
		results, err := s.reports.SearchRegattas(ctx, in.Year, in.DateRange, in.Limit)
		if err != nil {
			return in, nil, err
		}
		return in, RegattaSearchData{Year: in.Year, DateRange: in.DateRange, Results: results}, nil
	case domain.IntentTopClubs:
		limit := s.limitOr(in.Limit)
		results, err := s.reports.TopClubs(ctx, limit)
		if err != nil {
			return in, nil, err
		}
		return in, TopClubsData{Limit: limit, Results: results}, nil
	case domain.IntentMostActiveSailor:
		sailor, err := s.reports.MostActiveSailor(ctx)
		if err != nil {
			return in, nil, err
		}
		return in, MostActiveData{Sailor: sailor}, nil
	case domain.IntentLocationQuery:
		return s.answerLocation(ctx, in)
	}

	// database_status, unknown and anything unrecognised.
	sum, err := s.reports.DatabaseStatus(ctx)
	return in, sum, err
}

func (s *Service) answerSailor(ctx context.Context, in domain.Intent) (domain.Intent, any, error) {
	results, err := s.search.Search(ctx, domain.SearchCriteria{Skipper: in.Name})
	if err != nil {
		return in, nil, fmt.Errorf("sailor search: %w", err)
	}
	if len(results) > 0 {
		return in, SailorData{Skipper: in.Name, Results: results}, nil
	}

	res, err := s.resolver.Resolve(ctx, in)
	if err != nil {
		return in, nil, err
	}
	if !res.Resolved() {
		return in, SailorData{Skipper: in.Name, Results: results}, nil
	}

	if res.Intent.Type == domain.IntentClubSkippers {
		data, err := s.clubData(ctx, res.Intent.ClubName, res.ClubSummary)
		return res.Intent, data, err
	}
	return s.answer(ctx, res.Intent)
}

func (s *Service) clubData(ctx context.Context, club string, summary *domain.ClubSummary) (ClubData, error) {
	results, err := s.reports.ClubSkippers(ctx, club)
	if err != nil {
		return ClubData{}, err
	}
	return ClubData{ClubName: club, Results: results, Summary: summary}, nil
}

func (s *Service) answerLocation(ctx context.Context, in domain.Intent) (domain.Intent, any, error) {
	loc := strings.TrimSpace(in.Location)
	if in.NeedsLocation || loc == "" {
		return in, LocationData{
			NeedsLocation: true,
			Message:       needsLocationMessage,
			Results:       []domain.ResultRecord{},
		}, nil
	}

	results, err := s.search.Search(ctx, domain.SearchCriteria{Location: loc})
	if err != nil {
		return in, nil, fmt.Errorf("location search: %w", err)
	}
	return in, LocationData{Location: loc, Results: results}, nil
}

func (s *Service) limitOr(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	return limit
}
