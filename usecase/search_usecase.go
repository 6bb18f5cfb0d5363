package usecase

import (
	"context"
	"strings"

	"campus-connect-server/domain/entity"
	"campus-connect-server/domain/repository"

	"golang.org/x/sync/errgroup"
)

// SearchLimit 每类结果的上限
const SearchLimit = 5

// SearchUseCase 顶栏搜索
type SearchUseCase struct {
	clubs  repository.ClubRepository
	events repository.EventRepository
}

func NewSearchUseCase(clubs repository.ClubRepository, events repository.EventRepository) *SearchUseCase {
	return &SearchUseCase{clubs: clubs, events: events}
}

// SearchResult 搜索结果
type SearchResult struct {
	Clubs  []entity.ClubSummary  `json:"clubs"`
	Events []entity.EventSummary `json:"events"`
}

// Search 社团名和活动标题并发查询，任一失败整体失败
// 空查询直接返回空结果
func (uc *SearchUseCase) Search(ctx context.Context, query string) (*SearchResult, error) {
	result := &SearchResult{
		Clubs:  []entity.ClubSummary{},
		Events: []entity.EventSummary{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clubs, err := uc.clubs.SearchApproved(gctx, query, SearchLimit)
		if err != nil {
			return err
		}
		if clubs != nil {
			result.Clubs = clubs
		}
		return nil
	})
	g.Go(func() error {
		events, err := uc.events.SearchPublished(gctx, query, SearchLimit)
		if err != nil {
			return err
		}
		if events != nil {
			result.Events = events
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
