package metadata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tvrenamer/tvrenamer/pkg/cache"
	"github.com/tvrenamer/tvrenamer/pkg/logger"
	"github.com/tvrenamer/tvrenamer/pkg/tmdb"
	"go.uber.org/zap"
)

// Resolver resolves show, season, and episode metadata through the lookup
// service. It owns its caches and counters; nothing here is ambient state.
// Cache entries live for the life of the process.
type Resolver struct {
	client tmdb.ClientInterface

	shows    *cache.Cache[string, Show]
	seasons  *cache.Cache[string, Season]
	episodes *cache.Cache[string, Episode]
	searches *cache.Cache[string, []Show]

	stats *tracker
}

// NewResolver creates a Resolver around the given lookup client.
func NewResolver(client tmdb.ClientInterface) *Resolver {
	return &Resolver{
		client:   client,
		shows:    cache.New[string, Show](),
		seasons:  cache.New[string, Season](),
		episodes: cache.New[string, Episode](),
		searches: cache.New[string, []Show](),
		stats:    newTracker(),
	}
}

// ResolveShow finds the best match for a show name. The first search candidate
// wins; picking among several candidates is the caller's concern, which can
// supply a concrete id to ResolveSeason and ResolveEpisode afterwards.
func (r *Resolver) ResolveShow(ctx context.Context, name string) (Show, error) {
	log := logger.FromCtx(ctx)
	key := strings.ToLower(strings.TrimSpace(name))

	start := time.Now()
	if show, ok := r.shows.Get(key); ok {
		r.stats.hit(KindShow, time.Since(start))
		log.Debugw("cache hit for show", "name", name)
		return show, nil
	}

	res, err := r.client.SearchTV(ctx, name)
	if err != nil {
		r.stats.miss(KindShow, time.Since(start))
		log.Errorw("show search failed", zap.Error(err), "name", name)
		return Show{}, fmt.Errorf("show %q: %w", name, ErrNotFound)
	}
	if len(res.Results) == 0 || res.Results[0] == nil || res.Results[0].ID == nil {
		r.stats.miss(KindShow, time.Since(start))
		return Show{}, fmt.Errorf("show %q: %w", name, ErrNotFound)
	}

	first := res.Results[0]
	det, err := r.client.SeriesDetails(ctx, *first.ID)
	if err != nil {
		r.stats.miss(KindShow, time.Since(start))
		log.Errorw("series details failed", zap.Error(err), "id", *first.ID)
		return Show{}, fmt.Errorf("show %q: %w", name, ErrNotFound)
	}

	show := projectShow(*first.ID, det)
	r.shows.Set(key, show)
	r.stats.miss(KindShow, time.Since(start))
	return show, nil
}

// SearchShows returns the candidate shows for a search term, most relevant
// first, so a caller can disambiguate explicitly.
func (r *Resolver) SearchShows(ctx context.Context, term string) ([]Show, error) {
	log := logger.FromCtx(ctx)
	key := strings.ToLower(strings.TrimSpace(term))

	start := time.Now()
	if shows, ok := r.searches.Get(key); ok {
		r.stats.hit(KindSearch, time.Since(start))
		log.Debugw("cache hit for search", "term", term)
		return shows, nil
	}

	res, err := r.client.SearchTV(ctx, term)
	if err != nil {
		r.stats.miss(KindSearch, time.Since(start))
		log.Errorw("show search failed", zap.Error(err), "term", term)
		return nil, fmt.Errorf("search %q: %w", term, ErrNotFound)
	}

	shows := make([]Show, 0, len(res.Results))
	for _, candidate := range res.Results {
		if candidate == nil {
			continue
		}
		shows = append(shows, projectSearchResult(candidate))
	}

	r.searches.Set(key, shows)
	r.stats.miss(KindSearch, time.Since(start))
	return shows, nil
}

// ResolveSeason returns the episode list for one season of a show.
func (r *Resolver) ResolveSeason(ctx context.Context, showID, season int) (Season, error) {
	log := logger.FromCtx(ctx)
	key := fmt.Sprintf("%d:%d", showID, season)

	start := time.Now()
	if s, ok := r.seasons.Get(key); ok {
		r.stats.hit(KindSeason, time.Since(start))
		log.Debugw("cache hit for season", "key", key)
		return s, nil
	}

	det, err := r.client.SeasonDetails(ctx, showID, season)
	if err != nil {
		r.stats.miss(KindSeason, time.Since(start))
		log.Errorw("season details failed", zap.Error(err), "key", key)
		return Season{}, fmt.Errorf("season %s: %w", key, ErrNotFound)
	}

	s := projectSeason(season, det)
	r.seasons.Set(key, s)
	r.stats.miss(KindSeason, time.Since(start))
	return s, nil
}

// ResolveEpisode returns one episode of one season of a show.
func (r *Resolver) ResolveEpisode(ctx context.Context, showID, season, episode int) (Episode, error) {
	log := logger.FromCtx(ctx)
	key := fmt.Sprintf("%d:%d:%d", showID, season, episode)

	start := time.Now()
	if e, ok := r.episodes.Get(key); ok {
		r.stats.hit(KindEpisode, time.Since(start))
		log.Debugw("cache hit for episode", "key", key)
		return e, nil
	}

	det, err := r.client.EpisodeDetails(ctx, showID, season, episode)
	if err != nil {
		r.stats.miss(KindEpisode, time.Since(start))
		log.Errorw("episode details failed", zap.Error(err), "key", key)
		return Episode{}, fmt.Errorf("episode %s: %w", key, ErrNotFound)
	}

	e := projectEpisode(season, episode, det)
	r.episodes.Set(key, e)
	r.stats.miss(KindEpisode, time.Since(start))
	return e, nil
}

// Stats returns a point-in-time snapshot of lookup and cache counters.
func (r *Resolver) Stats() Stats {
	return r.stats.snapshot()
}
