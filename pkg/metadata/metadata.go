package metadata

import (
	"errors"

	"github.com/tvrenamer/tvrenamer/pkg/tmdb"
)

// Kind identifies which entity kind a lookup or cache entry belongs to.
type Kind string

const (
	KindShow    Kind = "show"
	KindSeason  Kind = "season"
	KindEpisode Kind = "episode"
	KindSearch  Kind = "search"
)

// ErrNotFound is returned when the lookup service has no matching entity or
// the external call failed. Callers decide whether to retry.
var ErrNotFound = errors.New("metadata not found")

// overviewLimit bounds how much provider text is kept in a cache entry.
const overviewLimit = 200

// Show is the trimmed projection of a provider series response.
type Show struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"originalName"`
	FirstAirDate string `json:"firstAirDate"`
	Overview     string `json:"overview"`
}

// SeasonEpisode is one episode row inside a season projection.
type SeasonEpisode struct {
	EpisodeNumber int    `json:"episodeNumber"`
	Name          string `json:"name"`
	AirDate       string `json:"airDate"`
}

// Season is the trimmed projection of a provider season response.
type Season struct {
	SeasonNumber int             `json:"seasonNumber"`
	Episodes     []SeasonEpisode `json:"episodes"`
}

// Episode is the trimmed projection of a provider episode response.
type Episode struct {
	Name          string `json:"name"`
	AirDate       string `json:"airDate"`
	EpisodeNumber int    `json:"episodeNumber"`
	SeasonNumber  int    `json:"seasonNumber"`
	Overview      string `json:"overview"`
}

func projectShow(id int, det *tmdb.SeriesDetails) Show {
	s := Show{ID: id}
	if det.ID != nil {
		s.ID = *det.ID
	}
	s.Name = deref(det.Name)
	s.OriginalName = deref(det.OriginalName)
	s.FirstAirDate = deref(det.FirstAirDate)
	s.Overview = truncate(deref(det.Overview))
	return s
}

func projectSearchResult(res *tmdb.TVResult) Show {
	s := Show{}
	if res.ID != nil {
		s.ID = *res.ID
	}
	s.Name = deref(res.Name)
	s.OriginalName = deref(res.OriginalName)
	s.FirstAirDate = deref(res.FirstAirDate)
	s.Overview = truncate(deref(res.Overview))
	return s
}

func projectSeason(seasonNumber int, det *tmdb.SeasonDetails) Season {
	s := Season{SeasonNumber: seasonNumber}
	if det.SeasonNumber != nil {
		s.SeasonNumber = *det.SeasonNumber
	}
	for _, ep := range det.Episodes {
		if ep == nil {
			continue
		}
		row := SeasonEpisode{Name: deref(ep.Name), AirDate: deref(ep.AirDate)}
		if ep.EpisodeNumber != nil {
			row.EpisodeNumber = *ep.EpisodeNumber
		}
		s.Episodes = append(s.Episodes, row)
	}
	return s
}

func projectEpisode(season, episode int, det *tmdb.EpisodeDetails) Episode {
	e := Episode{SeasonNumber: season, EpisodeNumber: episode}
	if det.SeasonNumber != nil {
		e.SeasonNumber = *det.SeasonNumber
	}
	if det.EpisodeNumber != nil {
		e.EpisodeNumber = *det.EpisodeNumber
	}
	e.Name = deref(det.Name)
	e.AirDate = deref(det.AirDate)
	e.Overview = truncate(deref(det.Overview))
	return e
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= overviewLimit {
		return s
	}
	return string(runes[:overviewLimit])
}
