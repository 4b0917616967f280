package naming

import (
	"regexp"
	"strconv"
	"strings"
)

// ResultKind describes what a filename parse produced.
type ResultKind int

const (
	// NoMatch means no known pattern recognized the filename.
	NoMatch ResultKind = iota
	// Matched means a show name, season, and episode were all extracted.
	Matched
	// MatchedEpisodeOnly means an episode number and title segment were
	// extracted but the season must be supplied by the caller's show context.
	MatchedEpisodeOnly
)

// ParseResult is the outcome of matching a filename against the pattern list.
type ParseResult struct {
	Kind     ResultKind
	ShowName string
	Season   int
	Episode  int
}

// namePattern is a named regular expression to try when extracting show
// information from a filename. Group 1 is always the show name.
type namePattern struct {
	name         string
	regex        *regexp.Regexp
	seasonGroup  int
	episodeGroup int
}

// showPatterns are tried in order after the episode-only form; the first match
// wins. A later pattern is never consulted once an earlier one matches, even
// when it would have produced a better name.
var showPatterns = []namePattern{
	{
		// Show.Name.S01E02 or Show.Name.S1E02
		name:         "season_episode",
		regex:        regexp.MustCompile(`(?i)^(.*?)[. _]S0?(\d{1,2})E(\d{1,2})`),
		seasonGroup:  2,
		episodeGroup: 3,
	},
	{
		// Show.Name.1x02 or Show.Name.01x02
		name:         "season_x_episode",
		regex:        regexp.MustCompile(`(?i)^(.*?)[. _]0?(\d{1,2})x(\d{1,2})`),
		seasonGroup:  2,
		episodeGroup: 3,
	},
	{
		// Show.Name.102; first digit is the season, next two the episode.
		// Ambiguous for shows with ten or more seasons.
		name:         "bare_digits",
		regex:        regexp.MustCompile(`(?i)^(.*?)[. _](\d)(\d{2})\D`),
		seasonGroup:  2,
		episodeGroup: 3,
	},
	{
		// Show.Name.Season.1.Episode.02
		name:         "verbose",
		regex:        regexp.MustCompile(`(?i)^(.*?)[. _]Season[. _]0?(\d{1,2})[. _]Episode[. _](\d{1,2})`),
		seasonGroup:  2,
		episodeGroup: 3,
	},
	{
		// Show.Name.E02.S01, episode before season
		name:         "episode_first",
		regex:        regexp.MustCompile(`(?i)^(.*?)[. _]E(\d{1,2})[. _]S0?(\d{1,2})`),
		seasonGroup:  3,
		episodeGroup: 2,
	},
}

var (
	// 01 - Title [tags].ext
	episodeOnlyRegex = regexp.MustCompile(`(?i)^(\d{1,2})[. _]-[. _](.*?)(?:\[.*?\])*\..*$`)
	seasonTokenRegex = regexp.MustCompile(`(?i)season[. _](\d+)`)
	bracketTagRegex  = regexp.MustCompile(`\[.*?\]`)
)

// Parse matches filename against the known episode filename patterns in fixed
// priority order. The episode-only leading-number form is tried first; when it
// carries no embedded "season N" token the result is MatchedEpisodeOnly and the
// season is left for the caller to fill in from its show context.
func Parse(filename string) ParseResult {
	if m := episodeOnlyRegex.FindStringSubmatch(filename); m != nil {
		episode, err := strconv.Atoi(m[1])
		if err == nil {
			title := strings.TrimSpace(m[2])

			season := 0
			if sm := seasonTokenRegex.FindStringSubmatch(title); sm != nil {
				season, _ = strconv.Atoi(sm[1])
			}

			show := cleanShowName(title)
			if season == 0 {
				return ParseResult{Kind: MatchedEpisodeOnly, ShowName: show, Episode: episode}
			}
			return ParseResult{Kind: Matched, ShowName: show, Season: season, Episode: episode}
		}
	}

	for _, p := range showPatterns {
		m := p.regex.FindStringSubmatch(filename)
		if m == nil {
			continue
		}

		season, err := strconv.Atoi(m[p.seasonGroup])
		if err != nil {
			continue
		}
		episode, err := strconv.Atoi(m[p.episodeGroup])
		if err != nil {
			continue
		}

		show := cleanShowName(strings.ReplaceAll(m[1], ".", " "))
		return ParseResult{Kind: Matched, ShowName: show, Season: season, Episode: episode}
	}

	return ParseResult{Kind: NoMatch}
}

// cleanShowName strips bracketed tag groups, truncates at the first hyphen,
// and trims the remaining whitespace.
func cleanShowName(raw string) string {
	name := bracketTagRegex.ReplaceAllString(raw, "")
	name, _, _ = strings.Cut(name, "-")
	return strings.TrimSpace(name)
}

// episodeNumberPatterns are tried in order by ExtractEpisodeNumber; first
// match wins.
var episodeNumberPatterns = []*regexp.Regexp{
	// E01, e1
	regexp.MustCompile(`(?i)E(\d{1,2})`),
	// leading "01 - "
	regexp.MustCompile(`^(\d{1,2})[. _]-`),
	// 1x01
	regexp.MustCompile(`(?i)x(\d{1,2})`),
	// bare two digits followed by a non-digit or the end
	regexp.MustCompile(`(\d{2})(?:\D|$)`),
}

// ExtractEpisodeNumber pulls an episode number alone out of a filename. It is
// used once a show and season are already fixed by an explicit selection, so
// the full show name does not need to be re-derived.
func ExtractEpisodeNumber(filename string) (int, bool) {
	for _, re := range episodeNumberPatterns {
		m := re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}

		episode, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return episode, true
	}

	return 0, false
}
