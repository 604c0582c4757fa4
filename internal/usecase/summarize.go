package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-card/internal/domain"
)

// maxLanguages is how many languages the card shows.
const maxLanguages = 3

// Summarize derives AggregatedStats from a repository list and an externally counted commit total.
// It is a pure function: weekdays are evaluated in loc, and nothing else is consulted.
func Summarize(repos []domain.RepositorySummary, commits int, loc *time.Location) domain.AggregatedStats {
	if loc == nil {
		loc = time.UTC
	}
	result := domain.AggregatedStats{
		TotalRepos:   len(repos),
		TotalCommits: commits,
	}

	var dayCount [7]int
	starCounts := make([]int, 0, len(repos))
	for _, repo := range repos {
		result.TotalStars += repo.Stars
		result.TotalForks += repo.Forks
		starCounts = append(starCounts, repo.Stars)
		if !repo.PushedAt.IsZero() {
			dayCount[repo.PushedAt.In(loc).Weekday()]++
		}
	}

	result.MostActiveDay = domain.Weekdays[mostActiveWeekday(dayCount)]
	result.TopLanguages = topLanguages(repos, maxLanguages)
	result.Stars = starDistribution(starCounts)
	return result
}

// mostActiveWeekday returns the index with the highest count. Ties go to the lowest index,
// so an empty histogram yields Sunday.
func mostActiveWeekday(counts [7]int) time.Weekday {
	best := 0
	for day := 1; day < len(counts); day++ {
		if counts[day] > counts[best] {
			best = day
		}
	}
	return time.Weekday(best)
}

type languageCount struct {
	name  string
	count int
}

// topLanguages ranks languages by repository count. Equal counts keep the order in which the
// languages first appear in repos.
func topLanguages(repos []domain.RepositorySummary, limit int) string {
	index := make(map[string]int)
	var ranked []languageCount
	for _, repo := range repos {
		if repo.Language == nil || *repo.Language == "" {
			continue
		}
		lang := *repo.Language
		i, seen := index[lang]
		if !seen {
			i = len(ranked)
			index[lang] = i
			ranked = append(ranked, languageCount{name: lang})
		}
		ranked[i].count++
	}
	if len(ranked) == 0 {
		return domain.NoLanguages
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	names := make([]string, len(ranked))
	for i, lc := range ranked {
		names[i] = lc.name
	}
	return strings.Join(names, ", ")
}

func starDistribution(starCounts []int) domain.StarDistribution {
	data := stats.LoadRawData(starCounts)
	if data.Len() == 0 {
		return domain.StarDistribution{}
	}
	mean, _ := stats.Mean(data)
	mean, _ = stats.Round(mean, 2)
	median, _ := stats.Median(data)
	maxStars, _ := stats.Max(data)
	return domain.StarDistribution{Mean: mean, Median: median, Max: maxStars}
}
