// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// NoLanguages is rendered in place of the language list when no repository reports one.
const NoLanguages = "NONE"

// Weekdays lists day names in Sunday-first order, matching time.Weekday.
var Weekdays = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// Profile is the public GitHub account record for a username.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name,omitempty"`
	Followers   int       `json:"followers"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
	Location    string    `json:"location,omitempty"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio,omitempty"`
	Blog        string    `json:"blog,omitempty"`
}

// Region returns the first segment of the comma-delimited location.
func (p Profile) Region() string {
	for i := 0; i < len(p.Location); i++ {
		if p.Location[i] == ',' {
			return p.Location[:i]
		}
	}
	return p.Location
}

// RepositorySummary holds the per-repository fields needed for aggregation.
// Language is nil when GitHub could not detect one.
type RepositorySummary struct {
	Name     string    `json:"name"`
	Stars    int       `json:"stargazers_count"`
	Forks    int       `json:"forks_count"`
	Language *string   `json:"language"`
	PushedAt time.Time `json:"pushed_at"`
}

// StarDistribution describes how stars are spread across repositories.
type StarDistribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// AggregatedStats holds the metrics derived from a profile's repositories.
// It is the core domain entity of this application.
type AggregatedStats struct {
	TotalRepos    int              `json:"total_repos"`
	TotalStars    int              `json:"total_stars"`
	TotalForks    int              `json:"total_forks"`
	MostActiveDay string           `json:"most_active_day"`
	TopLanguages  string           `json:"top_languages"`
	TotalCommits  int              `json:"total_commits"`
	Stars         StarDistribution `json:"star_distribution"`

	// CommitsUnavailable is set when GitHub refused the commit search; TotalCommits is then 0.
	CommitsUnavailable bool `json:"commits_unavailable,omitempty"`
}

// Result is the record handed to the card: the profile and its derived stats.
type Result struct {
	Profile Profile         `json:"user"`
	Stats   AggregatedStats `json:"stats"`
}
