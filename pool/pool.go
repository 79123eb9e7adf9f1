// Package pool defines the map pools whose rotation is watched.
package pool

import "strings"

// Pool is a named map pool. Title carries two display lines separated by
// a newline: a headline and a subtitle.
type Pool struct {
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`
}

// Lines splits the title into its headline and subtitle. A title without a
// newline yields an empty subtitle.
func (p Pool) Lines() (headline, subtitle string) {
	headline, subtitle, _ = strings.Cut(p.Title, "\n")
	return headline, subtitle
}

// Default returns the Bed Wars pools in display order.
func Default() []Pool {
	return []Pool{
		{Key: "BEDWARS_8TEAMS_SLOW", Title: "8 Teams\nLong & Tactical"},
		{Key: "BEDWARS_8TEAMS_FAST", Title: "8 Teams\nQuick & Rushy"},
		{Key: "BEDWARS_4TEAMS_SLOW", Title: "4 Teams\nLong & Tactical"},
		{Key: "BEDWARS_4TEAMS_FAST", Title: "4 Teams\nQuick & Rushy"},
	}
}

// Keys returns the pool keys in order.
func Keys(pools []Pool) []string {
	keys := make([]string, len(pools))
	for i, p := range pools {
		keys[i] = p.Key
	}
	return keys
}
