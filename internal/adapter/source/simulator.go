// internal/adapter/source/simulator.go

package source

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediawatch/internal/domain/monitor"
)

var simulatedSources = []string{
	"Twitter", "Facebook", "Reddit", "YouTube", "Instagram", "NewsWire", "BlogSpot",
}

var simulatedLocations = []string{
	"Jakarta", "Singapore", "London", "New York", "Online", "Global",
}

// simulatedTopics are sample post bodies spanning the fixed category set
var simulatedTopics = []string{
	"The election debate is heating up ahead of the campaign season.",
	"Tech stocks are surging after the latest AI software release.",
	"Flash flood hits several districts, residents evacuated overnight.",
	"New smartphone launch promises a big leap in battery technology.",
	"The conflict in the region keeps pushing oil prices higher.",
	"A new virus strain detected, health officials urge booster vaccines.",
	"The national team celebrates a winning streak in the friendly cup.",
	"New digital tax policy draws both praise and protest from startups.",
}

// Simulator fabricates a realistic-looking post batch per fetch. It stands
// in for real crawlers in demo deployments; production wires actual
// platform sources next to it.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator creates a simulated source seeded from the clock
func NewSimulator() *Simulator {
	return &Simulator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Name returns the source name
func (s *Simulator) Name() string {
	return "simulator"
}

// Fetch fabricates up to limit posts
func (s *Simulator) Fetch(ctx context.Context, limit int) ([]monitor.Post, error) {
	now := time.Now().UTC()

	posts := make([]monitor.Post, 0, limit)
	for i := 0; i < limit; i++ {
		platform := simulatedSources[s.rng.Intn(len(simulatedSources))]
		topic := simulatedTopics[s.rng.Intn(len(simulatedTopics))]
		noise := s.rng.Intn(9000) + 1000

		posts = append(posts, monitor.Post{
			ID:       uuid.New().String(),
			Source:   platform,
			Content:  fmt.Sprintf("%s [ID: %d] #trending #viral", topic, noise),
			URL:      fmt.Sprintf("https://%s.example.com/post/%d", strings.ToLower(platform), noise),
			Author:   fmt.Sprintf("user_%d", s.rng.Intn(900)+100),
			Location: simulatedLocations[s.rng.Intn(len(simulatedLocations))],
			Language: "en",
			PostedAt: now.Add(-time.Duration(s.rng.Intn(60)) * time.Minute),
			Tags:     []string{"trending", "viral", "monitoring"},
		})
	}

	return posts, nil
}
