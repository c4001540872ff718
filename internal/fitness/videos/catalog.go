package videos

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/fitness"
)

// Video is one exercise video of the static catalog. Sets are given per level.
type Video struct {
	ID             int
	Title          string
	URL            string
	CaloriesPerSet float64
	Sets           map[fitness.Level]int
}

// Entry is a video adjusted to a level.
type Entry struct {
	ID             int           `json:"id"`
	Title          string        `json:"title"`
	URL            string        `json:"url"`
	Level          fitness.Level `json:"level"`
	Sets           int           `json:"sets"`
	CaloriesPerSet float64       `json:"calories_per_set"`
	TotalCalories  float64       `json:"total_calories"`
}

func sets(beginner, intermediate, advanced int) map[fitness.Level]int {
	return map[fitness.Level]int{
		fitness.LevelBeginner:     beginner,
		fitness.LevelIntermediate: intermediate,
		fitness.LevelAdvanced:     advanced,
	}
}

// DefaultVideos is a placeholder catalog used until real video hosting is configured.
var DefaultVideos = []Video{
	{ID: 1, Title: "Bodyweight Squats", URL: "https://videos.fittrack.app/squats.mp4", CaloriesPerSet: 8, Sets: sets(2, 3, 5)},
	{ID: 2, Title: "Push-Ups", URL: "https://videos.fittrack.app/push-ups.mp4", CaloriesPerSet: 7, Sets: sets(2, 3, 4)},
	{ID: 3, Title: "Jumping Jacks", URL: "https://videos.fittrack.app/jumping-jacks.mp4", CaloriesPerSet: 10, Sets: sets(3, 4, 6)},
	{ID: 4, Title: "Lunges", URL: "https://videos.fittrack.app/lunges.mp4", CaloriesPerSet: 9, Sets: sets(2, 3, 4)},
	{ID: 5, Title: "Plank Hold", URL: "https://videos.fittrack.app/plank.mp4", CaloriesPerSet: 5, Sets: sets(2, 3, 4)},
	{ID: 6, Title: "Burpees", URL: "https://videos.fittrack.app/burpees.mp4", CaloriesPerSet: 15, Sets: sets(1, 3, 5)},
	{ID: 7, Title: "Mountain Climbers", URL: "https://videos.fittrack.app/mountain-climbers.mp4", CaloriesPerSet: 12, Sets: sets(2, 3, 5)},
	{ID: 8, Title: "Glute Bridges", URL: "https://videos.fittrack.app/glute-bridges.mp4", CaloriesPerSet: 6, Sets: sets(2, 3, 4)},
}

// Catalog serves the static video table. The rendered JSON per level is kept in
// a freecache so repeated requests skip marshalling.
type Catalog struct {
	videos []Video
	cache  *freecache.Cache
}

func NewCatalog(videos []Video, cacheSizeBytes int) *Catalog {
	return &Catalog{
		videos: videos,
		cache:  freecache.NewCache(cacheSizeBytes),
	}
}

func (c *Catalog) ForLevel(level fitness.Level) []Entry {
	entries := make([]Entry, 0, len(c.videos))
	for _, v := range c.videos {
		n := v.Sets[level]
		entries = append(entries, Entry{
			ID:             v.ID,
			Title:          v.Title,
			URL:            v.URL,
			Level:          level,
			Sets:           n,
			CaloriesPerSet: v.CaloriesPerSet,
			TotalCalories:  float64(n) * v.CaloriesPerSet,
		})
	}
	return entries
}

// JSONForLevel returns the rendered catalog for level.
func (c *Catalog) JSONForLevel(level fitness.Level) ([]byte, error) {
	key := []byte("videos||" + level.String())
	if cached, err := c.cache.Get(key); err == nil {
		return cached, nil
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Errorf("videos cache get [%s]: %s", level, err)
	}

	rendered, err := json.Marshal(c.ForLevel(level))
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}

	// static content, never expires
	if err := c.cache.Set(key, rendered, 0); err != nil {
		log.Errorf("videos cache set [%s]: %s", level, err)
	}

	return rendered, nil
}

// CachedLevels reports how many levels have a rendered catalog in the cache.
func (c *Catalog) CachedLevels() int64 {
	return c.cache.EntryCount()
}
