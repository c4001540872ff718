package videos_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/fitness/profile"
	"github.com/2beens/fittrack/internal/fitness/videos"
)

func TestCatalog_ForLevel(t *testing.T) {
	catalog := videos.NewCatalog(videos.DefaultVideos, 1024*1024)

	beginner := catalog.ForLevel(fitness.LevelBeginner)
	advanced := catalog.ForLevel(fitness.LevelAdvanced)
	require.Len(t, beginner, len(videos.DefaultVideos))
	require.Len(t, advanced, len(videos.DefaultVideos))

	for i := range beginner {
		assert.Equal(t, beginner[i].ID, advanced[i].ID)
		assert.LessOrEqual(t, beginner[i].Sets, advanced[i].Sets)
		assert.Equal(t, float64(beginner[i].Sets)*beginner[i].CaloriesPerSet, beginner[i].TotalCalories)
		assert.Equal(t, fitness.LevelAdvanced, advanced[i].Level)
	}

	squats := catalog.ForLevel(fitness.LevelIntermediate)[0]
	assert.Equal(t, videos.Entry{
		ID:             1,
		Title:          "Bodyweight Squats",
		URL:            "https://videos.fittrack.app/squats.mp4",
		Level:          fitness.LevelIntermediate,
		Sets:           3,
		CaloriesPerSet: 8,
		TotalCalories:  24,
	}, squats)
}

func TestCatalog_JSONForLevel_Cached(t *testing.T) {
	catalog := videos.NewCatalog(videos.DefaultVideos, 1024*1024)
	assert.Zero(t, catalog.CachedLevels())

	first, err := catalog.JSONForLevel(fitness.LevelBeginner)
	require.NoError(t, err)
	second, err := catalog.JSONForLevel(fitness.LevelBeginner)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), catalog.CachedLevels())

	var entries []videos.Entry
	require.NoError(t, json.Unmarshal(first, &entries))
	assert.Equal(t, catalog.ForLevel(fitness.LevelBeginner), entries)
}

func TestHandler_HandleList(t *testing.T) {
	profiles := profile.NewMemoryRepo()
	profiles.Put(profile.Profile{UserID: 9, Level: fitness.LevelAdvanced})
	editor := profile.NewEditor(profiles, nil, fitness.NewCalendar(nil, nil))
	handler := videos.NewHandler(videos.NewCatalog(videos.DefaultVideos, 1024*1024), editor)

	req := httptest.NewRequest("GET", "/videos", nil)
	req = req.WithContext(auth.WithSession(req.Context(), &auth.Session{UserID: 9}))
	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var entries []videos.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, fitness.LevelAdvanced, e.Level)
	}
}
