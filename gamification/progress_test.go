// gamification/progress_test.go
package gamification

import (
	"testing"

	"greenmorph/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.Achievement {
	return []models.Achievement{
		{ID: 1, Name: "first post", ConditionType: models.ConditionPostCount, ConditionValue: 1, Points: 5},
		{ID: 2, Name: "ten likes", ConditionType: models.ConditionLikesReceived, ConditionValue: 10, Points: 20},
		{ID: 3, Name: "ten comments", ConditionType: models.ConditionCommentCount, ConditionValue: 10, Points: 20},
		{ID: 4, Name: "first project", ConditionType: models.ConditionProjectCount, ConditionValue: 1, Points: 10},
	}
}

func TestEvaluateProgressMapsEachConditionType(t *testing.T) {
	counters := ActivityCounters{
		PostsCount:         1,
		TotalLikesReceived: 5,
		CommentsCount:      0,
		ProjectsCount:      2,
	}

	views, err := EvaluateProgress(counters, testCatalog())
	require.NoError(t, err)
	require.Len(t, views, 4)

	assert.Equal(t, 100, views[0].ProgressPercentage)
	assert.Equal(t, StatusAchieved, views[0].Status)

	assert.Equal(t, 50, views[1].ProgressPercentage)
	assert.Equal(t, StatusLocked, views[1].Status)

	assert.Equal(t, 0, views[2].ProgressPercentage)

	// Over-completion clamps to the target
	assert.Equal(t, int64(1), views[3].Progress)
	assert.Equal(t, 100, views[3].ProgressPercentage)
}

func TestEvaluateProgressClampsOverCompletion(t *testing.T) {
	counters := ActivityCounters{TotalLikesReceived: 47}
	catalog := []models.Achievement{
		{ID: 1, ConditionType: models.ConditionLikesReceived, ConditionValue: 10},
	}

	views, err := EvaluateProgress(counters, catalog)
	require.NoError(t, err)
	assert.Equal(t, 100, views[0].ProgressPercentage)
	assert.Equal(t, int64(10), views[0].Progress)
}

func TestEvaluateProgressRejectsUnknownCondition(t *testing.T) {
	catalog := []models.Achievement{
		{ID: 1, ConditionType: "login_streak", ConditionValue: 7},
	}

	_, err := EvaluateProgress(ActivityCounters{}, catalog)
	require.ErrorIs(t, err, ErrUnsupportedCondition)
}

// Percentage never decreases when counters only grow.
func TestEvaluateProgressMonotonic(t *testing.T) {
	catalog := testCatalog()
	prev := make([]int, len(catalog))

	for posts := int64(0); posts <= 15; posts++ {
		counters := ActivityCounters{
			PostsCount:         posts,
			TotalLikesReceived: posts * 2,
			CommentsCount:      posts,
			ProjectsCount:      posts,
		}
		views, err := EvaluateProgress(counters, catalog)
		require.NoError(t, err)
		for i, v := range views {
			assert.GreaterOrEqual(t, v.ProgressPercentage, prev[i])
			prev[i] = v.ProgressPercentage
		}
	}
}

func TestEvaluateProgressRoundsPercentage(t *testing.T) {
	counters := ActivityCounters{CommentsCount: 1}
	catalog := []models.Achievement{
		{ID: 1, ConditionType: models.ConditionCommentCount, ConditionValue: 3},
	}

	views, err := EvaluateProgress(counters, catalog)
	require.NoError(t, err)
	// 100 * 1/3 rounds to 33
	assert.Equal(t, 33, views[0].ProgressPercentage)
}
