package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthcoach/backend/internal/nutrition"
	"github.com/pageza/healthcoach/backend/internal/types"
)

func breakfast() types.MealLogRequest {
	return types.MealLogRequest{
		MealName: "Breakfast",
		Foods:    []types.FoodItem{{Item: "egg", Quantity: 2, Unit: "pcs"}},
		Goal:     "keto",
	}
}

func newNutritionixServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestExecutorRunBreakfast(t *testing.T) {
	ts := newNutritionixServer(t, `{"foods":[{"food_name":"egg","nf_calories":150,"nf_protein":12,"nf_total_fat":10,"nf_total_carbohydrate":1,"nf_dietary_fiber":0}]}`)
	client, err := nutrition.NewClient(nutrition.Config{AppID: "id", AppKey: "key", URL: ts.URL})
	require.NoError(t, err)

	analysis, err := NewExecutor(client).Run(context.Background(), breakfast())
	require.NoError(t, err)

	assert.Equal(t, types.MealLogResponse{
		NutritionSummary: types.NutritionSummary{
			Calories: 150,
			Protein:  12,
			Fat:      10,
			Carbs:    1,
			Fiber:    0,
			NetCarbs: 1,
		},
		SpikeRisk:    "Low",
		GoalFeedback: "Meal fits your ketogenic goal well.",
	}, analysis.Response())
	assert.Equal(t, "Breakfast", analysis.Request.MealName)
}

func TestExecutorRunIsDeterministic(t *testing.T) {
	provider := &fakeProvider{foods: []nutrition.Food{
		{Name: "rice", Calories: 200, Protein: 4, TotalFat: 0.4, TotalCarbohydrate: 45, DietaryFiber: 0.6},
		{Name: "beans", Calories: 110, Protein: 7, TotalFat: 0.5, TotalCarbohydrate: 20, DietaryFiber: 6},
	}}
	executor := NewExecutor(provider)
	req := types.MealLogRequest{
		MealName: "Dinner",
		Foods:    []types.FoodItem{{Item: "rice"}, {Item: "beans"}},
		Goal:     "glucose_control",
	}

	first, err := executor.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := executor.Run(context.Background(), req)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first.Response())
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second.Response())
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
	assert.Equal(t, SpikeRiskHigh, first.SpikeRisk)
	assert.Equal(t, FeedbackNotAvailable, first.GoalFeedback)
}

func TestExecutorRunInvalidInput(t *testing.T) {
	provider := &fakeProvider{}

	_, err := NewExecutor(provider).Run(context.Background(), types.MealLogRequest{
		MealName: "Nothing",
		Foods:    []types.FoodItem{{Item: ""}},
		Goal:     "keto",
	})

	require.Error(t, err)
	assert.True(t, nutrition.IsInvalidInput(err))
	assert.True(t, strings.HasPrefix(err.Error(), "lookup: "))
	assert.Empty(t, provider.queries)
}

func TestExecutorRunUpstreamFailure(t *testing.T) {
	provider := &fakeProvider{err: &nutrition.UpstreamError{StatusCode: http.StatusUnauthorized, Body: `{"message":"unauthorized"}`}}

	analysis, err := NewExecutor(provider).Run(context.Background(), breakfast())

	require.Error(t, err)
	var upstream *nutrition.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "unauthorized")
	assert.Equal(t, MealAnalysis{}, analysis)
}
