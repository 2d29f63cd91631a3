package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthcoach/backend/internal/nutrition"
	"github.com/pageza/healthcoach/backend/internal/types"
)

type fakeProvider struct {
	foods   []nutrition.Food
	err     error
	queries []string
}

func (f *fakeProvider) Lookup(ctx context.Context, query string) ([]nutrition.Food, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.foods, nil
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		carbs    float64
		expected SpikeRisk
	}{
		{0, SpikeRiskLow},
		{9.99, SpikeRiskLow},
		{10, SpikeRiskMedium},
		{24.9, SpikeRiskMedium},
		{25, SpikeRiskHigh},
		{120, SpikeRiskHigh},
		{-3, SpikeRiskLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyRisk(tt.carbs), "carbs=%v", tt.carbs)
	}
}

func TestGoalFeedback(t *testing.T) {
	tests := []struct {
		name     string
		goal     string
		netCarbs float64
		risk     SpikeRisk
		expected string
	}{
		{"keto within limit", "keto", 15, SpikeRiskHigh, FeedbackKeto},
		{"keto at limit", "keto", 20, SpikeRiskLow, FeedbackKeto},
		{"keto over limit", "keto", 20.5, SpikeRiskLow, FeedbackNotAvailable},
		{"keto is case insensitive", "KeTo", 3, SpikeRiskLow, FeedbackKeto},
		{"glucose control low risk", "glucose_control", 40, SpikeRiskLow, FeedbackGlucoseControl},
		{"glucose control medium risk", "glucose_control", 5, SpikeRiskMedium, FeedbackNotAvailable},
		{"cholesterol ignores macros", "Cholesterol", 100, SpikeRiskHigh, FeedbackCholesterol},
		{"unknown goal", "bulking", 0, SpikeRiskLow, FeedbackNotAvailable},
		{"empty goal", "", 0, SpikeRiskLow, FeedbackNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GoalFeedback(tt.goal, tt.netCarbs, tt.risk))
		})
	}
}

func TestBuildQuery(t *testing.T) {
	foods := []types.FoodItem{
		{Item: ""},
		{Item: "egg", Quantity: 2, Unit: "pcs"},
		{Item: "toast"},
	}
	assert.Equal(t, "egg, toast", BuildQuery(foods))
	assert.Equal(t, "", BuildQuery(nil))
}

func TestParseDoesNotAliasInput(t *testing.T) {
	req := types.MealLogRequest{
		MealName: "Lunch",
		Foods:    []types.FoodItem{{Item: "rice", Quantity: 1, Unit: "cup"}},
		Goal:     "keto",
	}

	parsed := Parse(req)
	require.Equal(t, req.Foods, parsed.ParsedFoods)

	parsed.ParsedFoods[0].Item = "changed"
	assert.Equal(t, "rice", req.Foods[0].Item)
	assert.Equal(t, "rice", parsed.Request.Foods[0].Item)
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]nutrition.Food{
		{Calories: 100, Protein: 5, TotalFat: 2, TotalCarbohydrate: 20, DietaryFiber: 3},
		{Calories: 50, Protein: 1, TotalFat: 1, TotalCarbohydrate: 4, DietaryFiber: 1},
	})

	assert.Equal(t, types.NutritionSummary{
		Calories: 150,
		Protein:  6,
		Fat:      3,
		Carbs:    24,
		Fiber:    4,
		NetCarbs: 20,
	}, summary)
}

func TestSummarizeAllowsNegativeNetCarbs(t *testing.T) {
	summary := Summarize([]nutrition.Food{{TotalCarbohydrate: 2, DietaryFiber: 5}})
	assert.Equal(t, float64(-3), summary.NetCarbs)
}

func TestLookupSkipsEmptyNames(t *testing.T) {
	provider := &fakeProvider{foods: []nutrition.Food{{Name: "egg", Calories: 70}}}
	meal := Parse(types.MealLogRequest{Foods: []types.FoodItem{{Item: ""}, {Item: "egg"}}})

	assessed, err := Lookup(context.Background(), provider, meal)
	require.NoError(t, err)
	assert.Equal(t, []string{"egg"}, provider.queries)
	assert.Equal(t, float64(70), assessed.Summary.Calories)
}

func TestLookupRejectsUnusableNamesBeforeCalling(t *testing.T) {
	provider := &fakeProvider{}
	meal := Parse(types.MealLogRequest{Foods: []types.FoodItem{{Item: ""}}})

	_, err := Lookup(context.Background(), provider, meal)
	require.Error(t, err)
	assert.True(t, nutrition.IsInvalidInput(err))
	assert.Empty(t, provider.queries)
}
