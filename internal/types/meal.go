package types

// FoodItem is a single food entry of a logged meal. Quantity and Unit are
// carried through the pipeline but lookups are by Item text only.
type FoodItem struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// MealLogRequest represents the request body for logging a meal
type MealLogRequest struct {
	MealName string     `json:"meal_name"`
	Foods    []FoodItem `json:"foods"`
	Goal     string     `json:"goal"`
}

// NutritionSummary holds the aggregate macros of a meal
type NutritionSummary struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	NetCarbs float64 `json:"net_carbs"`
}

// MealLogResponse represents the response body for a logged meal
type MealLogResponse struct {
	NutritionSummary NutritionSummary `json:"nutrition_summary"`
	SpikeRisk        string           `json:"spike_risk"`
	GoalFeedback     string           `json:"goal_feedback"`
}
