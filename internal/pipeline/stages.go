package pipeline

import (
	"context"
	"slices"
	"strings"

	"github.com/pageza/healthcoach/backend/internal/nutrition"
	"github.com/pageza/healthcoach/backend/internal/types"
)

// SpikeRisk is the glucose spike category derived from total carbohydrate.
type SpikeRisk string

const (
	SpikeRiskLow    SpikeRisk = "Low"
	SpikeRiskMedium SpikeRisk = "Medium"
	SpikeRiskHigh   SpikeRisk = "High"
)

// Carbohydrate band edges; each band includes its lower edge.
const (
	mediumRiskCarbs = 10
	highRiskCarbs   = 25
	ketoNetCarbsMax = 20
)

// Goals with dedicated feedback rules
const (
	GoalKeto           = "keto"
	GoalGlucoseControl = "glucose_control"
	GoalCholesterol    = "cholesterol"
)

// Feedback messages, in rule order
const (
	FeedbackKeto           = "Meal fits your ketogenic goal well."
	FeedbackGlucoseControl = "Meal is good for glucose control."
	FeedbackCholesterol    = "Consider using more plant-based fats for cholesterol control."
	FeedbackNotAvailable   = "Goal feedback not available."
)

const foodQuerySeparator = ", "

// ParsedMeal is the output of the parse stage.
type ParsedMeal struct {
	Request     types.MealLogRequest
	ParsedFoods []types.FoodItem
}

// NutritionAssessment is the output of the lookup stage.
type NutritionAssessment struct {
	ParsedMeal
	Summary types.NutritionSummary
}

// RiskAssessment is the output of the risk stage.
type RiskAssessment struct {
	NutritionAssessment
	SpikeRisk SpikeRisk
}

// MealAnalysis is the output of the feedback stage and of the pipeline.
type MealAnalysis struct {
	RiskAssessment
	GoalFeedback string
}

// Response converts the analysis to the HTTP response body
func (a MealAnalysis) Response() types.MealLogResponse {
	return types.MealLogResponse{
		NutritionSummary: a.Summary,
		SpikeRisk:        string(a.SpikeRisk),
		GoalFeedback:     a.GoalFeedback,
	}
}

// Parse passes the food items through unchanged. Unit conversion would go here.
func Parse(req types.MealLogRequest) ParsedMeal {
	req.Foods = slices.Clone(req.Foods)
	return ParsedMeal{
		Request:     req,
		ParsedFoods: slices.Clone(req.Foods),
	}
}

// BuildQuery joins the non-empty food names with ", ".
func BuildQuery(foods []types.FoodItem) string {
	names := make([]string, 0, len(foods))
	for _, food := range foods {
		if food.Item == "" {
			continue
		}
		names = append(names, food.Item)
	}
	return strings.Join(names, foodQuerySeparator)
}

// Summarize adds up the provider records. NetCarbs may be negative when
// fiber exceeds carbohydrate.
func Summarize(foods []nutrition.Food) types.NutritionSummary {
	var s types.NutritionSummary
	for _, f := range foods {
		s.Calories += f.Calories
		s.Protein += f.Protein
		s.Fat += f.TotalFat
		s.Carbs += f.TotalCarbohydrate
		s.Fiber += f.DietaryFiber
	}
	s.NetCarbs = s.Carbs - s.Fiber
	return s
}

// Lookup resolves the parsed foods into a nutrition summary using provider.
// The query is checked before any call is made.
func Lookup(ctx context.Context, provider nutrition.Provider, meal ParsedMeal) (NutritionAssessment, error) {
	query := BuildQuery(meal.ParsedFoods)
	if strings.TrimSpace(query) == "" {
		return NutritionAssessment{}, &nutrition.InvalidInputError{
			Query:  query,
			Reason: "no food item has a usable name",
		}
	}

	foods, err := provider.Lookup(ctx, query)
	if err != nil {
		return NutritionAssessment{}, err
	}

	return NutritionAssessment{
		ParsedMeal: meal,
		Summary:    Summarize(foods),
	}, nil
}

// ClassifyRisk maps total carbohydrate onto a spike risk band.
func ClassifyRisk(carbs float64) SpikeRisk {
	switch {
	case carbs < mediumRiskCarbs:
		return SpikeRiskLow
	case carbs < highRiskCarbs:
		return SpikeRiskMedium
	default:
		return SpikeRiskHigh
	}
}

// AssessRisk is the risk stage.
func AssessRisk(n NutritionAssessment) RiskAssessment {
	return RiskAssessment{
		NutritionAssessment: n,
		SpikeRisk:           ClassifyRisk(n.Summary.Carbs),
	}
}

// GoalFeedback picks the first matching rule for goal. Keto meals above the
// net carb limit and glucose control meals above Low risk get the default.
func GoalFeedback(goal string, netCarbs float64, risk SpikeRisk) string {
	goal = strings.ToLower(goal)
	switch {
	case goal == GoalKeto && netCarbs <= ketoNetCarbsMax:
		return FeedbackKeto
	case goal == GoalGlucoseControl && risk == SpikeRiskLow:
		return FeedbackGlucoseControl
	case goal == GoalCholesterol:
		return FeedbackCholesterol
	default:
		return FeedbackNotAvailable
	}
}

// Feedback is the feedback stage.
func Feedback(r RiskAssessment) MealAnalysis {
	return MealAnalysis{
		RiskAssessment: r,
		GoalFeedback:   GoalFeedback(r.Request.Goal, r.Summary.NetCarbs, r.SpikeRisk),
	}
}
