package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/healthcoach/backend/internal/database"
	"github.com/pageza/healthcoach/backend/internal/logger"
	"github.com/pageza/healthcoach/backend/internal/model"
)

// FoodData is one catalog entry as read from a seed file
type FoodData struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
}

// Values are per common serving, matching what Nutritionix returns for the
// bare food name.
var defaultFoods = []FoodData{
	{Name: "egg", Calories: 71.5, Protein: 6.3, Fat: 4.8, Carbs: 0.4, Fiber: 0},
	{Name: "toast", Calories: 75, Protein: 2.6, Fat: 1, Carbs: 13.8, Fiber: 0.8},
	{Name: "bacon", Calories: 43.3, Protein: 3, Fat: 3.3, Carbs: 0.1, Fiber: 0},
	{Name: "avocado", Calories: 321.6, Protein: 4, Fat: 29.5, Carbs: 17.1, Fiber: 13.5},
	{Name: "banana", Calories: 105, Protein: 1.3, Fat: 0.4, Carbs: 27, Fiber: 3.1},
	{Name: "apple", Calories: 94.6, Protein: 0.5, Fat: 0.3, Carbs: 25.1, Fiber: 4.4},
	{Name: "white rice", Calories: 205.4, Protein: 4.3, Fat: 0.4, Carbs: 44.5, Fiber: 0.6},
	{Name: "chicken breast", Calories: 198, Protein: 37.2, Fat: 4.3, Carbs: 0, Fiber: 0},
	{Name: "salmon", Calories: 468, Protein: 50.2, Fat: 27.9, Carbs: 0, Fiber: 0},
	{Name: "broccoli", Calories: 54.6, Protein: 3.7, Fat: 0.6, Carbs: 11.2, Fiber: 5.1},
	{Name: "oatmeal", Calories: 166.4, Protein: 5.9, Fat: 3.6, Carbs: 28.1, Fiber: 4},
	{Name: "olive oil", Calories: 119.3, Protein: 0, Fat: 13.5, Carbs: 0, Fiber: 0},
	{Name: "butter", Calories: 101.8, Protein: 0.1, Fat: 11.5, Carbs: 0, Fiber: 0},
	{Name: "almonds", Calories: 164.3, Protein: 6, Fat: 14.2, Carbs: 6.1, Fiber: 3.5},
	{Name: "orange juice", Calories: 111.6, Protein: 1.7, Fat: 0.5, Carbs: 25.8, Fiber: 0.5},
}

func main() {
	dsn := flag.String("dsn", os.Getenv("CATALOG_DSN"), "catalog database DSN (postgres URL or sqlite path)")
	file := flag.String("file", "", "optional JSON file with an array of foods to seed instead of the built-in list")
	flag.Parse()

	logger.Setup(os.Stdout, os.Getenv("LOG_LEVEL"), false)

	if *dsn == "" {
		slog.Error("no catalog DSN: set CATALOG_DSN or pass -dsn")
		os.Exit(1)
	}

	foods := defaultFoods
	if *file != "" {
		var err error
		if foods, err = loadFoods(*file); err != nil {
			slog.Error("failed to read seed file", "file", *file, "error", err)
			os.Exit(1)
		}
	}

	db, err := database.OpenCatalog(*dsn)
	if err != nil {
		slog.Error("failed to open catalog", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to migrate catalog", "error", err)
		os.Exit(1)
	}

	count, err := seedFoods(db, foods)
	if err != nil {
		slog.Error("failed to seed foods", "error", err)
		os.Exit(1)
	}
	slog.Info("seeded food catalog", "foods", count)
}

func loadFoods(path string) ([]FoodData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var foods []FoodData
	if err := json.Unmarshal(data, &foods); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return foods, nil
}

// seedFoods upserts foods by name so reseeding updates nutrient values
func seedFoods(db *gorm.DB, foods []FoodData) (int, error) {
	// A later entry for the same name replaces the earlier one.
	var order []string
	byName := make(map[string]FoodData, len(foods))
	for _, f := range foods {
		name := model.NormalizeFoodName(f.Name)
		if name == "" {
			continue
		}
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = f
	}

	records := make([]model.Food, 0, len(order))
	for _, name := range order {
		f := byName[name]
		records = append(records, model.Food{
			Name:     name,
			Calories: f.Calories,
			Protein:  f.Protein,
			Fat:      f.Fat,
			Carbs:    f.Carbs,
			Fiber:    f.Fiber,
		})
	}
	if len(records) == 0 {
		return 0, nil
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "fat", "carbs", "fiber", "updated_at"}),
	}).Create(&records).Error
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
