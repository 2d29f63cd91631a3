package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/healthcoach/backend/internal/database"
	"github.com/pageza/healthcoach/backend/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.OpenCatalog(filepath.Join(t.TempDir(), "foods.db"))
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestSeedFoodsDefaults(t *testing.T) {
	db := setupDB(t)

	count, err := seedFoods(db, defaultFoods)
	require.NoError(t, err)
	assert.Equal(t, len(defaultFoods), count)

	var egg model.Food
	require.NoError(t, db.First(&egg, "name = ?", "egg").Error)
	assert.InDelta(t, 0.4, egg.Carbs, 1e-9)
}

func TestSeedFoodsUpserts(t *testing.T) {
	db := setupDB(t)

	_, err := seedFoods(db, []FoodData{{Name: "Toast", Carbs: 10}})
	require.NoError(t, err)
	_, err = seedFoods(db, []FoodData{{Name: "toast ", Carbs: 13.8}, {Name: " "}})
	require.NoError(t, err)

	var foods []model.Food
	require.NoError(t, db.Find(&foods).Error)
	require.Len(t, foods, 1)
	assert.Equal(t, "toast", foods[0].Name)
	assert.InDelta(t, 13.8, foods[0].Carbs, 1e-9)
}

func TestSeedFoodsLastDuplicateWins(t *testing.T) {
	db := setupDB(t)

	count, err := seedFoods(db, []FoodData{
		{Name: "apple", Carbs: 1},
		{Name: "banana", Carbs: 27},
		{Name: "Apple", Carbs: 25.1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var apple model.Food
	require.NoError(t, db.First(&apple, "name = ?", "apple").Error)
	assert.InDelta(t, 25.1, apple.Carbs, 1e-9)
}

func TestLoadFoods(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foods.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"kiwi","calories":42,"carbs":10.1,"fiber":2.1}]`), 0o600))

	foods, err := loadFoods(path)
	require.NoError(t, err)
	assert.Equal(t, []FoodData{{Name: "kiwi", Calories: 42, Carbs: 10.1, Fiber: 2.1}}, foods)

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = loadFoods(path)
	assert.Error(t, err)
}
