package extract

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vesasusuri/receipts-assistant/constants"
)

// Default keyword lists. Clothing is checked before food: the first list
// that matches wins.
var (
	defaultClothingTerms = []string{
		"shirt", "pants", "jeans", "dress", "shoes", "jacket", "coat",
		"clothes", "t-shirt",
	}
	defaultFoodTerms = []string{
		"bread", "milk", "egg", "cheese", "meat", "apple", "banana", "food",
		"pizza", "burger", "salad", "rice", "chicken", "beef", "fish",
		"vegetable", "fruit",
	}
)

// Categorizer classifies item names into the fixed category set by
// case-insensitive substring match. It carries no other state.
type Categorizer struct {
	clothing []string
	food     []string
}

// keywordsConfig is the shape of the optional YAML override file.
type keywordsConfig struct {
	Clothes []string `yaml:"clothes"`
	Food    []string `yaml:"food"`
}

// NewCategorizer returns a categorizer with the built-in keyword lists.
func NewCategorizer() *Categorizer {
	return &Categorizer{clothing: defaultClothingTerms, food: defaultFoodTerms}
}

// NewCategorizerFromFile loads keyword lists from a YAML file. Lists absent
// from the file keep their defaults.
func NewCategorizerFromFile(path string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var cfg keywordsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	c := NewCategorizer()
	if len(cfg.Clothes) > 0 {
		c.clothing = cfg.Clothes
	}
	if len(cfg.Food) > 0 {
		c.food = cfg.Food
	}
	return c, nil
}

// Categorize returns the category for an item name, defaulting to other.
func (c *Categorizer) Categorize(itemName string) constants.Category {
	lower := strings.ToLower(itemName)
	if containsAny(lower, c.clothing) {
		return constants.Clothes
	}
	if containsAny(lower, c.food) {
		return constants.Food
	}
	return constants.Other
}
