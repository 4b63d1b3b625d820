package store

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/franciscosanchezn/pizzeria-dao/internal/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// PizzaSource supplies the pizzas consumed by BulkInsert
type PizzaSource interface {
	Pizzas(ctx context.Context) ([]models.Pizza, error)
}

// StaticSource serves a fixed list of pizzas
type StaticSource []models.Pizza

func (s StaticSource) Pizzas(ctx context.Context) ([]models.Pizza, error) {
	return slices.Clone(s), nil
}

// CatalogSource serves the pizzeria's built-in menu
type CatalogSource struct{}

var catalog = []models.Pizza{
	{Code: "PEP", Name: "Pépéroni", Price: 12.50, Category: models.CategoryMeat},
	{Code: "MAR", Name: "Margherita", Price: 14.00, Category: models.CategoryVegetarian},
	{Code: "REIN", Name: "La Reine", Price: 11.50, Category: models.CategoryMeat},
	{Code: "FRO", Name: "La 4 fromages", Price: 12.00, Category: models.CategoryVegetarian},
	{Code: "CAN", Name: "La cannibale", Price: 12.50, Category: models.CategoryMeat},
	{Code: "SAV", Name: "La savoyarde", Price: 13.00, Category: models.CategoryMeat},
	{Code: "ORI", Name: "L'orientale", Price: 13.50, Category: models.CategoryMeat},
	{Code: "SAU", Name: "La saumonée", Price: 14.50, Category: models.CategoryFish},
}

func (CatalogSource) Pizzas(ctx context.Context) ([]models.Pizza, error) {
	return slices.Clone(catalog), nil
}

// pizzaRecord is one entry of a catalogue file
type pizzaRecord struct {
	Code     string  `yaml:"code" validate:"required,max=10"`
	Name     string  `yaml:"name" validate:"required,max=255"`
	Price    float64 `yaml:"price" validate:"gte=0"`
	Category string  `yaml:"category" validate:"required"`
}

var validate = validator.New()

// FileSource reads a catalogue file: a YAML (or JSON) list of records with
// code, name, price and category keys
type FileSource struct {
	Path string
}

func (s FileSource) Pizzas(ctx context.Context) ([]models.Pizza, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}

	var records []pizzaRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalogue %s: %w", s.Path, err)
	}

	pizzas := make([]models.Pizza, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, record := range records {
		if err := validate.Struct(record); err != nil {
			return nil, fmt.Errorf("catalogue record %d: %w", i+1, err)
		}
		if first, ok := seen[record.Code]; ok {
			return nil, fmt.Errorf("catalogue record %d: code %s already used by record %d", i+1, record.Code, first)
		}
		seen[record.Code] = i + 1

		category, err := models.ParseCategory(record.Category)
		if err != nil {
			return nil, fmt.Errorf("catalogue record %d: %w", i+1, err)
		}
		pizzas = append(pizzas, models.Pizza{
			Code:     record.Code,
			Name:     record.Name,
			Price:    record.Price,
			Category: category,
		})
	}

	log.WithField("path", s.Path).WithField("count", len(pizzas)).Debug("Catalogue loaded")
	return pizzas, nil
}
