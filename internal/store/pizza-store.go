package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/franciscosanchezn/pizzeria-dao/internal/common"
	"github.com/franciscosanchezn/pizzeria-dao/internal/models"
	"gorm.io/gorm"
)

var log = common.NewLogger()

// DefaultBatchSize is the number of rows BulkInsert commits together
const DefaultBatchSize = 3

const (
	selectAllSQL    = "SELECT * FROM PIZZA"
	selectByCodeSQL = "SELECT * FROM PIZZA WHERE CODE = ?"
	insertSQL       = "INSERT INTO PIZZA (CODE, NOM, PRIX, CATEGORIE) VALUES (?, ?, ?, ?)"
	updateSQL       = "UPDATE PIZZA SET CODE = ?, NOM = ?, PRIX = ?, CATEGORIE = ? WHERE CODE = ?"
	deleteSQL       = "DELETE FROM PIZZA WHERE CODE = ?"
)

// PizzaStore provides CRUD access to the PIZZA table.
// Every method fails with a *StorageError.
type PizzaStore interface {
	// ListAll returns every stored pizza in result-set order
	ListAll(ctx context.Context) ([]models.Pizza, error)
	// FindByCode returns the pizza with the given code, false when absent
	FindByCode(ctx context.Context, code string) (models.Pizza, bool, error)
	// Create inserts a pizza, the ID is assigned by the database
	Create(ctx context.Context, pizza models.Pizza) error
	// Update overwrites the row matching code and returns the affected row count.
	// An unknown code is not an error, it affects 0 rows.
	Update(ctx context.Context, code string, pizza models.Pizza) (int64, error)
	// Delete removes the row matching code and returns the affected row count
	Delete(ctx context.Context, code string) (int64, error)
	// ListSortedByCategory returns every pizza, stably sorted by category
	ListSortedByCategory(ctx context.Context) ([]models.Pizza, error)
	// MaxByPrice returns the most expensive pizza, false when there are none
	MaxByPrice(ctx context.Context) (models.Pizza, bool, error)
	// BulkInsert inserts every pizza of source, committing in batches
	BulkInsert(ctx context.Context, source PizzaSource) (BulkResult, error)
}

// pizzaStore is the gorm-backed implementation of PizzaStore
type pizzaStore struct {
	db        *gorm.DB
	batchSize int
}

// NewPizzaStore creates a PizzaStore. A batchSize <= 0 selects DefaultBatchSize.
func NewPizzaStore(db *gorm.DB, batchSize int) PizzaStore {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &pizzaStore{db: db, batchSize: batchSize}
}

// withConn runs fn on a dedicated connection which is released on every
// exit path. Any error is translated into a *StorageError.
func (s *pizzaStore) withConn(ctx context.Context, op string, fn func(conn *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Connection(fn)
	return wrapStorageError(op, err)
}

func (s *pizzaStore) ListAll(ctx context.Context) ([]models.Pizza, error) {
	pizzas := []models.Pizza{}
	err := s.withConn(ctx, "list_all", func(conn *gorm.DB) error {
		return conn.Raw(selectAllSQL).Scan(&pizzas).Error
	})
	if err != nil {
		return nil, err
	}

	log.WithField("count", len(pizzas)).Debug("Pizzas listed")
	return pizzas, nil
}

func (s *pizzaStore) FindByCode(ctx context.Context, code string) (models.Pizza, bool, error) {
	var pizzas []models.Pizza
	err := s.withConn(ctx, "find_by_code", func(conn *gorm.DB) error {
		return conn.Raw(selectByCodeSQL, code).Scan(&pizzas).Error
	})
	if err != nil {
		return models.Pizza{}, false, err
	}
	if len(pizzas) == 0 {
		return models.Pizza{}, false, nil
	}
	return pizzas[0], true, nil
}

func (s *pizzaStore) Create(ctx context.Context, pizza models.Pizza) error {
	return s.withConn(ctx, "create", func(conn *gorm.DB) error {
		_, err := insertPizza(conn, pizza)
		return err
	})
}

// insertPizza executes the parameterized insert shared by Create and BulkInsert
func insertPizza(conn *gorm.DB, pizza models.Pizza) (int64, error) {
	category, err := pizza.Category.Value()
	if err != nil {
		return 0, err
	}
	result := conn.Exec(insertSQL, pizza.Code, pizza.Name, pizza.Price, category)
	return result.RowsAffected, result.Error
}

func (s *pizzaStore) Update(ctx context.Context, code string, pizza models.Pizza) (int64, error) {
	var affected int64
	err := s.withConn(ctx, "update", func(conn *gorm.DB) error {
		category, err := pizza.Category.Value()
		if err != nil {
			return err
		}
		result := conn.Exec(updateSQL, pizza.Code, pizza.Name, pizza.Price, category, code)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, err
	}

	if affected == 0 {
		log.WithField("code", code).Warn("Update matched no pizza")
	}
	return affected, nil
}

func (s *pizzaStore) Delete(ctx context.Context, code string) (int64, error) {
	var affected int64
	err := s.withConn(ctx, "delete", func(conn *gorm.DB) error {
		result := conn.Exec(deleteSQL, code)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (s *pizzaStore) ListSortedByCategory(ctx context.Context) ([]models.Pizza, error) {
	pizzas, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(pizzas, func(a, b models.Pizza) int {
		return a.Category.Compare(b.Category)
	})
	return pizzas, nil
}

func (s *pizzaStore) MaxByPrice(ctx context.Context) (models.Pizza, bool, error) {
	pizzas, err := s.ListAll(ctx)
	if err != nil {
		return models.Pizza{}, false, err
	}
	if len(pizzas) == 0 {
		return models.Pizza{}, false, nil
	}

	// MaxFunc keeps the first of several equally priced pizzas
	return slices.MaxFunc(pizzas, func(a, b models.Pizza) int {
		return cmp.Compare(a.Price, b.Price)
	}), true, nil
}
