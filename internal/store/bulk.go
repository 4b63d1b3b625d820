package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizzeria-dao/internal/common"
	"github.com/franciscosanchezn/pizzeria-dao/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BulkResult describes what a BulkInsert committed. On failure it still
// reports the batches committed before the rejected one.
type BulkResult struct {
	Batches  int `json:"batches"`
	Inserted int `json:"inserted"`
}

// BulkInsert reads every pizza from source and inserts them in groups of the
// store's batch size. Each group runs in its own transaction: it is committed
// when every insert succeeds and rolled back as soon as one fails or affects
// no row, which also stops the import.
func (s *pizzaStore) BulkInsert(ctx context.Context, source PizzaSource) (BulkResult, error) {
	var result BulkResult

	pizzas, err := source.Pizzas(ctx)
	if err != nil {
		return result, wrapStorageError("bulk_insert", err)
	}

	batches, err := common.Partition(pizzas, s.batchSize)
	if err != nil {
		return result, wrapStorageError("bulk_insert", err)
	}
	if common.IsEmpty(batches) {
		log.Info("Bulk insert source is empty, nothing to insert")
		return result, nil
	}

	err = s.withConn(ctx, "bulk_insert", func(conn *gorm.DB) error {
		for i, batch := range batches {
			if err := insertBatch(conn, batch); err != nil {
				log.WithFields(logrus.Fields{
					"batch":      i + 1,
					"batches":    len(batches),
					"batch_size": len(batch),
				}).Warn("Batch rolled back")
				return fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
			}

			result.Batches++
			result.Inserted += len(batch)
			log.WithFields(logrus.Fields{
				"batch":      i + 1,
				"batches":    len(batches),
				"batch_size": len(batch),
			}).Info("Batch committed")
		}
		return nil
	})

	log.WithFields(logrus.Fields{
		"batches":  result.Batches,
		"inserted": result.Inserted,
	}).Info("Bulk insert finished")
	return result, err
}

// insertBatch inserts batch inside one transaction on conn
func insertBatch(conn *gorm.DB, batch []models.Pizza) error {
	tx := conn.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	for _, pizza := range batch {
		affected, err := insertPizza(tx, pizza)
		if err == nil && affected == 0 {
			err = fmt.Errorf("%w: code %s", ErrBatchRejected, pizza.Code)
		}
		if err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				return errors.Join(err, rbErr)
			}
			return err
		}
	}

	return tx.Commit().Error
}
