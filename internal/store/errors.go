package store

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrBatchRejected is the cause recorded when an insert inside a bulk batch
// reports no affected rows
var ErrBatchRejected = errors.New("batch rejected: insert affected no rows")

// StorageError is the only error kind returned by PizzaStore. Driver errors,
// row mapping failures and rejected batches are all wrapped in it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("pizza store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// wrapStorageError logs err and returns it as a *StorageError.
// Errors that already are a StorageError are returned unchanged.
func wrapStorageError(op string, err error) error {
	if err == nil {
		return nil
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	log.WithFields(logrus.Fields{
		"op":    op,
		"error": err.Error(),
	}).Error("Database operation failed")

	return &StorageError{Op: op, Err: err}
}
