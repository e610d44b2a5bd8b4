package repository

import (
	"database/sql"

	"gorm.io/gorm"
)

// serializable runs fn inside a serializable transaction. Every mutating
// repository operation goes through here so integrity checks and their
// mutations share one atomic unit.
func serializable(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
