package repositories

import "gorm.io/gorm"

// publicUserColumns limits joined users to what feeds are allowed to expose.
func publicUserColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "account", "name", "avatar")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
