package postgres

import "github.com/mozteach/teach-api/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Club{},
	&entity.Token{},
}
