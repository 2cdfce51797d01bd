package specification

import "gorm.io/gorm"

// Specification composes query conditions onto a GORM chain.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
