// Package models contains the GORM persistence models.
//
// Domain entities stay free of ORM tags; repositories convert between the two
// with ToDomain / FromDomain.
package models
