// Package models contains GORM persistence models that map ledger entities to tables.
// Domain entities carry no ORM tags; each model converts with ToDomain / FromDomain.
package models
