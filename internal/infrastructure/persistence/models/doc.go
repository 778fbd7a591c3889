// Package models contains the GORM persistence models.
// Domain entities carry no ORM tags; each model converts with ToDomain and a
// ...FromDomain constructor. Text JSON columns are stored as jsonb strings.
package models
