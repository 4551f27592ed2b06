// Package store provides typed repositories over the ParcelPro
// MongoDB collections.
package store

import "go.mongodb.org/mongo-driver/mongo"

// Store bundles the per-collection repositories sharing one database
// handle.
type Store struct {
	db       *mongo.Database
	users    *Users
	parcels  *Parcels
	reviews  *Reviews
	payments *Payments
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		users:    &Users{col: db.Collection("users")},
		parcels:  &Parcels{col: db.Collection("parcels")},
		reviews:  &Reviews{col: db.Collection("reviews")},
		payments: &Payments{col: db.Collection("payments")},
	}
}

func (s *Store) Users() *Users       { return s.users }
func (s *Store) Parcels() *Parcels   { return s.parcels }
func (s *Store) Reviews() *Reviews   { return s.reviews }
func (s *Store) Payments() *Payments { return s.payments }

// DB exposes the raw database handle for aggregation pipelines.
func (s *Store) DB() *mongo.Database { return s.db }
