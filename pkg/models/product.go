package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Field names on the wire keep the shape the
// storefront has always used.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"nama" json:"nama"`
	Price       float64            `bson:"harga" json:"harga"`
	Image       string             `bson:"gambar" json:"gambar"`
	Category    string             `bson:"kategori" json:"kategori"`
	Description string             `bson:"deskripsi" json:"deskripsi"`
	CreatedAt   string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   string             `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
