package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "invoices"

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection(collectionName)}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reservation_id", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "metadata.generated_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create invoice indexes failed: %w", err)
	}
	return nil
}

type metadataDocument struct {
	GeneratedAt time.Time         `bson:"generated_at"`
	GeneratedBy string            `bson:"generated_by,omitempty"`
	Filters     map[string]string `bson:"filters,omitempty"`
}

type invoiceDocument struct {
	ID             string           `bson:"_id"`
	ReservationID  string           `bson:"reservation_id,omitempty"`
	Type           string           `bson:"type"`
	FileName       string           `bson:"file_name"`
	StoragePath    string           `bson:"storage_path"`
	CompressedHTML []byte           `bson:"compressed_html,omitempty"`
	Metadata       metadataDocument `bson:"metadata"`
}

func newInvoiceDocument(inv *Invoice) invoiceDocument {
	return invoiceDocument{
		ID:             inv.ID,
		ReservationID:  inv.ReservationID,
		Type:           string(inv.Type),
		FileName:       inv.FileName,
		StoragePath:    inv.StoragePath,
		CompressedHTML: inv.CompressedHTML,
		Metadata: metadataDocument{
			GeneratedAt: inv.GeneratedAt,
			GeneratedBy: inv.GeneratedBy,
			Filters:     inv.Filters,
		},
	}
}

func (d invoiceDocument) toInvoice() *Invoice {
	return &Invoice{
		ID:             d.ID,
		ReservationID:  d.ReservationID,
		Type:           Type(d.Type),
		FileName:       d.FileName,
		StoragePath:    d.StoragePath,
		CompressedHTML: d.CompressedHTML,
		GeneratedAt:    d.Metadata.GeneratedAt.UTC(),
		GeneratedBy:    d.Metadata.GeneratedBy,
		Filters:        d.Metadata.Filters,
	}
}

func (r *mongoRepository) Create(ctx context.Context, inv *Invoice) error {
	if _, err := r.col.InsertOne(ctx, newInvoiceDocument(inv)); err != nil {
		return fmt.Errorf("insert invoice failed: %w", err)
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Invoice, error) {
	var doc invoiceDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find invoice failed: %w", err)
	}
	return doc.toInvoice(), nil
}
