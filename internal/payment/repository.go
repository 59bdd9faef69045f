package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "payments"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByReference(ctx context.Context, reference string) (*Payment, error)
	UpdateStatus(ctx context.Context, reference string, status Status, at time.Time) (*Payment, error)
	List(ctx context.Context, filter Filter) ([]*Payment, int, error)
	Count(ctx context.Context, filter Filter) (int, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique reference index and the report lookup index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: 1}}},
		{Keys: bson.D{{Key: "reservation_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create payment indexes failed: %w", err)
	}
	return nil
}

type paymentDocument struct {
	ID            string    `bson:"_id"`
	ReservationID string    `bson:"reservation_id"`
	Email         string    `bson:"email"`
	CustomerName  string    `bson:"customer_name"`
	Amount        int64     `bson:"amount"`
	Reference     string    `bson:"reference"`
	Status        string    `bson:"status"`
	Refunded      bool      `bson:"refunded"`
	Provider      string    `bson:"provider"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func newPaymentDocument(p *Payment) paymentDocument {
	return paymentDocument{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Email:         p.Email,
		CustomerName:  p.CustomerName,
		Amount:        p.Amount,
		Reference:     p.Reference,
		Status:        string(p.Status),
		Refunded:      p.Refunded,
		Provider:      p.Provider,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d paymentDocument) toPayment() *Payment {
	return &Payment{
		ID:            d.ID,
		ReservationID: d.ReservationID,
		Email:         d.Email,
		CustomerName:  d.CustomerName,
		Amount:        d.Amount,
		Reference:     d.Reference,
		Status:        Status(d.Status),
		Refunded:      d.Refunded,
		Provider:      d.Provider,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

func (r *mongoRepository) Create(ctx context.Context, p *Payment) error {
	if _, err := r.col.InsertOne(ctx, newPaymentDocument(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("insert payment failed: %w", err)
	}
	return nil
}

func (r *mongoRepository) GetByReference(ctx context.Context, reference string) (*Payment, error) {
	var doc paymentDocument
	if err := r.col.FindOne(ctx, bson.M{"reference": reference}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find payment failed: %w", err)
	}
	return doc.toPayment(), nil
}

func (r *mongoRepository) UpdateStatus(ctx context.Context, reference string, status Status, at time.Time) (*Payment, error) {
	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc paymentDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"reference": reference}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update payment status failed: %w", err)
	}
	return doc.toPayment(), nil
}

func buildQuery(filter Filter) bson.M {
	query := bson.M{}
	if len(filter.Statuses) == 1 {
		query["status"] = string(filter.Statuses[0])
	} else if len(filter.Statuses) > 1 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query["status"] = bson.M{"$in": statuses}
	}
	if filter.ReservationIDs != nil {
		query["reservation_id"] = bson.M{"$in": filter.ReservationIDs}
	}
	if filter.Refunded != nil {
		query["refunded"] = *filter.Refunded
	}
	if filter.UpdatedFrom != nil || filter.UpdatedTo != nil {
		window := bson.M{}
		if filter.UpdatedFrom != nil {
			window["$gte"] = *filter.UpdatedFrom
		}
		if filter.UpdatedTo != nil {
			window["$lte"] = *filter.UpdatedTo
		}
		query["updated_at"] = window
	}
	return query
}

// List returns payments ordered by last update, plus the total before pagination.
func (r *mongoRepository) List(ctx context.Context, filter Filter) ([]*Payment, int, error) {
	query := buildQuery(filter)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count payments failed: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find payments failed: %w", err)
	}
	defer cur.Close(ctx)

	var docs []paymentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode payments failed: %w", err)
	}

	payments := make([]*Payment, len(docs))
	for i, d := range docs {
		payments[i] = d.toPayment()
	}
	return payments, int(total), nil
}

func (r *mongoRepository) Count(ctx context.Context, filter Filter) (int, error) {
	n, err := r.col.CountDocuments(ctx, buildQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("count payments failed: %w", err)
	}
	return int(n), nil
}
