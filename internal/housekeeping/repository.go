package housekeeping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "housekeeping_tasks"

type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, id string, changes Changes) (*Task, error)
	List(ctx context.Context, filter Filter) ([]*Task, int, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection(collectionName)}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "room_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_staff_id", Value: 1}, {Key: "due_date", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create housekeeping indexes failed: %w", err)
	}
	return nil
}

type taskDocument struct {
	ID              string    `bson:"_id"`
	RoomID          string    `bson:"room_id"`
	ReservationID   string    `bson:"reservation_id,omitempty"`
	TaskType        string    `bson:"task_type"`
	Status          string    `bson:"status"`
	AssignedStaffID string    `bson:"assigned_staff_id,omitempty"`
	DueDate         time.Time `bson:"due_date"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func newTaskDocument(t *Task) taskDocument {
	return taskDocument{
		ID:              t.ID,
		RoomID:          t.RoomID,
		ReservationID:   t.ReservationID,
		TaskType:        string(t.TaskType),
		Status:          string(t.Status),
		AssignedStaffID: t.AssignedStaffID,
		DueDate:         t.DueDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func (d taskDocument) toTask() *Task {
	return &Task{
		ID:              d.ID,
		RoomID:          d.RoomID,
		ReservationID:   d.ReservationID,
		TaskType:        TaskType(d.TaskType),
		Status:          Status(d.Status),
		AssignedStaffID: d.AssignedStaffID,
		DueDate:         d.DueDate.UTC(),
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

func (r *mongoRepository) Create(ctx context.Context, t *Task) error {
	if _, err := r.col.InsertOne(ctx, newTaskDocument(t)); err != nil {
		return fmt.Errorf("insert task failed: %w", err)
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Task, error) {
	var doc taskDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task failed: %w", err)
	}
	return doc.toTask(), nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, changes Changes) (*Task, error) {
	set := bson.M{"updated_at": changes.UpdatedAt}
	if changes.TaskType != nil {
		set["task_type"] = string(*changes.TaskType)
	}
	if changes.Status != nil {
		set["status"] = string(*changes.Status)
	}
	if changes.AssignedStaffID != nil {
		set["assigned_staff_id"] = *changes.AssignedStaffID
	}
	if changes.DueDate != nil {
		set["due_date"] = *changes.DueDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update task failed: %w", err)
	}
	return doc.toTask(), nil
}

func (r *mongoRepository) List(ctx context.Context, filter Filter) ([]*Task, int, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.RoomID != "" {
		query["room_id"] = filter.RoomID
	}
	if filter.AssignedStaffID != "" {
		query["assigned_staff_id"] = filter.AssignedStaffID
	}
	if filter.DueFrom != nil || filter.DueTo != nil {
		window := bson.M{}
		if filter.DueFrom != nil {
			window["$gte"] = *filter.DueFrom
		}
		if filter.DueTo != nil {
			window["$lte"] = *filter.DueTo
		}
		query["due_date"] = window
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks failed: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find tasks failed: %w", err)
	}
	defer cur.Close(ctx)

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode tasks failed: %w", err)
	}
	tasks := make([]*Task, len(docs))
	for i, d := range docs {
		tasks[i] = d.toTask()
	}
	return tasks, int(total), nil
}
