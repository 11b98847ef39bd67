package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Attendance-Roster-Backend/config"
	"Attendance-Roster-Backend/models"
)

type LeaveRepository interface {
	Create(ctx context.Context, leave *models.Leave) (*mongo.InsertOneResult, error)
	FindAll(ctx context.Context) ([]models.LeaveWithUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error)
	FindByEmpID(ctx context.Context, empID string) ([]models.Leave, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status, note string) (*mongo.UpdateResult, error)
}

type leaveRepository struct {
	collection *mongo.Collection
}

func NewLeaveRepository() LeaveRepository {
	return &leaveRepository{
		collection: config.GetCollection(config.LeaveCollection),
	}
}

func (r *leaveRepository) Create(ctx context.Context, leave *models.Leave) (*mongo.InsertOneResult, error) {
	res, err := r.collection.InsertOne(ctx, leave)
	if err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}
	return res, nil
}

// FindAll returns every leave request joined with the requesting user, for
// the admin review list.
func (r *leaveRepository) FindAll(ctx context.Context) ([]models.LeaveWithUser, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "emp_id"},
			{Key: "foreignField", Value: "emp_id"},
			{Key: "as", Value: "user_info"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user_info"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "emp_id", Value: 1},
			{Key: "from_date", Value: 1},
			{Key: "to_date", Value: 1},
			{Key: "leave_type", Value: 1},
			{Key: "reason", Value: 1},
			{Key: "status", Value: 1},
			{Key: "note", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "user_name", Value: "$user_info.name"},
			{Key: "user_email", Value: "$user_info.email"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveWithUser
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}

	if len(requests) == 0 {
		return []models.LeaveWithUser{}, nil
	}
	return requests, nil
}

func (r *leaveRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error) {
	var leave models.Leave
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&leave)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find leave request by id: %w", err)
	}
	return &leave, nil
}

func (r *leaveRepository) FindByEmpID(ctx context.Context, empID string) ([]models.Leave, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"emp_id": empID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find leave requests for employee %s: %w", empID, err)
	}
	defer cursor.Close(ctx)

	var requests []models.Leave
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode leave requests: %w", err)
	}

	if len(requests) == 0 {
		return []models.Leave{}, nil
	}
	return requests, nil
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, note string) (*mongo.UpdateResult, error) {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"note":       note,
			"updated_at": time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update leave request status: %w", err)
	}
	return result, nil
}
