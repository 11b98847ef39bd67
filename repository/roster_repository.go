package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Attendance-Roster-Backend/config"
	"Attendance-Roster-Backend/models"
)

type RosterRepository interface {
	BulkUpload(ctx context.Context, rosters []models.Roster) (*models.BulkInsertReport, error)
	CreateOrMerge(ctx context.Context, roster *models.Roster) error
	GetAllRosters(ctx context.Context, page, limit int64, search string) *models.RosterListResult
	FindByEmployee(ctx context.Context, empID string) ([]models.Roster, error)
}

type rosterRepository struct {
	collection *mongo.Collection
}

func NewRosterRepository() RosterRepository {
	return &rosterRepository{
		collection: config.GetCollection(config.RosterCollection),
	}
}

// BulkUpload inserts a parsed roster sheet with an unordered write; rows
// rejected by the unique (emp_id, date) index are reported, not fatal.
func (r *rosterRepository) BulkUpload(ctx context.Context, rosters []models.Roster) (*models.BulkInsertReport, error) {
	docs := make([]interface{}, len(rosters))
	for i := range rosters {
		docs[i] = rosters[i]
	}

	report := &models.BulkInsertReport{}

	res, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if res != nil {
		report.InsertedCount = int64(len(res.InsertedIDs))
	}
	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			for _, we := range bwe.WriteErrors {
				report.Failed = append(report.Failed, models.BulkInsertFailure{
					Index:   we.Index,
					Message: we.Message,
				})
			}
			return report, nil
		}
		return nil, fmt.Errorf("failed to bulk insert rosters: %w", err)
	}

	return report, nil
}

// CreateOrMerge upserts on the (emp_id, date) key: an existing entry has its
// fields overwritten, otherwise a new one is inserted. Last write wins; there
// is deliberately no version check (see DESIGN.md).
func (r *rosterRepository) CreateOrMerge(ctx context.Context, roster *models.Roster) error {
	if roster.ID.IsZero() {
		roster.ID = primitive.NewObjectID()
	}
	now := time.Now()

	filter := bson.M{"emp_id": roster.EmpID, "date": roster.Date}
	update := bson.M{
		"$set": bson.M{
			"name":        roster.Name,
			"crm_name":    roster.CRMName,
			"title":       roster.Title,
			"team_leader": roster.TeamLeader,
			"shift_time":  roster.ShiftTime,
			"status":      roster.Status,
			"day":         roster.Day,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"_id":        roster.ID,
			"emp_id":     roster.EmpID,
			"date":       roster.Date,
			"created_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to merge roster entry: %w", err)
	}
	return nil
}

// GetAllRosters groups roster entries per (empId, name, year, teamLeader)
// with an optional case-insensitive substring search over name/empId.
// totalRecords counts matching documents, not groups.
//
// Store failures come back as an error-status result.
func (r *rosterRepository) GetAllRosters(ctx context.Context, page, limit int64, search string) *models.RosterListResult {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	match := bson.D{}
	if search != "" {
		match = append(match, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: bson.D{{Key: "$regex", Value: search}, {Key: "$options", Value: "i"}}}},
			bson.D{{Key: "emp_id", Value: bson.D{{Key: "$regex", Value: search}, {Key: "$options", Value: "i"}}}},
		}})
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "month", Value: bson.D{{Key: "$month", Value: "$date"}}},
			{Key: "year", Value: bson.D{{Key: "$year", Value: "$date"}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "emp_id", Value: "$emp_id"},
				{Key: "name", Value: "$name"},
				{Key: "year", Value: "$year"},
				{Key: "team_leader", Value: "$team_leader"},
			}},
			{Key: "days", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "date", Value: "$date"},
				{Key: "status", Value: "$status"},
				{Key: "shift_time", Value: "$shift_time"},
				{Key: "team_leader", Value: "$team_leader"},
				{Key: "month", Value: "$month"},
			}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "emp_id", Value: "$_id.emp_id"},
			{Key: "name", Value: "$_id.name"},
			{Key: "team_leader", Value: "$_id.team_leader"},
			{Key: "year", Value: "$_id.year"},
			{Key: "days", Value: 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "emp_id", Value: 1}, {Key: "year", Value: 1}}}},
		bson.D{{Key: "$skip", Value: (page - 1) * limit}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return rosterError(err)
	}
	defer cursor.Close(ctx)

	groups := []models.RosterGroup{}
	if err = cursor.All(ctx, &groups); err != nil {
		return rosterError(err)
	}

	var countFilter interface{} = bson.D{}
	if len(match) > 0 {
		countFilter = match
	}
	totalRecords, err := r.collection.CountDocuments(ctx, countFilter)
	if err != nil {
		return rosterError(err)
	}

	return &models.RosterListResult{
		Status:       "success",
		Data:         groups,
		TotalPages:   (totalRecords + limit - 1) / limit,
		CurrentPage:  page,
		TotalRecords: totalRecords,
	}
}

func rosterError(err error) *models.RosterListResult {
	log.Printf("ERROR: roster aggregation failed: %v", err)
	return &models.RosterListResult{Status: "error", Message: err.Error()}
}

func (r *rosterRepository) FindByEmployee(ctx context.Context, empID string) ([]models.Roster, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"emp_id": empID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rosters for employee %s: %w", empID, err)
	}
	defer cursor.Close(ctx)

	var results []models.Roster
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode rosters: %w", err)
	}

	if len(results) == 0 {
		return []models.Roster{}, nil
	}
	return results, nil
}
