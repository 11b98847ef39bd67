package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var MongoConn *mongo.Client

var DBName string = "attendance-roster-db"
var UserCollection string = "users"
var AttendanceLogCollection string = "attendance_logs"
var LeaveCollection string = "leaves"
var RosterCollection string = "rosters"

func MongoConnect() {
	mongoURI := os.Getenv("MONGOSTRING")

	if mongoURI == "" {
		log.Fatal("MONGOSTRING is not set in the environment")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to create MongoDB client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB!")
	MongoConn = client
}

// InitDatabase creates the indexes the repositories rely on. The roster
// merge-upsert and the manual attendance correction both key on (emp_id, date).
func InitDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rosterIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "emp_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := GetCollection(RosterCollection).Indexes().CreateOne(ctx, rosterIdx); err != nil {
		log.Printf("Warning: failed to create roster index: %v", err)
	}

	attendanceIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "emp_id", Value: 1}, {Key: "date", Value: 1}},
	}
	if _, err := GetCollection(AttendanceLogCollection).Indexes().CreateOne(ctx, attendanceIdx); err != nil {
		log.Printf("Warning: failed to create attendance index: %v", err)
	}

	userIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "emp_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := GetCollection(UserCollection).Indexes().CreateOne(ctx, userIdx); err != nil {
		log.Printf("Warning: failed to create user index: %v", err)
	}
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		log.Fatal("MongoDB client is not initialized. Call MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnected from MongoDB")
	}
}
