package repositories

import (
	"context"
	"fmt"

	"digi-agency/microservices/graphics-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TaskStore apstrahuje upise u kolekciju tasks. Update ima merge semantiku -
// prosleđuju se samo polja koja se menjaju, ostatak zapisa ostaje netaknut.
type TaskStore interface {
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
	UpdateTaskFields(ctx context.Context, taskID string, fields bson.M) error
	InsertTask(ctx context.Context, task *models.Task) (string, error)
}

type MongoTaskStore struct {
	collection *mongo.Collection
}

func NewMongoTaskStore(collection *mongo.Collection) *MongoTaskStore {
	return &MongoTaskStore{collection: collection}
}

func (s *MongoTaskStore) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID format: %v", err)
	}

	var task models.Task
	if err := s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&task); err != nil {
		return nil, fmt.Errorf("task not found: %v", err)
	}
	return &task, nil
}

func (s *MongoTaskStore) UpdateTaskFields(ctx context.Context, taskID string, fields bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return fmt.Errorf("invalid task ID format: %v", err)
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task not found for update")
	}
	return nil
}

func (s *MongoTaskStore) InsertTask(ctx context.Context, task *models.Task) (string, error) {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}

	result, err := s.collection.InsertOne(ctx, task)
	if err != nil {
		return "", fmt.Errorf("failed to create task: %v", err)
	}

	insertedID := result.InsertedID.(primitive.ObjectID)
	return insertedID.Hex(), nil
}
