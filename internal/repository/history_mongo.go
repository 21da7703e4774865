package repository

import (
	"context"
	"errors"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const childHistoryCollection = "child_histories"

// childHistoryDoc is one document per child, keyed by the child id.
type childHistoryDoc struct {
	ChildID     string                       `bson:"_id"`
	Assessments []analytics.AssessmentResult `bson:"assessments"`
	CourseIDs   []string                     `bson:"courseIds"`
	UpdatedAt   time.Time                    `bson:"updatedAt"`
}

type MongoHistoryStore struct {
	Col *mongo.Collection
}

func NewMongoHistoryStore(db *mongo.Database) *MongoHistoryStore {
	return &MongoHistoryStore{Col: db.Collection(childHistoryCollection)}
}

func (s *MongoHistoryStore) AppendAssessment(ctx context.Context, childID string, result *analytics.AssessmentResult) error {
	update := bson.M{
		"$push": bson.M{"assessments": result},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := s.Col.UpdateOne(ctx, bson.M{"_id": childID}, update, options.Update().SetUpsert(true))
	return err
}

func (s *MongoHistoryStore) AddCourses(ctx context.Context, childID string, courseIDs []string) error {
	if len(courseIDs) == 0 {
		return nil
	}
	update := bson.M{
		"$addToSet": bson.M{"courseIds": bson.M{"$each": courseIDs}},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	_, err := s.Col.UpdateOne(ctx, bson.M{"_id": childID}, update, options.Update().SetUpsert(true))
	return err
}

func (s *MongoHistoryStore) load(ctx context.Context, childID string, projection bson.M) (*childHistoryDoc, error) {
	var doc childHistoryDoc
	err := s.Col.FindOne(ctx, bson.M{"_id": childID}, options.FindOne().SetProjection(projection)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &childHistoryDoc{ChildID: childID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *MongoHistoryStore) ListAssessments(ctx context.Context, childID string) ([]analytics.AssessmentResult, error) {
	doc, err := s.load(ctx, childID, bson.M{"assessments": 1})
	if err != nil {
		return nil, err
	}
	if doc.Assessments == nil {
		return []analytics.AssessmentResult{}, nil
	}
	return doc.Assessments, nil
}

func (s *MongoHistoryStore) ListCourseIDs(ctx context.Context, childID string) ([]string, error) {
	doc, err := s.load(ctx, childID, bson.M{"courseIds": 1})
	if err != nil {
		return nil, err
	}
	if doc.CourseIDs == nil {
		return []string{}, nil
	}
	return doc.CourseIDs, nil
}
