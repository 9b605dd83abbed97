package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"prepstar/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the MongoDB collections the application uses. It is constructed
// once at startup and handed to the services that need it.
type Store struct {
	client          *mongo.Client
	database        *mongo.Database
	questions       *mongo.Collection
	feedbackLogs    *mongo.Collection
	feedbackRatings *mongo.Collection
}

// extractDBName parses the database name from the URI, defaulting to "prepstar"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "prepstar"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "prepstar"
}

// Connect establishes a connection to MongoDB using the provided URI.
func Connect(ctx context.Context, uri string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	database := client.Database(dbName)
	return &Store{
		client:          client,
		database:        database,
		questions:       database.Collection("interview_questions"),
		feedbackLogs:    database.Collection("feedback_logs"),
		feedbackRatings: database.Collection("feedback_ratings"),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Append inserts one attempt log record. The feedback_logs collection is
// append only; records are never updated.
func (s *Store) Append(ctx context.Context, entry models.AttemptLog) error {
	_, err := s.feedbackLogs.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert attempt log: %w", err)
	}
	return nil
}

// InsertRating records a user's helpful/not-helpful verdict on feedback.
func (s *Store) InsertRating(ctx context.Context, rating models.FeedbackRating) error {
	_, err := s.feedbackRatings.InsertOne(ctx, rating)
	if err != nil {
		return fmt.Errorf("failed to insert feedback rating: %w", err)
	}
	return nil
}

// ListQuestions fetches up to limit questions matching the filter, newest
// first. Excluded IDs are questions the user has already seen.
func (s *Store) ListQuestions(ctx context.Context, filter models.QuestionFilter, limit int) ([]models.Question, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Company != "" {
		query["company"] = filter.Company
	}
	if len(filter.ExcludeIDs) > 0 {
		query["_id"] = bson.M{"$nin": filter.ExcludeIDs}
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := s.questions.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return questions, nil
}

// QuestionByID fetches one question by its ID.
func (s *Store) QuestionByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	err := s.questions.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("question not found: %s", id)
		}
		return nil, err
	}
	return &question, nil
}

// InsertQuestions seeds questions into the store, ignoring duplicates.
func (s *Store) InsertQuestions(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(questions))
	for _, q := range questions {
		docs = append(docs, q)
	}
	_, err := s.questions.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to seed questions: %w", err)
	}
	return nil
}
