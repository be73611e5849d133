package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Madhulr/to-do-Bend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	todosCollection    = "todos"
	feedbackCollection = "feedback"
	countersCollection = "counters"
)

// MongoStore implements Store on top of a MongoDB database.
// Records use sequential int64 _id values drawn from the counters collection.
type MongoStore struct {
	client   *mongo.Client
	todos    *mongo.Collection
	feedback *mongo.Collection
	counters *mongo.Collection
}

// NewMongoStore wraps db and ensures the owner/created_at indexes exist.
// client may be nil when the caller manages the connection lifetime.
func NewMongoStore(ctx context.Context, client *mongo.Client, db *mongo.Database) (*MongoStore, error) {
	s := &MongoStore{
		client:   client,
		todos:    db.Collection(todosCollection),
		feedback: db.Collection(feedbackCollection),
		counters: db.Collection(countersCollection),
	}
	idx := mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}}
	for _, col := range []*mongo.Collection{s.todos, s.feedback} {
		if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
			return nil, fmt.Errorf("create index on %s: %w", col.Name(), err)
		}
	}
	return s, nil
}

func (s *MongoStore) nextID(ctx context.Context, name string) (int64, error) {
	var c struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return c.Seq, nil
}

// mongoNow matches the millisecond precision BSON dates are stored with.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func userFilter(f Filter) bson.M {
	if f.User == nil {
		return bson.M{}
	}
	return bson.M{"user": *f.User}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

func (s *MongoStore) CreateTodo(ctx context.Context, t *models.Todo) error {
	id, err := s.nextID(ctx, todosCollection)
	if err != nil {
		return err
	}
	t.ID = id
	t.CreatedAt = mongoNow()
	if _, err := s.todos.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (s *MongoStore) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var t models.Todo
	if err := s.todos.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *MongoStore) ListTodos(ctx context.Context, f Filter) ([]*models.Todo, error) {
	cur, err := s.todos.Find(ctx, userFilter(f), newestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Todo{}
	for cur.Next(ctx) {
		var t models.Todo
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, cur.Err()
}

func (s *MongoStore) SetTodoCompleted(ctx context.Context, id int64, completed bool) (*models.Todo, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Todo
	err := s.todos.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"completed": completed}}, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *MongoStore) DeleteTodo(ctx context.Context, id int64) error {
	res, err := s.todos.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	id, err := s.nextID(ctx, feedbackCollection)
	if err != nil {
		return err
	}
	fb.ID = id
	fb.CreatedAt = mongoNow()
	if _, err := s.feedback.InsertOne(ctx, fb); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (s *MongoStore) GetFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	var fb models.Feedback
	if err := s.feedback.FindOne(ctx, bson.M{"_id": id}).Decode(&fb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fb, nil
}

func (s *MongoStore) ListFeedback(ctx context.Context, f Filter) ([]*models.Feedback, error) {
	cur, err := s.feedback.Find(ctx, userFilter(f), newestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Feedback{}
	for cur.Next(ctx) {
		var fb models.Feedback
		if err := cur.Decode(&fb); err != nil {
			return nil, err
		}
		out = append(out, &fb)
	}
	return out, cur.Err()
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
