package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
)

const (
	userCollection    = "users"
	taskCollection    = "tasks"
	insightCollection = "insights"
)

// MongoUserRepository UserRepository 的 MongoDB 实现
type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection(userCollection)}
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicate
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	user.ID = id
	return id, nil
}

func (r *MongoUserRepository) UpdateCurrentTask(ctx context.Context, email string, refs []primitive.ObjectID) error {
	if refs == nil {
		refs = []primitive.ObjectID{}
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"currentTask": refs}})
	return err
}

func (r *MongoUserRepository) Delete(ctx context.Context, email string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MongoTaskRepository TaskRepository 的 MongoDB 实现
type MongoTaskRepository struct {
	col *mongo.Collection
}

func NewMongoTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{col: db.Collection(taskCollection)}
}

func (r *MongoTaskRepository) FindByEmail(ctx context.Context, email string) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *MongoTaskRepository) Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, task)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	task.ID = id
	return id, nil
}

func (r *MongoTaskRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoTaskRepository) DeleteByIDs(ctx context.Context, email string, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{
		"email": email,
		"_id":   bson.M{"$in": ids},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MongoInsightRepository InsightRepository 的 MongoDB 实现
type MongoInsightRepository struct {
	col *mongo.Collection
}

func NewMongoInsightRepository(db *mongo.Database) *MongoInsightRepository {
	return &MongoInsightRepository{col: db.Collection(insightCollection)}
}

func (r *MongoInsightRepository) FindByEmail(ctx context.Context, email string) ([]models.Insight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	insights := []models.Insight{}
	if err := cur.All(ctx, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

func (r *MongoInsightRepository) Insert(ctx context.Context, insight *models.Insight) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, insight)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	insight.ID = id
	return id, nil
}

func (r *MongoInsightRepository) DeleteByDay(ctx context.Context, email string, day time.Time) (int64, error) {
	// dateAdded 写入时已归一化到 UTC 零点，按自然日范围删以防旧数据未归一化
	from := models.CivilDay(day)
	to := from.Add(24 * time.Hour)
	res, err := r.col.DeleteMany(ctx, bson.M{
		"email":     email,
		"dateAdded": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
