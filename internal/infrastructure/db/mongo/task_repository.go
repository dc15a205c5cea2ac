package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

const taskCollection = "tasks"

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(taskCollection)}
}

// mongoTask is the storage document. CreatedBy is persisted as the plain
// string form of the user ID and re-wrapped on read; the document never
// depends on the domain primitive's internals.
type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Description string             `bson:"description"`
	CreatedDate time.Time          `bson:"created_date"`
	CreatedBy   string             `bson:"created_by"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	doc := mongoTask{
		Description: task.Description,
		CreatedDate: task.CreatedDate,
		CreatedBy:   task.CreatedBy.String(),
		DueDate:     task.DueDate,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []domain.Task
	for cursor.Next(ctx) {
		var doc mongoTask
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		task, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (d *mongoTask) toDomain() (domain.Task, error) {
	createdBy, err := domain.ParseUserID(d.CreatedBy)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s has invalid created_by %q: %w", d.ID.Hex(), d.CreatedBy, err)
	}
	return domain.Task{
		ID:          d.ID.Hex(),
		Description: d.Description,
		CreatedDate: d.CreatedDate,
		CreatedBy:   createdBy,
		DueDate:     d.DueDate,
	}, nil
}
