package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gigboard/marketplace/internal/core/domain"
)

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type jobDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	EmployerID  primitive.ObjectID   `bson:"employer_id"`
	Bids        []primitive.ObjectID `bson:"bids"`
	CreatedAt   time.Time            `bson:"created_at"`

	// Only filled by the listing pipeline.
	EmployerName string `bson:"employer_name,omitempty"`
}

func (d jobDocument) toDomain() *domain.Job {
	bids := make([]string, len(d.Bids))
	for i, b := range d.Bids {
		bids[i] = b.Hex()
	}
	return &domain.Job{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Employer: domain.Employer{
			ID:   d.EmployerID.Hex(),
			Name: d.EmployerName,
		},
		Bids:      bids,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// Create inserts a new job document. The employer id must be a valid
// ObjectID hex string; whether it names an existing user is not checked.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	employerID, err := primitive.ObjectIDFromHex(job.Employer.ID)
	if err != nil {
		return nil, domain.ErrInvalidEmployerID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := jobDocument{
		ID:          primitive.NewObjectID(),
		Title:       job.Title,
		Description: job.Description,
		EmployerID:  employerID,
		Bids:        []primitive.ObjectID{},
		CreatedAt:   job.CreatedAt.UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a single job without resolving its employer.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

// ListWithEmployer returns all jobs in natural order, joining each one with
// its employer's name. Jobs whose employer does not exist get an empty name.
func (r *JobRepository) ListWithEmployer(ctx context.Context) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, listWithEmployerPipeline())
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []jobDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	jobs := make([]*domain.Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, d.toDomain())
	}
	return jobs, nil
}

func listWithEmployerPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "employer_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "employer"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "employer_name", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{
					bson.D{{Key: "$arrayElemAt", Value: bson.A{"$employer.name", 0}}},
					"",
				}},
			}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "employer", Value: 0}}}},
	}
}

// EnsureIndexes creates the employer lookup index on the jobs collection.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "employer_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create jobs indexes: %w", err)
	}
	return nil
}
