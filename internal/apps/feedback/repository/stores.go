package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"spam-shield/internal/apps/feedback/models"
	"spam-shield/pkg/yamlfile"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

func prepare(f *models.Feedback) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
}

// memoryFeedbackStore keeps entries in process memory
type memoryFeedbackStore struct {
	mu      sync.Mutex
	entries []models.Feedback
}

// NewMemoryFeedbackStore creates an in-memory FeedbackStore
func NewMemoryFeedbackStore() FeedbackStore {
	return &memoryFeedbackStore{}
}

func (s *memoryFeedbackStore) Create(_ context.Context, f *models.Feedback) error {
	prepare(f)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *f)
	return nil
}

type feedbackFile struct {
	Entries []models.Feedback `yaml:"entries"`
}

// fileFeedbackStore appends entries to a YAML document
type fileFeedbackStore struct {
	mu   sync.Mutex
	path string
	doc  feedbackFile
}

// NewFileFeedbackStore loads (or starts) the feedback file at path
func NewFileFeedbackStore(path string) (FeedbackStore, error) {
	s := &fileFeedbackStore{path: path}
	if err := yamlfile.Load(path, &s.doc); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileFeedbackStore) Create(_ context.Context, f *models.Feedback) error {
	prepare(f)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Entries = append(s.doc.Entries, *f)
	if err := yamlfile.Save(s.path, s.doc); err != nil {
		s.doc.Entries = s.doc.Entries[:len(s.doc.Entries)-1]
		return err
	}
	return nil
}

// postgresFeedbackStore implements FeedbackStore with gorm
type postgresFeedbackStore struct {
	db *gorm.DB
}

// NewPostgresFeedbackStore creates a gorm backed FeedbackStore
func NewPostgresFeedbackStore(db *gorm.DB) FeedbackStore {
	return &postgresFeedbackStore{db: db}
}

func (r *postgresFeedbackStore) Create(ctx context.Context, f *models.Feedback) error {
	prepare(f)
	return r.db.WithContext(ctx).Create(f).Error
}

const redisFeedbackKey = "spam_shield:feedback"

// redisFeedbackStore pushes JSON encoded entries onto a list
type redisFeedbackStore struct {
	rdb *redis.Client
}

// NewRedisFeedbackStore creates a redis backed FeedbackStore
func NewRedisFeedbackStore(rdb *redis.Client) FeedbackStore {
	return &redisFeedbackStore{rdb: rdb}
}

func (s *redisFeedbackStore) Create(ctx context.Context, f *models.Feedback) error {
	prepare(f)
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, redisFeedbackKey, b).Err()
}

const mongoFeedbackCollection = "feedback"

// mongoFeedbackStore inserts one document per entry
type mongoFeedbackStore struct {
	coll *mongo.Collection
}

// NewMongoFeedbackStore creates a mongo backed FeedbackStore
func NewMongoFeedbackStore(db *mongo.Database) FeedbackStore {
	return &mongoFeedbackStore{coll: db.Collection(mongoFeedbackCollection)}
}

type mongoFeedback struct {
	ID        string    `bson:"_id"`
	Entry     string    `bson:"entry"`
	CreatedAt time.Time `bson:"created_at"`
}

func (s *mongoFeedbackStore) Create(ctx context.Context, f *models.Feedback) error {
	prepare(f)
	_, err := s.coll.InsertOne(ctx, mongoFeedback{
		ID:        f.ID.String(),
		Entry:     f.Entry,
		CreatedAt: f.CreatedAt,
	})
	return err
}
