package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo"
	"review-lifecycle-api/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var errStoreDown = errors.New("connection refused")

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) GetUserById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockIdentity) HasRole(ctx context.Context, userId uuid.UUID, role string) (bool, error) {
	args := m.Called(ctx, userId, role)
	return args.Bool(0), args.Error(1)
}

// memoryReviewStore behaves like the review table: single row writes, newest
// first listings.
type memoryReviewStore struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]entity.Review
	clock   time.Time

	failWrites bool
	failReads  bool
	// when set, CreateReview waits on it (or on ctx) before inserting
	createGate chan struct{}
	creates    int
	// when set, called after a subject listing has been read
	afterSubjectRead func()
}

func newMemoryReviewStore() *memoryReviewStore {
	return &memoryReviewStore{
		reviews: make(map[uuid.UUID]entity.Review),
		clock:   time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// put stores a review directly, bypassing validation.
func (s *memoryReviewStore) put(subjectId string, authorId uuid.UUID, status entity.ReviewStatus, createdAt time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.reviews[id] = entity.Review{
		Id:        id,
		SubjectId: subjectId,
		AuthorId:  authorId,
		Rating:    4,
		Content:   "Seeded review content",
		Status:    status,
		CreatedAt: createdAt,
	}

	return id
}

func (s *memoryReviewStore) get(id uuid.UUID) entity.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reviews[id]
}

func (s *memoryReviewStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.reviews)
}

func (s *memoryReviewStore) CreateReview(ctx context.Context, input *entity.CreateReviewInput) (uuid.UUID, error) {
	if s.createGate != nil {
		select {
		case <-s.createGate:
		case <-ctx.Done():
			return uuid.Nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates++
	if s.failWrites {
		return uuid.Nil, errStoreDown
	}

	s.clock = s.clock.Add(time.Minute)
	id := uuid.New()
	s.reviews[id] = entity.Review{
		Id:        id,
		SubjectId: input.SubjectId,
		AuthorId:  input.AuthorId,
		Rating:    input.Rating,
		Title:     input.Title,
		Content:   input.Content,
		Status:    entity.ReviewPending,
		CreatedAt: s.clock,
	}

	return id, nil
}

func (s *memoryReviewStore) GetReviewById(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failReads {
		return nil, errStoreDown
	}
	r, ok := s.reviews[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &r, nil
}

func (s *memoryReviewStore) filter(keep func(entity.Review) bool, newestFirst bool) ([]entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failReads {
		return nil, errStoreDown
	}

	out := make([]entity.Review, 0)
	for _, r := range s.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (s *memoryReviewStore) GetSubjectReviewsByStatus(ctx context.Context, subjectId string, status entity.ReviewStatus) ([]entity.Review, error) {
	reviews, err := s.filter(func(r entity.Review) bool {
		return r.SubjectId == subjectId && r.Status == status
	}, true)
	if s.afterSubjectRead != nil {
		s.afterSubjectRead()
	}

	return reviews, err
}

func (s *memoryReviewStore) GetAuthorSubjectReviewsByStatus(ctx context.Context, subjectId string, authorId uuid.UUID, status entity.ReviewStatus) ([]entity.Review, error) {
	return s.filter(func(r entity.Review) bool {
		return r.SubjectId == subjectId && r.AuthorId == authorId && r.Status == status
	}, true)
}

func (s *memoryReviewStore) GetReviewsByStatus(ctx context.Context, status entity.ReviewStatus, pg *entity.PaginationInput) ([]entity.Review, error) {
	all, err := s.filter(func(r entity.Review) bool { return r.Status == status }, false)
	if err != nil {
		return nil, err
	}
	if pg.Offset >= len(all) {
		return []entity.Review{}, nil
	}
	end := pg.Offset + pg.Limit
	if end > len(all) {
		end = len(all)
	}

	return all[pg.Offset:end], nil
}

func (s *memoryReviewStore) UpdateReviewStatusById(ctx context.Context, id uuid.UUID, status entity.ReviewStatus, respondedAt *time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return "", errStoreDown
	}

	r, ok := s.reviews[id]
	if !ok {
		return "", repo_errors.ErrNotFound
	}
	if r.Status != status {
		r.RespondedAt = respondedAt
	}
	r.Status = status
	s.reviews[id] = r

	return r.SubjectId, nil
}

func (s *memoryReviewStore) GetSubjectRatingSummary(ctx context.Context, subjectId string) (*entity.RatingSummary, error) {
	approved, err := s.GetSubjectReviewsByStatus(ctx, subjectId, entity.ReviewApproved)
	if err != nil {
		return nil, err
	}

	summary := &entity.RatingSummary{SubjectId: subjectId, Count: len(approved)}
	if len(approved) == 0 {
		return summary, nil
	}
	total := 0
	for _, r := range approved {
		total += r.Rating
	}
	summary.Average = float64(total) / float64(len(approved))

	return summary, nil
}

type stubProfiles struct {
	profiles map[uuid.UUID]entity.Profile
	err      error
}

func (p *stubProfiles) GetProfiles(ctx context.Context, userIds []uuid.UUID) (map[uuid.UUID]entity.Profile, error) {
	if p.err != nil {
		return nil, p.err
	}

	out := make(map[uuid.UUID]entity.Profile)
	for _, id := range userIds {
		if profile, ok := p.profiles[id]; ok {
			out[id] = profile
		}
	}

	return out, nil
}

type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]entity.Review
	generations map[string]int64
	invalidated []string
	err         error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries:     make(map[string][]entity.Review),
		generations: make(map[string]int64),
	}
}

func (c *memoryCache) Generation(ctx context.Context, subjectId string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return 0, c.err
	}

	return c.generations[subjectId], nil
}

func (c *memoryCache) GetApproved(ctx context.Context, subjectId string) ([]entity.Review, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return nil, false, c.err
	}
	reviews, ok := c.entries[subjectId]

	return reviews, ok, nil
}

func (c *memoryCache) SetApproved(ctx context.Context, subjectId string, generation int64, reviews []entity.Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return c.err
	}
	if c.generations[subjectId] != generation {
		return nil
	}
	c.entries[subjectId] = reviews

	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, subjectId string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidated = append(c.invalidated, subjectId)
	if c.err != nil {
		return c.err
	}
	c.generations[subjectId]++
	delete(c.entries, subjectId)

	return nil
}

func (c *memoryCache) cached(subjectId string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[subjectId]

	return ok
}

type recordingNotifier struct {
	mu        sync.Mutex
	published []string
}

func (n *recordingNotifier) PublishReviewUpdate(ctx context.Context, subjectId string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.published = append(n.published, subjectId)

	return nil
}

func (n *recordingNotifier) SubscribeReviewUpdates(ctx context.Context, subjectId string) (<-chan struct{}, func()) {
	ch := make(chan struct{})
	return ch, func() {}
}

type memoryContactStore struct {
	mu          sync.Mutex
	submissions map[uuid.UUID]entity.ContactSubmission
	failWrites  bool
	creates     int
}

func newMemoryContactStore() *memoryContactStore {
	return &memoryContactStore{submissions: make(map[uuid.UUID]entity.ContactSubmission)}
}

func (s *memoryContactStore) CreateContactSubmission(ctx context.Context, input *entity.CreateContactInput) (*entity.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates++
	if s.failWrites {
		return nil, errStoreDown
	}
	id := uuid.New()
	submission := entity.ContactSubmission{
		Id:        id,
		Name:      input.Name,
		Email:     input.Email,
		Topic:     input.Topic,
		Message:   input.Message,
		Status:    entity.ContactNew,
		CreatedAt: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	s.submissions[id] = submission

	return &submission, nil
}

func (s *memoryContactStore) GetContactSubmissionsByStatus(ctx context.Context, status entity.ContactStatus, pg *entity.PaginationInput) ([]entity.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.ContactSubmission, 0)
	for _, c := range s.submissions {
		if c.Status == status {
			out = append(out, c)
		}
	}

	return out, nil
}

func (s *memoryContactStore) UpdateContactStatusById(ctx context.Context, id uuid.UUID, status entity.ContactStatus, respondedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return errStoreDown
	}
	c, ok := s.submissions[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if c.Status != status {
		c.RespondedAt = respondedAt
	}
	c.Status = status
	s.submissions[id] = c

	return nil
}

type testEnv struct {
	identity *MockIdentity
	reviews  *memoryReviewStore
	contacts *memoryContactStore
	profiles *stubProfiles
	cache    *memoryCache
	notifier *recordingNotifier
	repos    *repo.Repositories
}

func newTestEnv() *testEnv {
	env := &testEnv{
		identity: new(MockIdentity),
		reviews:  newMemoryReviewStore(),
		contacts: newMemoryContactStore(),
		profiles: &stubProfiles{profiles: make(map[uuid.UUID]entity.Profile)},
		cache:    newMemoryCache(),
		notifier: &recordingNotifier{},
	}
	env.repos = &repo.Repositories{
		Identity:       env.identity,
		Profile:        env.profiles,
		Review:         env.reviews,
		Contact:        env.contacts,
		ReviewCache:    env.cache,
		ReviewNotifier: env.notifier,
	}

	return env
}

// verifiedUser registers a user whose email is verified and who is not an admin.
func (env *testEnv) verifiedUser() uuid.UUID {
	id := uuid.New()
	env.identity.On("GetUserById", mock.Anything, id).Return(&entity.User{Id: id, Email: id.String() + "@example.com", EmailVerified: true}, nil)
	env.identity.On("HasRole", mock.Anything, id, "admin").Return(false, nil)

	return id
}

func (env *testEnv) unverifiedUser() uuid.UUID {
	id := uuid.New()
	env.identity.On("GetUserById", mock.Anything, id).Return(&entity.User{Id: id, Email: id.String() + "@example.com"}, nil)
	env.identity.On("HasRole", mock.Anything, id, "admin").Return(false, nil)

	return id
}

func (env *testEnv) admin() uuid.UUID {
	id := uuid.New()
	env.identity.On("GetUserById", mock.Anything, id).Return(&entity.User{Id: id, Email: "admin@example.com", EmailVerified: true}, nil)
	env.identity.On("HasRole", mock.Anything, id, "admin").Return(true, nil)

	return id
}
