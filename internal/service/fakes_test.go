package service

import (
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/kafka"
	"Postdeck/internal/repository"
	"context"
	"io"
	"sync"
	"time"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// fakeTweetRepo 内存实现，conflicts > 0 时下一次保存返回版本冲突
type fakeTweetRepo struct {
	mu        sync.Mutex
	tweets    map[uint64]*model.Tweet
	nextID    uint64
	conflicts int
	gets      int
	lastList  repository.ListFilter
}

func newFakeTweetRepo(tweets ...*model.Tweet) *fakeTweetRepo {
	r := &fakeTweetRepo{tweets: map[uint64]*model.Tweet{}, nextID: 100}
	for _, t := range tweets {
		if t.Version == 0 {
			t.Version = 1
		}
		r.tweets[t.ID] = t.Clone()
	}
	return r
}

func (r *fakeTweetRepo) ListTweets(_ context.Context, filter repository.ListFilter) ([]*model.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastList = filter
	var out []*model.Tweet
	for id := uint64(0); id <= r.nextID; id++ {
		t, ok := r.tweets[id]
		if !ok || (filter.Status != "" && string(t.Status) != filter.Status) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *fakeTweetRepo) GetTweet(_ context.Context, id uint64) (*model.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	t, ok := r.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *fakeTweetRepo) SaveTweet(_ context.Context, tweet *model.Tweet) (*model.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := tweet.Clone()
	if saved.ID == 0 {
		r.nextID++
		saved.ID = r.nextID
		saved.Version = 1
		r.tweets[saved.ID] = saved.Clone()
		return saved, nil
	}
	current, ok := r.tweets[saved.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.conflicts > 0 {
		r.conflicts--
		current.Version++
		return nil, repository.ErrConcurrentModification
	}
	if current.Version != tweet.Version {
		return nil, repository.ErrConcurrentModification
	}
	saved.Version++
	r.tweets[saved.ID] = saved.Clone()
	return saved, nil
}

func (r *fakeTweetRepo) CreateTweets(_ context.Context, tweets []*model.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tweets {
		r.nextID++
		t.ID = r.nextID
		t.Version = 1
		r.tweets[t.ID] = t.Clone()
	}
	return nil
}

func (r *fakeTweetRepo) DeleteTweet(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tweets, id)
	return nil
}

type fakeInstagramRepo struct {
	posts     map[uint64]*model.InstagramPost
	nextID    uint64
	conflicts int
}

func newFakeInstagramRepo(posts ...*model.InstagramPost) *fakeInstagramRepo {
	r := &fakeInstagramRepo{posts: map[uint64]*model.InstagramPost{}, nextID: 500}
	for _, p := range posts {
		if p.Version == 0 {
			p.Version = 1
		}
		r.posts[p.ID] = p.Clone()
	}
	return r
}

func (r *fakeInstagramRepo) ListInstagramPosts(_ context.Context, filter repository.ListFilter) ([]*model.InstagramPost, error) {
	var out []*model.InstagramPost
	for _, p := range r.posts {
		if filter.Status == "" || string(p.Status) == filter.Status {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (r *fakeInstagramRepo) GetInstagramPost(_ context.Context, id uint64) (*model.InstagramPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *fakeInstagramRepo) SaveInstagramPost(_ context.Context, post *model.InstagramPost) (*model.InstagramPost, error) {
	saved := post.Clone()
	if saved.ID == 0 {
		r.nextID++
		saved.ID = r.nextID
		saved.Version = 1
		r.posts[saved.ID] = saved.Clone()
		return saved, nil
	}
	current, ok := r.posts[saved.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.conflicts > 0 {
		r.conflicts--
		current.Version++
		return nil, repository.ErrConcurrentModification
	}
	if current.Version != post.Version {
		return nil, repository.ErrConcurrentModification
	}
	saved.Version++
	r.posts[saved.ID] = saved.Clone()
	return saved, nil
}

func (r *fakeInstagramRepo) DeleteInstagramPost(_ context.Context, id uint64) error {
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

type recordingPublisher struct {
	events []kafka.StatusEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event kafka.StatusEvent) {
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Close() error { return nil }

type fakeStorage struct {
	objects map[string][]byte
	deleted []string
}

func (s *fakeStorage) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[objectName] = data
	return "http://cdn.test/images/" + objectName, nil
}

func (s *fakeStorage) Delete(_ context.Context, objectName string) error {
	delete(s.objects, objectName)
	s.deleted = append(s.deleted, objectName)
	return nil
}

type fakeFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}
