// Package mock provides in-memory implementations of the repository and cache
// ports for service and HTTP tests.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"postboard/internal/core/comment"
	"postboard/internal/core/post"
	"postboard/internal/core/user"
	commentPort "postboard/internal/ports/comment"
	postPort "postboard/internal/ports/post"
	userPort "postboard/internal/ports/user"
)

// Store is the shared table set behind the mock repositories. Rows are kept
// in insertion order. Setting Err makes every repository call fail with it.
type Store struct {
	mutex    sync.RWMutex
	users    []*user.User
	posts    []*post.Post
	comments []*comment.Comment

	Err error
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.users, s.posts, s.comments = nil, nil, nil
	s.Err = nil
}

func (s *Store) Users() *UserRepository       { return &UserRepository{store: s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{store: s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{store: s} }

// Counts reports the number of stored users, posts and comments.
func (s *Store) Counts() (users, posts, comments int) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.users), len(s.posts), len(s.comments)
}

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}

type UserRepository struct{ store *Store }

var _ userPort.UserRepository = (*UserRepository)(nil)

func (m *UserRepository) Create(ctx context.Context, in userPort.UserCreate) (*user.User, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	now := time.Now().UTC()
	u := &user.User{ID: newID(), Name: user.DefaultName, CreatedAt: now, UpdatedAt: now}
	if in.Name != nil {
		u.Name = *in.Name
	}
	s.users = append(s.users, u)
	cp := *u
	return &cp, nil
}

func (m *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	s := m.store
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*user.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	s := m.store
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	if i := s.userIndex(id); i >= 0 {
		cp := *s.users[i]
		return &cp, nil
	}
	return nil, nil
}

func (m *UserRepository) Update(ctx context.Context, id string, in userPort.UserUpdate) (*user.User, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	i := s.userIndex(id)
	if i < 0 {
		return nil, errMissing("user", id)
	}
	u := s.users[i]
	if in.Name != nil {
		u.Name = *in.Name
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (m *UserRepository) Delete(ctx context.Context, id string) (*user.User, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	i := s.userIndex(id)
	if i < 0 {
		return nil, errMissing("user", id)
	}
	u := s.users[i]
	s.users = append(s.users[:i], s.users[i+1:]...)
	return u, nil
}

func (m *UserRepository) ListPosts(ctx context.Context, userID string) ([]*post.Post, error) {
	s := m.store
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*post.Post, 0)
	for _, p := range s.posts {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type PostRepository struct{ store *Store }

var _ postPort.PostRepository = (*PostRepository)(nil)

func (m *PostRepository) Create(ctx context.Context, in postPort.PostCreate) (*post.Post, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	now := time.Now().UTC()
	p := &post.Post{
		ID:        newID(),
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts = append(s.posts, p)
	cp := *p
	return &cp, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*post.Post, error) {
	s := m.store
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*post.Post, 0, len(s.posts))
	for _, p := range s.posts {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*post.Post, error) {
	s := m.store
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	if i := s.postIndex(id); i >= 0 {
		cp := *s.posts[i]
		return &cp, nil
	}
	return nil, nil
}

func (m *PostRepository) Update(ctx context.Context, id string, in postPort.PostUpdate) (*post.Post, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	i := s.postIndex(id)
	if i < 0 {
		return nil, errMissing("post", id)
	}
	p := s.posts[i]
	p.Title = in.Title
	p.Content = in.Content
	p.UserID = in.UserID
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *PostRepository) Delete(ctx context.Context, id string) (*post.Post, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	i := s.postIndex(id)
	if i < 0 {
		return nil, errMissing("post", id)
	}
	p := s.posts[i]
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return p, nil
}

func (m *PostRepository) ListComments(ctx context.Context, postID string) ([]*comment.Comment, error) {
	return m.store.Comments().ListForPost(ctx, postID)
}

type CommentRepository struct{ store *Store }

var _ commentPort.CommentRepository = (*CommentRepository)(nil)

func (m *CommentRepository) Create(ctx context.Context, postID string, in commentPort.CommentCreate) (*comment.Comment, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	now := time.Now().UTC()
	c := &comment.Comment{
		ID:        newID(),
		UserID:    in.UserID,
		PostID:    postID,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments = append(s.comments, c)
	cp := *c
	return &cp, nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id string) (*comment.Comment, error) {
	s := m.store
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	if i := s.commentIndex(id); i >= 0 {
		cp := *s.comments[i]
		return &cp, nil
	}
	return nil, nil
}

func (m *CommentRepository) Update(ctx context.Context, id string, in commentPort.CommentUpdate) (*comment.Comment, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	i := s.commentIndex(id)
	if i < 0 {
		return nil, errMissing("comment", id)
	}
	c := s.comments[i]
	if in.Content != nil {
		c.Content = *in.Content
		c.UpdatedAt = time.Now().UTC()
	}
	cp := *c
	return &cp, nil
}

func (m *CommentRepository) Delete(ctx context.Context, id string) (*comment.Comment, error) {
	s := m.store
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	i := s.commentIndex(id)
	if i < 0 {
		return nil, errMissing("comment", id)
	}
	c := s.comments[i]
	s.comments = append(s.comments[:i], s.comments[i+1:]...)
	return c, nil
}

func (m *CommentRepository) ListForPost(ctx context.Context, postID string) ([]*comment.Comment, error) {
	s := m.store
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*comment.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) userIndex(id string) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) postIndex(id string) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) commentIndex(id string) int {
	for i, c := range s.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func errMissing(entity, id string) error {
	return fmt.Errorf("%s %s: record not found", entity, id)
}
