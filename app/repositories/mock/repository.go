// Package mock provides in-memory repositories for service and controller tests.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// Store is the shared backing state for the mock repositories, so that
// articles can see their comments and authors the way the gorm ones do.
type Store struct {
	mutex    sync.RWMutex
	users    map[uint]*models.User
	articles map[uint]*models.Article
	comments map[uint]*models.Comment
	nextID   uint
	// Err, when set, is returned from every write.
	Err error
}

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.users = make(map[uint]*models.User)
	s.articles = make(map[uint]*models.Article)
	s.comments = make(map[uint]*models.Comment)
	s.nextID = 1
	s.Err = nil
}

func (s *Store) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s} }
func (s *Store) Articles() *ArticleRepository { return &ArticleRepository{s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s} }

type UserRepository struct{ s *Store }

func (m *UserRepository) Create(_ context.Context, user *models.User) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}
	for _, u := range m.s.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.s.id()
	user.CreatedAt = time.Now().UTC()
	stored := *user
	m.s.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	user := *u
	return &user, nil
}

func (m *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	for _, u := range m.s.users {
		if u.Username == username {
			user := *u
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type ArticleRepository struct{ s *Store }

func (m *ArticleRepository) Create(_ context.Context, article *models.Article) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}
	article.ID = m.s.id()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}
	stored := *article
	stored.User = models.User{}
	stored.Comments = nil
	m.s.articles[article.ID] = &stored
	return nil
}

// load copies an article and attaches its author; callers hold the lock.
func (m *ArticleRepository) load(a *models.Article) *models.Article {
	article := *a
	if u, ok := m.s.users[a.UserID]; ok {
		article.User = *u
	}
	return &article
}

func (m *ArticleRepository) GetByID(_ context.Context, id uint) (*models.Article, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	a, ok := m.s.articles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return m.load(a), nil
}

func (m *ArticleRepository) List(_ context.Context) ([]*models.Article, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	list := make([]*models.Article, 0, len(m.s.articles))
	for _, a := range m.s.articles {
		list = append(list, m.load(a))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (m *ArticleRepository) UpdateContent(_ context.Context, article *models.Article) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}
	a, ok := m.s.articles[article.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	a.SetContent(article.Title, article.Intro, article.Text)
	return nil
}

func (m *ArticleRepository) Delete(_ context.Context, id uint) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}
	if _, ok := m.s.articles[id]; !ok {
		return repositories.ErrNotFound
	}
	for cid, c := range m.s.comments {
		if c.ArticleID == id {
			delete(m.s.comments, cid)
		}
	}
	delete(m.s.articles, id)
	return nil
}

type CommentRepository struct{ s *Store }

// commentsFor returns copies of an article's comments, oldest first; callers hold the lock.
func (s *Store) commentsFor(articleID uint) []*models.Comment {
	var list []*models.Comment
	for _, c := range s.comments {
		if c.ArticleID != articleID {
			continue
		}
		comment := *c
		if u, ok := s.users[c.UserID]; ok {
			comment.User = *u
		}
		list = append(list, &comment)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (m *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}
	if _, ok := m.s.articles[comment.ArticleID]; !ok {
		return repositories.ErrNotFound
	}
	comment.ID = m.s.id()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	stored := *comment
	stored.User = models.User{}
	stored.Article = nil
	m.s.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	c, ok := m.s.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	comment := *c
	if u, ok := m.s.users[c.UserID]; ok {
		comment.User = *u
	}
	return &comment, nil
}

func (m *CommentRepository) ListByArticle(_ context.Context, articleID uint) ([]*models.Comment, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	return m.s.commentsFor(articleID), nil
}

func (m *CommentRepository) UpdateText(_ context.Context, comment *models.Comment) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}
	c, ok := m.s.comments[comment.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Text = comment.Text
	return nil
}

func (m *CommentRepository) Delete(_ context.Context, id uint) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}
	if _, ok := m.s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.s.comments, id)
	return nil
}

var (
	_ repositories.UserRepository    = (*UserRepository)(nil)
	_ repositories.ArticleRepository = (*ArticleRepository)(nil)
	_ repositories.CommentRepository = (*CommentRepository)(nil)
)
