package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"content-review/internal/data/entity"
	"content-review/internal/data/repository"
	"content-review/pkg/apperr"

	"github.com/google/uuid"
)

// In-memory repository fakes. Uniqueness violations surface as the same
// conflict errors the pgx implementations produce, so services see
// identical behavior.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return apperr.Conflict("username", "This username is already taken")
		}
		if u.Email == user.Email {
			return apperr.Conflict("email", "This email is already in use")
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if search == "" || strings.Contains(u.Username, search) {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, search string) (int64, error) {
	users, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(users)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("user missing")
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

type fakeCodeRepo struct {
	codes map[uuid.UUID]*entity.ConfirmationCode // keyed by user ID
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: make(map[uuid.UUID]*entity.ConfirmationCode)}
}

func (f *fakeCodeRepo) Upsert(ctx context.Context, code *entity.ConfirmationCode) error {
	clone := *code
	f.codes[code.UserID] = &clone
	return nil
}

func (f *fakeCodeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ConfirmationCode, error) {
	if c, ok := f.codes[userID]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeCodeRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	delete(f.codes, userID)
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session // keyed by token
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	clone := *session
	f.sessions[session.Token] = &clone
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	if s, ok := f.sessions[parsed]; ok && s.RevokedAt == nil {
		clone := *s
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return errors.New("session not found")
	}
	s, ok := f.sessions[parsed]
	if !ok || s.RevokedAt != nil {
		return errors.New("session not found")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	for _, c := range f.categories {
		if c.Slug == category.Slug {
			return apperr.Conflict("slug", "This slug is already taken")
		}
	}
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if c, ok := f.categories[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if search == "" || strings.Contains(c.Name, search) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) CountAll(ctx context.Context, search string) (int64, error) {
	categories, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(categories)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	for id, c := range f.categories {
		if c.Slug == slug {
			delete(f.categories, id)
			return true, nil
		}
	}
	return false, nil
}

type fakeGenreRepo struct {
	genres  map[uuid.UUID]*entity.Genre
	byTitle map[uuid.UUID][]uuid.UUID // title ID -> genre IDs
}

func newFakeGenreRepo() *fakeGenreRepo {
	return &fakeGenreRepo{
		genres:  make(map[uuid.UUID]*entity.Genre),
		byTitle: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeGenreRepo) Create(ctx context.Context, genre *entity.Genre) error {
	for _, g := range f.genres {
		if g.Slug == genre.Slug {
			return apperr.Conflict("slug", "This slug is already taken")
		}
	}
	clone := *genre
	f.genres[genre.ID] = &clone
	return nil
}

func (f *fakeGenreRepo) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	for _, g := range f.genres {
		if g.Slug == slug {
			clone := *g
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindBySlugs(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, slug := range slugs {
		if g, _ := f.FindBySlug(ctx, slug); g != nil {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, gid := range f.byTitle[titleID] {
		if g, ok := f.genres[gid]; ok {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, g := range f.genres {
		if search == "" || strings.Contains(g.Name, search) {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) CountAll(ctx context.Context, search string) (int64, error) {
	genres, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(genres)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	for id, g := range f.genres {
		if g.Slug == slug {
			delete(f.genres, id)
			return true, nil
		}
	}
	return false, nil
}

type fakeTitleRepo struct {
	titles  map[uuid.UUID]*entity.Title
	reviews *fakeReviewRepo
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{titles: make(map[uuid.UUID]*entity.Title)}
}

// withRating mirrors the SQL AVG(score) join: the returned clone carries
// the mean of the title's current review scores, nil when it has none.
func (f *fakeTitleRepo) withRating(t *entity.Title) *entity.Title {
	clone := *t
	clone.Rating = nil
	if f.reviews != nil {
		var sum, n int
		for _, rv := range f.reviews.reviews {
			if rv.TitleID == t.ID {
				sum += rv.Score
				n++
			}
		}
		if n > 0 {
			avg := float64(sum) / float64(n)
			clone.Rating = &avg
		}
	}
	return &clone
}

func (f *fakeTitleRepo) Create(ctx context.Context, title *entity.Title) error {
	clone := *title
	f.titles[title.ID] = &clone
	return nil
}

func (f *fakeTitleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	if t, ok := f.titles[id]; ok {
		return f.withRating(t), nil
	}
	return nil, nil
}

func (f *fakeTitleRepo) FindAll(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var out []*entity.Title
	for _, t := range f.titles {
		if filter.Year != 0 && t.Year != filter.Year {
			continue
		}
		if filter.Name != "" && !strings.Contains(t.Name, filter.Name) {
			continue
		}
		out = append(out, f.withRating(t))
	}
	return out, nil
}

func (f *fakeTitleRepo) CountAll(ctx context.Context, filter repository.TitleFilter) (int64, error) {
	titles, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(titles)), nil
}

func (f *fakeTitleRepo) Update(ctx context.Context, title *entity.Title) error {
	if _, ok := f.titles[title.ID]; !ok {
		return errors.New("title missing")
	}
	clone := *title
	f.titles[title.ID] = &clone
	return nil
}

func (f *fakeTitleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.titles, id)
	return nil
}

type fakeTitleGenreRepo struct {
	genreRepo *fakeGenreRepo
}

func (f *fakeTitleGenreRepo) Replace(ctx context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	f.genreRepo.byTitle[titleID] = append([]uuid.UUID(nil), genreIDs...)
	return nil
}

func (f *fakeTitleGenreRepo) DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error {
	delete(f.genreRepo.byTitle, titleID)
	return nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	for _, r := range f.reviews {
		if r.TitleID == review.TitleID && r.AuthorID == review.AuthorID {
			return apperr.Conflict("review", "You have already reviewed this title")
		}
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	if r, ok := f.reviews[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	reviews, _ := f.FindByTitleID(ctx, titleID, 0, 0)
	return int64(len(reviews)), nil
}

func (f *fakeReviewRepo) FindByTitleAndAuthor(ctx context.Context, titleID, authorID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.TitleID == titleID && r.AuthorID == authorID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return errors.New("review missing")
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.reviews, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	if c, ok := f.comments[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeCommentRepo) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	comments, _ := f.FindByReviewID(ctx, reviewID, 0, 0)
	return int64(len(comments)), nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, comment *entity.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return errors.New("comment missing")
	}
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

// fakeMailer records outbound mail and can be told to fail
type fakeMailer struct {
	sent []fakeMail
	fail bool
}

type fakeMail struct {
	To      string
	Subject string
	Body    string
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.fail {
		return errors.New("smtp connection refused")
	}
	m.sent = append(m.sent, fakeMail{To: to, Subject: subject, Body: body})
	return nil
}

// newFakeRepository bundles fresh fakes into the aggregate the services
// consume.
func newFakeRepository() *repository.Repository {
	genres := newFakeGenreRepo()
	reviews := newFakeReviewRepo()
	titles := newFakeTitleRepo()
	titles.reviews = reviews
	return &repository.Repository{
		User:             newFakeUserRepo(),
		Session:          newFakeSessionRepo(),
		ConfirmationCode: newFakeCodeRepo(),
		Category:         newFakeCategoryRepo(),
		Genre:            genres,
		Title:            titles,
		TitleGenre:       &fakeTitleGenreRepo{genreRepo: genres},
		Review:           reviews,
		Comment:          newFakeCommentRepo(),
	}
}
