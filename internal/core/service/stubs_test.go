package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubBookRepo struct {
	books     map[string]*domain.Book
	seq       int
	createErr error
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]*domain.Book)}
}

func (r *stubBookRepo) addBook(title, author, category string, available bool) *domain.Book {
	r.seq++
	id := fmt.Sprintf("book-%d", r.seq)
	b := &domain.Book{
		ID:        id,
		Title:     title,
		Author:    author,
		Category:  category,
		Available: available,
		CreatedAt: time.Now().UTC(),
	}
	r.books[id] = b
	return b
}

func (r *stubBookRepo) Create(_ context.Context, b *domain.Book) (*domain.Book, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *b
	clone.ID = fmt.Sprintf("book-%d", r.seq)
	r.books[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubBookRepo) List(_ context.Context, f ports.ListBooksFilter) ([]*domain.Book, int64, error) {
	var matched []*domain.Book
	for _, b := range r.books {
		if f.Category != "" && !strings.EqualFold(b.Category, f.Category) {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(b.Title), s) && !strings.Contains(strings.ToLower(b.Author), s) {
				continue
			}
		}
		if f.AvailableOnly && !b.Available {
			continue
		}
		clone := *b
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubBookRepo) Update(_ context.Context, id string, upd ports.BookUpdate) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Author != nil {
		b.Author = *upd.Author
	}
	if upd.Category != nil {
		b.Category = *upd.Category
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

// MarkUnavailable mirrors the conditional update of the real repo: the flip
// only succeeds while Available is still true.
func (r *stubBookRepo) MarkUnavailable(_ context.Context, id string) error {
	b, ok := r.books[id]
	if !ok {
		return domain.ErrBookNotFound
	}
	if !b.Available {
		return domain.ErrBookUnavailable
	}
	b.Available = false
	return nil
}

func (r *stubBookRepo) MarkAvailable(_ context.Context, id string) error {
	b, ok := r.books[id]
	if !ok {
		return domain.ErrBookNotFound
	}
	b.Available = true
	return nil
}

type stubLoanRepo struct {
	loans     map[string]*domain.Loan
	seq       int
	createErr error
}

func newStubLoanRepo() *stubLoanRepo {
	return &stubLoanRepo{loans: make(map[string]*domain.Loan)}
}

func (r *stubLoanRepo) addLoan(bookID, userID string, due time.Time, status domain.LoanStatus) *domain.Loan {
	r.seq++
	id := fmt.Sprintf("loan-%d", r.seq)
	l := &domain.Loan{
		ID:       id,
		BookID:   bookID,
		UserID:   userID,
		LoanedAt: time.Now().UTC(),
		DueDate:  due,
		Status:   status,
	}
	r.loans[id] = l
	return l
}

func (r *stubLoanRepo) Create(_ context.Context, l *domain.Loan) (*domain.Loan, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *l
	clone.ID = fmt.Sprintf("loan-%d", r.seq)
	r.loans[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubLoanRepo) FindByID(_ context.Context, id string) (*domain.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubLoanRepo) ListByUser(_ context.Context, userID string, activeOnly bool) ([]*domain.Loan, error) {
	var out []*domain.Loan
	for _, l := range r.loans {
		if l.UserID != userID {
			continue
		}
		if activeOnly && l.Status != domain.LoanActive {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubLoanRepo) ListAll(_ context.Context, activeOnly bool) ([]*domain.Loan, error) {
	var out []*domain.Loan
	for _, l := range r.loans {
		if activeOnly && l.Status != domain.LoanActive {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	return out, nil
}

// MarkReturned mirrors the conditional update of the real repo: only an
// ACTIVE loan transitions; a second caller gets ErrLoanAlreadyReturned.
func (r *stubLoanRepo) MarkReturned(_ context.Context, id string, returnedAt time.Time, fineCents int64) (*domain.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	if l.Status != domain.LoanActive {
		return nil, domain.ErrLoanAlreadyReturned
	}
	l.Status = domain.LoanReturned
	ret := returnedAt
	l.ReturnedAt = &ret
	l.FineCents = fineCents
	clone := *l
	return &clone, nil
}

func (r *stubLoanRepo) HasActiveForBook(_ context.Context, bookID string) (bool, error) {
	for _, l := range r.loans {
		if l.BookID == bookID && l.Status == domain.LoanActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubLoanRepo) ListOverdue(_ context.Context, asOf time.Time) ([]*domain.Loan, error) {
	var out []*domain.Loan
	for _, l := range r.loans {
		if l.Status == domain.LoanActive && l.DueDate.Before(asOf) {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubReservationRepo struct {
	reservations map[string]*domain.Reservation
	seq          int
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{reservations: make(map[string]*domain.Reservation)}
}

func (r *stubReservationRepo) addReservation(bookID, userID string, expiresAt time.Time, status domain.ReservationStatus) *domain.Reservation {
	r.seq++
	id := fmt.Sprintf("res-%d", r.seq)
	res := &domain.Reservation{
		ID:         id,
		BookID:     bookID,
		UserID:     userID,
		ReservedAt: time.Now().UTC(),
		ExpiresAt:  expiresAt,
		Status:     status,
	}
	r.reservations[id] = res
	return res
}

func (r *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.seq++
	clone := *res
	clone.ID = fmt.Sprintf("res-%d", r.seq)
	r.reservations[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReservationRepo) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubReservationRepo) ListByUser(_ context.Context, userID string) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range r.reservations {
		if res.UserID == userID {
			clone := *res
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReservationRepo) ListAll(_ context.Context) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, res := range r.reservations {
		clone := *res
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubReservationRepo) Cancel(_ context.Context, id string) error {
	res, ok := r.reservations[id]
	if !ok {
		return domain.ErrReservationNotFound
	}
	if res.Status != domain.ReservationActive {
		return domain.ErrReservationNotActive
	}
	res.Status = domain.ReservationCancelled
	return nil
}

type stubReviewRepo struct {
	reviews map[string]*domain.Review
	seq     int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rev *domain.Review) (*domain.Review, error) {
	r.seq++
	clone := *rev
	clone.ID = fmt.Sprintf("review-%d", r.seq)
	r.reviews[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	rev, ok := r.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	clone := *rev
	return &clone, nil
}

func (r *stubReviewRepo) ListByBook(_ context.Context, bookID string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, rev := range r.reviews {
		if rev.BookID == bookID {
			clone := *rev
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) ListByUser(_ context.Context, userID string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, rev := range r.reviews {
		if rev.UserID == userID {
			clone := *rev
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) addUser(username, email, role string, active bool) *domain.User {
	r.seq++
	id := fmt.Sprintf("user-%d", r.seq)
	u := &domain.User{
		ID:        id,
		Username:  username,
		Email:     email,
		Role:      role,
		Active:    active,
		CreatedAt: time.Now().UTC(),
	}
	r.users[id] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Activate(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = true
	return nil
}

type stubProfileRepo struct {
	profiles  map[string]*domain.Profile // keyed by user id
	appendErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	clone := *p
	if clone.ActivityLog == nil {
		clone.ActivityLog = []domain.ActivityEntry{}
	}
	r.profiles[p.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) UpdateBio(_ context.Context, userID, bio string) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.Bio = bio
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) AppendActivity(_ context.Context, userID string, entry domain.ActivityEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	p, ok := r.profiles[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.ActivityLog = append(p.ActivityLog, entry)
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type stubNotifier struct {
	sent    []sentMail
	sendErr error
}

func (n *stubNotifier) Send(_ context.Context, to, subject, body string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
