package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"

	"github.com/google/uuid"
)

// memStore is the in-memory stand-in for a relational database: one
// mutex-guarded map per entity table. It implements every repository
// interface through the typed views below, so handlers and services cannot
// tell it apart from the Postgres store.
type memStore struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*models.User
	profiles      map[uuid.UUID]*models.BusinessProfile
	applications  map[uuid.UUID]*models.Application
	compliance    map[uuid.UUID]*models.ComplianceItem
	documents     map[uuid.UUID]*models.Document
	schemes       map[uuid.UUID]*models.Scheme
	notifications map[uuid.UUID]*models.Notification

	// Display-id sequence. An atomic counter, deliberately not a row count:
	// counting rows races under concurrent creation.
	displaySeq atomic.Int64
}

// Store bundles the repository set behind the one seam callers depend on.
// Swapping the backing store never touches callers.
type Store struct {
	Users         UserRepository
	Profiles      ProfileRepository
	Applications  ApplicationRepository
	Compliance    ComplianceRepository
	Documents     DocumentRepository
	Schemes       SchemeRepository
	Notifications NotificationRepository
}

// NewMemoryStore builds the default in-memory store.
func NewMemoryStore() *Store {
	s := &memStore{
		users:         make(map[uuid.UUID]*models.User),
		profiles:      make(map[uuid.UUID]*models.BusinessProfile),
		applications:  make(map[uuid.UUID]*models.Application),
		compliance:    make(map[uuid.UUID]*models.ComplianceItem),
		documents:     make(map[uuid.UUID]*models.Document),
		schemes:       make(map[uuid.UUID]*models.Scheme),
		notifications: make(map[uuid.UUID]*models.Notification),
	}
	return &Store{
		Users:         &memUserRepo{s},
		Profiles:      &memProfileRepo{s},
		Applications:  &memApplicationRepo{s},
		Compliance:    &memComplianceRepo{s},
		Documents:     &memDocumentRepo{s},
		Schemes:       &memSchemeRepo{s},
		Notifications: &memNotificationRepo{s},
	}
}

// NewPostgresStore builds the Postgres-backed repository set over one pool.
func NewPostgresStore(db DB) *Store {
	return &Store{
		Users:         NewUserRepo(db),
		Profiles:      NewProfileRepo(db),
		Applications:  NewApplicationRepo(db),
		Compliance:    NewComplianceRepo(db),
		Documents:     NewDocumentRepo(db),
		Schemes:       NewSchemeRepo(db),
		Notifications: NewNotificationRepo(db),
	}
}

// Users

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return &common.ConflictError{Message: fmt.Sprintf("username '%s' already exists", user.Username)}
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, &common.NotFoundError{Resource: "User"}
	}
	return cloneUser(user), nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, &common.NotFoundError{Resource: "User"}
}

// Business profiles

type memProfileRepo struct{ s *memStore }

func (r *memProfileRepo) Create(ctx context.Context, profile *models.BusinessProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.profiles {
		if existing.UserID == profile.UserID {
			return &common.ConflictError{Message: "business profile already exists for this user"}
		}
	}

	profile.ID = uuid.New()
	profile.IsVerified = false
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.s.profiles[profile.ID] = cloneProfile(profile)
	return nil
}

func (r *memProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.BusinessProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, profile := range r.s.profiles {
		if profile.UserID == userID {
			return cloneProfile(profile), nil
		}
	}
	return nil, &common.NotFoundError{Resource: "Profile"}
}

func (r *memProfileRepo) UpdateByUserID(ctx context.Context, userID uuid.UUID, updates *models.BusinessProfileUpdate) (*models.BusinessProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, profile := range r.s.profiles {
		if profile.UserID == userID {
			applyProfileUpdate(profile, updates)
			profile.UpdatedAt = time.Now()
			return cloneProfile(profile), nil
		}
	}
	return nil, &common.NotFoundError{Resource: "Profile"}
}

// Applications

type memApplicationRepo struct{ s *memStore }

func (r *memApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	seq := r.s.displaySeq.Add(1)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app.ID = uuid.New()
	app.DisplayID = FormatDisplayID(seq)
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	app.SubmittedDate = time.Now()
	app.ExpectedCompletion = app.SubmittedDate.AddDate(0, 0, 15)

	r.s.applications[app.ID] = cloneApplication(app)
	return nil
}

func (r *memApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, &common.NotFoundError{Resource: "Application"}
	}
	return cloneApplication(app), nil
}

func (r *memApplicationRepo) Update(ctx context.Context, id uuid.UUID, updates *models.ApplicationUpdate) (*models.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, &common.NotFoundError{Resource: "Application"}
	}
	applyApplicationUpdate(app, updates)
	return cloneApplication(app), nil
}

func (r *memApplicationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var apps []*models.Application
	for _, app := range r.s.applications {
		if app.UserID == userID {
			apps = append(apps, cloneApplication(app))
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].SubmittedDate.Equal(apps[j].SubmittedDate) {
			return apps[i].SubmittedDate.After(apps[j].SubmittedDate)
		}
		return apps[i].ID.String() < apps[j].ID.String()
	})
	return apps, nil
}

// Compliance items

type memComplianceRepo struct{ s *memStore }

func (r *memComplianceRepo) Create(ctx context.Context, item *models.ComplianceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.ID = uuid.New()
	if item.Status == "" {
		item.Status = models.ComplianceStatusUpcoming
	}
	r.s.compliance[item.ID] = cloneComplianceItem(item)
	return nil
}

func (r *memComplianceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ComplianceItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.compliance[id]
	if !ok {
		return nil, &common.NotFoundError{Resource: "Compliance item"}
	}
	return cloneComplianceItem(item), nil
}

func (r *memComplianceRepo) Update(ctx context.Context, id uuid.UUID, updates *models.ComplianceItemUpdate) (*models.ComplianceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.compliance[id]
	if !ok {
		return nil, &common.NotFoundError{Resource: "Compliance item"}
	}
	applyComplianceUpdate(item, updates)
	return cloneComplianceItem(item), nil
}

func (r *memComplianceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.ComplianceItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []*models.ComplianceItem
	for _, item := range r.s.compliance {
		if item.UserID == userID {
			items = append(items, cloneComplianceItem(item))
		}
	}
	sortComplianceItems(items)
	return items, nil
}

func (r *memComplianceRepo) ListDueBefore(ctx context.Context, cutoff time.Time) ([]*models.ComplianceItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []*models.ComplianceItem
	for _, item := range r.s.compliance {
		if item.NextDue.Before(cutoff) && item.Status != models.ComplianceStatusFiled {
			items = append(items, cloneComplianceItem(item))
		}
	}
	sortComplianceItems(items)
	return items, nil
}

func sortComplianceItems(items []*models.ComplianceItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].NextDue.Equal(items[j].NextDue) {
			return items[i].NextDue.Before(items[j].NextDue)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
}

// Documents

type memDocumentRepo struct{ s *memStore }

func (r *memDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc.ID = uuid.New()
	doc.UploadDate = time.Now()
	doc.IsVerified = false
	r.s.documents[doc.ID] = cloneDocument(doc)
	return nil
}

func (r *memDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	doc, ok := r.s.documents[id]
	if !ok {
		return nil, &common.NotFoundError{Resource: "Document"}
	}
	return cloneDocument(doc), nil
}

func (r *memDocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var docs []*models.Document
	for _, doc := range r.s.documents {
		if doc.UserID == userID {
			docs = append(docs, cloneDocument(doc))
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadDate.Equal(docs[j].UploadDate) {
			return docs[i].UploadDate.After(docs[j].UploadDate)
		}
		return docs[i].ID.String() < docs[j].ID.String()
	})
	return docs, nil
}

func (r *memDocumentRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[id]; !ok {
		return false, nil
	}
	delete(r.s.documents, id)
	return true, nil
}

// Schemes

type memSchemeRepo struct{ s *memStore }

func (r *memSchemeRepo) Create(ctx context.Context, scheme *models.Scheme) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if scheme.ID == uuid.Nil {
		scheme.ID = uuid.New()
	}
	r.s.schemes[scheme.ID] = cloneScheme(scheme)
	return nil
}

func (r *memSchemeRepo) ListActive(ctx context.Context) ([]*models.Scheme, error) {
	return r.listActive(func(*models.Scheme) bool { return true })
}

func (r *memSchemeRepo) ListActiveByType(ctx context.Context, schemeType string) ([]*models.Scheme, error) {
	return r.listActive(func(s *models.Scheme) bool { return s.SchemeType == schemeType })
}

func (r *memSchemeRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.schemes), nil
}

func (r *memSchemeRepo) listActive(match func(*models.Scheme) bool) ([]*models.Scheme, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var schemes []*models.Scheme
	for _, scheme := range r.s.schemes {
		if scheme.IsActive && match(scheme) {
			schemes = append(schemes, cloneScheme(scheme))
		}
	}
	sort.Slice(schemes, func(i, j int) bool {
		return schemes[i].SchemeName < schemes[j].SchemeName
	})
	return schemes, nil
}

// Notifications

type memNotificationRepo struct{ s *memStore }

func (r *memNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	notification.ID = uuid.New()
	notification.IsRead = false
	notification.CreatedAt = time.Now()
	r.s.notifications[notification.ID] = cloneNotification(notification)
	return nil
}

func (r *memNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var notifications []*models.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, cloneNotification(n))
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID.String() < notifications[j].ID.String()
	})
	return notifications, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return false, nil
	}
	n.IsRead = true
	return true, nil
}

// Clone helpers: the store owns entity lifetime, callers only ever see copies.

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func cloneProfile(p *models.BusinessProfile) *models.BusinessProfile {
	c := *p
	return &c
}

func cloneApplication(a *models.Application) *models.Application {
	c := *a
	if a.FormData != nil {
		c.FormData = make(models.JSONB, len(a.FormData))
		for k, v := range a.FormData {
			c.FormData[k] = v
		}
	}
	if a.Documents != nil {
		c.Documents = make([]models.FileRef, len(a.Documents))
		copy(c.Documents, a.Documents)
	}
	return &c
}

func cloneComplianceItem(i *models.ComplianceItem) *models.ComplianceItem {
	c := *i
	return &c
}

func cloneDocument(d *models.Document) *models.Document {
	c := *d
	return &c
}

func cloneScheme(s *models.Scheme) *models.Scheme {
	c := *s
	if s.EligibilityCriteria != nil {
		c.EligibilityCriteria = make(models.JSONB, len(s.EligibilityCriteria))
		for k, v := range s.EligibilityCriteria {
			c.EligibilityCriteria[k] = v
		}
	}
	return &c
}

func cloneNotification(n *models.Notification) *models.Notification {
	c := *n
	return &c
}
