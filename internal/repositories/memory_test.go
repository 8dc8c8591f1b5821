package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	store   *Store
	context context.Context
}

func (suite *MemoryStoreTestSuite) SetupTest() {
	suite.store = NewMemoryStore()
	suite.context = context.Background()
}

func TestMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func (suite *MemoryStoreTestSuite) createUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashed",
	}
	err := suite.store.Users.Create(suite.context, user)
	assert.NoError(suite.T(), err)
	return user
}

func (suite *MemoryStoreTestSuite) TestUserCreate_DuplicateUsername() {
	suite.createUser("ramesh")

	dup := &models.User{Username: "ramesh", PasswordHash: "other"}
	err := suite.store.Users.Create(suite.context, dup)
	assert.Error(suite.T(), err)
	assert.True(suite.T(), common.IsConflict(err))
}

func (suite *MemoryStoreTestSuite) TestUserGetByUsername_NotFound() {
	_, err := suite.store.Users.GetByUsername(suite.context, "nobody")
	assert.True(suite.T(), common.IsNotFound(err))
}

func (suite *MemoryStoreTestSuite) TestProfileCreate_RoundTrip() {
	user := suite.createUser("ramesh")

	gstin := "07ABCDEFGHIJ1Z5"
	profile := &models.BusinessProfile{
		UserID:          user.ID,
		BusinessName:    "Sharma Traders",
		BusinessType:    "retail",
		BusinessAddress: "Karol Bagh, Delhi",
		ContactEmail:    "ramesh@example.com",
		ContactPhone:    "9810000000",
		GSTIN:           &gstin,
		IsVerified:      true, // must be reset by the store
	}
	err := suite.store.Profiles.Create(suite.context, profile)
	assert.NoError(suite.T(), err)

	got, err := suite.store.Profiles.GetByUserID(suite.context, user.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Sharma Traders", got.BusinessName)
	assert.False(suite.T(), got.IsVerified, "profiles always start unverified")
	assert.NotEqual(suite.T(), uuid.Nil, got.ID)
}

func (suite *MemoryStoreTestSuite) TestProfileCreate_OnePerUser() {
	user := suite.createUser("ramesh")

	first := &models.BusinessProfile{UserID: user.ID, BusinessName: "First"}
	assert.NoError(suite.T(), suite.store.Profiles.Create(suite.context, first))

	second := &models.BusinessProfile{UserID: user.ID, BusinessName: "Second"}
	err := suite.store.Profiles.Create(suite.context, second)
	assert.True(suite.T(), common.IsConflict(err))
}

func (suite *MemoryStoreTestSuite) TestProfileUpdate_UnknownUser() {
	name := "New Name"
	_, err := suite.store.Profiles.UpdateByUserID(suite.context, uuid.New(), &models.BusinessProfileUpdate{
		BusinessName: &name,
	})
	assert.True(suite.T(), common.IsNotFound(err))
}

func (suite *MemoryStoreTestSuite) TestApplicationCreate_DisplayIDSequence() {
	user := suite.createUser("ramesh")

	for i := 1; i <= 3; i++ {
		app := &models.Application{UserID: user.ID, LicenseType: "Shop & Establishment"}
		err := suite.store.Applications.Create(suite.context, app)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), fmt.Sprintf("BIZDEL%03d", i), app.DisplayID)
		assert.Equal(suite.T(), models.ApplicationStatusPending, app.Status)
	}
}

func (suite *MemoryStoreTestSuite) TestApplicationCreate_ConcurrentDisplayIDsUnique() {
	user := suite.createUser("ramesh")

	const n = 50
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			app := &models.Application{UserID: user.ID, LicenseType: "GST Registration"}
			if err := suite.store.Applications.Create(suite.context, app); err == nil {
				ids[i] = app.DisplayID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		assert.NotEmpty(suite.T(), id)
		assert.False(suite.T(), seen[id], "display id %s allocated twice", id)
		seen[id] = true
	}
}

func (suite *MemoryStoreTestSuite) TestApplicationCreate_ExpectedCompletion() {
	user := suite.createUser("ramesh")

	app := &models.Application{UserID: user.ID, LicenseType: "Trade License"}
	err := suite.store.Applications.Create(suite.context, app)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), app.SubmittedDate.AddDate(0, 0, 15), app.ExpectedCompletion)
}

func (suite *MemoryStoreTestSuite) TestApplicationUpdate_UnknownID() {
	status := models.ApplicationStatusApproved
	_, err := suite.store.Applications.Update(suite.context, uuid.New(), &models.ApplicationUpdate{
		Status: &status,
	})
	assert.True(suite.T(), common.IsNotFound(err))
}

func (suite *MemoryStoreTestSuite) TestApplicationUpdate_MergesFields() {
	user := suite.createUser("ramesh")
	app := &models.Application{UserID: user.ID, LicenseType: "Trade License"}
	assert.NoError(suite.T(), suite.store.Applications.Create(suite.context, app))

	status := models.ApplicationStatusApproved
	notes := "verified on site"
	updated, err := suite.store.Applications.Update(suite.context, app.ID, &models.ApplicationUpdate{
		Status: &status,
		Notes:  &notes,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ApplicationStatusApproved, updated.Status)
	assert.Equal(suite.T(), "verified on site", *updated.Notes)
	// untouched fields survive the merge
	assert.Equal(suite.T(), "Trade License", updated.LicenseType)
	assert.Equal(suite.T(), app.DisplayID, updated.DisplayID)
}

func (suite *MemoryStoreTestSuite) TestComplianceListByUser_OrderedByDueDate() {
	user := suite.createUser("ramesh")
	base := time.Now()

	later := &models.ComplianceItem{UserID: user.ID, ItemName: "Annual Return", ItemType: "roc", Frequency: models.FrequencyAnnual, NextDue: base.AddDate(0, 2, 0)}
	sooner := &models.ComplianceItem{UserID: user.ID, ItemName: "GSTR-3B", ItemType: "gst", Frequency: models.FrequencyMonthly, NextDue: base.AddDate(0, 0, 5)}
	assert.NoError(suite.T(), suite.store.Compliance.Create(suite.context, later))
	assert.NoError(suite.T(), suite.store.Compliance.Create(suite.context, sooner))

	items, err := suite.store.Compliance.ListByUser(suite.context, user.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), "GSTR-3B", items[0].ItemName)
	assert.Equal(suite.T(), "Annual Return", items[1].ItemName)
}

func (suite *MemoryStoreTestSuite) TestComplianceListDueBefore_ExcludesFiled() {
	user := suite.createUser("ramesh")
	cutoff := time.Now().AddDate(0, 0, 7)

	due := &models.ComplianceItem{UserID: user.ID, ItemName: "GSTR-3B", ItemType: "gst", Frequency: models.FrequencyMonthly, NextDue: time.Now().AddDate(0, 0, 3)}
	filed := &models.ComplianceItem{UserID: user.ID, ItemName: "GSTR-1", ItemType: "gst", Frequency: models.FrequencyMonthly, NextDue: time.Now().AddDate(0, 0, 2), Status: models.ComplianceStatusFiled}
	farOut := &models.ComplianceItem{UserID: user.ID, ItemName: "Annual Return", ItemType: "roc", Frequency: models.FrequencyAnnual, NextDue: time.Now().AddDate(0, 6, 0)}
	assert.NoError(suite.T(), suite.store.Compliance.Create(suite.context, due))
	assert.NoError(suite.T(), suite.store.Compliance.Create(suite.context, filed))
	assert.NoError(suite.T(), suite.store.Compliance.Create(suite.context, farOut))

	items, err := suite.store.Compliance.ListDueBefore(suite.context, cutoff)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), "GSTR-3B", items[0].ItemName)
}

func (suite *MemoryStoreTestSuite) TestDocumentDelete_Twice() {
	user := suite.createUser("ramesh")
	doc := &models.Document{UserID: user.ID, FileName: "pan.pdf", FileType: "application/pdf", FileSize: 1024}
	assert.NoError(suite.T(), suite.store.Documents.Create(suite.context, doc))

	deleted, err := suite.store.Documents.Delete(suite.context, doc.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), deleted)

	deleted, err = suite.store.Documents.Delete(suite.context, doc.ID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
}

func (suite *MemoryStoreTestSuite) TestNotificationList_NewestFirst() {
	user := suite.createUser("ramesh")

	first := &models.Notification{UserID: user.ID, Title: "First", Message: "m", Type: models.NotificationTypeInfo}
	assert.NoError(suite.T(), suite.store.Notifications.Create(suite.context, first))
	time.Sleep(2 * time.Millisecond)
	second := &models.Notification{UserID: user.ID, Title: "Second", Message: "m", Type: models.NotificationTypeInfo}
	assert.NoError(suite.T(), suite.store.Notifications.Create(suite.context, second))

	notifications, err := suite.store.Notifications.ListByUser(suite.context, user.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), notifications, 2)
	assert.Equal(suite.T(), "Second", notifications[0].Title)
	assert.Equal(suite.T(), "First", notifications[1].Title)
}

func (suite *MemoryStoreTestSuite) TestNotificationMarkRead() {
	user := suite.createUser("ramesh")
	n := &models.Notification{UserID: user.ID, Title: "T", Message: "m", Type: models.NotificationTypeInfo}
	assert.NoError(suite.T(), suite.store.Notifications.Create(suite.context, n))

	marked, err := suite.store.Notifications.MarkRead(suite.context, n.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), marked)

	notifications, err := suite.store.Notifications.ListByUser(suite.context, user.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), notifications[0].IsRead)

	marked, err = suite.store.Notifications.MarkRead(suite.context, uuid.New())
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), marked)
}

func (suite *MemoryStoreTestSuite) TestSchemeSeed_IdempotentAndFiltered() {
	assert.NoError(suite.T(), SeedSchemes(suite.context, suite.store.Schemes))
	assert.NoError(suite.T(), SeedSchemes(suite.context, suite.store.Schemes), "second seed is a no-op")

	count, err := suite.store.Schemes.Count(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), len(DefaultSchemes()), count)

	all, err := suite.store.Schemes.ListActive(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), all, count)

	financial, err := suite.store.Schemes.ListActiveByType(suite.context, "financial")
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), financial)
	for _, s := range financial {
		assert.Equal(suite.T(), "financial", s.SchemeType)
		assert.True(suite.T(), s.IsActive)
	}
}

func (suite *MemoryStoreTestSuite) TestClonesDoNotLeakStoreState() {
	user := suite.createUser("ramesh")
	app := &models.Application{
		UserID:      user.ID,
		LicenseType: "Trade License",
		FormData:    models.JSONB{"shopName": "Sharma Traders"},
	}
	assert.NoError(suite.T(), suite.store.Applications.Create(suite.context, app))

	got, err := suite.store.Applications.GetByID(suite.context, app.ID)
	assert.NoError(suite.T(), err)
	got.FormData["shopName"] = "mutated"

	again, err := suite.store.Applications.GetByID(suite.context, app.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Sharma Traders", again.FormData["shopName"])
}
