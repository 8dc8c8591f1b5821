package services

import (
	"context"
	"testing"
	"time"

	"bizdel/internal/common"
	"bizdel/internal/models"
	"bizdel/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ComplianceServiceTestSuite struct {
	suite.Suite
	store   *repositories.Store
	service ComplianceService
	context context.Context
	userID  uuid.UUID
}

func (suite *ComplianceServiceTestSuite) SetupTest() {
	suite.store = repositories.NewMemoryStore()
	suite.service = NewComplianceService(suite.store.Compliance)
	suite.context = context.Background()
	suite.userID = uuid.New()
}

func TestComplianceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ComplianceServiceTestSuite))
}

func (suite *ComplianceServiceTestSuite) createItem(frequency string, nextDue time.Time) *models.ComplianceItem {
	item, err := suite.service.Create(suite.context, &CreateComplianceItemRequest{
		UserID:    suite.userID,
		ItemName:  "GSTR-3B",
		ItemType:  "gst",
		Frequency: frequency,
		NextDue:   nextDue,
	})
	assert.NoError(suite.T(), err)
	return item
}

func (suite *ComplianceServiceTestSuite) TestCreate_DefaultsToUpcoming() {
	item := suite.createItem(models.FrequencyMonthly, time.Now().AddDate(0, 0, 10))
	assert.Equal(suite.T(), models.ComplianceStatusUpcoming, item.Status)
	assert.False(suite.T(), item.ReminderSent)
}

func (suite *ComplianceServiceTestSuite) TestCreate_Validation() {
	_, err := suite.service.Create(suite.context, &CreateComplianceItemRequest{
		UserID: suite.userID,
	})
	var verr *common.ValidationError
	assert.ErrorAs(suite.T(), err, &verr)
	assert.Contains(suite.T(), verr.Details, "itemName")
	assert.Contains(suite.T(), verr.Details, "nextDue")
}

func (suite *ComplianceServiceTestSuite) TestMarkFiled_CreatesSuccessor() {
	due := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	item := suite.createItem(models.FrequencyMonthly, due)

	filedAt := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	filed, next, err := suite.service.MarkFiled(suite.context, item.ID, filedAt)
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), models.ComplianceStatusFiled, filed.Status)
	assert.Equal(suite.T(), filedAt, *filed.LastFiled)
	// the original due date is preserved on the filed record
	assert.Equal(suite.T(), due, filed.NextDue)

	assert.NotEqual(suite.T(), filed.ID, next.ID)
	assert.Equal(suite.T(), models.ComplianceStatusUpcoming, next.Status)
	assert.Equal(suite.T(), due.AddDate(0, 1, 0), next.NextDue)
	assert.Equal(suite.T(), filedAt, *next.LastFiled)

	items, err := suite.service.ListByUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 2)
}

func (suite *ComplianceServiceTestSuite) TestMarkFiled_AlreadyFiled() {
	item := suite.createItem(models.FrequencyQuarterly, time.Now().AddDate(0, 0, 3))

	_, _, err := suite.service.MarkFiled(suite.context, item.ID, time.Now())
	assert.NoError(suite.T(), err)

	_, _, err = suite.service.MarkFiled(suite.context, item.ID, time.Now())
	assert.True(suite.T(), common.IsConflict(err))
}

func (suite *ComplianceServiceTestSuite) TestMarkFiled_UnknownID() {
	_, _, err := suite.service.MarkFiled(suite.context, uuid.New(), time.Now())
	assert.True(suite.T(), common.IsNotFound(err))
}

func TestAdvanceDueDate(t *testing.T) {
	due := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency string
		want      time.Time
	}{
		{models.FrequencyMonthly, due.AddDate(0, 1, 0)},
		{models.FrequencyQuarterly, due.AddDate(0, 3, 0)},
		{models.FrequencyAnnual, due.AddDate(1, 0, 0)},
		{"unknown", due.AddDate(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			assert.Equal(t, tt.want, AdvanceDueDate(due, tt.frequency))
		})
	}
}
