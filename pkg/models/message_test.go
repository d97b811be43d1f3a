package models_test

import (
	"time"

	"github.com/pocketbudget/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestMessageRoundTrip() {
	message := models.Message{
		ExternalID: 42,
		Sender:     "BANK",
		Body:       "LKR 100.00 debited",
		ReceivedAt: time.Date(2025, 10, 1, 17, 49, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(100),
		Kind:       models.Expense,
	}

	suite.Require().Nil(models.DB.Create(&message).Error)

	var read models.Message
	suite.Require().Nil(models.DB.First(&read, "external_id = ?", int64(42)).Error)

	suite.Assert().Equal("BANK", read.Sender)
	suite.Assert().Equal(time.UTC, read.ReceivedAt.Location())
	suite.Assert().True(read.Amount.Equal(decimal.NewFromFloat(100)))
}
