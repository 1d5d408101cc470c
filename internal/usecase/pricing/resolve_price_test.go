package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucPricing "github.com/BruksfildServices01/barber-booking/internal/usecase/pricing"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	args := m.Called(ctx, serviceID)
	svc, _ := args.Get(0).(*models.Service)
	return svc, args.Error(1)
}

func (m *mockRepo) GetCurrentSubscription(ctx context.Context, clientID uint, now time.Time) (*models.Subscription, error) {
	args := m.Called(ctx, clientID, now)
	sub, _ := args.Get(0).(*models.Subscription)
	return sub, args.Error(1)
}

func (m *mockRepo) GetPlanDiscount(ctx context.Context, planID, serviceID uint) (*models.PlanDiscount, error) {
	args := m.Called(ctx, planID, serviceID)
	d, _ := args.Get(0).(*models.PlanDiscount)
	return d, args.Error(1)
}

var now = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func haircut() *models.Service {
	return &models.Service{ID: 3, Name: "Corte", DurationMinutes: 45, Price: decimal.RequireFromString("89.90"), Active: true}
}

func TestResolvePrice_WithPlanDiscount(t *testing.T) {
	repo := new(mockRepo)
	ctx := context.Background()

	repo.On("GetService", ctx, uint(3)).Return(haircut(), nil)
	repo.On("GetCurrentSubscription", ctx, uint(10), now).Return(&models.Subscription{
		ClientID:           10,
		PlanID:             5,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: now.AddDate(0, -1, 0),
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}, nil)
	repo.On("GetPlanDiscount", ctx, uint(5), uint(3)).Return(&models.PlanDiscount{
		PlanID:             5,
		ServiceID:          3,
		DiscountPercentage: decimal.NewFromInt(20),
	}, nil)

	q, err := ucPricing.NewResolvePrice(repo, clock).Execute(ctx, ucPricing.ResolvePriceInput{ClientID: 10, ServiceID: 3})
	require.NoError(t, err)

	assert.Equal(t, "71.92", q.AmountDue.StringFixed(2))
	assert.Equal(t, "89.90", q.BasePrice.StringFixed(2))
	assert.True(t, q.IsDiscounted)
	repo.AssertExpectations(t)
}

func TestResolvePrice_NoSubscriptionSkipsDiscountLookup(t *testing.T) {
	repo := new(mockRepo)
	ctx := context.Background()

	repo.On("GetService", ctx, uint(3)).Return(haircut(), nil)
	repo.On("GetCurrentSubscription", ctx, uint(10), now).Return(nil, nil)

	q, err := ucPricing.NewResolvePrice(repo, clock).Execute(ctx, ucPricing.ResolvePriceInput{ClientID: 10, ServiceID: 3})
	require.NoError(t, err)

	assert.Equal(t, "89.90", q.AmountDue.StringFixed(2))
	repo.AssertNotCalled(t, "GetPlanDiscount", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolvePrice_AnonymousCaller(t *testing.T) {
	repo := new(mockRepo)
	ctx := context.Background()

	repo.On("GetService", ctx, uint(3)).Return(haircut(), nil)

	q, err := ucPricing.NewResolvePrice(repo, clock).Execute(ctx, ucPricing.ResolvePriceInput{ServiceID: 3})
	require.NoError(t, err)

	assert.Equal(t, "89.90", q.AmountDue.StringFixed(2))
	repo.AssertNotCalled(t, "GetCurrentSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolvePrice_Errors(t *testing.T) {
	ctx := context.Background()

	repo := new(mockRepo)
	repo.On("GetService", ctx, uint(9)).Return(nil, httperr.ErrBusiness("service_not_found"))
	_, err := ucPricing.NewResolvePrice(repo, clock).Execute(ctx, ucPricing.ResolvePriceInput{ClientID: 10, ServiceID: 9})
	assert.True(t, httperr.IsNotFound(err))

	boom := errors.New("db down")
	repo = new(mockRepo)
	repo.On("GetService", ctx, uint(3)).Return(haircut(), nil)
	repo.On("GetCurrentSubscription", ctx, uint(10), now).Return(nil, boom)
	_, err = ucPricing.NewResolvePrice(repo, clock).Execute(ctx, ucPricing.ResolvePriceInput{ClientID: 10, ServiceID: 3})
	assert.ErrorIs(t, err, boom)
}
