package services_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/models"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
)

var rsvNoPattern = regexp.MustCompile(`^RSV[0-9]{12}$`)

func TestNewReservationNumber_Format(t *testing.T) {
	for i := 0; i < 1000; i++ {
		assert.Regexp(t, rsvNoPattern, services.NewReservationNumber())
	}
}

func TestNewReservationNumber_NoCollisions(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		n := services.NewReservationNumber()
		_, dup := seen[n]
		require.False(t, dup, "duplicate reservation number %s", n)
		seen[n] = struct{}{}
	}
}

func TestReservationService_Reserve(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	publisher := new(MockPublisher)
	service := services.NewReservationService(mockRepo, publisher)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Reservation")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Reservation).ID = 3 }).
		Return(nil).Twice()
	publisher.On("PublishReservationCreated", ctx, mock.MatchedBy(func(e services.ReservationCreatedEvent) bool {
		return e.ID == 3 && e.StoreNo == "STK-1" && rsvNoPattern.MatchString(e.RsvNo)
	})).Return(nil).Twice()

	first := &models.Reservation{ReservedBy: "carol", StoreNo: "STK-1", Quantity: 1}
	second := &models.Reservation{ReservedBy: "carol", StoreNo: "STK-1", Quantity: 1}
	require.NoError(t, service.Reserve(ctx, first))
	require.NoError(t, service.Reserve(ctx, second))

	assert.Regexp(t, rsvNoPattern, first.RsvNo)
	assert.NotEqual(t, first.RsvNo, second.RsvNo)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestReservationService_PublishFailureDoesNotFail(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	publisher := new(MockPublisher)
	service := services.NewReservationService(mockRepo, publisher)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	publisher.On("PublishReservationCreated", ctx, mock.Anything).Return(fmt.Errorf("channel closed")).Once()

	assert.NoError(t, service.Reserve(ctx, &models.Reservation{ReservedBy: "dave"}))
	publisher.AssertExpectations(t)
}

func TestReservationService_StoreFailure(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	publisher := new(MockPublisher)
	service := services.NewReservationService(mockRepo, publisher)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("connection reset")).Once()

	err := service.Reserve(ctx, &models.Reservation{ReservedBy: "erin"})
	assert.Error(t, err)
	publisher.AssertNotCalled(t, "PublishReservationCreated", mock.Anything, mock.Anything)
}

func TestReservationService_NilPublisher(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	service := services.NewReservationService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	assert.NoError(t, service.Reserve(ctx, &models.Reservation{}))

	mockRepo.On("GetAll", ctx).Return([]models.Reservation{{ID: 1}}, nil).Once()
	all, err := service.ListReservations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
