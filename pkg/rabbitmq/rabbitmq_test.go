package rabbitmq

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
)

type mockAcknowledger struct {
	mock.Mock
}

func (m *mockAcknowledger) Ack(multiple bool) error {
	return m.Called(multiple).Error(0)
}

func (m *mockAcknowledger) Nack(multiple, requeue bool) error {
	return m.Called(multiple, requeue).Error(0)
}

func TestSettle_AcksHandledMessage(t *testing.T) {
	ack := new(mockAcknowledger)
	ack.On("Ack", false).Return(nil).Once()

	var got services.ReservationCreatedEvent
	settle(ack, 1, []byte(`{"rsv_no":"RSV123456789012","store_no":"STK-1","quantity":2}`),
		func(e services.ReservationCreatedEvent) error {
			got = e
			return nil
		})

	assert.Equal(t, "RSV123456789012", got.RsvNo)
	assert.Equal(t, 2, got.Quantity)
	ack.AssertExpectations(t)
}

func TestSettle_RequeuesOnHandlerError(t *testing.T) {
	ack := new(mockAcknowledger)
	ack.On("Nack", false, true).Return(nil).Once()

	settle(ack, 2, []byte(`{"rsv_no":"RSV1"}`), func(services.ReservationCreatedEvent) error {
		return fmt.Errorf("mail server down")
	})

	ack.AssertExpectations(t)
}

func TestSettle_DropsUndecodableMessage(t *testing.T) {
	ack := new(mockAcknowledger)
	ack.On("Nack", false, false).Return(nil).Once()

	called := false
	settle(ack, 3, []byte(`not json`), func(services.ReservationCreatedEvent) error {
		called = true
		return nil
	})

	assert.False(t, called)
	ack.AssertExpectations(t)
}

func TestLogReservationEvent(t *testing.T) {
	assert.NoError(t, LogReservationEvent(services.ReservationCreatedEvent{RsvNo: "RSV1"}))
}
