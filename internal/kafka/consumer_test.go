package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBookingEvent(t *testing.T) {
	data := []byte(`{"type":"booking_created","reference":"ref-1","user_id":7,"flight_id":4,"status":"ACTIVE","amount":1000}`)

	event, err := decodeBookingEvent(data)

	assert.NoError(t, err)
	assert.Equal(t, "booking_created", event.Type)
	assert.Equal(t, "ref-1", event.Reference)
	assert.Equal(t, int64(7), event.UserID)
	assert.Equal(t, int64(4), event.FlightID)
	assert.Equal(t, int64(1000), event.Amount)
}

func TestDecodeBookingEvent_Malformed(t *testing.T) {
	_, err := decodeBookingEvent([]byte(`{"type":`))
	assert.Error(t, err)
}
