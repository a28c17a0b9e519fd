package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTicketStatus(t *testing.T) {
	for _, s := range []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed} {
		assert.True(t, ValidTicketStatus(s), string(s))
	}

	assert.False(t, ValidTicketStatus("DONE"))
	assert.False(t, ValidTicketStatus("open"))
	assert.False(t, ValidTicketStatus(""))
}

func TestValidInvoiceStatus(t *testing.T) {
	for _, s := range []InvoiceStatus{
		InvoiceStatusPending, InvoiceStatusSubmitted, InvoiceStatusUnderReview,
		InvoiceStatusPaid, InvoiceStatusRejected, InvoiceStatusCanceled,
	} {
		assert.True(t, ValidInvoiceStatus(s), string(s))
	}

	assert.False(t, ValidInvoiceStatus("COMPLETE"))
	assert.False(t, ValidInvoiceStatus("paid"))
	assert.False(t, ValidInvoiceStatus(""))
}

func TestValidChannel(t *testing.T) {
	assert.True(t, ValidChannel(ChannelBank))
	assert.True(t, ValidChannel(ChannelEwallet))
	assert.False(t, ValidChannel("CASH"))
	assert.False(t, ValidChannel(""))
}
