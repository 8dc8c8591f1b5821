package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssistantRespond(t *testing.T) {
	svc := NewAssistantService()

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"gst keyword", "When is my GST return due?", "GSTR-3B"},
		{"shop keyword", "how do I get a shop license", "Shop & Establishment License"},
		{"msme keyword", "any MSME schemes for me?", "MSME schemes"},
		{"license keyword", "which license should I apply for first", "Shop & Establishment License first"},
		{"compliance keyword", "show my compliance status", "compliance score"},
		{"case insensitive", "GST FILING HELP", "GSTR-3B"},
		{"no keyword falls through", "tell me about bananas", "business licensing and compliance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, svc.Respond(tt.message), tt.contains)
		})
	}
}

func TestAssistantRespond_FirstKeywordWins(t *testing.T) {
	svc := NewAssistantService()

	// "shop" is checked before "license", so a message containing both gets
	// the shop response
	resp := svc.Respond("shop license requirements")
	assert.Contains(t, resp, "Shop & Establishment License, you need")
}
