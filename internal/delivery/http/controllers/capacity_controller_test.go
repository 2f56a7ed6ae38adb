package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

func TestCapacityController_GetCapacity(t *testing.T) {
	svc := &fakeCapacityService{capacity: &domain.EventCapacity{EventID: testEventID, Limit: 2, Current: 2, Full: true, Currency: "IDR"}}
	ctrl := NewCapacityController(testLogger(), svc)

	req := newRequest(http.MethodGet, "/events/"+testEventID+"/capacity", "", attendee, map[string]string{"eventID": testEventID})
	w := httptest.NewRecorder()
	ctrl.GetCapacity(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.EventCapacity
	decodeData(t, w, &got)
	assert.True(t, got.Full)
	assert.False(t, got.Open)

	svc.err = domain.ErrNotFound
	w = httptest.NewRecorder()
	ctrl.GetCapacity(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCapacityController_SetRegistrationWindow(t *testing.T) {
	owner := domain.Principal{UserID: "owner-1"}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantOpen   bool
	}{
		{"close", `{"open":false}`, http.StatusOK, false},
		{"open", `{"open":true}`, http.StatusOK, true},
		{"missing flag", `{}`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCapacityService{capacity: &domain.EventCapacity{EventID: testEventID}}
			ctrl := NewCapacityController(testLogger(), svc)
			req := newRequest(http.MethodPatch, "/events/"+testEventID+"/registration-window", tt.body, owner, map[string]string{"eventID": testEventID})
			w := httptest.NewRecorder()

			ctrl.SetRegistrationWindow(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantOpen, svc.gotOpen)
			}
		})
	}
}

func TestCapacityController_ListRegistrations(t *testing.T) {
	owner := domain.Principal{UserID: "owner-1"}
	svc := &fakeCapacityService{
		regs:  []*domain.Registration{{ID: "reg-1"}, {ID: "reg-2"}},
		total: 12,
	}
	ctrl := NewCapacityController(testLogger(), svc)

	req := newRequest(http.MethodGet, "/events/"+testEventID+"/registrations?status=approved&page=2&page_size=2", "", owner, map[string]string{"eventID": testEventID})
	w := httptest.NewRecorder()
	ctrl.ListRegistrations(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got ListRegistrationsResponse
	decodeData(t, w, &got)
	assert.Len(t, got.Registrations, 2)
	assert.Equal(t, helpers.PaginationMeta{Page: 2, PageSize: 2, Total: 12, TotalPages: 6}, got.Meta)
	require.NotNil(t, svc.gotFilter.Status)
	assert.Equal(t, domain.StatusApproved, *svc.gotFilter.Status)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 2}, svc.gotPage)

	unauth := newRequest(http.MethodGet, "/events/"+testEventID+"/registrations", "", domain.Principal{}, map[string]string{"eventID": testEventID})
	w = httptest.NewRecorder()
	ctrl.ListRegistrations(w, unauth)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
