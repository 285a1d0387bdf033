package server

import (
	"errors"
	"net/http"
	"testing"

	campaigndomain "github.com/nepfund/platform/internal/campaign/domain"
	rewarddomain "github.com/nepfund/platform/internal/reward/domain"
	settlementdomain "github.com/nepfund/platform/internal/settlement/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"unauthenticated settlement", settlementdomain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
		{"unauthenticated reward", rewarddomain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "forbidden"},
		{"invalid amount", settlementdomain.ErrInvalidAmount, http.StatusBadRequest, "validation_error"},
		{"missing payment id", settlementdomain.ErrPaymentIDRequired, http.StatusBadRequest, "validation_error"},
		{"message too long", settlementdomain.ErrMessageTooLong, http.StatusBadRequest, "validation_error"},
		{"invalid donor id", rewarddomain.ErrInvalidDonorID, http.StatusBadRequest, "validation_error"},
		{"campaign not approved", settlementdomain.ErrCampaignNotApproved, http.StatusConflict, "invalid_state"},
		{"goal reached", settlementdomain.ErrGoalAlreadyReached, http.StatusConflict, "invalid_state"},
		{"campaign missing", campaigndomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"gorm record missing", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantType, payload.Type)
		})
	}
}
