package validator

import (
	"strings"
	"testing"

	"trizone/pkg/logger"
	"trizone/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	return NewBookingValidator(log)
}

func TestValidate_ValidRequest(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(&model.BookingRequest{
		ResourceID:    "pc_1",
		User:          "Rika",
		DurationHours: 2,
		RatePerHour:   30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name  string
		req   model.BookingRequest
		field string
	}{
		{
			name:  "missing resource id",
			req:   model.BookingRequest{User: "Rika", DurationHours: 1, RatePerHour: 25},
			field: "ResourceID",
		},
		{
			name:  "user too long",
			req:   model.BookingRequest{ResourceID: "pc_1", User: strings.Repeat("x", 101), DurationHours: 1, RatePerHour: 25},
			field: "User",
		},
		{
			name:  "negative duration",
			req:   model.BookingRequest{ResourceID: "pc_1", DurationHours: -1, RatePerHour: 25},
			field: "DurationHours",
		},
		{
			name:  "duration over a day",
			req:   model.BookingRequest{ResourceID: "pc_1", DurationHours: 25, RatePerHour: 25},
			field: "DurationHours",
		},
		{
			name:  "negative rate",
			req:   model.BookingRequest{ResourceID: "pc_1", DurationHours: 1, RatePerHour: -5},
			field: "RatePerHour",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestValidator()

			err := v.Validate(&tc.req)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			validationErrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}

			found := false
			for _, ve := range validationErrs {
				if ve.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected failure on field %s, got %v", tc.field, validationErrs)
			}
		})
	}
}
