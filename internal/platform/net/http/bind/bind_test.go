package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "lineload/internal/platform/errors"
)

type optimizePayload struct {
	TimeLimit int       `json:"time_limit" validate:"omitempty,min=1"`
	Scales    []float64 `json:"scales" validate:"omitempty,dive,gt=0,lte=1"`
}

func TestParseJSONValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"time_limit":60,"scales":[1,0.9,0.8]}`))
	got, err := ParseJSON[optimizePayload](r)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.TimeLimit != 60 || len(got.Scales) != 3 {
		t.Fatalf("parsed = %+v", got)
	}
}

func TestParseJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"bogus":1}`))
	_, err := ParseJSON[optimizePayload](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v, want JSON code", err)
	}
}

func TestParseJSONRejectsEmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))
	_, err := ParseJSON[optimizePayload](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v, want JSON code", err)
	}
}

func TestParseJSONValidates(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"scales":[1.5]}`))
	_, err := ParseJSON[optimizePayload](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation code", err)
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"time_limit":5} {"again":true}`))
	_, err := ParseJSON[optimizePayload](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v, want JSON code", err)
	}
}
