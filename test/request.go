package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/produce-ledger/backend/internal/auth"
	"github.com/produce-ledger/backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UserID is the owner all test requests act as.
var UserID = uuid.MustParse("c3f26a3f-6857-44a4-a967-d22b2519d99e")

// Token returns a bearer token for the test user.
func Token(t *testing.T) string {
	secret, ok := os.LookupEnv("API_JWT_SECRET")
	if !ok {
		assert.FailNow(t, "environment variable API_JWT_SECRET must be set")
	}

	token, err := auth.NewToken([]byte(secret), auth.Session{
		UserID:    UserID,
		Email:     "jane@example.com",
		FirstName: "Jane",
	}, time.Hour)
	if err != nil {
		assert.FailNow(t, "could not issue test token", err)
	}

	return token
}

// Request is a helper method to simplify making a HTTP request for tests.
//
// The request is authenticated as the test user unless an Authorization
// header is passed explicitly.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer
	var err error

	// If the body is a string, convert it to bytes
	if body == nil {
		byteBuffer = bytes.NewBuffer(nil)
	} else if reflect.TypeOf(body).Kind() == reflect.String {
		byteBuffer = bytes.NewBufferString(body.(string))
	} else if reflect.TypeOf(body).Kind() == reflect.Struct || reflect.TypeOf(body).Kind() == reflect.Map || reflect.TypeOf(body).Kind() == reflect.Slice {
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	} else {
		// Assume we got sent a *bytes.Buffer for e.g. a file
		byteBuffer = body.(*bytes.Buffer)
	}

	r, teardown, err := router.Config()
	defer teardown()

	if err != nil {
		assert.FailNow(t, "Router could not be initialized")
	}

	err = router.AttachRoutes(r.Group("/"))
	if err != nil {
		assert.FailNow(t, "Routes could not be attached", err)
	}

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, byteBuffer)
	req.Header.Set("Authorization", "Bearer "+Token(t))

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
