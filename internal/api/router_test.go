package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/courses-api/internal/api"
	"github.com/phrazzld/courses-api/internal/api/middleware"
	"github.com/phrazzld/courses-api/internal/domain"
	"github.com/phrazzld/courses-api/internal/mocks"
	"github.com/phrazzld/courses-api/internal/service"
	"github.com/phrazzld/courses-api/internal/service/auth"
	"github.com/phrazzld/courses-api/internal/store"
)

// testAPI is a full router over an in-memory store. Account creation runs
// through the real service, so each successful or conflicting insert needs a
// transaction expectation on dbMock.
type testAPI struct {
	t      *testing.T
	server *httptest.Server
	mem    *mocks.MemoryStore
	dbMock sqlmock.Sqlmock
	hasher *auth.BcryptHasher
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithCourses(t, nil)
}

func newTestAPIWithCourses(t *testing.T, courses store.CourseStore) *testAPI {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mem := mocks.NewMemoryStore()
	if courses == nil {
		courses = mem.Courses()
	}
	hasher := auth.NewBcryptHasher(4)

	authMW, err := middleware.NewBasicAuthMiddleware(mem.Accounts(), hasher, hasher, "courses-api", nil)
	require.NoError(t, err)

	router := api.NewRouter(api.RouterDeps{
		Accounts: api.NewAccountHandler(service.NewAccountService(mem.Accounts(), hasher, db, nil), nil),
		Courses:  api.NewCourseHandler(service.NewCourseService(courses, nil), nil),
		Auth:     authMW,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testAPI{t: t, server: server, mem: mem, dbMock: dbMock, hasher: hasher}
}

type creds struct{ email, password string }

func (a *testAPI) do(method, path, body string, c *creds) (*http.Response, string) {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c != nil {
		req.SetBasicAuth(c.email, c.password)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(a.t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, string(data)
}

func (a *testAPI) expectTx(commit bool) {
	a.dbMock.ExpectBegin()
	if commit {
		a.dbMock.ExpectCommit()
	} else {
		a.dbMock.ExpectRollback()
	}
}

// seedAccount stores an account directly, bypassing the HTTP layer.
func (a *testAPI) seedAccount(first, email, password string) *domain.Account {
	a.t.Helper()
	account, err := domain.NewAccount(first, "Smith", email, password)
	require.NoError(a.t, err)
	require.NoError(a.t, auth.PrepareAccount(a.hasher, account))
	require.NoError(a.t, a.mem.Accounts().Create(context.Background(), account))
	return account
}

func (a *testAPI) seedCourse(title string, owner *domain.Account) *domain.Course {
	a.t.Helper()
	var ownerID *uuid.UUID
	if owner != nil {
		ownerID = &owner.ID
	}
	course, err := domain.NewCourse(title, "Description of "+title, nil, nil, ownerID)
	require.NoError(a.t, err)
	require.NoError(a.t, a.mem.Courses().Create(context.Background(), course))
	return course
}

func decodeErrors(t *testing.T, body string) []string {
	t.Helper()
	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp.Errors
}

func TestJaneRegistersAndAuthenticates(t *testing.T) {
	a := newTestAPI(t)
	a.expectTx(true)

	resp, body := a.do(http.MethodPost, "/api/users",
		`{"firstName":"Jane","lastName":"Doe","emailAddress":"jane@x.com","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Empty(t, body)

	resp, body = a.do(http.MethodGet, "/api/users", "", &creds{"jane@x.com", "secret123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"firstName":"Jane","lastName":"Doe","emailAddress":"jane@x.com"}`, body)

	resp, body = a.do(http.MethodGet, "/api/users", "", &creds{"jane@x.com", "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, body)

	assert.NoError(t, a.dbMock.ExpectationsWereMet())
}

func TestCreateAccount_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantMsgs []string
	}{
		{
			name: "missing fields",
			body: `{}`,
			wantMsgs: []string{
				domain.MsgFirstNameRequired,
				domain.MsgLastNameRequired,
				domain.MsgEmailRequired,
				domain.MsgPasswordRequired,
			},
		},
		{
			name: "empty fields",
			body: `{"firstName":"","lastName":"","emailAddress":"","password":""}`,
			wantMsgs: []string{
				domain.MsgFirstNameEmpty,
				domain.MsgLastNameEmpty,
				domain.MsgEmailInvalid,
				domain.MsgPasswordEmpty,
			},
		},
		{
			name: "whitespace-only fields",
			body: `{"firstName":"  ","lastName":" ","emailAddress":"jane@x.com","password":"   "}`,
			wantMsgs: []string{
				domain.MsgFirstNameEmpty,
				domain.MsgLastNameEmpty,
				domain.MsgPasswordEmpty,
			},
		},
		{
			name:     "bad email",
			body:     `{"firstName":"Jane","lastName":"Doe","emailAddress":"jane-at-x","password":"pw"}`,
			wantMsgs: []string{domain.MsgEmailInvalid},
		},
		{
			name:     "password too long",
			body:     `{"firstName":"Jane","lastName":"Doe","emailAddress":"jane@x.com","password":"` + strings.Repeat("a", 73) + `"}`,
			wantMsgs: []string{domain.MsgPasswordTooLong},
		},
		{
			name:     "malformed json",
			body:     `{"firstName":`,
			wantMsgs: []string{"The request body must be a valid JSON object"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAPI(t)
			resp, body := a.do(http.MethodPost, "/api/users", tc.body, nil)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.wantMsgs, decodeErrors(t, body))
			assert.NoError(t, a.dbMock.ExpectationsWereMet())
		})
	}
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	a := newTestAPI(t)
	payload := `{"firstName":"Jane","lastName":"Doe","emailAddress":"jane@x.com","password":"secret123"}`

	a.expectTx(true)
	resp, _ := a.do(http.MethodPost, "/api/users", payload, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	a.expectTx(false)
	resp, body := a.do(http.MethodPost, "/api/users",
		`{"firstName":"Other","lastName":"Person","emailAddress":"jane@x.com","password":"different"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{domain.MsgEmailExists}, decodeErrors(t, body))

	// The first account is unchanged.
	resp, body = a.do(http.MethodGet, "/api/users", "", &creds{"jane@x.com", "secret123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"firstName":"Jane"`)
}

func TestJaneCreatesAndReadsCourse(t *testing.T) {
	a := newTestAPI(t)
	a.seedAccount("Jane", "jane@x.com", "secret123")
	jane := &creds{"jane@x.com", "secret123"}

	resp, body := a.do(http.MethodPost, "/api/courses", `{"title":"Intro","description":"Basics"}`, jane)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, body)

	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "api/courses/"), location)
	id := strings.TrimPrefix(location, "api/courses/")

	resp, body = a.do(http.MethodGet, "/api/courses/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var course api.CourseResponse
	require.NoError(t, json.Unmarshal([]byte(body), &course))
	assert.Equal(t, "Intro", course.Title)
	require.NotNil(t, course.User)
	assert.Equal(t, "jane@x.com", course.User.EmailAddress)
	assert.Nil(t, course.EstimatedTime)
	assert.NotContains(t, strings.ToLower(body), "password")
}

func TestCreateCourse_Validation(t *testing.T) {
	a := newTestAPI(t)
	a.seedAccount("Jane", "jane@x.com", "secret123")
	jane := &creds{"jane@x.com", "secret123"}

	resp, body := a.do(http.MethodPost, "/api/courses", `{"title":""}`, jane)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{domain.MsgTitleRequired, domain.MsgDescriptionRequired}, decodeErrors(t, body))

	resp, body = a.do(http.MethodPost, "/api/courses", `{"title":"   ","description":"\t"}`, jane)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{domain.MsgTitleRequired, domain.MsgDescriptionRequired}, decodeErrors(t, body))

	resp, _ = a.do(http.MethodPost, "/api/courses", `{"title":"T","description":"D"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateCourse_IgnoresClientOwner(t *testing.T) {
	a := newTestAPI(t)
	jane := a.seedAccount("Jane", "jane@x.com", "secret123")
	joe := a.seedAccount("Joe", "joe@smith.com", "joepassword")

	resp, _ := a.do(http.MethodPost, "/api/courses",
		`{"title":"T","description":"D","userId":"`+joe.ID.String()+`"}`,
		&creds{"jane@x.com", "secret123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body := a.do(http.MethodGet, "/"+resp.Header.Get("Location"), "", nil)
	assert.Contains(t, body, jane.ID.String())
	assert.NotContains(t, body, joe.ID.String())
}

func TestCreateCourse_NonUUIDClientOwner(t *testing.T) {
	a := newTestAPI(t)
	jane := a.seedAccount("Jane", "jane@x.com", "secret123")

	resp, body := a.do(http.MethodPost, "/api/courses",
		`{"title":"T","description":"D","userId":1}`,
		&creds{"jane@x.com", "secret123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	_, body = a.do(http.MethodGet, "/"+resp.Header.Get("Location"), "", nil)
	var course api.CourseResponse
	require.NoError(t, json.Unmarshal([]byte(body), &course))
	require.NotNil(t, course.UserID)
	assert.Equal(t, jane.ID, *course.UserID)
}

func TestListCourses(t *testing.T) {
	a := newTestAPI(t)

	resp, body := a.do(http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	joe := a.seedAccount("Joe", "joe@smith.com", "joepassword")
	owned := a.seedCourse("Owned", joe)
	orphan := a.seedCourse("Orphan", nil)

	_, body = a.do(http.MethodGet, "/api/courses", "", nil)
	var courses []api.CourseResponse
	require.NoError(t, json.Unmarshal([]byte(body), &courses))
	require.Len(t, courses, 2)

	byID := map[uuid.UUID]api.CourseResponse{}
	for _, c := range courses {
		byID[c.ID] = c
	}
	require.NotNil(t, byID[owned.ID].User)
	assert.Equal(t, "Joe", byID[owned.ID].User.FirstName)
	assert.Nil(t, byID[orphan.ID].User)
	assert.Nil(t, byID[orphan.ID].UserID)
	assert.Contains(t, body, `"User":null`)
	assert.NotContains(t, strings.ToLower(body), "password")
}

func TestGetCourse_Absent(t *testing.T) {
	a := newTestAPI(t)

	for _, id := range []string{uuid.NewString(), "not-a-uuid", "9999"} {
		resp, body := a.do(http.MethodGet, "/api/courses/"+id, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, id)
		assert.Equal(t, "null", strings.TrimSpace(body), id)
	}
}

func TestUpdateCourse(t *testing.T) {
	a := newTestAPI(t)
	joe := a.seedAccount("Joe", "joe@smith.com", "joepassword")
	a.seedAccount("Sally", "sally@jones.com", "sallypassword")
	joeCreds := &creds{"joe@smith.com", "joepassword"}
	sallyCreds := &creds{"sally@jones.com", "sallypassword"}

	course := a.seedCourse("Original", joe)
	orphan := a.seedCourse("Orphan", nil)
	path := "/api/courses/" + course.ID.String()

	tests := []struct {
		name       string
		path       string
		body       string
		creds      *creds
		wantStatus int
	}{
		{"unauthenticated", path, `{"title":"X"}`, nil, http.StatusUnauthorized},
		{"not owner", path, `{"title":"X"}`, sallyCreds, http.StatusForbidden},
		{"ownerless", "/api/courses/" + orphan.ID.String(), `{"title":"X"}`, joeCreds, http.StatusForbidden},
		{"absent", "/api/courses/" + uuid.NewString(), `{"title":"X"}`, sallyCreds, http.StatusNotFound},
		{"unparseable id", "/api/courses/42", `{"title":"X"}`, joeCreds, http.StatusNotFound},
		{"malformed json", path, `{"title":`, joeCreds, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := a.do(http.MethodPut, tc.path, tc.body, tc.creds)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantStatus != http.StatusBadRequest {
				assert.Empty(t, body)
			}
		})
	}

	t.Run("empty title rejected", func(t *testing.T) {
		resp, body := a.do(http.MethodPut, path, `{"title":""}`, joeCreds)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{domain.MsgTitleRequired}, decodeErrors(t, body))
	})

	t.Run("whitespace-only title rejected", func(t *testing.T) {
		resp, body := a.do(http.MethodPut, path, `{"title":"  \n"}`, joeCreds)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{domain.MsgTitleRequired}, decodeErrors(t, body))

		_, body = a.do(http.MethodGet, path, "", nil)
		assert.Contains(t, body, `"title":"Original"`)
	})

	t.Run("owner updates only given fields", func(t *testing.T) {
		resp, body := a.do(http.MethodPut, path, `{"title":"Updated","estimatedTime":"3 hours"}`, joeCreds)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Empty(t, body)

		_, body = a.do(http.MethodGet, path, "", nil)
		var got api.CourseResponse
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		assert.Equal(t, "Updated", got.Title)
		assert.Equal(t, "Description of Original", got.Description)
		require.NotNil(t, got.EstimatedTime)
		assert.Equal(t, "3 hours", *got.EstimatedTime)
	})

	t.Run("null clears optional field", func(t *testing.T) {
		resp, _ := a.do(http.MethodPut, path, `{"estimatedTime":null}`, joeCreds)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		_, body := a.do(http.MethodGet, path, "", nil)
		assert.Contains(t, body, `"estimatedTime":null`)
	})

	t.Run("empty body is a no-op", func(t *testing.T) {
		resp, _ := a.do(http.MethodPut, path, "", joeCreds)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestDeleteCourse(t *testing.T) {
	a := newTestAPI(t)
	joe := a.seedAccount("Joe", "joe@smith.com", "joepassword")
	a.seedAccount("Sally", "sally@jones.com", "sallypassword")
	course := a.seedCourse("Doomed", joe)
	path := "/api/courses/" + course.ID.String()

	resp, _ := a.do(http.MethodDelete, path, "", &creds{"sally@jones.com", "sallypassword"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = a.do(http.MethodDelete, path, "", &creds{"joe@smith.com", "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := a.do(http.MethodDelete, path, "", &creds{"joe@smith.com", "joepassword"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	_, body = a.do(http.MethodGet, path, "", nil)
	assert.Equal(t, "null", strings.TrimSpace(body))

	resp, _ = a.do(http.MethodDelete, path, "", &creds{"joe@smith.com", "joepassword"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnexpectedStoreFailure(t *testing.T) {
	courses := &mocks.TestifyMockCourseStore{}
	courses.On("List", mock.Anything).Return(nil, errors.New("pq: connection to 10.0.0.5 refused"))

	a := newTestAPIWithCourses(t, courses)
	resp, body := a.do(http.MethodGet, "/api/courses", "", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "An unexpected error occurred")
	assert.Contains(t, body, "trace_id")
	assert.NotContains(t, body, "10.0.0.5")
}

func TestRouterExtras(t *testing.T) {
	a := newTestAPI(t)

	resp, body := a.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Route Not Found"}`, body)

	resp, body = a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))
}
