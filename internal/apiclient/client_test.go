package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/trivial-job-tracker/internal/apiclient"
	"github.com/Tiliavir/trivial-job-tracker/internal/auth"
	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

func staticToken(tok string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"})
}

func newClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return apiclient.New(context.Background(), server.URL+"/", staticToken("secret"))
}

func TestListApplications(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/applications/", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err, "X-Request-ID should be a uuid")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 2, "company_name": "Globex", "job_title": "Analyst", "application_date": "2024-02-01"},
			{"id": "a1", "company_name": "Acme", "job_title": "Engineer", "application_date": "2024-01-15", "status": "Applied"}
		]`))
	})

	apps, err := client.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, model.ID("2"), apps[0].ID)
	assert.Equal(t, "Globex", apps[0].CompanyName)
	assert.Equal(t, model.ID("a1"), apps[1].ID)
	assert.Equal(t, "Applied", apps[1].Status)
}

func TestListApplicationsNullBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	})

	apps, err := client.ListApplications(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestListApplicationsNon2xx(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		})

		apps, err := client.ListApplications(context.Background())
		assert.Nil(t, apps)
		var ne *apiclient.NetworkError
		require.True(t, errors.As(err, &ne), "status %d", status)
		assert.Equal(t, status, ne.StatusCode)
		assert.Equal(t, "nope", ne.Body)
		assert.Contains(t, err.Error(), "list applications")
	}
}

func TestListApplicationsBadJSON(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	})

	_, err := client.ListApplications(context.Background())
	var ne *apiclient.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Zero(t, ne.StatusCode)
}

func TestListApplicationsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := apiclient.New(context.Background(), url, staticToken("secret"))
	_, err := client.ListApplications(context.Background())
	var ne *apiclient.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Zero(t, ne.StatusCode)
	assert.NotNil(t, ne.Unwrap())
}

func TestMissingCredentialIsNetworkError(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	ts := auth.FileTokenSource(auth.TokenFilePath(t.TempDir()))
	client := apiclient.New(context.Background(), server.URL, ts)

	_, err := client.ListApplications(context.Background())
	var ne *apiclient.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.True(t, errors.Is(err, auth.ErrNoCredential))
	assert.False(t, called, "no request should reach the server without a credential")
}

func TestCreateApplication(t *testing.T) {
	var got map[string]string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/applications/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	draft := model.Draft{CompanyName: "Globex", JobTitle: "Analyst", ApplicationDate: "2024-02-01"}
	require.NoError(t, client.CreateApplication(context.Background(), draft))
	assert.Equal(t, map[string]string{
		"company_name":     "Globex",
		"job_title":        "Analyst",
		"application_date": "2024-02-01",
	}, got)
}

func TestCreateApplicationEmptyDraftIsSent(t *testing.T) {
	var got map[string]string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	require.NoError(t, client.CreateApplication(context.Background(), model.Draft{}))
	assert.Equal(t, map[string]string{"company_name": "", "job_title": "", "application_date": ""}, got)
}

func TestCreateApplicationRejected(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	err := client.CreateApplication(context.Background(), model.Draft{})
	var ne *apiclient.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, http.StatusUnprocessableEntity, ne.StatusCode)
	assert.Equal(t, "create application: HTTP error 422", err.Error())
}

func TestGetApplication(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/applications/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 42, "company_name": "Initech", "job_title": "Dev", "application_date": "2024-03-03"}`))
	})

	app, err := client.GetApplication(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Initech - Dev (2024-03-03)", app.Line())
}

func TestGetApplicationNotFound(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Application not found"}`, http.StatusNotFound)
	})

	_, err := client.GetApplication(context.Background(), "missing")
	assert.True(t, apiclient.IsNotFound(err))
	assert.False(t, apiclient.IsNotFound(errors.New("other")))
}

func TestRotatedTokenIsUsedOnNextRequest(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	path := auth.TokenFilePath(t.TempDir())
	require.NoError(t, auth.SaveToken(path, &oauth2.Token{AccessToken: "first", TokenType: "Bearer"}))
	client := apiclient.New(context.Background(), server.URL, auth.FileTokenSource(path))

	_, err := client.ListApplications(context.Background())
	require.NoError(t, err)

	require.NoError(t, auth.SaveToken(path, &oauth2.Token{AccessToken: "second", TokenType: "Bearer"}))
	_, err = client.ListApplications(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer first", "Bearer second"}, seen)

	require.NoError(t, auth.RemoveToken(path))
	_, err = client.ListApplications(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoCredential)
	assert.Len(t, seen, 2, "no request is sent once the token is removed")
}

func TestListInteractions(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/interactions/7", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": 1, "application_id": 7, "gmail_message_id": "m-1", "interaction_date": "2024-02-03",
			 "sender": "hr@globex.com", "subject": "Thanks for applying", "snippet": "We received", "interaction_type": "Application Confirmation"}
		]`))
	})

	interactions, err := client.ListInteractions(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, model.ID("7"), interactions[0].ApplicationID)
	assert.Equal(t, "2024-02-03 [Application Confirmation] hr@globex.com: Thanks for applying", interactions[0].Line())
}

func TestListInteractionsNullBody(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	})

	interactions, err := client.ListInteractions(context.Background(), "7")
	require.NoError(t, err)
	assert.NotNil(t, interactions)
	assert.Empty(t, interactions)
}

func TestCreateInteraction(t *testing.T) {
	var got map[string]any
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/interactions/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateInteraction(context.Background(), model.InteractionDraft{
		ApplicationID:   "7",
		InteractionDate: "2024-02-10",
		Sender:          "hr@globex.com",
		Subject:         "Interview",
		InteractionType: "Interview Invite",
	})
	require.NoError(t, err)
	assert.Equal(t, "7", got["application_id"])
	assert.Equal(t, "Interview Invite", got["interaction_type"])
	assert.Equal(t, "", got["gmail_message_id"])
}

func TestCreateInteractionRejected(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.CreateInteraction(context.Background(), model.InteractionDraft{ApplicationID: "99"})
	var netErr *apiclient.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.Equal(t, "create interaction: HTTP error 404", err.Error())
}
