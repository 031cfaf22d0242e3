package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.sweepbot/pkg/entry"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient()
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, 30*time.Second, c.httpClient.Timeout)
	assert.NotNil(t, c.httpClient.Jar)
}

func TestNewClient_Options(t *testing.T) {
	c := NewClient(
		WithBaseURL("http://localhost:8080/"),
		WithTimeout(5*time.Second),
		WithUserAgent("test-agent"),
	)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Equal(t, "test-agent", c.userAgent)
}

func TestParseCookieHeader(t *testing.T) {
	cookies, err := ParseCookieHeader("_app_session=abc; XSRF-TOKEN=x%2By")
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	assert.Equal(t, "_app_session", cookies[0].Name)

	cookies, err = ParseCookieHeader("  ")
	require.NoError(t, err)
	assert.Nil(t, cookies)
}

func TestClient_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/enter/abCD1/77", r.URL.Path)
		assert.Equal(t, "csrf-abc", r.Header.Get("X-Csrf-Token"))
		assert.Equal(t, "x+y", r.Header.Get("X-Xsrf-Token"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		ck, err := r.Cookie("_app_session")
		require.NoError(t, err)
		assert.Equal(t, "abc", ck.Value)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sig", body["h"])
		assert.Equal(t, "V", body["details"])

		w.Write([]byte(`{"new":1,"worth":3}`))
	}))
	defer srv.Close()

	cookies, err := ParseCookieHeader("_app_session=abc; XSRF-TOKEN=x%2By")
	require.NoError(t, err)
	c := NewClient(WithBaseURL(srv.URL), WithCookies(cookies))
	c.SetCSRFToken("csrf-abc")
	assert.Equal(t, "x+y", c.XSRFToken())

	resp, err := c.Submit(
		context.Background(), "abCD1", "77",
		&Payload{Details: "V", H: "sig"},
	)
	require.NoError(t, err)
	assert.Equal(t, ResponseSuccess, resp.Kind)
	assert.EqualValues(t, 3, resp.Worth)
}

func TestClient_Submit_TransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("<html>bad gateway</html>"))
			},
		},
		{
			name: "unknown shape",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"ok"}`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(WithBaseURL(srv.URL))
			_, err := c.Submit(context.Background(), "k", "1", &Payload{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTransport))
			assert.True(t, errors.Is(err, ErrUndecodableResponse))
		})
	}
}

func TestClient_Submit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(url), WithTimeout(time.Second))
	_, err := c.Submit(context.Background(), "k", "1", &Payload{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Contains(t, err.Error(), "request failed")
}

func TestClient_SetContestant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/set-contestant", r.URL.Path)
		assert.Equal(t, "csrf-abc", r.Header.Get("X-Csrf-Token"))

		var body struct {
			AdditionalDetails bool                    `json:"additional_details"`
			CampaignKey       string                  `json:"campaign_key"`
			Contestant        entry.ContestantDetails `json:"contestant"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.AdditionalDetails)
		assert.Equal(t, "abCD1", body.CampaignKey)
		assert.Equal(t, "Ada", body.Contestant.FirstName)
		assert.Equal(t, "Lovelace", body.Contestant.LastName)
		assert.Equal(t, entry.DefaultDateOfBirth, body.Contestant.DateOfBirth)

		w.Write([]byte(`{"contestant":{"id":42,"name":"Ada Lovelace","stored_dob":"1950-01-01","entered":{"e1":[]}}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	c.SetCSRFToken("csrf-abc")

	me := entry.Contestant{ID: 42, Name: "Ada Lovelace"}
	got, err := c.SetContestant(context.Background(), "abCD1", me.Details())
	require.NoError(t, err)
	assert.EqualValues(t, 42, got.ID)
	require.NotNil(t, got.StoredDOB)
	assert.Equal(t, "1950-01-01", *got.StoredDOB)
	assert.Contains(t, got.Entered, "e1")
}

func TestClient_SetContestant_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"error":"invalid"}`))
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html></html>"))
			},
		},
		{
			name: "no contestant",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(WithBaseURL(srv.URL))
			got, err := c.SetContestant(
				context.Background(), "k", entry.ContestantDetails{},
			)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrTransport))
		})
	}
}

func TestClient_LoadPage(t *testing.T) {
	doc := pageHTML(giveawayJSON, contestantJSON, "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/abCD1/toms-prize", r.URL.Path)
		w.Write([]byte(doc))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	page, err := c.LoadPage(context.Background(), srv.URL+"/abCD1/toms-prize")
	require.NoError(t, err)
	assert.Equal(t, "abCD1", page.Giveaway.Campaign.Key)
	assert.Equal(t, "csrf-abc", c.CSRFToken())
}

func TestClient_FetchPage_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient().FetchPage(context.Background(), srv.URL+"/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestClient_Shorten(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "user", q.Get("login"))
		assert.Equal(t, "key", q.Get("apiKey"))
		assert.Equal(t, "https://gleam.io/abCD1/x", q.Get("longUrl"))
		assert.Equal(t, "json", q.Get("format"))
		w.Write([]byte(`{"status_code":200,"data":{"url":"https://bit.ly/abc"}}`))
	}))
	defer srv.Close()

	s := entry.NewWellKnownShortener(srv.URL+"/v3/shorten", "user", "key")
	short, err := NewClient().Shorten(
		context.Background(), s, "https://gleam.io/abCD1/x",
	)
	require.NoError(t, err)
	assert.Equal(t, "https://bit.ly/abc", short)
}

func TestClient_Shorten_Errors(t *testing.T) {
	_, err := NewClient().Shorten(
		context.Background(), entry.Shortener{}, "https://gleam.io/x",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not well-known")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	s := entry.NewWellKnownShortener(srv.URL, "u", "k")
	_, err = NewClient().Shorten(context.Background(), s, "https://gleam.io/x")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no url"))
}
