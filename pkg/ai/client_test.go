package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate_Request(t *testing.T) {
	var gotPath, gotMethod, gotCT string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod, gotCT = r.URL.Path, r.Method, r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"data": {"summary": "x"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	_, err := c.Generate(context.Background(), "Senior backend engineer, 5 years, Python and Go")
	require.NoError(t, err)

	assert.Equal(t, GeneratePath, gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, map[string]string{"userDescription": "Senior backend engineer, 5 years, Python and Go"}, gotBody)
}

func TestGenerate_Success(t *testing.T) {
	var calls int32
	srv := newServer(t, http.StatusOK, `{
		"think": "the user is a backend engineer",
		"data": {
			"personalInformation": {"fullName": ""},
			"summary": "Experienced backend engineer..."
		}
	}`, &calls)

	res, err := NewClient(srv.URL, time.Second).Generate(context.Background(), "desc")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "the user is a backend engineer", res.Think)
	require.NotNil(t, res.Data.Summary)
	assert.Equal(t, "Experienced backend engineer...", *res.Data.Summary)
	require.NotNil(t, res.Data.PersonalInformation.FullName)
	assert.Equal(t, "", *res.Data.PersonalInformation.FullName)
}

func TestGenerate_StringData(t *testing.T) {
	raw := "<think>plan the sections</think>\n```json\n{\"summary\": \"From a fenced reply\"}\n```"
	b, err := json.Marshal(map[string]interface{}{"data": raw})
	require.NoError(t, err)
	srv := newServer(t, http.StatusOK, string(b), nil)

	res, err := NewClient(srv.URL, time.Second).Generate(context.Background(), "desc")
	require.NoError(t, err)
	assert.Equal(t, "plan the sections", res.Think)
	assert.Equal(t, "From a fenced reply", *res.Data.Summary)
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	var calls int32
	srv := newServer(t, http.StatusInternalServerError, `{"error":"boom"}`, &calls)

	res, err := NewClient(srv.URL, time.Second).Generate(context.Background(), "desc")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, errors.Is(err, ErrMalformedResponse))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry")
}

func TestGenerate_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Generate(context.Background(), "desc")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestGenerate_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":       `<html>oops</html>`,
		"missing data":   `{"think": "hmm"}`,
		"null data":      `{"think": null, "data": null}`,
		"array data":     `{"data": [1, 2]}`,
		"prose data":     `{"data": "I cannot help with that"}`,
		"wrong shape":    `{"data": {"summary": {"long": "x"}}}`,
		"bad list items": `{"data": {"interests": [{"name": "chess"}]}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, body, nil)
			res, err := NewClient(srv.URL, time.Second).Generate(context.Background(), "desc")
			assert.Nil(t, res)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.False(t, errors.Is(err, ErrTransport))
		})
	}
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond).Generate(context.Background(), "desc")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSalvageJSON(t *testing.T) {
	m, think, err := salvageJSON("Here you go: {\"summary\": \"ok\"} hope it helps")
	require.NoError(t, err)
	assert.Equal(t, "", think)
	assert.Equal(t, "ok", m["summary"])

	_, _, err = salvageJSON("no json at all")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, cleanJSON(`  {"a":1} `))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))

	// "é" is two bytes; cutting at 2 would split it
	got := truncate("aébc", 2)
	assert.Equal(t, "a...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestGenerate_StatusBodyStaysValidUTF8(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, "a"+strings.Repeat("é", 300), nil)

	_, err := NewClient(srv.URL, time.Second).Generate(context.Background(), "desc")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.True(t, utf8.ValidString(se.Body))
	assert.True(t, utf8.ValidString(err.Error()))
}
