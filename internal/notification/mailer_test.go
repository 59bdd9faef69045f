package notification

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticConfig map[string]string

func (c staticConfig) Get(_ context.Context, key string) (string, error) {
	v, ok := c[key]
	if !ok {
		return "", errors.New("missing " + key)
	}
	return v, nil
}

func TestSendGridMailerSend(t *testing.T) {
	var got sgMail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer SG.test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendGridMailer(srv.Client(), srv.URL+"/", "no-reply@hotel.test", staticConfig{APIKeyName: "SG.test"})
	err := m.Send(context.Background(), Message{
		To:          "guest@example.com",
		Subject:     "Hello",
		HTML:        "<p>hi</p>",
		Attachments: []Attachment{{FileName: "invoice.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}},
	})
	require.NoError(t, err)

	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "guest@example.com", got.Personalizations[0].To[0].Email)
	assert.Equal(t, "no-reply@hotel.test", got.From.Email)
	assert.Equal(t, "Hello", got.Subject)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF")), got.Attachments[0].Content)
}

func TestSendGridMailerErrors(t *testing.T) {
	t.Run("upstream rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
		}))
		defer srv.Close()

		m := NewSendGridMailer(srv.Client(), srv.URL, "a@b.c", staticConfig{APIKeyName: "SG.bad"})
		err := m.Send(context.Background(), Message{To: "x@y.z"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "bad key")
	})

	t.Run("missing key", func(t *testing.T) {
		m := NewSendGridMailer(http.DefaultClient, "http://unused", "a@b.c", staticConfig{})
		assert.Error(t, m.Send(context.Background(), Message{To: "x@y.z"}))
	})

	t.Run("empty key", func(t *testing.T) {
		m := NewSendGridMailer(http.DefaultClient, "http://unused", "a@b.c", staticConfig{APIKeyName: ""})
		assert.Error(t, m.Send(context.Background(), Message{To: "x@y.z"}))
	})
}
