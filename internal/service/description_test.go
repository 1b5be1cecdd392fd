package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/pkg/cache"
	"github.com/stretchr/testify/assert"
)

func genAIConfig(baseURL, key string) config.GenAIConfig {
	return config.GenAIConfig{BaseURL: baseURL, APIKey: key, Model: "test-model", Temperature: 0.7, TopP: 0.95, MaxTokens: 100}
}

func TestDescriptionService_Generate(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Aulas de violão em troca de ajuda!  "}}]}`))
	}))
	defer srv.Close()

	svc := NewDescriptionService(genAIConfig(srv.URL+"/", "k"), zerolog.Nop())
	text := svc.Generate(context.Background(), "violão", "Músico")

	assert.Equal(t, "Aulas de violão em troca de ajuda!", text)
	assert.Equal(t, "test-model", got["model"])
	assert.EqualValues(t, 100, got["max_tokens"])
	prompt := got["messages"].([]interface{})[0].(map[string]interface{})["content"].(string)
	assert.Contains(t, prompt, "A profissão do usuário é: Músico.")
	assert.Contains(t, prompt, `"violão"`)
}

func TestDescriptionService_Fallbacks(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		svc := NewDescriptionService(genAIConfig("http://127.0.0.1:1", ""), zerolog.Nop())
		assert.False(t, svc.Enabled())
		assert.Equal(t, DescriptionUnavailable, svc.Generate(context.Background(), "x", "y"))
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()
		svc := NewDescriptionService(genAIConfig(srv.URL, "k"), zerolog.Nop())
		assert.Equal(t, descriptionUnexpected, svc.Generate(context.Background(), "x", "y"))
	})

	t.Run("api error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()
		svc := NewDescriptionService(genAIConfig(srv.URL, "k"), zerolog.Nop())
		text := svc.Generate(context.Background(), "x", "y")
		assert.True(t, strings.HasPrefix(text, "Não foi possível gerar a descrição no momento"))
		assert.Contains(t, text, "429")
	})
}

type mapCache map[string][]byte

func (m mapCache) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := m[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(data, dest)
}

func (m mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	m[key] = data
	return err
}

func (m mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m, k)
	}
	return nil
}

func (m mapCache) IsAvailable() bool          { return true }
func (m mapCache) Ping(context.Context) error { return nil }

func TestDescriptionService_CachesDrafts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Aulas de violão"}}]}`))
	}))
	defer srv.Close()

	store := mapCache{}
	svc := NewDescriptionService(genAIConfig(srv.URL, "k"), zerolog.Nop())
	svc.SetCache(store)

	first := svc.Generate(context.Background(), "violão", "Músico")
	second := svc.Generate(context.Background(), " Violão", "músico")

	assert.Equal(t, "Aulas de violão", first)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Len(t, store, 1)
}

func TestDescriptionService_FallbackNotCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	store := mapCache{}
	svc := NewDescriptionService(genAIConfig(srv.URL, "k"), zerolog.Nop())
	svc.SetCache(store)

	assert.Equal(t, descriptionUnexpected, svc.Generate(context.Background(), "x", "y"))
	assert.Empty(t, store)
}
