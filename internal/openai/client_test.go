package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neuroforge-backend/internal/generation"
	"neuroforge-backend/internal/openai"
)

func speechServer(t *testing.T, status int, body []byte, got *openai.SpeechIn) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
}

func TestClient_CreateSpeech(t *testing.T) {
	var got openai.SpeechIn
	server := speechServer(t, http.StatusOK, []byte("ID3-audio"), &got)
	defer server.Close()

	client := openai.NewClient(server.URL, "sk-test")
	audio, err := client.CreateSpeech(context.Background(), openai.SpeechIn{Model: "tts-1", Voice: "alloy", Input: "olá"})

	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-audio"), audio)
	assert.Equal(t, "tts-1", got.Model)
	assert.Equal(t, "alloy", got.Voice)
	assert.Equal(t, "olá", got.Input)
}

func TestClient_CreateSpeech_Errors(t *testing.T) {
	client := openai.NewClient("", "")
	assert.False(t, client.Configured())
	_, err := client.CreateSpeech(context.Background(), openai.SpeechIn{Input: "x"})
	assert.ErrorIs(t, err, generation.ErrNotConfigured)

	server := speechServer(t, http.StatusTooManyRequests, []byte(`{"error":"rate limited"}`), nil)
	defer server.Close()

	client = openai.NewClient(server.URL, "sk-test")
	_, err = client.CreateSpeech(context.Background(), openai.SpeechIn{Input: "x"})
	assert.ErrorIs(t, err, generation.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "status 429")
}

type fakeHost struct {
	mu     sync.Mutex
	assets []generation.Asset
	err    error
}

func (h *fakeHost) Host(ctx context.Context, asset generation.Asset) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	h.mu.Lock()
	h.assets = append(h.assets, asset)
	h.mu.Unlock()
	return "https://hosted/" + asset.StoragePath(), nil
}

func TestSynthesizer_UploadsNarration(t *testing.T) {
	var got openai.SpeechIn
	server := speechServer(t, http.StatusOK, []byte("mp3-bytes"), &got)
	defer server.Close()

	host := &fakeHost{}
	synth := openai.NewSynthesizer(openai.NewClient(server.URL, "sk-test"), host)

	url, err := synth.Synthesize(context.Background(), "roteiro")
	require.NoError(t, err)

	assert.Equal(t, 4096, synth.MaxInputLength())
	assert.Equal(t, "mp3", got.ResponseFormat)
	require.Len(t, host.assets, 1)
	assert.Equal(t, generation.AssetAudio, host.assets[0].Kind)
	assert.Equal(t, []byte("mp3-bytes"), host.assets[0].Data)
	assert.Equal(t, "audio/mpeg", host.assets[0].ContentType)
	assert.Regexp(t, `^audio_[0-9a-f-]{36}\.mp3$`, host.assets[0].Name)
	assert.Equal(t, "https://hosted/"+host.assets[0].StoragePath(), url)
	assert.True(t, synth.HostsAudio())
}

func TestSynthesizer_ConcurrentNarrationsGetDistinctPaths(t *testing.T) {
	server := speechServer(t, http.StatusOK, []byte("mp3-bytes"), nil)
	defer server.Close()

	host := &fakeHost{}
	synth := openai.NewSynthesizer(openai.NewClient(server.URL, "sk-test"), host)

	const runs = 20
	urls := make([]string, runs)
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url, err := synth.Synthesize(context.Background(), "roteiro")
			assert.NoError(t, err)
			urls[i] = url
		}(i)
	}
	wg.Wait()

	require.Len(t, host.assets, runs)
	paths := make(map[string]bool, runs)
	for _, asset := range host.assets {
		paths[asset.StoragePath()] = true
	}
	assert.Len(t, paths, runs)

	seen := make(map[string]bool, runs)
	for _, url := range urls {
		seen[url] = true
	}
	assert.Len(t, seen, runs)
}

func TestSynthesizer_HostFailure(t *testing.T) {
	server := speechServer(t, http.StatusOK, []byte("mp3-bytes"), nil)
	defer server.Close()

	synth := openai.NewSynthesizer(openai.NewClient(server.URL, "sk-test"), &fakeHost{err: generation.ErrNotConfigured})
	_, err := synth.Synthesize(context.Background(), "roteiro")

	assert.True(t, errors.Is(err, generation.ErrNotConfigured))
}

func TestSynthesizer_NoHost(t *testing.T) {
	synth := openai.NewSynthesizer(openai.NewClient("", "sk-test"), nil)
	_, err := synth.Synthesize(context.Background(), "roteiro")
	assert.ErrorIs(t, err, generation.ErrNotConfigured)
	assert.False(t, synth.HostsAudio())
}
