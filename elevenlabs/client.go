// Package elevenlabs provides a client for the ElevenLabs voice
// cloning and text-to-speech API
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const outputFormat = "mp3_44100_128"

type Client struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	ModelID string
}

type Voice struct {
	VoiceID     string `json:"voice_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

func New() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: time.Minute * 2},
		APIKey:  viper.GetString("elevenlabs.api_key"),
		BaseURL: viper.GetString("elevenlabs.base_url"),
		ModelID: viper.GetString("elevenlabs.model_id"),
	}
}

// Clone creates an instant voice clone from a local audio sample and
// returns the voice ID assigned by the provider
func (c *Client) Clone(ctx context.Context, filePath, name string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open sample file, %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("name", name); err != nil {
		return "", err
	}

	if err := mw.WriteField("description", "Voice cloned via voice-api"); err != nil {
		return "", err
	}

	part, err := mw.CreateFormFile("files", filepath.Base(filePath))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to read sample file, %w", err)
	}

	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/voices/add", &body)
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("voice clone request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError("voice clone", resp)
	}

	var data struct {
		VoiceID string `json:"voice_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("malformed voice clone response, %w", err)
	}

	if data.VoiceID == "" {
		return "", fmt.Errorf("voice clone response is missing a voice_id")
	}

	return data.VoiceID, nil
}

// Delete removes a cloned voice from the provider
func (c *Client) Delete(ctx context.Context, voiceID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/v1/voices/"+voiceID, nil)
	if err != nil {
		return err
	}

	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("voice delete request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError("voice delete", resp)
	}

	return nil
}

// Synthesize converts text to speech with the given cloned voice and
// returns the mp3 bytes
func (c *Client) Synthesize(ctx context.Context, voiceID, text string, settings VoiceSettings) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{
		"text":           text,
		"model_id":       c.ModelID,
		"voice_settings": settings,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s", c.BaseURL, voiceID, outputFormat)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("speech synthesis", resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized audio, %w", err)
	}

	return audio, nil
}

// GetVoice fetches the details of a cloned voice
func (c *Client) GetVoice(ctx context.Context, voiceID string) (*Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/voices/"+voiceID, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voice fetch request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("voice fetch", resp)
	}

	var voice Voice
	if err := json.NewDecoder(resp.Body).Decode(&voice); err != nil {
		return nil, fmt.Errorf("malformed voice fetch response, %w", err)
	}

	return &voice, nil
}

// apiError turns a non-200 provider response into an error carrying
// whatever detail the provider included
func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

	var detail struct {
		Detail struct {
			Message string `json:"message"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail.Message != "" {
		return fmt.Errorf("%s failed with status %d: %s", op, resp.StatusCode, detail.Detail.Message)
	}

	return fmt.Errorf("%s failed with status %d: %s", op, resp.StatusCode, string(body))
}
