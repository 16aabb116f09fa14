// Package tts synthesizes speech for resolved gesture text using Google
// Cloud Text-to-Speech.
package tts

import (
	"context"
	"fmt"
	"time"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/translate"
)

// Client wraps the Google TTS SDK. Credentials come from the standard
// GOOGLE_APPLICATION_CREDENTIALS environment variable.
type Client struct {
	languages map[string]bool
	logger    *zap.SugaredLogger
}

// New creates a Client restricted to the given language codes.
func New(languages []string, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	allowed := make(map[string]bool, len(languages))
	for _, lang := range languages {
		allowed[translate.NormalizeLocale(lang)] = true
	}

	return &Client{languages: allowed, logger: logger}
}

// Supported reports whether synthesis is available for the language code.
func (c *Client) Supported(lang string) bool {
	return c.languages[translate.NormalizeLocale(lang)]
}

// Synthesize renders text to MP3 audio in the given language.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if !c.Supported(lang) {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}

	client, err := gctts.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create tts client: %w", err)
	}
	defer client.Close()

	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: translate.NormalizeLocale(lang),
			SsmlGender:   ttspb.SsmlVoiceGender_FEMALE,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3,
		},
	}

	started := time.Now()
	resp, err := client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	c.logger.Debugw("speech synthesized", "lang", lang, "took", time.Since(started))

	return resp.GetAudioContent(), nil
}
