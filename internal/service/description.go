package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/pkg/cache"
)

// Fallback texts returned instead of an error so the form can still be filled in by hand.
const (
	DescriptionUnavailable = "Serviço de IA indisponível. Verifique a configuração da chave da API."
	descriptionUnexpected  = "Não foi possível gerar a descrição (resposta inesperada da IA). Por favor, tente escrever uma manualmente."
	descriptionFailedFmt   = "Não foi possível gerar a descrição no momento devido a um erro (%s). Por favor, tente escrever uma manualmente."
)

// DescriptionGenerator drafts a service description from keywords
type DescriptionGenerator interface {
	// Generate always returns displayable text, never an error.
	Generate(ctx context.Context, keywords, profession string) string
}

// DescriptionService OpenAI-compatible chat completions client
type DescriptionService struct {
	cfg        config.GenAIConfig
	httpClient *http.Client
	cache      cache.Service
	log        zerolog.Logger
}

// NewDescriptionService creates a new DescriptionService
func NewDescriptionService(cfg config.GenAIConfig, log zerolog.Logger) *DescriptionService {
	return &DescriptionService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// SetCache keeps successful drafts in c so repeated requests skip the API
func (s *DescriptionService) SetCache(c cache.Service) {
	s.cache = c
}

// Enabled reports whether an API key is configured
func (s *DescriptionService) Enabled() bool {
	return s.cfg.APIKey != ""
}

func (s *DescriptionService) Generate(ctx context.Context, keywords, profession string) string {
	if !s.Enabled() {
		return DescriptionUnavailable
	}

	key := cache.DescriptionKey(s.cfg.Model, keywords, profession)
	if s.cache != nil && s.cache.IsAvailable() {
		var cached string
		if err := s.cache.Get(ctx, key, &cached); err == nil && cached != "" {
			return cached
		}
	}

	text, err := s.complete(ctx, buildDescriptionPrompt(keywords, profession))
	switch {
	case err == nil:
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, text, cache.TTLDescription); err != nil {
				s.log.Warn().Err(err).Msg("failed to cache description")
			}
		}
		return text
	case err == errEmptyCompletion:
		s.log.Warn().Str("model", s.cfg.Model).Msg("completion response had no text")
		return descriptionUnexpected
	default:
		s.log.Error().Err(err).Str("model", s.cfg.Model).Msg("description generation failed")
		return fmt.Sprintf(descriptionFailedFmt, err.Error())
	}
}

var errEmptyCompletion = fmt.Errorf("completion has no text")

func buildDescriptionPrompt(keywords, profession string) string {
	var b strings.Builder
	b.WriteString("Você é um redator especialista ajudando um usuário a criar uma oferta de serviço atraente para uma plataforma de troca de habilidades.\n")
	fmt.Fprintf(&b, "A profissão do usuário é: %s.\n", profession)
	fmt.Fprintf(&b, "O serviço que deseja oferecer está relacionado a: %q.\n\n", keywords)
	b.WriteString("Gere uma descrição concisa, persuasiva e amigável para este serviço.\n")
	b.WriteString("Destaque os principais benefícios para quem procura trocar serviços em vez de pagar por eles.\n")
	b.WriteString("A descrição deve ter de 1 a 2 frases, no máximo 60 palavras.\n")
	b.WriteString("Faça com que pareça atraente e confiável.\n")
	fmt.Fprintf(&b, "Exemplo: \"%s especialista oferecendo %s. Vamos trocar habilidades e nos ajudar a crescer sem abrir nossas carteiras!\"\n\n", profession, keywords)
	b.WriteString("Descrição Gerada:")
	return b.String()
}

func (s *DescriptionService) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":       s.cfg.Model,
		"max_tokens":  s.cfg.MaxTokens,
		"temperature": s.cfg.Temperature,
		"top_p":       s.cfg.TopP,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (%d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", errEmptyCompletion
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", errEmptyCompletion
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
