package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	genai "google.golang.org/genai"

	"github.com/FACorreiaa/go-worldlens/internal/app/models"
	"github.com/FACorreiaa/go-worldlens/internal/app/utils"
	"github.com/FACorreiaa/go-worldlens/internal/pkg/config"
)

const maxVisualLandmarks = 4

const locationsMarker = "LOCATIONS:"

var fallbackQuestions = []string{
	"What food is this place famous for?",
	"What does it look like in winter?",
	"What historical events happened here?",
	"What do locals do on weekends?",
}

// GeminiGateway implements Gateway on top of the Gemini API. All retry,
// caching and response-cleanup behavior lives here; callers only see the
// Gateway contract.
type GeminiGateway struct {
	client *generativeAI.LLMChatClient
	cfg    config.GeminiConfig
	retry  RetryPolicy
	cache  *cache.Cache
	logger *zap.Logger
	titler cases.Caser
}

func NewGeminiGateway(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiGateway, error) {
	client, err := generativeAI.NewLLMChatClient(ctx, cfg.APIKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Gemini client")
	}

	return &GeminiGateway{
		client: client,
		cfg:    cfg,
		retry: RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			Base:        cfg.BackoffBase,
			Jitter:      cfg.BackoffJitter,
		},
		cache:  cache.New(cfg.ResponseCache, cfg.CacheSweep),
		logger: logger,
		titler: cases.Title(language.English),
	}, nil
}

// generate runs one prompt through the model with retries and returns the
// raw response text.
func (g *GeminiGateway) generate(ctx context.Context, op, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
	ctx, span := otel.Tracer("AIGateway").Start(ctx, op, trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	if genCfg == nil {
		genCfg = &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](g.cfg.Temperature)}
	}

	var text string
	err := g.retry.Do(ctx, g.logger, op, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
		defer cancel()

		resp, err := g.client.GenerateResponse(callCtx, prompt, genCfg)
		if err != nil {
			return err
		}
		text = responseText(resp)
		if text == "" {
			return errors.New("empty response from model")
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		return "", err
	}

	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Generated")
	return text, nil
}

// generateJSON generates and unmarshals a JSON payload, stripping markdown
// fences the model tends to wrap around structured answers.
func (g *GeminiGateway) generateJSON(ctx context.Context, op, prompt string, out any) error {
	text, err := g.generate(ctx, op, prompt, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(text)), out); err != nil {
		return errors.Wrapf(err, "%s: unparseable model output", op)
	}
	return nil
}

func (g *GeminiGateway) Geocode(ctx context.Context, query string) (*models.GeocodeResult, error) {
	var raw struct {
		Name         string   `json:"name"`
		Lat          float64  `json:"lat"`
		Lng          float64  `json:"lng"`
		Alternatives []string `json:"alternatives"`
	}
	if err := g.generateJSON(ctx, "Geocode", geocodePrompt(g.titler.String(query)), &raw); err != nil {
		return nil, err
	}

	if len(raw.Alternatives) > 0 {
		return &models.GeocodeResult{Alternatives: raw.Alternatives}, nil
	}
	if raw.Name == "" || !utils.HasValidCoordinates(raw.Lat, raw.Lng) {
		return nil, nil
	}
	return &models.GeocodeResult{Name: raw.Name, Lat: raw.Lat, Lng: raw.Lng}, nil
}

func (g *GeminiGateway) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Location, error) {
	var raw models.Location
	if err := g.generateJSON(ctx, "ReverseGeocode", reverseGeocodePrompt(lat, lng), &raw); err != nil {
		return nil, err
	}
	if raw.Name == "" {
		return nil, nil
	}
	if !utils.ValidateCoordinates(raw.Lat, raw.Lng) {
		raw.Lat, raw.Lng = lat, lng
	}
	return &raw, nil
}

func (g *GeminiGateway) LocationSummary(ctx context.Context, name string) (string, error) {
	cacheKey := "summary:" + name
	if cached, found := g.cache.Get(cacheKey); found {
		if summary, ok := cached.(string); ok {
			return summary, nil
		}
	}

	summary, err := g.generate(ctx, "LocationSummary", summaryPrompt(name), nil)
	if err != nil {
		g.logger.Warn("Summary generation failed, using fallback",
			zap.String("place", name), zap.Error(err))
		return fmt.Sprintf("%s is waiting to be explored. Ask me anything about it.", name), nil
	}

	g.cache.Set(cacheKey, summary, cache.DefaultExpiration)
	return summary, nil
}

func (g *GeminiGateway) VisualKeywords(ctx context.Context, name string, exclude []string) ([]models.VisualLandmark, error) {
	cacheKey := "visuals:" + name
	if len(exclude) == 0 {
		if cached, found := g.cache.Get(cacheKey); found {
			if landmarks, ok := cached.([]models.VisualLandmark); ok {
				return landmarks, nil
			}
		}
	}

	var raw []models.VisualLandmark
	if err := g.generateJSON(ctx, "VisualKeywords", visualKeywordsPrompt(name, exclude, maxVisualLandmarks), &raw); err != nil {
		g.logger.Warn("Visual landmark fetch failed, returning empty gallery",
			zap.String("place", name), zap.Error(err))
		return nil, nil
	}

	landmarks := make([]models.VisualLandmark, 0, maxVisualLandmarks)
	for _, lm := range raw {
		if lm.ShortCaption == "" || lm.ImageURL == "" {
			continue
		}
		landmarks = append(landmarks, lm)
		if len(landmarks) == maxVisualLandmarks {
			break
		}
	}

	if len(exclude) == 0 && len(landmarks) > 0 {
		g.cache.Set(cacheKey, landmarks, cache.DefaultExpiration)
	}
	return landmarks, nil
}

func (g *GeminiGateway) PertinentQuestions(ctx context.Context, name string, count int) ([]string, error) {
	if count <= 0 {
		count = len(fallbackQuestions)
	}

	cacheKey := fmt.Sprintf("questions:%s:%d", name, count)
	if cached, found := g.cache.Get(cacheKey); found {
		if questions, ok := cached.([]string); ok {
			return questions, nil
		}
	}

	var raw []string
	if err := g.generateJSON(ctx, "PertinentQuestions", questionsPrompt(name, count), &raw); err != nil || len(raw) == 0 {
		if err != nil {
			g.logger.Warn("Question fetch failed, using fallback set",
				zap.String("place", name), zap.Error(err))
		}
		if count > len(fallbackQuestions) {
			count = len(fallbackQuestions)
		}
		return fallbackQuestions[:count], nil
	}

	if len(raw) > count {
		raw = raw[:count]
	}
	g.cache.Set(cacheKey, raw, cache.DefaultExpiration)
	return raw, nil
}

func (g *GeminiGateway) SinglePertinentQuestion(ctx context.Context, name string, exclude []string) (string, error) {
	var raw struct {
		Question string `json:"question"`
	}
	if err := g.generateJSON(ctx, "SinglePertinentQuestion", singleQuestionPrompt(name, exclude), &raw); err != nil {
		g.logger.Warn("Replacement question fetch failed",
			zap.String("place", name), zap.Error(err))
		return "", nil
	}
	return strings.TrimSpace(raw.Question), nil
}

func (g *GeminiGateway) DynamicCoolLocation(ctx context.Context, exclude []string) (*models.Location, error) {
	var raw models.Location
	if err := g.generateJSON(ctx, "DynamicCoolLocation", coolLocationPrompt(exclude), &raw); err != nil {
		return nil, err
	}
	if raw.Name == "" || !utils.HasValidCoordinates(raw.Lat, raw.Lng) {
		return nil, nil
	}
	return &raw, nil
}

func (g *GeminiGateway) QueryLocation(ctx context.Context, prompt string, focal *models.Coordinates) (*models.QueryResponse, error) {
	ctx, span := otel.Tracer("AIGateway").Start(ctx, "QueryLocation", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", g.cfg.Model),
		attribute.Bool("focal.present", focal != nil),
	))
	defer span.End()

	focalDesc := ""
	if focal != nil {
		focalDesc = fmt.Sprintf("The user is currently viewing the map around latitude %.4f, longitude %.4f; weigh your answer toward that area.", focal.Lat, focal.Lng)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](g.cfg.Temperature),
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	var resp *genai.GenerateContentResponse
	err := g.retry.Do(ctx, g.logger, "QueryLocation", func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
		defer cancel()

		r, err := g.client.GenerateResponse(callCtx, freeFormPrompt(prompt, focalDesc), genCfg)
		if err != nil {
			return err
		}
		if responseText(r) == "" {
			return errors.New("empty response from model")
		}
		resp = r
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return nil, err
	}

	text, locations := splitLocationTrailer(responseText(resp))
	result := &models.QueryResponse{
		Text:      text,
		Sources:   groundingSources(resp),
		Locations: locations,
	}

	span.SetAttributes(
		attribute.Int("response.length", len(result.Text)),
		attribute.Int("sources.count", len(result.Sources)),
	)
	span.SetStatus(codes.Ok, "Query answered")
	return result, nil
}

// splitLocationTrailer separates the prose answer from the optional
// LOCATIONS: JSON trailer the prompt asks for.
func splitLocationTrailer(text string) (string, []models.LocationResult) {
	idx := strings.LastIndex(text, locationsMarker)
	if idx == -1 {
		return text, nil
	}

	var raw []models.LocationResult
	trailer := cleanJSONResponse(text[idx+len(locationsMarker):])
	if err := json.Unmarshal([]byte(trailer), &raw); err != nil {
		return text, nil
	}

	locations := raw[:0]
	for _, loc := range raw {
		if loc.Name != "" && utils.ValidateCoordinates(loc.Lat, loc.Lng) {
			locations = append(locations, loc)
		}
	}
	return strings.TrimSpace(text[:idx]), locations
}

func groundingSources(resp *genai.GenerateContentResponse) []models.GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	var sources []models.GroundingSource
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, models.GroundingSource{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return sources
}
