package gateway

import (
	"context"

	"github.com/FACorreiaa/go-worldlens/internal/app/models"
)

// Gateway is the AI collaborator consumed by the exploration core. Every
// operation may be slow; the core never cancels an in-flight call, it only
// discards stale results. Implementations own their retry behavior, so a
// caller sees either an eventual result or a final error after retries are
// exhausted.
//
// Failure contracts, per operation:
//   - Geocode/ReverseGeocode/DynamicCoolLocation return (nil, nil) when the
//     model could not produce a usable place; an error means transport-level
//     failure after retries.
//   - LocationSummary and PertinentQuestions degrade to fallback values
//     instead of failing.
//   - VisualKeywords degrades to an empty list, SinglePertinentQuestion to "".
//   - QueryLocation propagates its error; the caller handles it.
type Gateway interface {
	Geocode(ctx context.Context, query string) (*models.GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Location, error)
	LocationSummary(ctx context.Context, name string) (string, error)
	VisualKeywords(ctx context.Context, name string, exclude []string) ([]models.VisualLandmark, error)
	PertinentQuestions(ctx context.Context, name string, count int) ([]string, error)
	SinglePertinentQuestion(ctx context.Context, name string, exclude []string) (string, error)
	DynamicCoolLocation(ctx context.Context, exclude []string) (*models.Location, error)
	QueryLocation(ctx context.Context, prompt string, focal *models.Coordinates) (*models.QueryResponse, error)
}
