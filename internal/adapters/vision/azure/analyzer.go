// Package azure implementa vision.Analyzer sobre Azure AI Vision
// Image Analysis 4.0.
package azure

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/platform/httpclient"
	"tingrrr/internal/platform/logger"
	"tingrrr/internal/platform/metrics"
	"tingrrr/internal/ports/vision"

	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	DefaultTimeout = 30 * time.Second

	analyzePath = "/computervision/imageanalysis:analyze"
	apiVersion  = "2024-02-01"
	breakerName = "azure-vision"

	defaultBreed       = "Mixed Breed"
	defaultColor       = "Unknown"
	defaultDescription = "A dog detected by Azure AI Vision."
)

var ErrUnavailable = errors.New("image analysis unavailable")

// Mock es lo que devuelve Analyze cuando no hay credenciales configuradas.
var Mock = vision.Analysis{
	Breed:       defaultBreed,
	Size:        dogs.SizeMedium,
	Color:       "Brown",
	CoatLength:  dogs.CoatMedium,
	Description: "A friendly-looking dog waiting for analysis (Azure Vision not configured).",
	Confidence:  0,
}

type Options struct {
	Endpoint string
	Key      string
	Timeout  time.Duration
	Logger   logger.Logger

	// Transport permite inyectar un RoundTripper en tests.
	Transport http.RoundTripper
}

type Analyzer struct {
	client *httpclient.Client
	key    string
	cb     *gobreaker.CircuitBreaker[vision.Analysis]
	log    logger.Logger
}

var _ vision.Analyzer = (*Analyzer)(nil)

func New(opts Options) (*Analyzer, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "vision"})

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	a := &Analyzer{log: log}

	endpoint := strings.TrimSpace(opts.Endpoint)
	key := strings.TrimSpace(opts.Key)
	if endpoint == "" || key == "" {
		return a, nil
	}

	c, err := httpclient.NewWithBaseURL(endpoint, timeout)
	if err != nil {
		return nil, fmt.Errorf("azure vision: %w", err)
	}
	if opts.Transport != nil {
		c.HTTP.Transport = opts.Transport
	}
	a.client = c
	a.key = key
	a.cb = newBreaker(log)
	return a, nil
}

// Configured indica si hay credenciales; sin ellas Analyze devuelve Mock.
func (a *Analyzer) Configured() bool {
	return a.client != nil
}

func (a *Analyzer) Analyze(ctx context.Context, image []byte) (vision.Analysis, error) {
	if !a.Configured() {
		a.log.Warn("azure vision credentials not set, returning mock analysis", nil)
		metrics.VisionRequests.WithLabelValues("mock").Inc()
		return Mock, nil
	}

	start := time.Now()
	res, err := a.cb.Execute(func() (vision.Analysis, error) {
		return a.call(ctx, image)
	})
	metrics.VisionRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.VisionRequests.WithLabelValues("breaker_open").Inc()
			a.log.Warn("vision request rejected by circuit breaker", map[string]any{"err": err})
		} else {
			metrics.VisionRequests.WithLabelValues("error").Inc()
			a.log.Error("vision request failed", map[string]any{"err": err})
		}
		return vision.Analysis{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	metrics.VisionRequests.WithLabelValues("ok").Inc()
	return res, nil
}

type analyzeResponse struct {
	CaptionResult *struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"captionResult"`
	TagsResult struct {
		Values []struct {
			Name string `json:"name"`
		} `json:"values"`
	} `json:"tagsResult"`
	ObjectsResult struct {
		Values []struct {
			Tags []struct {
				Name string `json:"name"`
			} `json:"tags"`
		} `json:"values"`
	} `json:"objectsResult"`
}

func (a *Analyzer) call(ctx context.Context, image []byte) (vision.Analysis, error) {
	var resp analyzeResponse
	err := a.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   analyzePath,
		Query: url.Values{
			"api-version": {apiVersion},
			"features":    {"caption,tags,objects"},
			"language":    {"en"},
		},
		Headers:     map[string]string{"Ocp-Apim-Subscription-Key": a.key},
		ContentType: "application/octet-stream",
		Body:        image,
	}, &resp)
	if err != nil {
		return vision.Analysis{}, err
	}
	return parse(resp), nil
}

func parse(resp analyzeResponse) vision.Analysis {
	var (
		caption    string
		confidence float64
	)
	if resp.CaptionResult != nil {
		caption = resp.CaptionResult.Text
		confidence = resp.CaptionResult.Confidence
	}

	tags := make([]string, 0, len(resp.TagsResult.Values))
	for _, t := range resp.TagsResult.Values {
		tags = append(tags, t.Name)
	}
	objects := make([]string, 0, len(resp.ObjectsResult.Values))
	for _, o := range resp.ObjectsResult.Values {
		if len(o.Tags) > 0 {
			objects = append(objects, o.Tags[0].Name)
		}
	}

	out := vision.Analysis{
		Breed:       defaultBreed,
		Size:        dogs.SizeMedium,
		Color:       defaultColor,
		CoatLength:  dogs.CoatMedium,
		Description: caption,
		Confidence:  math.Round(confidence*1000) / 1000,
	}
	if out.Description == "" {
		out.Description = defaultDescription
	}
	if b, ok := extractBreed(tags, objects, caption); ok {
		out.Breed = titleWords(b.name)
		out.Size = b.size
		out.CoatLength = b.coat
	}
	if c, ok := extractColor(tags, caption); ok {
		out.Color = c
	}
	return out
}

func newBreaker(log logger.Logger) *gobreaker.CircuitBreaker[vision.Analysis] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[vision.Analysis](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Un 4xx es culpa de la imagen, no del servicio.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var httpErr *httpclient.HTTPError
			return errors.As(err, &httpErr) && httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 &&
				httpErr.StatusCode != http.StatusTooManyRequests
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
