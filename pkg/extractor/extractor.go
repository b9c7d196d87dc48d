package extractor

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pinscraper/pkg/errors"
	"pinscraper/pkg/logger"
	"pinscraper/pkg/models"
)

const (
	// VideoComponentSelector marks Pinterest's own video player container
	VideoComponentSelector = `[data-test-id="video-component"]`

	// StructuredDataSelector matches embedded JSON-LD blocks
	StructuredDataSelector = `script[type="application/ld+json"]`
)

// Extractor scans a pin page for media references
type Extractor struct {
	logger logger.Logger
}

// New creates an Extractor. A nil logger falls back to the global one.
func New(log logger.Logger) *Extractor {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Extractor{logger: log}
}

// strategy appends candidates found in doc to out
type strategy struct {
	name string
	run  func(doc *goquery.Document, base *url.URL) []models.MediaCandidate
}

// Extract parses body and runs every strategy in a fixed order: image tags,
// video tags, video containers, then structured data. Later strategies win
// kind conflicts during deduplication, so the order is part of the contract.
func (e *Extractor) Extract(body []byte, baseURL string) ([]models.MediaCandidate, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: "invalid base URL",
			URL:     baseURL,
			Err:     err,
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: "failed to parse HTML document",
			URL:     baseURL,
			Err:     err,
		}
	}

	strategies := []strategy{
		{name: "img", run: e.imageTags},
		{name: "video", run: e.videoTags},
		{name: "video-component", run: e.videoComponents},
		{name: "ld+json", run: e.structuredData},
	}

	var candidates []models.MediaCandidate
	for _, s := range strategies {
		found := s.run(doc, base)
		e.logger.DebugWithFields("extraction strategy finished", map[string]interface{}{
			"strategy": s.name,
			"found":    len(found),
		})
		candidates = append(candidates, found...)
	}

	return candidates, nil
}

func (e *Extractor) imageTags(doc *goquery.Document, base *url.URL) []models.MediaCandidate {
	var out []models.MediaCandidate
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := attr(s, "src")
		if src == "" {
			src = attr(s, "data-src")
		}
		if src == "" || !models.Image.ContainsExtension(src) {
			return
		}
		if abs, ok := e.resolve(base, src); ok {
			out = append(out, models.MediaCandidate{Kind: models.Image, URL: abs})
		}
	})
	return out
}

func (e *Extractor) videoTags(doc *goquery.Document, base *url.URL) []models.MediaCandidate {
	var out []models.MediaCandidate
	doc.Find("video").Each(func(_ int, s *goquery.Selection) {
		src := attr(s, "src")
		if src == "" {
			src = attr(s.Find("source").First(), "src")
		}
		if src == "" || !models.Video.ContainsExtension(src) {
			return
		}
		if abs, ok := e.resolve(base, src); ok {
			out = append(out, models.MediaCandidate{Kind: models.Video, URL: abs})
		}
	})
	return out
}

// videoComponents trusts the container marker and applies no extension filter
func (e *Extractor) videoComponents(doc *goquery.Document, base *url.URL) []models.MediaCandidate {
	var out []models.MediaCandidate
	doc.Find(VideoComponentSelector).Each(func(_ int, s *goquery.Selection) {
		src := attr(s, "data-video-src")
		if src == "" {
			return
		}
		if abs, ok := e.resolve(base, src); ok {
			out = append(out, models.MediaCandidate{Kind: models.Video, URL: abs})
		}
	})
	return out
}

// structuredData reads contentUrl from JSON-LD objects. Malformed and
// non-object blocks are common on real pages and are skipped.
func (e *Extractor) structuredData(doc *goquery.Document, base *url.URL) []models.MediaCandidate {
	var out []models.MediaCandidate
	doc.Find(StructuredDataSelector).Each(func(i int, s *goquery.Selection) {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			e.logger.WithError(err).DebugWithFields("skipping structured data block", map[string]interface{}{
				"index": i,
			})
			return
		}

		contentURL, _ := data["contentUrl"].(string)
		contentURL = strings.TrimSpace(contentURL)
		if contentURL == "" {
			return
		}

		kind := models.Image
		if models.Video.ContainsExtension(contentURL) {
			kind = models.Video
		}
		if abs, ok := e.resolve(base, contentURL); ok {
			out = append(out, models.MediaCandidate{Kind: kind, URL: abs})
		}
	})
	return out
}

// resolve turns ref into an absolute URL relative to base
func (e *Extractor) resolve(base *url.URL, ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		e.logger.WithError(err).DebugWithFields("skipping unparseable media URL", map[string]interface{}{
			"url": ref,
		})
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return strings.TrimSpace(v)
}
