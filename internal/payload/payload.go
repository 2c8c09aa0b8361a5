// Package payload renders rewritten notes into batch request lines for a
// chat-completions batch job. It only builds the JSONL input file; uploading
// and running the batch happen elsewhere.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/openai/openai-go/v3"

	"github.com/jackzampolin/notetags/internal/notes"
)

const (
	// DefaultEndpoint is the batch endpoint each request line targets.
	DefaultEndpoint = "/v1/chat/completions"

	// DefaultSystemPreamble introduces the rewritten notes in the system message.
	DefaultSystemPreamble = "You extract product attribute values from supplier data. " +
		"Follow these extraction instructions exactly:"
)

// ErrNoModel is returned when a Builder has no model configured.
var ErrNoModel = errors.New("payload model not configured")

// Request is one line of a batch input file.
type Request struct {
	CustomID string                         `json:"custom_id"`
	Method   string                         `json:"method"`
	URL      string                         `json:"url"`
	Body     openai.ChatCompletionNewParams `json:"body"`
}

// Builder turns optimized notes into batch requests.
type Builder struct {
	Model          string
	Endpoint       string // default: DefaultEndpoint
	SystemPreamble string // default: DefaultSystemPreamble
}

// Build renders a single request. The entry id becomes the custom_id so batch
// results can be matched back to products.
func (b Builder) Build(opt notes.Optimized) (Request, error) {
	if strings.TrimSpace(b.Model) == "" {
		return Request{}, ErrNoModel
	}

	endpoint := b.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	preamble := b.SystemPreamble
	if preamble == "" {
		preamble = DefaultSystemPreamble
	}

	system := strings.TrimSpace(preamble)
	if instructions := strings.TrimSpace(opt.Notes); instructions != "" {
		system += "\n\n" + instructions
	}

	user := fmt.Sprintf("Product ID: %s\nProduct type: %s\nFields: %s",
		opt.ID, opt.ProductType, strings.Join(opt.Fields, ", "))

	return Request{
		CustomID: opt.ID,
		Method:   "POST",
		URL:      endpoint,
		Body: openai.ChatCompletionNewParams{
			Model: openai.ChatModel(b.Model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
		},
	}, nil
}

// BuildAll renders one request per optimized entry.
func (b Builder) BuildAll(opts []notes.Optimized) ([]Request, error) {
	reqs := make([]Request, 0, len(opts))
	for _, opt := range opts {
		req, err := b.Build(opt)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", opt.ID, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, reqs []Request) error {
	enc := json.NewEncoder(w)
	for _, req := range reqs {
		if err := enc.Encode(req); err != nil {
			return fmt.Errorf("failed to encode request %s: %w", req.CustomID, err)
		}
	}
	return nil
}
