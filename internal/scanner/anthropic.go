package scanner

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/models"
)

// receiptPrompt asks the model for the exact JSON shape of
// models.ScannedReceipt. Unit price matters: a receipt line "2 Beers $16.00"
// must come back as price 8.00, quantity 2.
const receiptPrompt = `Analyze this receipt image and extract all the information. Return a JSON object with the following structure:

{
  "items": [
    { "name": "Item name", "price": 12.99, "quantity": 1 }
  ],
  "subtotal": 45.99,
  "tax": 3.68,
  "total": 49.67
}

Rules:
1. Extract every line item with its name, price, and quantity
2. IMPORTANT: "price" must be the UNIT PRICE (price for ONE item), not the line total
   - If receipt shows "2 Beers $16.00", the unit price is $8.00, so return: { "name": "Beer", "price": 8.00, "quantity": 2 }
   - The formula is: line_total = price * quantity
3. If quantity is not shown, assume 1 (and price = line total)
4. Prices should be numbers (not strings)
5. If you can't determine subtotal/tax/total, calculate them:
   - subtotal = sum of (price * quantity) for all items
   - If tax is not shown, set it to 0
   - total = subtotal + tax
6. Clean up item names (remove codes, abbreviations if possible)
7. Return ONLY the JSON object, no other text`

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-20250514"

const maxTokens = 1024

// Ensure AnthropicScanner implements Scanner
var _ Scanner = (*AnthropicScanner)(nil)

// AnthropicScanner implements Scanner with the Anthropic vision API.
type AnthropicScanner struct {
	client anthropic.Client
	model  string
}

// NewAnthropicScanner builds a scanner using the given API key and model.
// An empty model selects DefaultModel.
func NewAnthropicScanner(apiKey, model string) *AnthropicScanner {
	if model == "" {
		model = DefaultModel
	}
	return &AnthropicScanner{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Scan sends the receipt image to the model and parses the JSON reply.
// All failures, including unparsable model output, surface as upstream
// errors; the caller offers manual entry instead of retrying.
func (s *AnthropicScanner) Scan(ctx context.Context, image []byte, mimeType string) (*models.ScannedReceipt, error) {
	if len(image) == 0 {
		return nil, apperr.Validationf("empty receipt image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	encoded := base64.StdEncoding.EncodeToString(image)
	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mimeType, encoded),
				anthropic.NewTextBlock(receiptPrompt),
			),
		},
	})
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("vision request failed: %w", err))
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, apperr.Upstream(errors.New("no text content in vision response"))
	}

	receipt, err := parseReceipt(text)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return receipt, nil
}

// parseReceipt recovers the receipt JSON from model output, tolerating
// prose around the object.
func parseReceipt(text string) (*models.ScannedReceipt, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, errors.New("no JSON object in vision response")
	}

	var receipt models.ScannedReceipt
	if err := json.Unmarshal([]byte(text[start:end+1]), &receipt); err != nil {
		return nil, fmt.Errorf("failed to parse receipt data: %w", err)
	}

	for i := range receipt.Items {
		if receipt.Items[i].Quantity < 1 {
			receipt.Items[i].Quantity = 1
		}
	}
	return &receipt, nil
}
