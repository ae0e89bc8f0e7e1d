package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Artwork is an immutable catalog record. Records are written by the offline
// enrichment pipeline and are read-only here.
type Artwork struct {
	ID          string            `json:"id" dynamodbav:"id"`
	Title       string            `json:"title" dynamodbav:"title"`
	Artist      string            `json:"artist" dynamodbav:"artist"`
	Description string            `json:"description" dynamodbav:"description"`
	Price       string            `json:"price" dynamodbav:"price"`
	ProductURL  string            `json:"product_url" dynamodbav:"product_url"`
	Filename    string            `json:"filename" dynamodbav:"filename"`
	Attributes  ArtworkAttributes `json:"attributes" dynamodbav:"attributes"`

	// ImageURL is filled per-response from the presigned-URL service and is
	// never persisted.
	ImageURL string `json:"image_url,omitempty" dynamodbav:"-"`
}

type ArtworkAttributes struct {
	DominantColors  []ColorSample   `json:"dominant_colors" dynamodbav:"dominant_colors"`
	Style           AttributeValue  `json:"style" dynamodbav:"style"`
	Subject         AttributeValue  `json:"subject" dynamodbav:"subject"`
	Mood            string          `json:"mood,omitempty" dynamodbav:"mood"`
	EmotionalImpact float64         `json:"emotional_impact,omitempty" dynamodbav:"emotional_impact"`
	ColorHarmony    string          `json:"color_harmony,omitempty" dynamodbav:"color_harmony"`
	RecommendedSize string          `json:"recommended_size,omitempty" dynamodbav:"recommended_size"`
	RoomSuggestions RoomSuggestions `json:"room_suggestions,omitempty" dynamodbav:"room_suggestions"`
}

// AttributeValue is a labeled attribute with the upstream classifier's
// confidence. Catalog records exist in two shapes: a legacy plain string
// ("Impressionist") and an enriched object ({label, confidence}). Both
// decode into this one type; legacy strings imply confidence 1.0.
type AttributeValue struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (a AttributeValue) IsZero() bool { return a.Label == "" }

func (a *AttributeValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Label = s
		a.Confidence = 1.0
		return nil
	}
	var obj struct {
		Label      string          `json:"label"`
		Confidence json.RawMessage `json:"confidence"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("attribute value: %w", err)
	}
	a.Label = obj.Label
	a.Confidence = coerceFloat(obj.Confidence)
	return nil
}

// UnmarshalDynamoDBAttributeValue accepts the same two shapes from DynamoDB:
// a plain S member or an M member with label/confidence. Anything else
// decodes to the zero value rather than failing the whole record.
func (a *AttributeValue) UnmarshalDynamoDBAttributeValue(av ddbtypes.AttributeValue) error {
	switch v := av.(type) {
	case *ddbtypes.AttributeValueMemberS:
		a.Label = v.Value
		a.Confidence = 1.0
	case *ddbtypes.AttributeValueMemberM:
		if lv, ok := v.Value["label"].(*ddbtypes.AttributeValueMemberS); ok {
			a.Label = lv.Value
		}
		if cv, ok := v.Value["confidence"].(*ddbtypes.AttributeValueMemberN); ok {
			f, err := strconv.ParseFloat(cv.Value, 64)
			if err == nil {
				a.Confidence = f
			}
		}
	case *ddbtypes.AttributeValueMemberNULL:
	default:
	}
	return nil
}

// coerceFloat converts a raw JSON value to float64, defaulting to 0.0 when
// the value is absent, a quoted decimal string, or malformed.
func coerceFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0.0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0.0
}

type RoomSuggestions struct {
	Primary   RoomSuggestion   `json:"primary" dynamodbav:"primary"`
	Secondary []RoomSuggestion `json:"secondary,omitempty" dynamodbav:"secondary"`
}

type RoomSuggestion struct {
	Room       string  `json:"room" dynamodbav:"room"`
	Confidence float64 `json:"confidence" dynamodbav:"confidence"`
}
