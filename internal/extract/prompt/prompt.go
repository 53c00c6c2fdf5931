// Package prompt holds the feature-extraction contract shared by every
// provider: the system prompt pinning the key set and vocabulary, and the
// defensive parser for provider responses.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// ErrInvalidResponse marks provider output that could not be parsed into a
// complete feature record.
var ErrInvalidResponse = errors.New("extraction provider returned invalid response")

// System is the instruction block shared by every provider. It pins the
// exact key set and vocabulary the schema registry expects so that a
// well-behaved model produces a record the encoder can consume directly.
const System = `You are a plumbing job intake assistant. Read the customer's job description and extract a single JSON object describing the required installation work.

The object must contain exactly these 17 keys:

Counts (non-negative integers, 0 when the fixture is not mentioned):
- "boilerSize": one of "small", "medium", "big" (default "small")
- "radiator": number of radiators
- "toilet": number of toilets
- "washbasin": number of washbasins
- "bathhub": number of bathtubs
- "showerCabin": number of shower cabins
- "Bidet": number of bidets
- "waterHeater": number of water heaters
- "sinkTypeQuality": one of "poor", "high" (default "poor")

Types (use the default when the fixture is absent or the type is not stated):
- "radiatorType": one of "COPA_Aluminium", "FONDITAL_ARDENTE_C2", "GLOBAL_ISEO_350", "Helyos_Evo", "Primavera_H500", "Samochauf_SAHD", "Sira_Alice_Royal" (default "COPA_Aluminium")
- "toileType": one of "Basic-Ceramic", "One-Piece", "Wall-Hung" (default "Basic-Ceramic")
- "washbasinType": one of "Countertop", "Pedestal", "Wall-Mounted" (default "Countertop")
- "bathhubType": one of "Luxury", "Standard" (default "Luxury")
- "showerCabinType": one of "Basic_Enclosure", "Luxury_Enclosure" (default "Basic_Enclosure")
- "BidetType": one of "Bidet-Ceramic", "Bidet-Mixer-Tap", "Wall-Hung" (default "Bidet-Ceramic")
- "waterHeaterType": one of "Electric-30liters", "Electric-50liters", "GAS-11liters", "GAS-6liters" (default "Electric-30liters")
- "sinkCategorie": one of "double", "single" (default "double")

Rules:
- Respond with the JSON object only. No markdown, no commentary.
- Never invent keys and never omit a key.
- Match the vocabulary above exactly, including capitalization.
- If the description is not about plumbing work at all, still return the object with all counts at 0 and all types at their defaults.`

// requiredKeys is the full feature contract. ParseRecord rejects any
// response missing one of these.
var requiredKeys = []string{
	"boilerSize", "radiator", "radiatorType",
	"toilet", "toileType",
	"washbasin", "washbasinType",
	"bathhub", "bathhubType",
	"showerCabin", "showerCabinType",
	"Bidet", "BidetType",
	"waterHeater", "waterHeaterType",
	"sinkTypeQuality", "sinkCategorie",
}

// ParseRecord parses an LLM text response into a JobRecord. Models sometimes
// fence their output or prepend prose despite instructions, so the parser
// extracts the first top-level JSON object before unmarshalling.
func ParseRecord(raw string) (models.JobRecord, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrInvalidResponse)
	}

	var record models.JobRecord
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	for _, key := range requiredKeys {
		if _, ok := record[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrInvalidResponse, key)
		}
	}
	return record, nil
}
