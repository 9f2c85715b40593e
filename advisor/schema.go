package advisor

// this file holds both halves of the response contract: the genai schemas
// the model generates against, and the local JSON Schemas every answer is
// checked against before it is trusted.

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"

	"github.com/tmaury/fincoach"
)

var scenarioTypeNames = func() []string {
	names := make([]string, 0, len(fincoach.ScenarioTypes))
	for _, t := range fincoach.ScenarioTypes {
		names = append(names, string(t))
	}
	return names
}()

var scenarioSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"type":        {Type: genai.TypeString, Enum: scenarioTypeNames},
		"name":        {Type: genai.TypeString},
		"description": {Type: genai.TypeString},
		"assumptions": {
			Type:        genai.TypeObject,
			Description: "Numeric parameters, using the documented keys for the scenario type.",
			Properties: map[string]*genai.Schema{
				"percentageChange":    {Type: genai.TypeNumber},
				"reductionPercentage": {Type: genai.TypeNumber},
				"extraMonthlyPayment": {Type: genai.TypeNumber},
				"annualReturnRate":    {Type: genai.TypeNumber},
				"emergencyCost":       {Type: genai.TypeNumber},
				"annualInflationRate": {Type: genai.TypeNumber},
				"monthsUnemployed":    {Type: genai.TypeNumber},
			},
		},
		"timeframeMonths": {Type: genai.TypeInteger},
		"probability":     {Type: genai.TypeNumber},
		"impact":          {Type: genai.TypeString, Enum: []string{"positive", "negative", "neutral"}},
	},
	Required: []string{"type", "name", "timeframeMonths", "probability", "impact"},
}

var scenarioListResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"scenarios": {Type: genai.TypeArray, Items: scenarioSchema},
	},
	Required: []string{"scenarios"},
}

var verificationResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"isValid": {Type: genai.TypeBoolean},
		"issues":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"adjustments": {
			Type:        genai.TypeArray,
			Description: "Corrected values for assumption keys the scenario already has.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"key":   {Type: genai.TypeString},
					"value": {Type: genai.TypeNumber},
				},
				Required: []string{"key", "value"},
			},
		},
		"verificationScore": {Type: genai.TypeNumber},
		"explanation":       {Type: genai.TypeString},
	},
	Required: []string{"isValid", "verificationScore", "explanation"},
}

var recommendationListResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"priority":  {Type: genai.TypeString, Enum: []string{"critical", "high", "medium", "low"}},
					"action":    {Type: genai.TypeString},
					"rationale": {Type: genai.TypeString},
				},
				Required: []string{"priority", "action", "rationale"},
			},
		},
	},
	Required: []string{"recommendations"},
}

// Local JSON Schemas: what we accept, not what we asked for.

const scenarioListSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["type", "name", "timeframeMonths"],
		"properties": {
			"type": {"type": "string", "enum": ["income_change", "expense_reduction", "debt_payoff", "investment_growth", "emergency_event", "goal_achievement", "inflation_impact", "job_loss"]},
			"name": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"assumptions": {"type": "object"},
			"timeframeMonths": {"type": "integer", "minimum": 1},
			"probability": {"type": "number", "minimum": 0, "maximum": 1},
			"impact": {"type": "string"}
		}
	}
}`

const verificationSchema = `{
	"type": "object",
	"required": ["isValid", "verificationScore"],
	"properties": {
		"isValid": {"type": "boolean"},
		"issues": {"type": "array", "items": {"type": "string"}},
		"adjustments": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["key", "value"],
				"properties": {
					"key": {"type": "string"},
					"value": {"type": "number"}
				}
			}
		},
		"verificationScore": {"type": "number", "minimum": 0, "maximum": 1},
		"explanation": {"type": "string"}
	}
}`

const recommendationListSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["priority", "action"],
		"properties": {
			"priority": {"type": "string"},
			"action": {"type": "string", "minLength": 1},
			"rationale": {"type": "string"}
		}
	}
}`

// validateSchema checks doc against the JSON Schema. A violation is an
// error, which the fail-open wrapper treats identically to a failed call.
func validateSchema(schema string, doc []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("schema violation: %v", result.Errors())
	}
	return nil
}

// extract returns the JSON node at path when raw is an object, or raw
// itself when the model answered with a bare array.
func extract(raw []byte, path string) ([]byte, error) {
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if _, ok := jobj.(map[string]any); !ok {
		return raw, nil
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("extracting %q: %w", path, err)
	}
	return json.Marshal(jval)
}

// verificationWire is the response form of a verification; adjustments
// arrive as key/value pairs and fold into the result map.
type verificationWire struct {
	IsValid     bool     `json:"isValid"`
	Issues      []string `json:"issues"`
	Adjustments []struct {
		Key   string  `json:"key"`
		Value float64 `json:"value"`
	} `json:"adjustments"`
	VerificationScore float64 `json:"verificationScore"`
	Explanation       string  `json:"explanation"`
}

func (w verificationWire) result() *fincoach.VerificationResult {
	v := &fincoach.VerificationResult{
		IsValid:           w.IsValid,
		Issues:            w.Issues,
		Adjustments:       map[string]float64{},
		VerificationScore: w.VerificationScore,
		Explanation:       w.Explanation,
	}
	if v.Issues == nil {
		v.Issues = []string{}
	}
	for _, a := range w.Adjustments {
		v.Adjustments[a.Key] = a.Value
	}
	return v
}

type recommendationWire struct {
	Priority  string `json:"priority"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}
