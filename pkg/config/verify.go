package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// schemaNode is the subset of JSON schema keywords checked by VerifyAgainstEmbeddedSchema
type schemaNode struct {
	Ref        string                 `json:"$ref"`
	Type       string                 `json:"type"`
	Properties map[string]*schemaNode `json:"properties"`
	Required   []string               `json:"required"`
	Minimum    *float64               `json:"minimum"`
	Maximum    *float64               `json:"maximum"`
	Items      *schemaNode            `json:"items"`
	Defs       map[string]*schemaNode `json:"$defs"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It checks unknown and missing fields, value types and numeric bounds.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema schemaNode
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	v := &verifier{defs: schema.Defs}
	v.check("", &schema, configMap)
	if len(v.errs) > 0 {
		return fmt.Errorf("validation failed: %s", strings.Join(v.errs, "; "))
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

type verifier struct {
	defs map[string]*schemaNode
	errs []string
}

func (v *verifier) resolve(node *schemaNode) *schemaNode {
	for node != nil && node.Ref != "" {
		name := strings.TrimPrefix(node.Ref, "#/$defs/")
		next, ok := v.defs[name]
		if !ok {
			v.errs = append(v.errs, fmt.Sprintf("unknown schema reference %s", node.Ref))
			return nil
		}
		node = next
	}
	return node
}

func (v *verifier) check(path string, node *schemaNode, value interface{}) {
	node = v.resolve(node)
	if node == nil {
		return
	}
	field := path
	if field == "" {
		field = "config"
	}

	switch val := value.(type) {
	case map[string]interface{}:
		if node.Type != "" && node.Type != "object" {
			v.errs = append(v.errs, fmt.Sprintf("%s must be %s", field, node.Type))
			return
		}
		for _, req := range node.Required {
			if _, ok := val[req]; !ok {
				v.errs = append(v.errs, fmt.Sprintf("%s is required", join(path, req)))
			}
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			prop, ok := node.Properties[k]
			if !ok {
				v.errs = append(v.errs, fmt.Sprintf("%s is not allowed", join(path, k)))
				continue
			}
			v.check(join(path, k), prop, val[k])
		}
	case []interface{}:
		if node.Type != "" && node.Type != "array" {
			v.errs = append(v.errs, fmt.Sprintf("%s must be %s", field, node.Type))
			return
		}
		for i, item := range val {
			v.check(fmt.Sprintf("%s[%d]", path, i), node.Items, item)
		}
	case float64:
		if node.Type != "" && node.Type != "number" && node.Type != "integer" {
			v.errs = append(v.errs, fmt.Sprintf("%s must be %s", field, node.Type))
			return
		}
		if node.Type == "integer" && val != float64(int64(val)) {
			v.errs = append(v.errs, fmt.Sprintf("%s must be integer", field))
		}
		if node.Minimum != nil && val < *node.Minimum {
			v.errs = append(v.errs, fmt.Sprintf("%s must be >= %v", field, *node.Minimum))
		}
		if node.Maximum != nil && val > *node.Maximum {
			v.errs = append(v.errs, fmt.Sprintf("%s must be <= %v", field, *node.Maximum))
		}
	case string:
		if node.Type != "" && node.Type != "string" {
			v.errs = append(v.errs, fmt.Sprintf("%s must be %s", field, node.Type))
		}
	case bool:
		if node.Type != "" && node.Type != "boolean" {
			v.errs = append(v.errs, fmt.Sprintf("%s must be %s", field, node.Type))
		}
	case nil:
		if node.Type != "" && node.Type != "null" && node.Type != "array" {
			v.errs = append(v.errs, fmt.Sprintf("%s must be %s", field, node.Type))
		}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return errors.New("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return errors.New("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if cfg.Extraction.RateLimit < 0 {
		return errors.New("extraction.rate_limit must be non-negative")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
