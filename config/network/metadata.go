package network

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RollupMetadata holds metadata specific to rollup networks.
type RollupMetadata struct {
	// Stack names the rollup flavor the network runs, e.g. "op-stack".
	Stack string `yaml:"stack,omitempty"`

	// GasPriceOracleAddress overrides the default oracle predeploy address
	// for chains that deploy it elsewhere.
	GasPriceOracleAddress string `yaml:"gas_price_oracle_address,omitempty"`
}

// DecodeMetadata converts the metadata field from an any interface to a user-specified type using yaml marshaling.
// Use your own custom types or one of the predefined common types.
// Example usage:
//
//	type CustomMetadata struct {
//		CustomField  string `yaml:"custom_field"`
//		AnotherField int    `yaml:"another_field"`
//	}
//
//	customMetadata, err := DecodeMetadata[CustomMetadata](metadata)
//	if err != nil {
//	  // handle error
//	}
func DecodeMetadata[T any](metadata any) (T, error) {
	var target T
	if metadata == nil {
		return target, errors.New("metadata is nil")
	}

	// Marshal the metadata back to YAML bytes
	yamlBytes, err := yaml.Marshal(metadata)
	if err != nil {
		return target, fmt.Errorf("failed to marshal metadata to YAML: %w", err)
	}

	// Unmarshal into the target type
	if err := yaml.Unmarshal(yamlBytes, &target); err != nil {
		return target, fmt.Errorf("failed to unmarshal metadata to target type: %w", err)
	}

	return target, nil
}
