package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ServiceAccount is the subset of a Google service-account key file the clients need
type ServiceAccount struct {
	Type        string `json:"type" validate:"required,eq=service_account"`
	ProjectID   string `json:"project_id" validate:"required"`
	PrivateKey  string `json:"private_key" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required,email"`
	TokenURI    string `json:"token_uri" validate:"required,url"`

	// Raw is the original file content, handed to the oauth2 library as-is
	Raw []byte `json:"-"`
}

// LoadServiceAccount loads and validates a service-account key file
func LoadServiceAccount(path string) (*ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if err := ValidateServiceAccount(&sa); err != nil {
		return nil, err
	}

	sa.Raw = data
	return &sa, nil
}

// ValidateServiceAccount validates the service-account fields
func ValidateServiceAccount(sa *ServiceAccount) error {
	if err := validate.Struct(sa); err != nil {
		return fmt.Errorf("credentials validation failed: %w", err)
	}
	return nil
}
