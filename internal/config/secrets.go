package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var errEmptySecret = errors.New("secret has neither a string nor a binary value")

// SecretValues is the JSON document stored in AWS Secrets Manager. Empty
// fields leave the loaded configuration untouched.
type SecretValues struct {
	DatabaseUser     string `json:"database_user"`
	DatabasePassword string `json:"database_password"`
	FootballURL      string `json:"football_url"`
	TennisURL        string `json:"tennis_url"`
}

func decodeSecret(out *secretsmanager.GetSecretValueOutput) (*SecretValues, error) {
	var raw []byte
	switch {
	case out.SecretString != nil:
		raw = []byte(*out.SecretString)
	case out.SecretBinary != nil:
		raw = out.SecretBinary
	default:
		return nil, errEmptySecret
	}

	var values SecretValues
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to decode secret: %w", err)
	}
	return &values, nil
}

// Apply copies every non-empty secret onto cfg
func (s *SecretValues) Apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Database.User, s.DatabaseUser)
	set(&cfg.Database.Password, s.DatabasePassword)
	set(&cfg.Dataset.FootballURL, s.FootballURL)
	set(&cfg.Dataset.TennisURL, s.TennisURL)
}

// LoadSecretsFromAWS fetches secretName and overlays it onto cfg. Signed
// dataset URLs and database credentials are the only values kept there.
func LoadSecretsFromAWS(ctx context.Context, cfg *Config, region, secretName string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	out, err := secretsmanager.NewFromConfig(awsCfg).GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return fmt.Errorf("failed to read secret %s: %w", secretName, err)
	}

	values, err := decodeSecret(out)
	if err != nil {
		return err
	}
	values.Apply(cfg)
	return nil
}
