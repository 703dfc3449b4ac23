package config

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSecretString(t *testing.T) {
	values, err := decodeSecret(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"database_password":"s3cret","football_url":"https://data.example.com/f.csv?sig=abc"}`),
	})
	require.NoError(t, err)

	cfg := &Config{}
	cfg.Database.User = "odds_lab"
	cfg.Dataset.TennisURL = "https://data.example.com/t.csv"
	values.Apply(cfg)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "odds_lab", cfg.Database.User)
	assert.Equal(t, "https://data.example.com/f.csv?sig=abc", cfg.Dataset.FootballURL)
	assert.Equal(t, "https://data.example.com/t.csv", cfg.Dataset.TennisURL)
}

func TestDecodeSecretBinary(t *testing.T) {
	values, err := decodeSecret(&secretsmanager.GetSecretValueOutput{
		SecretBinary: []byte(`{"database_user":"reader"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "reader", values.DatabaseUser)
}

func TestDecodeSecretErrors(t *testing.T) {
	_, err := decodeSecret(&secretsmanager.GetSecretValueOutput{})
	assert.ErrorIs(t, err, errEmptySecret)

	_, err = decodeSecret(&secretsmanager.GetSecretValueOutput{SecretString: aws.String("not json")})
	assert.Error(t, err)
}
