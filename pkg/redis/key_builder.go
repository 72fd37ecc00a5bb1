package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Voting key builders
func (kb *KeyBuilder) KeyTeamsAll() string {
	return kb.BuildKey(KeyTeamsAll)
}

func (kb *KeyBuilder) KeyCriteria(eventID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyCriteria, eventID))
}

func (kb *KeyBuilder) KeyVoterStatus(eventID, voterID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyVoterStatus, eventID, voterID))
}

// Scoring key builders
func (kb *KeyBuilder) KeyEventSummary(eventID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyEventSummary, eventID))
}

func (kb *KeyBuilder) KeyLeaderboard(eventID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyLeaderboard, eventID))
}

func (kb *KeyBuilder) KeyFinalized(eventID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyFinalized, eventID))
}

// Jury key builders
func (kb *KeyBuilder) KeyJuryList(eventID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyJuryList, eventID))
}

// KeyCustom builds keys for one-off patterns (idempotency locks etc.)
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	key := fmt.Sprintf(pattern, args...)
	return kb.BuildKey(key)
}
