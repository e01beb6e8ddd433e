package domain

import "time"

// TurnRole represents the author of a conversation turn
type TurnRole string

const (
	// TurnRoleUser - Message typed by the user
	TurnRoleUser TurnRole = "user"
	// TurnRoleModel - Reply generated by the model
	TurnRoleModel TurnRole = "model"
)

// Turn is one (role, text) entry in conversation history
type Turn struct {
	Role TurnRole `json:"role"`
	Text string   `json:"text"`
}

// Credentials is the refreshable OAuth bundle granted by the user.
// The core treats it as opaque; only IsAuthenticated is derived from it.
type Credentials struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	TokenURI     string    `json:"token_uri"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	Scopes       []string  `json:"scopes"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// UserProfile holds the display data of the signed-in user
type UserProfile struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Session represents the durable per-user record addressed by an opaque,
// client-supplied key. It ties together credentials, the active knowledge
// store and the conversation held against that store.
type Session struct {
	Key         string       // Client-supplied session key
	Credentials *Credentials // Nil until the OAuth callback succeeds
	User        *UserProfile // Nil when the profile could not be fetched
	StoreName   string       // Active knowledge store, empty before first sync
	History     []Turn       // Conversation history in conversational order
	APIKey      string       // Gemini API key supplied by the user
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession creates an empty session for the given key
func NewSession(key string) *Session {
	now := time.Now()
	return &Session{
		Key:       key,
		History:   make([]Turn, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAuthenticated reports whether the session holds Drive credentials
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Credentials != nil && (s.Credentials.Token != "" || s.Credentials.RefreshToken != "")
}

// HasAPIKey reports whether a Gemini API key was saved on the session
func (s *Session) HasAPIKey() bool {
	return s != nil && s.APIKey != ""
}

// HasStore reports whether a sync has committed a knowledge store
func (s *Session) HasStore() bool {
	return s != nil && s.StoreName != ""
}

// IsExpired checks if the session has been idle longer than ttl.
// A zero ttl means sessions never expire.
func (s *Session) IsExpired(ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return time.Since(s.UpdatedAt) > ttl
}

// CommitStore replaces the active store and resets the conversation,
// since the old history refers to documents that are no longer searchable.
func (s *Session) CommitStore(storeName string) {
	s.StoreName = storeName
	s.History = make([]Turn, 0)
}

// AddTurn appends a user message and the model reply to the conversation.
// When maxTurns is positive and the limit is reached, the oldest turn
// (2 entries) is removed first.
func (s *Session) AddTurn(userText, modelText string, maxTurns int) {
	if maxTurns > 0 && len(s.History) >= maxTurns*2 {
		s.History = s.History[len(s.History)-(maxTurns-1)*2:]
	}

	s.History = append(s.History,
		Turn{Role: TurnRoleUser, Text: userText},
		Turn{Role: TurnRoleModel, Text: modelText},
	)
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	clone := *s
	clone.History = s.GetHistory()
	if s.Credentials != nil {
		creds := *s.Credentials
		creds.Scopes = append([]string(nil), s.Credentials.Scopes...)
		clone.Credentials = &creds
	}
	if s.User != nil {
		user := *s.User
		clone.User = &user
	}
	return &clone
}

// GetHistory returns a copy of the conversation history
func (s *Session) GetHistory() []Turn {
	if len(s.History) == 0 {
		return []Turn{}
	}

	// Return a copy to prevent external modification
	history := make([]Turn, len(s.History))
	copy(history, s.History)
	return history
}
