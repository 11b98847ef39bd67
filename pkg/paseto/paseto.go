package paseto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Attendance-Roster-Backend/models"
)

// KeySize is the symmetric key length PASETO v2 local requires.
const KeySize = 32

type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	EmpID  string             `json:"emp_id"`
	Email  string             `json:"email"`
	Role   string             `json:"role"`
}

var (
	pasetoInstance = paseto.NewV2()
	symmetricKey   []byte
)

// Init decodes and installs the symmetric key. Must be called once at
// startup, before any token is issued or verified. URL-safe and standard
// base64 are both accepted; this is the only place the secret is validated.
func Init(secretBase64 string) error {
	decodedKey, err := base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		decodedKey, err = base64.StdEncoding.DecodeString(secretBase64)
		if err != nil {
			return fmt.Errorf("failed to decode PASETO secret: %w", err)
		}
	}

	if len(decodedKey) != KeySize {
		return fmt.Errorf("PASETO secret must be exactly %d bytes after base64 decoding, got %d", KeySize, len(decodedKey))
	}

	symmetricKey = decodedKey
	return nil
}

// GenerateKey returns a fresh random symmetric key, base64 URL-encoded,
// ready to be used as PASETO_SECRET.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate random key: %w", err)
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

func GenerateToken(user *models.User) (string, error) {
	if symmetricKey == nil {
		return "", fmt.Errorf("paseto key is not initialized")
	}

	now := time.Now()
	exp := now.Add(24 * time.Hour)

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: exp,
		NotBefore:  now,
	}

	token.Set("user_id", user.ID.Hex())
	token.Set("emp_id", user.EmpID)
	token.Set("email", user.Email)
	token.Set("role", user.Role)

	return pasetoInstance.Encrypt(symmetricKey, token, "")
}

func ValidateToken(tokenString string) (*Claims, error) {
	if symmetricKey == nil {
		return nil, fmt.Errorf("paseto key is not initialized")
	}

	var token paseto.JSONToken
	var footer string

	err := pasetoInstance.Decrypt(tokenString, symmetricKey, &token, &footer)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	var claims Claims

	userIDStr := token.Get("user_id")
	objectID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id format: %v", err)
	}
	claims.UserID = objectID
	claims.EmpID = token.Get("emp_id")
	claims.Email = token.Get("email")
	claims.Role = token.Get("role")

	return &claims, nil
}
