package auth

import (
	"fmt"
	"wellspring/internal/models"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// Refresh tokens live on the account row, encrypted at rest. Sessions only
// carry the short-lived access token.

// SaveRefreshTokenToAccount persists the token state from an OAuth exchange
// or refresh. The expiry is always advanced; the stored refresh token is
// only replaced when Google issued a new one, since refresh responses
// usually omit it.
func SaveRefreshTokenToAccount(db *gorm.DB, googleID string, token *oauth2.Token) error {
	if token == nil {
		return nil
	}

	updates := map[string]interface{}{
		"token_expiry": token.Expiry,
	}
	if token.RefreshToken != "" {
		encrypted, err := EncryptRefreshToken(token.RefreshToken)
		if err != nil {
			return fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
		updates["encrypted_refresh_token"] = encrypted
	}

	if err := db.Model(&models.Account{}).
		Where("google_id = ?", googleID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to save refresh token to account: %w", err)
	}

	return nil
}

// GetRefreshTokenFromAccount loads and decrypts the stored refresh token
func GetRefreshTokenFromAccount(db *gorm.DB, googleID string) (string, error) {
	var account models.Account
	if err := db.Select("encrypted_refresh_token").
		Where("google_id = ?", googleID).
		First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("account not found")
		}
		return "", fmt.Errorf("failed to retrieve account: %w", err)
	}

	if account.EncryptedRefreshToken == "" {
		return "", fmt.Errorf("no refresh token stored for account")
	}

	return DecryptRefreshToken(account.EncryptedRefreshToken)
}
