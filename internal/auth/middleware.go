package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
	"wellspring/internal/database"
	"wellspring/internal/models"
	"wellspring/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

var (
	googleOAuthConfig *oauth2.Config
)

// InitOAuth initializes the Google OAuth configuration
func InitOAuth() error {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, and GOOGLE_REDIRECT_URL must be set")
	}

	googleOAuthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile", "openid"},
		Endpoint:     google.Endpoint,
	}

	return nil
}

// GetLoginURL returns the Google OAuth login URL with a secure state parameter
func GetLoginURL(c *gin.Context) (string, error) {
	state, err := SetOAuthState(c)
	if err != nil {
		return "", err
	}

	return googleOAuthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	), nil
}

// HandleGoogleCallback processes the OAuth callback from Google
func HandleGoogleCallback(c *gin.Context) {
	// Verify state parameter (CSRF protection)
	state := c.Query("state")
	if !VerifyOAuthState(c, state) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state, possible CSRF attack"})
		c.Abort()
		return
	}

	// Exchange auth code for token
	code := c.Query("code")
	token, err := googleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "code exchange failed"})
		c.Abort()
		return
	}

	// Extract ID token from the token response
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get id_token"})
		c.Abort()
		return
	}

	// Verify the ID token
	payload, err := verifyIDToken(rawIDToken, googleOAuthConfig.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to verify id_token: %v", err)})
		c.Abort()
		return
	}

	userInfo, err := extractUserInfoFromPayload(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to extract user info from token"})
		c.Abort()
		return
	}

	db := database.GetDB()

	// Check if user already exists
	var existingAccount models.Account
	if err := db.Where("google_id = ?", userInfo.Sub).First(&existingAccount).Error; err == nil {
		if err := CreateSession(c, token, userInfo, existingAccount.Username); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			c.Abort()
			return
		}

		if err := SaveRefreshTokenToAccount(db, userInfo.Sub, token); err != nil {
			log.Printf("Warning: Failed to save refresh token: %v", err)
		}

		db.Model(&existingAccount).Update("last_login", time.Now())
		recordLogin(c, existingAccount.Username, userInfo.Sub)

		c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
		return
	}

	// User does not exist, create a record with a temporary username
	randomID, err := GenerateRandomString(8)
	if err != nil {
		log.Printf("Warning: Failed to generate temporary username: %v", err)
		randomID = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	tempUsername := fmt.Sprintf("temp-%s", randomID)

	tempAccount := models.Account{
		GoogleID:      userInfo.Sub,
		Username:      tempUsername,
		Email:         userInfo.Email,
		EmailVerified: userInfo.EmailVerified,
		FullName:      userInfo.Name,
		GivenName:     userInfo.GivenName,
		FamilyName:    userInfo.FamilyName,
		Locale:        userInfo.Locale,
		AvatarURL:     userInfo.Picture,
		ReminderTime:  models.DefaultReminderTime,
		DateJoined:    time.Now(),
		LastLogin:     time.Now(),
	}

	if err := db.Create(&tempAccount).Error; err != nil {
		log.Printf("Warning: Failed to create account: %v", err)
	}

	if err := SaveRefreshTokenToAccount(db, userInfo.Sub, token); err != nil {
		log.Printf("Warning: Failed to save refresh token: %v", err)
	}

	if err := CreateSession(c, token, userInfo, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		c.Abort()
		return
	}

	recordLogin(c, "", userInfo.Sub)

	// Redirect to profile creation page
	c.Redirect(http.StatusTemporaryRedirect, "/create-profile")
}

// recordLogin writes a login audit entry; failures are logged, never surfaced
func recordLogin(c *gin.Context, username, googleID string) {
	entry := models.LoginLog{
		Username:  username,
		GoogleID:  googleID,
		IPAddress: utils.GetRealClientIP(c),
		UserAgent: c.Request.UserAgent(),
		CreatedAt: time.Now(),
	}
	if err := database.GetDB().Create(&entry).Error; err != nil {
		log.Printf("Warning: Failed to record login: %v", err)
	}
}

// verifyIDToken verifies the ID token using Google's official library
func verifyIDToken(idToken string, audience string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(context.Background(), idToken, audience)
	if err != nil {
		return nil, fmt.Errorf("failed to validate ID token: %w", err)
	}
	return payload, nil
}

// extractUserInfoFromPayload extracts user info from the verified token payload
func extractUserInfoFromPayload(payload *idtoken.Payload) (*UserInfo, error) {
	email, ok := payload.Claims["email"].(string)
	if !ok {
		return nil, fmt.Errorf("email claim missing from token")
	}

	userInfo := &UserInfo{
		Sub:   payload.Subject,
		Email: email,
	}

	// Extract other fields if they exist
	if name, ok := payload.Claims["name"].(string); ok {
		userInfo.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		userInfo.Picture = picture
	}
	if givenName, ok := payload.Claims["given_name"].(string); ok {
		userInfo.GivenName = givenName
	}
	if familyName, ok := payload.Claims["family_name"].(string); ok {
		userInfo.FamilyName = familyName
	}
	if locale, ok := payload.Claims["locale"].(string); ok {
		userInfo.Locale = locale
	}
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok {
		userInfo.EmailVerified = emailVerified
	}

	return userInfo, nil
}

// AuthMiddleware validates the session
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		if session.IsExpired() {
			DeleteSession(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
			c.Abort()
			return
		}

		// Keep the Google access token warm. The session stays valid even if
		// the refresh fails; it only matters for calls to Google APIs.
		if err := RefreshSessionToken(c, session); err != nil {
			log.Printf("Warning: token refresh failed for session %s: %v", session.ID, err)
		}

		// Store user info in context for handlers to use
		if session.HasActiveUser() {
			c.Set("username", session.Username)
		}
		c.Set("sub", session.GoogleID)
		c.Set("email", session.Email)
		c.Set("session_id", session.ID)

		c.Next()
	}
}

// LogoutHandler handles user logout
func LogoutHandler(c *gin.Context) {
	DeleteSession(c)
	c.Redirect(http.StatusTemporaryRedirect, "/")
}
