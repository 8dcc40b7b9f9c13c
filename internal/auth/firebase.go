package auth

import (
	"firebase.google.com/go/v4/auth"

	"github.com/ethical-careers/ethical-careers-backend/config"
)

// ActionSettings builds the redirect settings attached to verification and
// password-reset links, pointing back at the web app.
func ActionSettings(cfg config.AppConfig) *auth.ActionCodeSettings {
	return &auth.ActionCodeSettings{
		URL: cfg.FrontendURL + "/thank-you",
	}
}
