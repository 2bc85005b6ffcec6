package webhook

// SecretTokenHeader carries the secret_token given to setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret     string   // secret_token registered with setWebhook
	AllowedIPs []string // IPs or CIDR ranges (optional)
}
