package config

import (
	"log"
	"os"
	"strings"
)

// Env holds everything the admin layer reads from the environment. Every
// admin setting is optional; fail-open/fail-closed behavior per field is
// documented on the consumer.
type Env struct {
	AppAddr string
	GinMode string

	// JWTSecret signs admin session tokens. A dev fallback is used when
	// unset so the binary still boots locally.
	JWTSecret string

	// AdminEmails is the back-office allow-list. Empty admits every
	// authenticated email (historical fail-open policy, warned at boot).
	AdminEmails []string

	// EntryToken is the shared secret required as a cookie on admin routes.
	// Empty disables the entry-token step.
	EntryToken string

	// Redis credentials for the advisory response cache. Empty disables
	// caching entirely (fail-open).
	RedisAddr     string
	RedisPassword string

	// PaymentWebhookSecret verifies signed billing return URLs. Empty makes
	// verification report missing_secret (fail-closed, distinguishable).
	PaymentWebhookSecret string

	// RevalidateToken protects POST /api/admin/cache/revalidate. Empty
	// disables the endpoint (503).
	RevalidateToken string

	// SummaryUpstreamURL is the optional AI usage summarizer. Empty yields
	// 501 on the summary endpoint.
	SummaryUpstreamURL string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = "dev-only-session-secret"
		log.Println("warning: JWT_SECRET not set, using dev fallback")
	}

	env := Env{
		AppAddr:              appAddr,
		GinMode:              strings.TrimSpace(os.Getenv("GIN_MODE")),
		JWTSecret:            jwtSecret,
		AdminEmails:          splitList(os.Getenv("ADMIN_EMAILS")),
		EntryToken:           strings.TrimSpace(os.Getenv("ADMIN_ENTRY_TOKEN")),
		RedisAddr:            strings.TrimSpace(os.Getenv("CACHE_REDIS_ADDR")),
		RedisPassword:        strings.TrimSpace(os.Getenv("CACHE_REDIS_PASSWORD")),
		PaymentWebhookSecret: strings.TrimSpace(os.Getenv("PAYMENT_WEBHOOK_SECRET")),
		RevalidateToken:      strings.TrimSpace(os.Getenv("CACHE_REVALIDATE_TOKEN")),
		SummaryUpstreamURL:   strings.TrimSpace(os.Getenv("USAGE_SUMMARY_URL")),
	}

	if len(env.AdminEmails) == 0 {
		log.Println("warning: ADMIN_EMAILS not set, every authenticated email can reach the admin surface")
	}

	return env
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
