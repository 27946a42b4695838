package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// ClientIPLocalKey is the key under which ClientIP stores the caller address.
const ClientIPLocalKey = "client_ip"

// TrustProxies returns cfg with proxy handling enabled: c.IP() reports the
// first valid X-Forwarded-For address only when the socket peer is listed in
// trusted (addresses or CIDR ranges). Any other caller is identified by its
// socket peer, whatever headers it sends.
func TrustProxies(cfg fiber.Config, trusted []string) fiber.Config {
	cfg.ProxyHeader = fiber.HeaderXForwardedFor
	cfg.EnableTrustedProxyCheck = true
	cfg.EnableIPValidation = true
	cfg.TrustedProxies = trusted
	return cfg
}

// ClientIP resolves the caller address once per request and stores it in
// context locals. Resolution follows the app's proxy settings, see
// TrustProxies.
func ClientIP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(ClientIPLocalKey, c.IP())
		return c.Next()
	}
}

// ClientIPFromCtx returns the address stored by ClientIP, resolving it on
// the spot when the middleware did not run.
func ClientIPFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(ClientIPLocalKey).(string); ok && s != "" {
		return s
	}
	return c.IP()
}
