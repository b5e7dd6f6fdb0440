package auth

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logging "github.com/ipfs/go-log/v2"
	"github.com/pquerna/otp/totp"
)

var log = logging.Logger("auth")

// SignerKey ключ контекста gin с base58-адресом подписанта.
const SignerKey = "signer"

// SignatureMiddleware проверяет подпись запроса и кладёт подписанта в контекст.
func SignatureMiddleware(maxSkew time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		signer := c.GetHeader(HeaderSigner)
		signature := c.GetHeader(HeaderSignature)
		if signer == "" || signature == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing signature", "code": "MissingSignature"})
			return
		}
		ts, err := CheckTimestamp(c.GetHeader(HeaderTimestamp), time.Now(), maxSkew)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "stale timestamp", "code": "StaleTimestamp"})
			return
		}
		var body []byte
		if c.Request.Body != nil {
			body, err = io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}
		msg := RequestMessage(c.Request.Method, c.Request.URL.RequestURI(), ts, body)
		if err := Verify(signer, signature, msg); err != nil {
			log.Debugf("rejecting request from %s: %s", signer, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature", "code": "InvalidSignature"})
			return
		}
		c.Set(SignerKey, signer)
		c.Next()
	}
}

// RequireAdminOTP требует действующий TOTP-код в X-OTP. С пустым секретом проверка выключена.
func RequireAdminOTP(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		code := c.GetHeader(HeaderOTP)
		if code == "" || !totp.Validate(code, secret) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid otp", "code": "InvalidOTP"})
			return
		}
		c.Next()
	}
}

// Signer возвращает подписанта запроса, установленного SignatureMiddleware.
func Signer(c *gin.Context) (string, bool) {
	v, ok := c.Get(SignerKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
