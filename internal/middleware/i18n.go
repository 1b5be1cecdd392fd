package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/pkg/i18n"
)

const (
	localeKey = "locale"
	bundleKey = "i18n_bundle"
)

// I18n middleware detects the client's preferred language from Accept-Language header
// and stores it, together with bundle, in the gin context.
func I18n(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Accept-Language")
		locale := i18n.ParseAcceptLanguage(header)
		c.Set(localeKey, locale)
		c.Set(bundleKey, bundle)
		c.Header("Content-Language", string(locale))
		c.Next()
	}
}

// GetLocale returns the locale from the gin context (set by I18n middleware)
func GetLocale(c *gin.Context) i18n.Locale {
	if v, exists := c.Get(localeKey); exists {
		if locale, ok := v.(i18n.Locale); ok {
			return locale
		}
	}
	return i18n.Default()
}

// Translate renders key in the request locale; without a bundle the key is returned
func Translate(c *gin.Context, key string, args ...interface{}) string {
	v, exists := c.Get(bundleKey)
	if !exists {
		return key
	}
	bundle, ok := v.(*i18n.Bundle)
	if !ok || bundle == nil {
		return key
	}
	return bundle.T(GetLocale(c), key, args...)
}
