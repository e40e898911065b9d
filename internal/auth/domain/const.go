// Package domain defines sender tokens: signed bearer credentials whose
// subject is the principal a request acts as.
package domain

import "time"

// DefaultTokenTTL is used when a token is issued without an explicit lifetime.
const DefaultTokenTTL = time.Hour
